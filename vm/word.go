package vm

import (
	"encoding/binary"
)

// Word is the capability set of a machine word: a fixed width integer.
//
// Platform sized int, uint and uintptr are excluded as they have no fixed
// encoding in the instruction stream.
type Word interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WidthOf returns the encoded width in bytes of the word type T.
func WidthOf[T Word]() int {
	var v T
	return binary.Size(v)
}

// PutWord encodes v little-endian into the first WidthOf[T]() bytes of b.
func PutWord[T Word](b []byte, v T) {
	switch WidthOf[T]() {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

// ReadWord decodes a little-endian T from the first WidthOf[T]() bytes of b.
func ReadWord[T Word](b []byte) (v T) {
	switch WidthOf[T]() {
	case 1:
		v = T(b[0])
	case 2:
		v = T(binary.LittleEndian.Uint16(b))
	case 4:
		v = T(binary.LittleEndian.Uint32(b))
	case 8:
		v = T(binary.LittleEndian.Uint64(b))
	}
	return
}

// wordMask covers the bits of a T, as an unsigned value.
func wordMask[T Word]() uint64 {
	width := WidthOf[T]()
	if width >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * width)) - 1
}

// toAddress reinterprets v as an unsigned value of the same width.
func toAddress[T Word](v T) uint64 {
	return uint64(v) & wordMask[T]()
}

// fromAddress converts an address to a T, failing if it does not fit.
func fromAddress[T Word](address uint64) (v T, ok bool) {
	if address > wordMask[T]() {
		return
	}
	return T(address), true
}

package vm

import (
	"io"
)

// Memory is a fixed size, zero initialized byte array addressed by byte
// offset. Words are stored little-endian.
type Memory[T Word] struct {
	data []byte
}

// NewMemory creates a memory of size bytes.
func NewMemory[T Word](size int) *Memory[T] {
	return &Memory[T]{
		data: make([]byte, size),
	}
}

// Size returns the size of the memory in bytes.
func (mem *Memory[T]) Size() int {
	return len(mem.data)
}

// Bytes returns the backing store. It is never reallocated.
func (mem *Memory[T]) Bytes() []byte {
	return mem.data
}

// Reset zeros the memory.
func (mem *Memory[T]) Reset() {
	clear(mem.data)
}

// span returns the bytes [address, address+size), or an ErrAddress.
func (mem *Memory[T]) span(address uint64, size int) ([]byte, error) {
	if address+uint64(size) > uint64(len(mem.data)) {
		return nil, ErrAddress{Address: address, Size: size}
	}
	return mem.data[address : address+uint64(size)], nil
}

// LoadWord reads the word stored at address.
func (mem *Memory[T]) LoadWord(address uint32) (value T, err error) {
	b, err := mem.span(uint64(address), WidthOf[T]())
	if err != nil {
		return
	}

	return ReadWord[T](b), nil
}

// StoreWord writes value at address.
func (mem *Memory[T]) StoreWord(address uint32, value T) error {
	b, err := mem.span(uint64(address), WidthOf[T]())
	if err != nil {
		return err
	}

	PutWord(b, value)
	return nil
}

// ReadAt implements io.ReaderAt. Reads crossing the end of memory fail
// without copying.
func (mem *Memory[T]) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrAddress{Address: uint64(off), Size: len(p)}
	}
	b, err := mem.span(uint64(off), len(p))
	if err != nil {
		return
	}

	return copy(p, b), nil
}

// WriteAt implements io.WriterAt. Writes crossing the end of memory fail
// without modifying it.
func (mem *Memory[T]) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrAddress{Address: uint64(off), Size: len(p)}
	}
	b, err := mem.span(uint64(off), len(p))
	if err != nil {
		return
	}

	return copy(b, p), nil
}

var (
	_ io.ReaderAt = (*Memory[int32])(nil)
	_ io.WriterAt = (*Memory[int32])(nil)
)

package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Create(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[int32](1024)
	assert.Equal(1024, mem.Size())
	assert.Equal(make([]byte, 1024), mem.Bytes())
}

func TestMemory_LoadStore(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[int32](1024)

	assert.NoError(mem.StoreWord(0, 0x12345678))
	v, err := mem.LoadWord(0)
	assert.NoError(err)
	assert.Equal(int32(0x12345678), v)
	assert.Equal([]byte{0x78, 0x56, 0x34, 0x12}, mem.Bytes()[:4])

	// Unaligned access is permitted.
	assert.NoError(mem.StoreWord(5, -1))
	v, err = mem.LoadWord(5)
	assert.NoError(err)
	assert.Equal(int32(-1), v)
	v, err = mem.LoadWord(4)
	assert.NoError(err)
	assert.Equal(int32(-256), v)
}

func TestMemory_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[int16](64)
	for a := uint32(0); a+2 <= 64; a++ {
		value := int16(a*263) - 1000
		assert.NoError(mem.StoreWord(a, value))
		got, err := mem.LoadWord(a)
		assert.NoError(err)
		assert.Equal(value, got)
	}
}

func TestMemory_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[int32](1024)

	_, err := mem.LoadWord(1020)
	assert.NoError(err)
	assert.NoError(mem.StoreWord(1020, 7))

	for _, address := range []uint32{1021, 1024, 0xfffffffe, 0xffffffff} {
		_, err = mem.LoadWord(address)
		assert.ErrorIs(err, ErrMemoryOutOfBounds, "load 0x%x", address)

		var addr ErrAddress
		assert.True(errors.As(err, &addr))
		assert.Equal(uint64(address), addr.Address)
		assert.Equal(4, addr.Size)

		err = mem.StoreWord(address, 0x12345678)
		assert.ErrorIs(err, ErrMemoryOutOfBounds, "store 0x%x", address)
	}

	// Failed stores leave memory untouched.
	assert.Equal([]byte{7, 0, 0, 0}, mem.Bytes()[1020:])
}

func TestMemory_Bytes(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[uint8](16)
	assert.NoError(mem.StoreWord(15, 0xab))
	assert.ErrorIs(mem.StoreWord(16, 0xab), ErrMemoryOutOfBounds)

	n, err := mem.WriteAt([]byte{1, 2, 3}, 4)
	assert.NoError(err)
	assert.Equal(3, n)

	buf := make([]byte, 4)
	n, err = mem.ReadAt(buf, 3)
	assert.NoError(err)
	assert.Equal(4, n)
	assert.Equal([]byte{0, 1, 2, 3}, buf)

	_, err = mem.ReadAt(buf, 14)
	assert.ErrorIs(err, ErrMemoryOutOfBounds)
	_, err = mem.WriteAt(buf, 13)
	assert.ErrorIs(err, ErrMemoryOutOfBounds)
	_, err = mem.WriteAt(buf, -1)
	assert.ErrorIs(err, ErrMemoryOutOfBounds)
	assert.Equal(uint8(0xab), mem.Bytes()[15])
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory[int64](32)
	assert.NoError(mem.StoreWord(8, -1))
	mem.Reset()
	assert.Equal(32, mem.Size())
	assert.Equal(make([]byte, 32), mem.Bytes())
}

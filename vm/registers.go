package vm

import (
	"slices"
)

const (
	REGISTER_COUNT = 4   // Default register file size.
	REGISTER_LIMIT = 256 // Register ids are one byte.
)

// Registers is the general-purpose register file.
type Registers[T Word] struct {
	data []T
}

// NewRegisters creates a register file of count zeroed registers.
func NewRegisters[T Word](count int) *Registers[T] {
	return &Registers[T]{
		data: make([]T, count),
	}
}

func (r *Registers[T]) Len() int {
	return len(r.data)
}

// Check fails with an ErrRegister if id is not in the register file.
func (r *Registers[T]) Check(id uint8) error {
	if int(id) >= len(r.data) {
		return ErrRegister(id)
	}
	return nil
}

func (r *Registers[T]) Read(id uint8) (value T, err error) {
	err = r.Check(id)
	if err != nil {
		return
	}

	return r.data[id], nil
}

func (r *Registers[T]) Write(id uint8, value T) error {
	if err := r.Check(id); err != nil {
		return err
	}

	r.data[id] = value
	return nil
}

// Values returns a copy of the register file.
func (r *Registers[T]) Values() []T {
	return slices.Clone(r.data)
}

func (r *Registers[T]) Reset() {
	clear(r.data)
}

// Flags is the sign class of the most recent arithmetic or logical result.
type Flags struct {
	Zero     bool
	Negative bool
	Positive bool
}

// UpdateFlags returns the flags describing value.
func UpdateFlags[T Word](value T) Flags {
	return Flags{
		Zero:     value == 0,
		Negative: value < 0,
		Positive: value > 0,
	}
}

// Clear all flags.
func (fl *Flags) Clear() {
	*fl = Flags{}
}

// String renders the flags as "znp", with '-' for clear flags.
func (fl Flags) String() string {
	out := []byte("---")
	if fl.Zero {
		out[0] = 'z'
	}
	if fl.Negative {
		out[1] = 'n'
	}
	if fl.Positive {
		out[2] = 'p'
	}
	return string(out)
}

package vm

import (
	"errors"

	"github.com/ezrec/forge/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrInvalidOpcode        = errors.New(f("invalid opcode"))
	ErrTruncatedInstruction = errors.New(f("truncated instruction"))

	// Execute errors
	ErrInvalidRegister   = errors.New(f("invalid register"))
	ErrMemoryOutOfBounds = errors.New(f("memory out of bounds"))
	ErrStackOverflow     = errors.New(f("stack overflow"))
	ErrStackUnderflow    = errors.New(f("stack underflow"))
	ErrDivisionByZero    = errors.New(f("division by zero"))
	ErrReturnAddress     = errors.New(f("return address exceeds word width"))

	// Run loop errors
	ErrStepLimit = errors.New(f("step limit exceeded"))
	ErrHalted    = errors.New(f("halted"))
)

// ErrOpcode is an opcode byte with no instruction assigned.
type ErrOpcode byte

func (eo ErrOpcode) Error() string {
	return f("opcode 0x%02x invalid", byte(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrInvalidOpcode
}

// ErrTruncated is an instruction cut short by the end of the program.
type ErrTruncated struct {
	Op   Opcode // Opcode being decoded, if one was read.
	Need int    // Encoded length of the instruction.
	Have int    // Bytes remaining in the program.
}

func (err ErrTruncated) Error() string {
	if err.Need <= 1 {
		return f("no instruction to fetch")
	}
	return f("%v needs %d bytes, %d remain", err.Op, err.Need, err.Have)
}

func (err ErrTruncated) Unwrap() error {
	return ErrTruncatedInstruction
}

// ErrRegister is a register id outside of the register file.
type ErrRegister uint8

func (er ErrRegister) Error() string {
	return f("register r%d invalid", uint8(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrInvalidRegister
}

// ErrAddress is a memory access outside of the memory region.
type ErrAddress struct {
	Address uint64 // First byte of the access.
	Size    int    // Bytes accessed.
}

func (err ErrAddress) Error() string {
	return f("access of %d bytes at 0x%08x out of bounds", err.Size, err.Address)
}

func (err ErrAddress) Unwrap() error {
	return ErrMemoryOutOfBounds
}

// ErrFault locates the instruction at which a run failed.
type ErrFault struct {
	Offset int    // Program counter of the failing instruction.
	Op     Opcode // Opcode at Offset, if it could be read.
	Steps  uint64 // Instructions completed before the failure.
	Err    error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%04x %v: %v", err.Offset, err.Op, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

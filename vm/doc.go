// Package vm implements the forge register virtual machine.
//
// The machine decodes a variable-length little-endian instruction stream
// and executes it against a small register file, a bounded stack shared by
// data and return addresses, a tri-state condition flag and a flat
// byte-addressable memory. It is generic over the machine word, any fixed
// width Go integer type.
//
// Basic usage:
//
//	m := vm.New[int32](1024, 1024)
//	steps, err := m.Run(program)
//
// Execution is single threaded. Independent machines share no state.
package vm

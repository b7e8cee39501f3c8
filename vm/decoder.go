package vm

import (
	"encoding/binary"
)

// Decode reads the instruction at offset pc of program, returning it and
// its encoded length. Register ids are not range checked.
func Decode[T Word](program []byte, pc int) (in Instruction[T], size int, err error) {
	if pc < 0 || pc >= len(program) {
		err = ErrTruncated{Need: 1, Have: 0}
		return
	}

	code := program[pc:]
	op := Opcode(code[0])
	layout := op.Layout()
	if layout == nil {
		err = ErrOpcode(op)
		return
	}

	width := WidthOf[T]()
	size = op.Size(width)
	if len(code) < size {
		err = ErrTruncated{Op: op, Need: size, Have: len(code)}
		size = 0
		return
	}

	in.Op = op
	at := 1
	regs := 0
	for _, operand := range layout.Operands {
		switch operand {
		case OperandRegister:
			in.Regs[regs] = code[at]
			regs++
		case OperandAddress:
			in.Address = binary.LittleEndian.Uint32(code[at:])
		case OperandWord:
			in.Value = ReadWord[T](code[at:])
		}
		at += operand.Size(width)
	}

	return
}

// Append encodes in to the end of b. It is the inverse of Decode.
func Append[T Word](b []byte, in Instruction[T]) ([]byte, error) {
	layout := in.Op.Layout()
	if layout == nil {
		return b, ErrOpcode(in.Op)
	}

	width := WidthOf[T]()
	b = append(b, byte(in.Op))
	regs := 0
	for _, operand := range layout.Operands {
		switch operand {
		case OperandRegister:
			b = append(b, in.Regs[regs])
			regs++
		case OperandAddress:
			b = binary.LittleEndian.AppendUint32(b, in.Address)
		case OperandWord:
			start := len(b)
			b = append(b, make([]byte, width)...)
			PutWord(b[start:], in.Value)
		}
	}

	return b, nil
}

package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		expect  Instruction[int32]
		size    int
	}){
		{"nop", []byte{0x00}, Instruction[int32]{Op: NOP}, 1},
		{"mov", []byte{0x01, 0x02, 0x78, 0x56, 0x34, 0x12}, Instruction[int32]{Op: MOV, Regs: [3]uint8{2}, Value: 0x12345678}, 6},
		{"mov_neg", []byte{0x01, 0x00, 0xfb, 0xff, 0xff, 0xff}, Instruction[int32]{Op: MOV, Value: -5}, 6},
		{"ld", []byte{0x02, 0x01, 0x00, 0x04, 0x00, 0x00}, Instruction[int32]{Op: LD, Regs: [3]uint8{1}, Address: 0x400}, 6},
		{"st", []byte{0x03, 0x03, 0x10, 0x00, 0x00, 0x00}, Instruction[int32]{Op: ST, Regs: [3]uint8{3}, Address: 0x10}, 6},
		{"add", []byte{0x09, 0x00, 0x00, 0x01}, Instruction[int32]{Op: ADD, Regs: [3]uint8{0, 0, 1}}, 4},
		{"not", []byte{0x07, 0x01, 0x02}, Instruction[int32]{Op: NOT, Regs: [3]uint8{1, 2}}, 3},
		{"push", []byte{0x10, 0x03}, Instruction[int32]{Op: PUSHREG, Regs: [3]uint8{3}}, 2},
		{"jmpz", []byte{0x15, 0xef, 0xbe, 0xad, 0xde}, Instruction[int32]{Op: JMPZ, Address: 0xdeadbeef}, 5},
		{"ret", []byte{0x17}, Instruction[int32]{Op: RET}, 1},
		{"hlt", []byte{0xff}, Instruction[int32]{Op: HLT}, 1},
		{"trailing", []byte{0x10, 0x01, 0xff}, Instruction[int32]{Op: PUSHREG, Regs: [3]uint8{1}}, 2},
	}

	for _, entry := range table {
		in, size, err := Decode[int32](entry.program, 0)
		assert.NoError(err, entry.name)
		assert.Equal(entry.expect, in, entry.name)
		assert.Equal(entry.size, size, entry.name)
	}
}

func TestDecode_Offset(t *testing.T) {
	assert := assert.New(t)

	program := []byte{0x00, 0x00, 0x0a, 0x02, 0x00, 0x01, 0xff}

	in, size, err := Decode[int32](program, 2)
	assert.NoError(err)
	assert.Equal(Instruction[int32]{Op: SUB, Regs: [3]uint8{2, 0, 1}}, in)
	assert.Equal(4, size)

	in, size, err = Decode[int32](program, 6)
	assert.NoError(err)
	assert.Equal(HLT, in.Op)
	assert.Equal(1, size)
}

func TestDecode_Registers(t *testing.T) {
	assert := assert.New(t)

	// The decoder does not know the register file size.
	in, _, err := Decode[int32]([]byte{0x09, 0xff, 0x80, 0x04}, 0)
	assert.NoError(err)
	assert.Equal([3]uint8{0xff, 0x80, 0x04}, in.Regs)
}

func TestDecode_WordWidth(t *testing.T) {
	assert := assert.New(t)

	in64, size, err := Decode[int64]([]byte{0x01, 0x01, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, 0)
	assert.NoError(err)
	assert.Equal(10, size)
	assert.Equal(int64(0x7fffffffffffffff), in64.Value)

	in8, size, err := Decode[uint8]([]byte{0x01, 0x03, 0xaa}, 0)
	assert.NoError(err)
	assert.Equal(3, size)
	assert.Equal(uint8(0xaa), in8.Value)
	assert.Equal(uint8(3), in8.Regs[0])

	// Address operands are 4 bytes regardless of the word.
	in8, size, err = Decode[uint8]([]byte{0x12, 0x00, 0x01, 0x00, 0x00}, 0)
	assert.NoError(err)
	assert.Equal(5, size)
	assert.Equal(uint32(0x100), in8.Address)
}

func TestDecode_InvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	_, size, err := Decode[int32]([]byte{0xf0, 0xff}, 0)
	assert.ErrorIs(err, ErrInvalidOpcode)
	assert.Equal(ErrOpcode(0xf0), err)
	assert.Equal(0, size)
}

func TestDecode_Truncated(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		pc      int
		need    int
		have    int
	}){
		{"mov", []byte{0x01, 0x00, 0x01, 0x02}, 0, 6, 4},
		{"mov_reg", []byte{0x01}, 0, 6, 1},
		{"ld", []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x00}, 1, 6, 5},
		{"add", []byte{0x09, 0x00, 0x01}, 0, 4, 3},
		{"jmp", []byte{0x12, 0x00, 0x00, 0x00}, 0, 5, 4},
		{"push", []byte{0x10}, 0, 2, 1},
		{"end", []byte{0x00}, 1, 1, 0},
		{"empty", nil, 0, 1, 0},
		{"past", []byte{0x00}, 7, 1, 0},
		{"negative", []byte{0x00}, -1, 1, 0},
	}

	for _, entry := range table {
		_, size, err := Decode[int32](entry.program, entry.pc)
		assert.ErrorIs(err, ErrTruncatedInstruction, entry.name)
		assert.Equal(0, size, entry.name)

		var trunc ErrTruncated
		if assert.True(errors.As(err, &trunc), entry.name) {
			assert.Equal(entry.need, trunc.Need, entry.name)
			assert.Equal(entry.have, trunc.Have, entry.name)
		}
	}
}

func TestAppend(t *testing.T) {
	assert := assert.New(t)

	prog, err := Append(nil, Instruction[int32]{Op: MOV, Regs: [3]uint8{0}, Value: 2})
	assert.NoError(err)
	prog, err = Append(prog, Instruction[int32]{Op: MOV, Regs: [3]uint8{1}, Value: 7})
	assert.NoError(err)
	prog, err = Append(prog, Instruction[int32]{Op: ADD, Regs: [3]uint8{0, 0, 1}})
	assert.NoError(err)
	prog, err = Append(prog, Instruction[int32]{Op: HLT})
	assert.NoError(err)

	assert.Equal([]byte{
		0x01, 0x00, 0x02, 0x00, 0x00, 0x00,
		0x01, 0x01, 0x07, 0x00, 0x00, 0x00,
		0x09, 0x00, 0x00, 0x01,
		0xff,
	}, prog)

	_, err = Append(prog, Instruction[int32]{Op: 0xf0})
	assert.ErrorIs(err, ErrInvalidOpcode)
}

func TestAppend_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, op := range Opcodes() {
		in := Instruction[int16]{Op: op}
		layout := op.Layout()
		regs := 0
		for _, operand := range layout.Operands {
			switch operand {
			case OperandRegister:
				in.Regs[regs] = uint8(regs + 1)
				regs++
			case OperandAddress:
				in.Address = 0x01020304
			case OperandWord:
				in.Value = -1234
			}
		}

		code, err := Append(nil, in)
		assert.NoError(err, op.String())
		assert.Equal(op.Size(2), len(code), op.String())

		out, size, err := Decode[int16](code, 0)
		assert.NoError(err, op.String())
		assert.Equal(len(code), size, op.String())
		assert.Equal(in, out, op.String())
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0xff}, 0)
	f.Add([]byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00}, 0)
	f.Add([]byte{0x09, 0x00, 0x00}, 0)
	f.Add([]byte{0x16, 0x10, 0x00, 0x00, 0x00, 0x17}, 5)

	f.Fuzz(func(t *testing.T, program []byte, pc int) {
		assert := assert.New(t)

		in, size, err := Decode[int32](program, pc)
		if err != nil {
			assert.Equal(0, size)
			assert.True(errors.Is(err, ErrInvalidOpcode) || errors.Is(err, ErrTruncatedInstruction), err.Error())
			return
		}

		assert.True(in.Op.Valid())
		assert.Equal(in.Op.Size(4), size)
		assert.LessOrEqual(pc+size, len(program))

		code, err := Append(nil, in)
		assert.NoError(err)
		assert.Equal(program[pc:pc+size], code)
	})
}

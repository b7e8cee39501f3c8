package vm

import (
	"fmt"
)

// Opcode is the leading byte of an encoded instruction.
type Opcode byte

const (
	NOP     = Opcode(0x00)
	MOV     = Opcode(0x01) // dest <- imm
	LD      = Opcode(0x02) // dest <- mem[addr]
	ST      = Opcode(0x03) // mem[addr] <- src
	AND     = Opcode(0x04)
	OR      = Opcode(0x05)
	XOR     = Opcode(0x06)
	NOT     = Opcode(0x07)
	CMP     = Opcode(0x08) // flags <- reg1 - reg2
	ADD     = Opcode(0x09)
	SUB     = Opcode(0x0a)
	MULT    = Opcode(0x0b)
	DIV     = Opcode(0x0c)
	MOD     = Opcode(0x0d)
	INC     = Opcode(0x0e)
	DEC     = Opcode(0x0f)
	PUSHREG = Opcode(0x10)
	POPREG  = Opcode(0x11)
	JMP     = Opcode(0x12)
	JMPN    = Opcode(0x13)
	JMPP    = Opcode(0x14)
	JMPZ    = Opcode(0x15)
	CALL    = Opcode(0x16)
	RET     = Opcode(0x17)
	CLF     = Opcode(0x18)
	HLT     = Opcode(0xff)
)

// Operand is the kind of a field following the opcode byte.
type Operand int

const (
	OperandRegister = Operand(0) // 1 byte register id
	OperandAddress  = Operand(1) // 4 byte unsigned address
	OperandWord     = Operand(2) // word width immediate
)

// AddressWidth is the encoded width of an address operand.
const AddressWidth = 4

// Size returns the encoded width of the operand for a given word width.
func (op Operand) Size(width int) int {
	switch op {
	case OperandRegister:
		return 1
	case OperandAddress:
		return AddressWidth
	case OperandWord:
		return width
	}
	return 0
}

// Layout describes the encoding of one opcode.
type Layout struct {
	Mnemonic string
	Operands []Operand
}

var (
	opsNone    = []Operand{}
	opsReg     = []Operand{OperandRegister}
	opsReg2    = []Operand{OperandRegister, OperandRegister}
	opsReg3    = []Operand{OperandRegister, OperandRegister, OperandRegister}
	opsRegWord = []Operand{OperandRegister, OperandWord}
	opsRegAddr = []Operand{OperandRegister, OperandAddress}
	opsAddr    = []Operand{OperandAddress}
)

// layouts is indexed by opcode byte; unassigned opcodes are nil.
var layouts = [256]*Layout{
	NOP:     {"NOP", opsNone},
	MOV:     {"MOV", opsRegWord},
	LD:      {"LD", opsRegAddr},
	ST:      {"ST", opsRegAddr},
	AND:     {"AND", opsReg3},
	OR:      {"OR", opsReg3},
	XOR:     {"XOR", opsReg3},
	NOT:     {"NOT", opsReg2},
	CMP:     {"CMP", opsReg2},
	ADD:     {"ADD", opsReg3},
	SUB:     {"SUB", opsReg3},
	MULT:    {"MULT", opsReg3},
	DIV:     {"DIV", opsReg3},
	MOD:     {"MOD", opsReg3},
	INC:     {"INC", opsReg},
	DEC:     {"DEC", opsReg},
	PUSHREG: {"PUSHREG", opsReg},
	POPREG:  {"POPREG", opsReg},
	JMP:     {"JMP", opsAddr},
	JMPN:    {"JMPN", opsAddr},
	JMPP:    {"JMPP", opsAddr},
	JMPZ:    {"JMPZ", opsAddr},
	CALL:    {"CALL", opsAddr},
	RET:     {"RET", opsNone},
	CLF:     {"CLF", opsNone},
	HLT:     {"HLT", opsNone},
}

// Layout returns the encoding of the opcode, or nil if it is unassigned.
func (op Opcode) Layout() *Layout {
	return layouts[op]
}

// Valid returns true if the opcode is assigned to an instruction.
func (op Opcode) Valid() bool {
	return layouts[op] != nil
}

// Size returns the total encoded length of the instruction, opcode byte
// included, for a given word width. Unassigned opcodes have size 0.
func (op Opcode) Size(width int) (size int) {
	layout := layouts[op]
	if layout == nil {
		return
	}

	size = 1
	for _, operand := range layout.Operands {
		size += operand.Size(width)
	}

	return
}

func (op Opcode) String() string {
	if layout := layouts[op]; layout != nil {
		return layout.Mnemonic
	}
	return fmt.Sprintf("Opcode(0x%02x)", byte(op))
}

// Opcodes returns all assigned opcodes in ascending order.
func Opcodes() (ops []Opcode) {
	for n, layout := range layouts {
		if layout != nil {
			ops = append(ops, Opcode(n))
		}
	}
	return
}

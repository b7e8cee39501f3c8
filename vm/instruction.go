package vm

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction. Only the operands named by the
// opcode layout are meaningful.
type Instruction[T Word] struct {
	Op      Opcode
	Regs    [3]uint8 // Register operands, in encoding order.
	Value   T        // Immediate operand.
	Address uint32   // Address operand.
}

// String returns the instruction as "MNEMONIC op, op, ...".
func (in Instruction[T]) String() string {
	layout := in.Op.Layout()
	if layout == nil {
		return in.Op.String()
	}

	args := make([]string, 0, len(layout.Operands))
	regs := in.Regs[:]
	for _, operand := range layout.Operands {
		switch operand {
		case OperandRegister:
			args = append(args, fmt.Sprintf("r%d", regs[0]))
			regs = regs[1:]
		case OperandAddress:
			args = append(args, fmt.Sprintf("0x%08x", in.Address))
		case OperandWord:
			args = append(args, fmt.Sprintf("%d", in.Value))
		}
	}

	if len(args) == 0 {
		return layout.Mnemonic
	}

	return layout.Mnemonic + " " + strings.Join(args, ", ")
}

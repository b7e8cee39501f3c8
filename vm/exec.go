package vm

import (
	"log"
)

// Run loads program and executes it until HLT or a fault. It returns the
// number of instructions executed, HLT included. On a fault the count
// excludes the failing instruction and err is an *ErrFault.
func (m *Machine[T]) Run(program []byte) (steps uint64, err error) {
	m.Load(program)

	for m.state == StateRunning {
		err = m.Tick()
		if err != nil {
			break
		}
	}

	if m.Verbose {
		log.Printf("vm: %v after %d steps", m.state, m.steps)
	}

	return m.steps, err
}

// Tick fetches, decodes and executes a single instruction.
//
// Ticking a halted machine returns ErrHalted; ticking a failed machine
// returns its fault again.
func (m *Machine[T]) Tick() (err error) {
	switch m.state {
	case StateHalted, StateFailed:
		return m.err
	}

	pc := m.pc
	var op Opcode
	defer func() {
		if err != nil {
			err = &ErrFault{Offset: pc, Op: op, Steps: m.steps, Err: err}
			m.state = StateFailed
			m.err = err
		}
	}()

	if m.MaxSteps > 0 && m.steps >= m.MaxSteps {
		err = ErrStepLimit
		return
	}

	if pc >= 0 && pc < len(m.program) {
		op = Opcode(m.program[pc])
	}

	in, size, err := Decode[T](m.program, pc)
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("%04x: %v", pc, in)
	}

	err = m.Execute(in, pc+size)
	if err != nil {
		return
	}

	m.steps++

	return
}

// Execute applies a decoded instruction. next is the offset of the
// following instruction. Either every effect of the instruction is
// committed, or none is and an error is returned.
func (m *Machine[T]) Execute(in Instruction[T], next int) (err error) {
	regs := m.registers
	r := in.Regs

	switch in.Op {
	case NOP:
		// pass
	case MOV:
		err = regs.Write(r[0], in.Value)
	case LD:
		if err = regs.Check(r[0]); err != nil {
			return
		}
		var value T
		value, err = m.memory.LoadWord(in.Address)
		if err != nil {
			return
		}
		err = regs.Write(r[0], value)
	case ST:
		var value T
		value, err = regs.Read(r[0])
		if err != nil {
			return
		}
		err = m.memory.StoreWord(in.Address, value)
	case AND, OR, XOR, ADD, SUB, MULT, DIV, MOD:
		err = m.alu(in.Op, r[0], r[1], r[2])
	case NOT:
		if err = regs.Check(r[0]); err != nil {
			return
		}
		var value T
		value, err = regs.Read(r[1])
		if err != nil {
			return
		}
		m.setResult(r[0], ^value)
	case CMP:
		var a, b T
		if a, err = regs.Read(r[0]); err != nil {
			return
		}
		if b, err = regs.Read(r[1]); err != nil {
			return
		}
		m.flags = UpdateFlags(a - b)
	case INC, DEC:
		var value T
		value, err = regs.Read(r[0])
		if err != nil {
			return
		}
		if in.Op == INC {
			value++
		} else {
			value--
		}
		m.setResult(r[0], value)
	case PUSHREG:
		var value T
		value, err = regs.Read(r[0])
		if err != nil {
			return
		}
		err = m.stack.Push(value)
	case POPREG:
		if err = regs.Check(r[0]); err != nil {
			return
		}
		var value T
		value, err = m.stack.Pop()
		if err != nil {
			return
		}
		err = regs.Write(r[0], value)
	case JMP:
		next = int(in.Address)
	case JMPZ:
		if m.flags.Zero {
			next = int(in.Address)
		}
	case JMPN:
		if m.flags.Negative {
			next = int(in.Address)
		}
	case JMPP:
		if m.flags.Positive {
			next = int(in.Address)
		}
	case CALL:
		ret, ok := fromAddress[T](uint64(next))
		if !ok {
			err = ErrReturnAddress
			return
		}
		if err = m.stack.Push(ret); err != nil {
			return
		}
		next = int(in.Address)
	case RET:
		var ret T
		ret, err = m.stack.Pop()
		if err != nil {
			return
		}
		next = int(toAddress(ret))
	case CLF:
		m.flags.Clear()
	case HLT:
		m.state = StateHalted
		m.err = ErrHalted
		return
	default:
		err = ErrOpcode(in.Op)
	}

	if err != nil {
		return
	}

	m.pc = next

	return
}

// alu applies a three register arithmetic or logical operation.
func (m *Machine[T]) alu(op Opcode, dest, reg1, reg2 uint8) (err error) {
	regs := m.registers

	if err = regs.Check(dest); err != nil {
		return
	}

	var a, b T
	if a, err = regs.Read(reg1); err != nil {
		return
	}
	if b, err = regs.Read(reg2); err != nil {
		return
	}

	var value T
	switch op {
	case AND:
		value = a & b
	case OR:
		value = a | b
	case XOR:
		value = a ^ b
	case ADD:
		value = a + b
	case SUB:
		value = a - b
	case MULT:
		value = a * b
	case DIV, MOD:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		if op == DIV {
			value = a / b
		} else {
			value = a % b
		}
	}

	m.setResult(dest, value)

	return
}

// setResult updates the flags from value, then writes it to a register
// already known to be valid.
func (m *Machine[T]) setResult(dest uint8, value T) {
	m.flags = UpdateFlags(value)
	m.registers.data[dest] = value
}

package vm

import (
	"fmt"
	"log"
	"strings"
)

// Option configures a Machine at construction.
type Option func(opt *options)

type options struct {
	registers int
	maxSteps  uint64
	verbose   bool
}

// WithRegisters sets the register file size, 1 to REGISTER_LIMIT.
func WithRegisters(count int) Option {
	return func(opt *options) { opt.registers = count }
}

// WithMaxSteps bounds the number of instructions a run may execute.
// Zero is unlimited.
func WithMaxSteps(steps uint64) Option {
	return func(opt *options) { opt.maxSteps = steps }
}

// WithVerbose enables logging of every executed instruction.
func WithVerbose(verbose bool) Option {
	return func(opt *options) { opt.verbose = verbose }
}

// Machine is the execution context: registers, flags, stack, memory and
// program counter. A Machine must not be used from multiple goroutines.
type Machine[T Word] struct {
	Verbose  bool   // Set to enable verbose logging.
	MaxSteps uint64 // Instruction budget of a run, zero for unlimited.

	registers *Registers[T]
	flags     Flags
	stack     *Stack[T]
	memory    *Memory[T]

	program []byte
	pc      int
	steps   uint64
	state   State
	err     error
}

// New creates a machine with a stack of stackCapacity words and
// memorySize bytes of memory.
func New[T Word](stackCapacity, memorySize int, opts ...Option) (m *Machine[T]) {
	opt := options{registers: REGISTER_COUNT}
	for _, o := range opts {
		o(&opt)
	}

	if opt.registers < 1 || opt.registers > REGISTER_LIMIT {
		panic(fmt.Sprintf("vm: register count %d out of range", opt.registers))
	}

	m = &Machine[T]{
		Verbose:   opt.verbose,
		MaxSteps:  opt.maxSteps,
		registers: NewRegisters[T](opt.registers),
		stack:     NewStack[T](stackCapacity),
		memory:    NewMemory[T](memorySize),
		state:     StateHalted,
		err:       ErrHalted,
	}

	return
}

// Load resets the machine state and makes program the instruction stream.
// The program is not copied, and must not change while it runs.
func (m *Machine[T]) Load(program []byte) {
	if m.Verbose {
		log.Printf("vm: load %d bytes", len(program))
	}

	m.registers.Reset()
	m.flags.Clear()
	m.stack.Reset()
	m.memory.Reset()

	m.program = program
	m.pc = 0
	m.steps = 0
	m.state = StateRunning
	m.err = nil
}

// PC returns the offset of the next instruction to fetch.
func (m *Machine[T]) PC() int {
	return m.pc
}

// Steps returns the number of instructions completed since Load.
func (m *Machine[T]) Steps() uint64 {
	return m.steps
}

func (m *Machine[T]) State() State {
	return m.state
}

// Err returns the fault that stopped the machine, ErrHalted after a HLT,
// or nil while running.
func (m *Machine[T]) Err() error {
	return m.err
}

func (m *Machine[T]) Flags() Flags {
	return m.flags
}

func (m *Machine[T]) Registers() *Registers[T] {
	return m.registers
}

func (m *Machine[T]) Stack() *Stack[T] {
	return m.stack
}

func (m *Machine[T]) Memory() *Memory[T] {
	return m.memory
}

func (m *Machine[T]) Program() []byte {
	return m.program
}

// String returns the current machine state as a string.
func (m *Machine[T]) String() (text string) {
	row := func(name string, value any) {
		text += fmt.Sprintf("% 5s: %v\n", name, value)
	}

	row("pc", fmt.Sprintf("%04x", m.pc))
	row("state", m.state)
	row("steps", m.steps)
	row("flags", m.flags)
	for n, value := range m.registers.data {
		row(fmt.Sprintf("r%d", n), value)
	}

	stack := make([]string, 0, m.stack.Len())
	for _, value := range m.stack.data {
		stack = append(stack, fmt.Sprint(value))
	}
	row("stack", fmt.Sprintf("[%v] %d/%d", strings.Join(stack, " "), m.stack.Len(), m.stack.Cap()))

	return
}

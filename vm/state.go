package vm

// State is the run state of a machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	StateRunning = State(0) // running
	StateHalted  = State(1) // halted
	StateFailed  = State(2) // failed
)

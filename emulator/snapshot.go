package emulator

import (
	"fmt"
	"io"
	"slices"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/forge/vm"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("emulator: CBOR encoding mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot is a copy of the machine state after a run.
type Snapshot[T vm.Word] struct {
	Word      string   `cbor:"1,keyasint"`
	Image     string   `cbor:"2,keyasint"`
	PC        int      `cbor:"3,keyasint"`
	State     vm.State `cbor:"4,keyasint"`
	Steps     uint64   `cbor:"5,keyasint"`
	Flags     vm.Flags `cbor:"6,keyasint"`
	Registers []T      `cbor:"7,keyasint"`
	Stack     []T      `cbor:"8,keyasint,omitempty"`
	Memory    []byte   `cbor:"9,keyasint,omitempty"`
	Fault     string   `cbor:"10,keyasint,omitempty"` // Error text of a failed run.
}

// Snapshot copies the current machine state.
func (emu *Emulator[T]) Snapshot() (snap Snapshot[T]) {
	snap = Snapshot[T]{
		Word:      emu.Config.Word,
		Image:     emu.Name,
		PC:        emu.PC(),
		State:     emu.State(),
		Steps:     emu.Steps(),
		Flags:     emu.Flags(),
		Registers: emu.Registers().Values(),
		Stack:     emu.Stack().Values(),
		Memory:    slices.Clone(emu.Memory().Bytes()),
	}

	if emu.State() == vm.StateFailed {
		snap.Fault = emu.Err().Error()
	}

	return
}

// WriteSnapshot encodes the current machine state as canonical CBOR.
func (emu *Emulator[T]) WriteSnapshot(w io.Writer) (err error) {
	data, err := cborEncMode.Marshal(emu.Snapshot())
	if err != nil {
		return
	}

	_, err = w.Write(data)
	return
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot[T vm.Word](data []byte) (snap Snapshot[T], err error) {
	err = cbor.Unmarshal(data, &snap)
	if err != nil {
		err = fmt.Errorf("emulator: snapshot: %w", err)
	}
	return
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/forge/vm"
)

const (
	CHECK_INTERVAL = 1024 // Ticks between context cancellation checks.
)

// Emulator state. Machine + program image + configuration.
type Emulator[T vm.Word] struct {
	Verbose        bool   // If set, enables verbose logging.
	*vm.Machine[T]        // Reference to the machine.
	Config         Config // Configuration the machine was built from.
	Name           string // Name of the program image, for diagnostics.
	Image          []byte // Program image.
}

// New creates an emulator from a validated configuration.
func New[T vm.Word](cfg Config) (emu *Emulator[T]) {
	emu = &Emulator[T]{
		Verbose: cfg.Verbose,
		Machine: vm.New[T](cfg.StackCapacity, cfg.MemorySize,
			vm.WithRegisters(cfg.Registers),
			vm.WithMaxSteps(cfg.MaxSteps),
		),
		Config: cfg,
		Name:   "-",
	}

	return
}

// Load reads a raw program image and resets the machine to run it.
func (emu *Emulator[T]) Load(r io.Reader) (err error) {
	image, err := io.ReadAll(r)
	if err != nil {
		err = &ErrRuntime{Name: emu.Name, Err: err}
		return
	}

	emu.Image = image
	emu.Reset()

	return
}

// Reset the machine to the start of the loaded image.
func (emu *Emulator[T]) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset %v (%d bytes)", emu.Name, len(emu.Image))
	}

	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Load(emu.Image)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator[T]) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{Name: emu.Name, Err: err}
		}
	}()

	err = emu.Machine.Tick()
	if errors.Is(err, vm.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Machine.State() != vm.StateRunning

	return
}

// Run ticks until the program halts, faults, or ctx is done. An
// interrupted machine is left running and may be resumed.
func (emu *Emulator[T]) Run(ctx context.Context) (steps uint64, err error) {
	var done bool
	for n := 0; !done; n++ {
		if n%CHECK_INTERVAL == 0 {
			if err = ctx.Err(); err != nil {
				err = &ErrRuntime{Name: emu.Name, Err: err}
				break
			}
		}
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	if emu.Verbose {
		log.Printf("emulator: %v %v after %d steps", emu.Name, emu.Machine.State(), emu.Machine.Steps())
	}

	return emu.Machine.Steps(), err
}

// String returns the emulator configuration and machine state.
func (emu *Emulator[T]) String() string {
	return fmt.Sprintf("% 5s: %v\n% 5s: %v\n", "word", emu.Config.Word, "image", emu.Name) +
		emu.Machine.String()
}

type runner func(ctx context.Context, cfg Config, name string, image io.Reader, out, snap io.Writer) (uint64, error)

var _words = map[string]runner{
	"i8":  runImage[int8],
	"i16": runImage[int16],
	"i32": runImage[int32],
	"i64": runImage[int64],
	"u8":  runImage[uint8],
	"u16": runImage[uint16],
	"u32": runImage[uint32],
	"u64": runImage[uint64],
}

// Words returns the names accepted as Config.Word, sorted.
func Words() []string {
	return slices.Sorted(maps.Keys(_words))
}

func runImage[T vm.Word](ctx context.Context, cfg Config, name string, image io.Reader, out, snap io.Writer) (steps uint64, err error) {
	emu := New[T](cfg)
	emu.Name = name

	err = emu.Load(image)
	if err != nil {
		return
	}

	steps, err = emu.Run(ctx)
	fmt.Fprint(out, emu.String())

	if snap != nil {
		err = errors.Join(err, emu.WriteSnapshot(snap))
	}

	return
}

// RunImage builds the machine described by cfg, runs the program image
// read from image, and writes the final machine state to out. If snap is
// not nil the final state is also written to it as a CBOR Snapshot.
func RunImage(ctx context.Context, cfg Config, name string, image io.Reader, out, snap io.Writer) (steps uint64, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	return _words[cfg.Word](ctx, cfg, name, image, out, snap)
}

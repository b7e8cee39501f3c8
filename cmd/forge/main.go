// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/forge/emulator"
)

func main() {
	var config string
	var word string
	var registers int
	var stack int
	var memory int
	var steps uint64
	var output string
	var dump string
	var verbose bool

	flag.StringVar(&config, "c", "", ".toml machine configuration")
	flag.StringVar(&word, "w", emulator.DEFAULT_WORD, "Word type (i8, i16, i32, i64, u8, u16, u32, u64)")
	flag.IntVar(&registers, "r", 0, "Register count")
	flag.IntVar(&stack, "s", 0, "Stack capacity, in words")
	flag.IntVar(&memory, "m", 0, "Memory size, in bytes")
	flag.Uint64Var(&steps, "n", 0, "Maximum steps, 0 for unlimited")
	flag.StringVar(&output, "o", "-", "State dump output")
	flag.StringVar(&dump, "d", "", ".cbor snapshot of the final state")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected one program image, got: %v", os.Args[0], flag.Args())
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	// Flags given on the command line override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w":
			cfg.Word = word
		case "r":
			cfg.Registers = registers
		case "s":
			cfg.StackCapacity = stack
		case "m":
			cfg.MemorySize = memory
		case "n":
			cfg.MaxSteps = steps
		case "v":
			cfg.Verbose = verbose
		}
	})

	name := flag.Arg(0)
	var image io.Reader
	if name == "-" {
		image = os.Stdin
	} else {
		inf, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		defer inf.Close()
		image = inf
	}

	var out io.Writer
	if output == "-" {
		out = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		out = ouf
	}

	var snap io.Writer
	if len(dump) != 0 {
		snf, err := os.Create(dump)
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
		defer snf.Close()
		snap = snf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	count, err := emulator.RunImage(ctx, cfg, name, image, out, snap)
	if err != nil {
		log.Fatalf("%v (after %d steps)", err, count)
	}

	if cfg.Verbose {
		log.Printf("%v: %d steps", name, count)
	}
}

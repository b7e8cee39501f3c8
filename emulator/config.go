package emulator

import (
	"errors"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/forge/vm"
)

const (
	DEFAULT_WORD           = "i32"
	DEFAULT_STACK_CAPACITY = 1024 // Words.
	DEFAULT_MEMORY_SIZE    = 1024 // Bytes.
)

// Config is the machine configuration, usually read from a machine.toml.
type Config struct {
	Word          string `toml:"word"`           // Word type name, see Words().
	Registers     int    `toml:"registers"`      // Register file size.
	StackCapacity int    `toml:"stack_capacity"` // Stack capacity in words.
	MemorySize    int    `toml:"memory_size"`    // Memory size in bytes.
	MaxSteps      uint64 `toml:"max_steps"`      // Instruction budget, zero for unlimited.
	Verbose       bool   `toml:"verbose"`        // Log every instruction.
}

// DefaultConfig returns the configuration of the reference machine.
func DefaultConfig() Config {
	return Config{
		Word:          DEFAULT_WORD,
		Registers:     vm.REGISTER_COUNT,
		StackCapacity: DEFAULT_STACK_CAPACITY,
		MemorySize:    DEFAULT_MEMORY_SIZE,
	}
}

// ParseConfig decodes TOML text over the default configuration.
func ParseConfig(text string) (cfg Config, err error) {
	cfg = DefaultConfig()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return
	}

	err = checkConfig(md, cfg)
	return
}

// LoadConfig reads a TOML configuration file over the default configuration.
func LoadConfig(path string) (cfg Config, err error) {
	cfg = DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return
	}

	err = checkConfig(md, cfg)
	return
}

func checkConfig(md toml.MetaData, cfg Config) error {
	var errs []error
	for _, key := range md.Undecoded() {
		errs = append(errs, ErrConfigKey(key.String()))
	}
	errs = append(errs, cfg.Validate())
	return errors.Join(errs...)
}

// Validate checks that the configuration describes a buildable machine.
func (cfg Config) Validate() error {
	var errs []error

	if !slices.Contains(Words(), cfg.Word) {
		errs = append(errs, ErrConfigValue{Key: "word", Value: cfg.Word})
	}
	if cfg.Registers < 1 || cfg.Registers > vm.REGISTER_LIMIT {
		errs = append(errs, ErrConfigValue{Key: "registers", Value: cfg.Registers})
	}
	if cfg.StackCapacity < 0 {
		errs = append(errs, ErrConfigValue{Key: "stack_capacity", Value: cfg.StackCapacity})
	}
	if cfg.MemorySize < 0 {
		errs = append(errs, ErrConfigValue{Key: "memory_size", Value: cfg.MemorySize})
	}

	return errors.Join(errs...)
}

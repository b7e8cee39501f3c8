package emulator

import (
	"errors"

	"github.com/ezrec/forge/translate"
)

var f = translate.From

var (
	ErrConfig = errors.New(f("invalid configuration"))
)

// ErrRuntime names the program image in which a runtime error occurred.
type ErrRuntime struct {
	Name string
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfigKey is a configuration key that is not understood.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("unknown configuration key '%v'", string(err))
}

func (err ErrConfigKey) Unwrap() error {
	return ErrConfig
}

// ErrConfigValue is an out of range configuration value.
type ErrConfigValue struct {
	Key   string
	Value any
}

func (err ErrConfigValue) Error() string {
	return f("configuration %v = %v is invalid", err.Key, err.Value)
}

func (err ErrConfigValue) Unwrap() error {
	return ErrConfig
}

package vm

import (
	"slices"
)

// Stack is a fixed capacity LIFO of words. It holds both data pushed by
// the program and the return addresses of CALL.
type Stack[T Word] struct {
	data     []T
	capacity int
}

// NewStack creates an empty stack holding at most capacity words.
func NewStack[T Word](capacity int) *Stack[T] {
	return &Stack[T]{
		data:     make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Push a value, failing with ErrStackOverflow if the stack is full.
func (s *Stack[T]) Push(value T) error {
	if s.Full() {
		return ErrStackOverflow
	}

	s.data = append(s.data, value)
	return nil
}

// Pop a value, failing with ErrStackUnderflow if the stack is empty.
func (s *Stack[T]) Pop() (value T, err error) {
	value, err = s.Peek()
	if err == nil {
		s.data = s.data[:len(s.data)-1]
	}
	return
}

// Peek returns the top of the stack without removing it.
func (s *Stack[T]) Peek() (value T, err error) {
	if s.Empty() {
		err = ErrStackUnderflow
		return
	}

	return s.data[len(s.data)-1], nil
}

func (s *Stack[T]) Len() int {
	return len(s.data)
}

func (s *Stack[T]) Cap() int {
	return s.capacity
}

func (s *Stack[T]) Empty() bool {
	return len(s.data) == 0
}

func (s *Stack[T]) Full() bool {
	return len(s.data) >= s.capacity
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Values() []T {
	return slices.Clone(s.data)
}

func (s *Stack[T]) Reset() {
	if len(s.data) > 0 {
		s.data = s.data[:0]
	}
}

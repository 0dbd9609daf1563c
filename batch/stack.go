package batch

import "github.com/emirpasic/gods/stacks/arraystack"

// stack is a typed view over a gods array stack.
type stack[T any] struct {
	s *arraystack.Stack
}

func newStack[T any]() stack[T] {
	return stack[T]{s: arraystack.New()}
}

func (s stack[T]) push(v T) { s.s.Push(v) }

func (s stack[T]) pop() (T, bool) {
	v, ok := s.s.Pop()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func (s stack[T]) len() int { return s.s.Size() }

func (s stack[T]) clear() { s.s.Clear() }

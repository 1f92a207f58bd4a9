package util

// Stack is a LIFO of screens or anything else. Pop and Peek on an empty
// stack return the zero value.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() T {
	top := s.Peek()
	if n := len(s.items); n > 0 {
		s.items = s.items[:n-1]
	}
	return top
}

func (s *Stack[T]) Peek() (top T) {
	if n := len(s.items); n > 0 {
		top = s.items[n-1]
	}
	return top
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Clear() {
	s.items = nil
}

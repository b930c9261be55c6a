package minimax

import "fmt"

// searchResult carries one recursive call's answer up to its parent:
// the backed-up value, and the move achieving it when at least one
// candidate was evaluated at that node. Leaves (depth limit, decided
// positions, immediate cutoffs) report a value only.
type searchResult[T any] struct {
	value      float32
	transition *T
}

func (r searchResult[T]) String() string {
	if r.transition == nil {
		return fmt.Sprintf("<val: %v (leaf)>", r.value)
	}
	return fmt.Sprintf("<val: %v move: %v>", r.value, *r.transition)
}

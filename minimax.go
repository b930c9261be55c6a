// Package minimax implements depth-limited minimax search with
// alpha-beta pruning, generic over caller-supplied state and move
// types. The caller owns the game representation entirely; the
// solver only ever sees it through the Hooks bundle.
package minimax

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	// Infinity is 10 million. Alpha and beta start here; no real
	// evaluation should ever reach it.
	Infinity = float32(10000000)
	// WinValue and LossValue are backed up for positions the terminal
	// hook reports as decided. They sit one inside the starting
	// alpha/beta bounds so a forced result can never be equal to an
	// untouched bound and slip past the pruning comparison.
	WinValue  = Infinity - 1
	LossValue = -Infinity + 1
)

// ErrNoTransitions is returned when the Transitions hook produces no
// moves for a position the Terminal hook reported as still in play.
// That is a caller contract violation: games with genuine no-move end
// states must report them through the terminal hook instead.
var ErrNoTransitions = errors.New("no transitions for non-terminal position")

// Hooks bundles the five callbacks the solver needs. All of them are
// required. S is the caller's mutable state type (normally a pointer)
// and T its move type; the solver never inspects values of either.
type Hooks[S any, T any] struct {
	// Transitions enumerates the legal moves from state for the side
	// indicated. It must return at least one move whenever Terminal
	// reports the position as undecided.
	Transitions func(state S, maximizing bool) []T
	// Apply mutates state in place to make the move.
	Apply func(state S, t T)
	// Undo exactly reverses the most recent matching Apply. The solver
	// pairs every Apply with one Undo, including on pruned branches.
	Undo func(state S, t T)
	// Evaluate statically scores an undecided position reached at the
	// depth limit. Higher is better for the maximizing side.
	Evaluate func(state S) float32
	// Terminal is sign-coded: negative means the position is lost for
	// the maximizing side, positive won, zero still in play. It is
	// consulted at every node before move generation.
	Terminal func(state S) float32
}

// Solver implements the minimax + alphabeta algorithm.
type Solver[S any, T any] struct {
	hooks Hooks[S, T]
	rng   *frand.RNG

	disablePruning bool
	totalNodes     int
	cutoffs        int
}

func NewSolver[S any, T any](hooks Hooks[S, T]) *Solver[S, T] {
	return &Solver[S, T]{
		hooks: hooks,
		rng:   frand.New(),
	}
}

// SetRNG replaces the tie-breaking randomness source. Hand it a seeded
// generator (frand.NewCustom) for reproducible move selection.
func (s *Solver[S, T]) SetRNG(rng *frand.RNG) {
	s.rng = rng
}

// SetPruningDisabled turns the solver into a full-width minimax
// search. The chosen move and value must not change, only the number
// of nodes visited.
func (s *Solver[S, T]) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// Nodes reports how many nodes the last Solve expanded.
func (s *Solver[S, T]) Nodes() int {
	return s.totalNodes
}

// Cutoffs reports how many sibling lists the last Solve abandoned
// early because of pruning.
func (s *Solver[S, T]) Cutoffs() int {
	return s.cutoffs
}

// Solve searches from state to at most maxDepth plies and returns the
// backed-up value together with the best move for the maximizing
// side, whose turn it is at the root. The move is nil when there is
// nothing to report: maxDepth is 0 or the root is already decided.
// When several moves tie for best, one is picked uniformly at random.
//
// state is mutated during the search but is restored to its pre-call
// value before Solve returns.
func (s *Solver[S, T]) Solve(state S, maxDepth int) (float32, *T, error) {
	log.Debug().Int("max-depth", maxDepth).
		Bool("pruning-disabled", s.disablePruning).
		Msg("minimax-solve-config")
	tstart := time.Now()
	s.totalNodes = 0
	s.cutoffs = 0

	res, err := s.alphabeta(state, 0, maxDepth, true, -Infinity, Infinity)
	if err != nil {
		return 0, nil, err
	}
	log.Info().
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Int("nodes", s.totalNodes).
		Int("cutoffs", s.cutoffs).
		Str("result", res.String()).
		Msg("solve-returning")
	return res.value, res.transition, nil
}

func (s *Solver[S, T]) alphabeta(state S, depth, maxDepth int,
	maximizing bool, α, β float32) (searchResult[T], error) {

	s.totalNodes++

	if depth == maxDepth {
		return searchResult[T]{value: s.hooks.Evaluate(state)}, nil
	}
	// The terminal check runs at every remaining depth, including a
	// root with plies still available; a won game stays won no matter
	// how much lookahead is left.
	if t := s.hooks.Terminal(state); t < 0 {
		return searchResult[T]{value: LossValue}, nil
	} else if t > 0 {
		return searchResult[T]{value: WinValue}, nil
	}

	transitions := s.hooks.Transitions(state, maximizing)
	if len(transitions) == 0 {
		return searchResult[T]{}, fmt.Errorf(
			"%w: depth %d, state %+v", ErrNoTransitions, depth, state)
	}

	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	var bestSet []T

	for _, t := range transitions {
		// Checked before the apply so pruned siblings are never
		// played or unplayed at all.
		if !s.disablePruning && α > β {
			s.cutoffs++
			break
		}
		s.hooks.Apply(state, t)
		child, err := s.alphabeta(state, depth+1, maxDepth, !maximizing, α, β)
		if err != nil {
			s.hooks.Undo(state, t)
			return searchResult[T]{}, err
		}
		if child.value == best {
			bestSet = append(bestSet, t)
		} else if (maximizing && child.value > best) ||
			(!maximizing && child.value < best) {
			best = child.value
			bestSet = []T{t}
			if maximizing {
				α = max(α, best)
			} else {
				β = min(β, best)
			}
		}
		s.hooks.Undo(state, t)
	}

	// bestSet can only be empty if the loop cut off before evaluating
	// a single move.
	if len(bestSet) == 0 {
		return searchResult[T]{value: best}, nil
	}
	pick := bestSet[s.rng.Intn(len(bestSet))]
	return searchResult[T]{value: best, transition: &pick}, nil
}

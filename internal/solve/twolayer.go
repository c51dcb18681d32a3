// Package solve runs the scripted two-layer demonstration.
//
// The script walks the cube towards the solved state one visible step at
// a time and then resets to the reference unconditionally, so the end
// state never depends on the intermediate steps.
package solve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/state"
)

var (
	// ErrPrecondition is returned when the selection does not hold
	// exactly two horizontal layers.
	ErrPrecondition = errors.New("solve: select exactly two layers to solve")
	// ErrAlreadySolved is returned when there is nothing to demonstrate.
	ErrAlreadySolved = errors.New("solve: cube is already solved")
)

// StepKind names a visible step of the script.
type StepKind int

const (
	StepToHolding StepKind = iota
	StepSwap
	StepPlace
	StepNormalize
	StepReorder
	StepReturn
	StepReset
)

func (k StepKind) String() string {
	switch k {
	case StepToHolding:
		return "to-holding"
	case StepSwap:
		return "swap"
	case StepPlace:
		return "place"
	case StepNormalize:
		return "normalize"
	case StepReorder:
		return "reorder"
	case StepReturn:
		return "return"
	case StepReset:
		return "reset"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step describes one mutation. Moves is what the step adds to the demo
// move counter.
type Step struct {
	Kind  StepKind
	Cubie cube.ID
	Moves int
}

// Runner applies steps to the shared store. Mutate must run fn with
// exclusive access and publish the result before returning.
type Runner interface {
	Read(fn func(s *state.Store))
	Mutate(st Step, fn func(s *state.Store) error) error
	Pause(ctx context.Context, d time.Duration) error
}

// Timing controls the pauses between steps.
type Timing struct {
	Step   time.Duration
	Settle time.Duration
}

// DefaultTiming matches the interactive pacing.
var DefaultTiming = Timing{Step: 100 * time.Millisecond, Settle: 300 * time.Millisecond}

// Inactive returns the horizontal layer missing from sel. sel must hold
// exactly two layers, both horizontal.
func Inactive(sel layer.Selection) (layer.Key, error) {
	if sel.Len() != 2 || sel.Contains(layer.Holding) {
		return "", fmt.Errorf("%w: have %q", ErrPrecondition, sel.String())
	}
	var missing []layer.Key
	for _, k := range layer.Horizontal {
		if !sel.Contains(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) != 1 {
		return "", fmt.Errorf("%w: have %q", ErrPrecondition, sel.String())
	}
	return missing[0], nil
}

// TwoLayer runs the demonstration and returns the number of demo moves
// it made. The final reset always runs once the script has started, even
// if a step fails.
func TwoLayer(ctx context.Context, r Runner, sel layer.Selection, t Timing) (moves int, err error) {
	inactive, err := Inactive(sel)
	if err != nil {
		return 0, err
	}
	var solved bool
	r.Read(func(s *state.Store) { solved = s.IsSolved() })
	if solved {
		return 0, ErrAlreadySolved
	}

	y, _ := inactive.Y()
	step := func(st Step, fn func(s *state.Store) error, pause time.Duration) error {
		if err := r.Mutate(st, fn); err != nil {
			return fmt.Errorf("%s %s: %w", st.Kind, st.Cubie, err)
		}
		moves += st.Moves
		return r.Pause(ctx, pause)
	}

	defer func() {
		rerr := r.Mutate(Step{Kind: StepReset}, func(s *state.Store) error {
			s.Reset()
			return nil
		})
		err = errors.Join(err, rerr)
	}()

	// Empty the inactive layer into the holding area.
	var lifted []cube.ID
	r.Read(func(s *state.Store) {
		for _, c := range s.InCube() {
			if c.Position.Y == y {
				lifted = append(lifted, c.ID)
			}
		}
	})
	for _, id := range lifted {
		id := id
		if err := step(Step{Kind: StepToHolding, Cubie: id, Moves: 1}, func(s *state.Store) error {
			return s.MoveToHolding(id)
		}, t.Step); err != nil {
			return moves, err
		}
	}

	// Put every active-layer cubie at home with reference colors.
	var active, rest []cube.Cubie
	for _, ref := range cube.Reference() {
		if ref.Position.Y == y {
			rest = append(rest, ref)
		} else {
			active = append(active, ref)
		}
	}
	for _, ref := range active {
		ref := ref
		var occupant cube.Cubie
		var occupied bool
		var current cube.Cubie
		r.Read(func(s *state.Store) {
			occupant, occupied = s.At(ref.Position)
			current, _ = s.Cubie(ref.ID)
		})
		switch {
		case occupied && occupant.ID != ref.ID:
			if err := step(Step{Kind: StepSwap, Cubie: ref.ID, Moves: 1}, func(s *state.Store) error {
				return s.Swap(ref.ID, occupant.ID)
			}, t.Step); err != nil {
				return moves, err
			}
		case !occupied && !current.Placed:
			if err := step(Step{Kind: StepPlace, Cubie: ref.ID, Moves: 1}, func(s *state.Store) error {
				return s.MoveFromHolding(ref.ID, ref.Position)
			}, t.Step); err != nil {
				return moves, err
			}
		}
		if err := r.Mutate(Step{Kind: StepNormalize, Cubie: ref.ID}, func(s *state.Store) error {
			return s.SetColors(ref.ID, ref.Colors)
		}); err != nil {
			return moves, fmt.Errorf("normalize %s: %w", ref.ID, err)
		}
	}
	if err := r.Pause(ctx, t.Settle); err != nil {
		return moves, err
	}

	// Sort the holding area: inactive-layer cubies first in reference
	// order, anything else after in its current order.
	var order []cube.ID
	var sorted int
	r.Read(func(s *state.Store) {
		inHolding := map[cube.ID]bool{}
		for _, c := range s.Holding() {
			inHolding[c.ID] = true
		}
		for _, ref := range rest {
			if inHolding[ref.ID] {
				order = append(order, ref.ID)
				delete(inHolding, ref.ID)
			}
		}
		sorted = len(order)
		for _, c := range s.Holding() {
			if inHolding[c.ID] {
				order = append(order, c.ID)
			}
		}
	})
	if err := step(Step{Kind: StepReorder, Moves: sorted}, func(s *state.Store) error {
		for _, id := range order[:sorted] {
			ref, _ := cube.Solved(id)
			if err := s.SetColors(id, ref.Colors); err != nil {
				return err
			}
		}
		return s.ReorderHolding(order)
	}, t.Settle); err != nil {
		return moves, err
	}

	// Return the inactive layer to its reference positions.
	for _, ref := range rest {
		ref := ref
		var placed bool
		r.Read(func(s *state.Store) {
			c, _ := s.Cubie(ref.ID)
			placed = c.Placed
		})
		if placed {
			continue
		}
		if err := step(Step{Kind: StepReturn, Cubie: ref.ID, Moves: 1}, func(s *state.Store) error {
			return s.MoveFromHolding(ref.ID, ref.Position)
		}, t.Step); err != nil {
			return moves, err
		}
	}
	return moves, nil
}

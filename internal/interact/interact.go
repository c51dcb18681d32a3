// Package interact implements the drag-and-drop state machine used to
// swap cubies between the 2D views.
package interact

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/state"
)

var (
	// ErrInvalidSwap is returned when the source and target views may
	// not exchange cubies under the current selection.
	ErrInvalidSwap = errors.New("interact: swap not permitted")
	// ErrNotDragging is returned by Release when no drag is active.
	ErrNotDragging = errors.New("interact: no drag in progress")
	// ErrAlreadyDragging is returned by Begin while a drag is active.
	ErrAlreadyDragging = errors.New("interact: drag already in progress")
	// ErrNotInLayer is returned when a drag starts on a cubie that is not
	// shown in the source view.
	ErrNotInLayer = errors.New("interact: cubie is not in the source layer")
)

// Phase is the state of the drag machine.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Drag is the cubie being carried and the view it was picked from.
type Drag struct {
	ID     cube.ID
	Source layer.Key
}

// Action is what a drop resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionSwap
	ActionToHolding
)

func (a Action) String() string {
	switch a {
	case ActionSwap:
		return "swap"
	case ActionToHolding:
		return "to-holding"
	default:
		return "none"
	}
}

// Target is where a drag was released. Onto is empty for a drop on an
// empty cell or empty holding space.
type Target struct {
	Layer layer.Key
	Onto  cube.ID
}

// Plan is a resolved drop, ready to execute.
type Plan struct {
	Action Action
	Drag   Drag
	Target Target
}

// IsValidSwap reports whether cubies may move between source and target
// under sel.
func IsValidSwap(sel layer.Selection, source, target layer.Key) bool {
	switch {
	case source == target:
		return true
	case source == layer.Holding:
		return sel.Contains(target)
	case target == layer.Holding:
		return sel.Contains(source)
	default:
		return sel.Contains(source) && sel.Contains(target)
	}
}

// Resolve works out what releasing d over t does. It never mutates.
func Resolve(sel layer.Selection, d Drag, t Target) (Plan, error) {
	p := Plan{Drag: d, Target: t}
	if !IsValidSwap(sel, d.Source, t.Layer) {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidSwap, d.Source, t.Layer)
	}
	switch {
	case t.Onto != "":
		if t.Onto != d.ID {
			p.Action = ActionSwap
		}
	case t.Layer == layer.Holding && d.Source != layer.Holding:
		p.Action = ActionToHolding
	}
	return p, nil
}

// Execute applies p to s.
func Execute(s *state.Store, p Plan) error {
	switch p.Action {
	case ActionSwap:
		return s.Swap(p.Drag.ID, p.Target.Onto)
	case ActionToHolding:
		return s.MoveToHolding(p.Drag.ID)
	default:
		return nil
	}
}

// Engine tracks a single drag at a time. It is not safe for concurrent
// use; the session serialises access.
type Engine struct {
	phase Phase
	drag  Drag
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Current returns the active drag.
func (e *Engine) Current() (Drag, bool) {
	return e.drag, e.phase == Dragging
}

// Begin picks id up from the view from.
func (e *Engine) Begin(src layer.Source, id cube.ID, from layer.Key) error {
	if e.phase == Dragging {
		return ErrAlreadyDragging
	}
	if !layer.Project(src, from).Contains(id) {
		return fmt.Errorf("%w: %s in %s", ErrNotInLayer, id, from)
	}
	e.phase = Dragging
	e.drag = Drag{ID: id, Source: from}
	return nil
}

// Release ends the drag and returns what was carried. The machine is
// Idle afterwards whatever the drop resolves to.
func (e *Engine) Release() (Drag, error) {
	if e.phase != Dragging {
		return Drag{}, ErrNotDragging
	}
	d := e.drag
	e.Cancel()
	return d, nil
}

// Cancel abandons the drag.
func (e *Engine) Cancel() {
	e.phase = Idle
	e.drag = Drag{}
}

// Drop releases the drag over t and applies the result to s.
func (e *Engine) Drop(s *state.Store, sel layer.Selection, t Target) (Plan, error) {
	d, err := e.Release()
	if err != nil {
		return Plan{}, err
	}
	p, err := Resolve(sel, d, t)
	if err != nil {
		return p, err
	}
	return p, Execute(s, p)
}

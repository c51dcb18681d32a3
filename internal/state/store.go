// Package state holds the cube state: the in-cube cubies keyed by
// position and the ordered holding area.
package state

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

// Sentinel errors for store operations. A failing operation never
// changes the store.
var (
	ErrUnknownCubie    = errors.New("state: unknown cubie")
	ErrNotInCube       = errors.New("state: cubie is not in the cube")
	ErrNotInHolding    = errors.New("state: cubie is not in the holding area")
	ErrOccupied        = errors.New("state: position is occupied")
	ErrInvalidPosition = errors.New("state: invalid position")
	ErrCollision       = errors.New("state: permutation collides")
	ErrInvariant       = errors.New("state: invariant violated")
)

// Store owns all 26 cubies. Each cubie is either placed in the grid or
// listed in the holding sequence, never both.
type Store struct {
	cubies  map[cube.ID]*cube.Cubie
	grid    map[cube.Position]cube.ID
	holding []cube.ID
}

// New creates a store in the solved state.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset replaces the whole state with a fresh copy of the reference.
func (s *Store) Reset() {
	s.cubies = make(map[cube.ID]*cube.Cubie, len(cube.IDs))
	s.grid = make(map[cube.Position]cube.ID, len(cube.IDs))
	s.holding = nil
	for _, c := range cube.Reference() {
		c := c
		s.cubies[c.ID] = &c
		s.grid[c.Position] = c.ID
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{
		cubies:  make(map[cube.ID]*cube.Cubie, len(s.cubies)),
		grid:    make(map[cube.Position]cube.ID, len(s.grid)),
		holding: append([]cube.ID(nil), s.holding...),
	}
	for id, c := range s.cubies {
		cp := *c
		out.cubies[id] = &cp
	}
	for p, id := range s.grid {
		out.grid[p] = id
	}
	return out
}

// Cubie returns a copy of the cubie with the given id.
func (s *Store) Cubie(id cube.ID) (cube.Cubie, bool) {
	c, ok := s.cubies[id]
	if !ok {
		return cube.Cubie{}, false
	}
	return *c, true
}

// At returns the cubie occupying p.
func (s *Store) At(p cube.Position) (cube.Cubie, bool) {
	id, ok := s.grid[p]
	if !ok {
		return cube.Cubie{}, false
	}
	return *s.cubies[id], true
}

// InCube returns copies of the placed cubies in reference id order.
func (s *Store) InCube() []cube.Cubie {
	out := make([]cube.Cubie, 0, len(s.grid))
	for _, id := range s.grid {
		out = append(out, *s.cubies[id])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Index() < out[j].ID.Index()
	})
	return out
}

// Holding returns copies of the holding-area cubies in sequence order.
func (s *Store) Holding() []cube.Cubie {
	out := make([]cube.Cubie, len(s.holding))
	for i, id := range s.holding {
		out[i] = *s.cubies[id]
	}
	return out
}

// HoldingLen returns the number of cubies in the holding area.
func (s *Store) HoldingLen() int {
	return len(s.holding)
}

// MoveToHolding takes a placed cubie out of the cube and appends it to
// the holding area.
func (s *Store) MoveToHolding(id cube.ID) error {
	c, ok := s.cubies[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCubie, id)
	}
	if !c.Placed {
		return fmt.Errorf("%w: %s", ErrNotInCube, id)
	}
	delete(s.grid, c.Position)
	c.Position = cube.Position{}
	c.Placed = false
	s.holding = append(s.holding, id)
	return nil
}

// MoveFromHolding places a holding-area cubie at an empty position.
func (s *Store) MoveFromHolding(id cube.ID, p cube.Position) error {
	c, ok := s.cubies[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCubie, id)
	}
	if c.Placed {
		return fmt.Errorf("%w: %s", ErrNotInHolding, id)
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	if other, taken := s.grid[p]; taken {
		return fmt.Errorf("%w: %v by %s", ErrOccupied, p, other)
	}
	s.holding = removeID(s.holding, id)
	c.Position = p
	c.Placed = true
	s.grid[p] = id
	return nil
}

// Swap exchanges two cubies. Two placed cubies trade positions; a placed
// and a held cubie trade membership, the held one taking the vacated
// position and the placed one taking the held one's slot. Two held
// cubies trade slots in the holding sequence.
func (s *Store) Swap(a, b cube.ID) error {
	ca, ok := s.cubies[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCubie, a)
	}
	cb, ok := s.cubies[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCubie, b)
	}
	if a == b {
		return nil
	}

	switch {
	case ca.Placed && cb.Placed:
		ca.Position, cb.Position = cb.Position, ca.Position
		s.grid[ca.Position] = a
		s.grid[cb.Position] = b
	case ca.Placed != cb.Placed:
		in, out := ca, cb
		if !ca.Placed {
			in, out = cb, ca
		}
		slot := indexOf(s.holding, out.ID)
		s.holding[slot] = in.ID
		out.Position, out.Placed = in.Position, true
		in.Position, in.Placed = cube.Position{}, false
		s.grid[out.Position] = out.ID
	default:
		i, j := indexOf(s.holding, a), indexOf(s.holding, b)
		s.holding[i], s.holding[j] = s.holding[j], s.holding[i]
	}
	return nil
}

// ApplyPermutation moves the cubies at the keys of mapping to the
// corresponding values in one step. transform, if non-nil, rewrites each
// moved cubie (colors, orientation); its ID and position changes are
// ignored. Either every cubie moves or none does.
func (s *Store) ApplyPermutation(mapping map[cube.Position]cube.Position, transform func(cube.Cubie) cube.Cubie) error {
	next := make(map[cube.Position]cube.ID, len(s.grid))
	for p, id := range s.grid {
		if _, moving := mapping[p]; !moving {
			next[p] = id
		}
	}

	moved := make(map[cube.ID]cube.Cubie, len(mapping))
	for from, to := range mapping {
		id, ok := s.grid[from]
		if !ok {
			return fmt.Errorf("%w: nothing at %v", ErrNotInCube, from)
		}
		if !to.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidPosition, to)
		}
		if other, taken := next[to]; taken {
			return fmt.Errorf("%w: %s and %s at %v", ErrCollision, id, other, to)
		}
		next[to] = id

		c := *s.cubies[id]
		if transform != nil {
			t := transform(c)
			c.Colors = t.Colors
			c.Orientation = t.Orientation
		}
		c.Position = to
		moved[id] = c
	}

	for id, c := range moved {
		*s.cubies[id] = c
	}
	s.grid = next
	return nil
}

// SetColors overwrites a cubie's colors and resets its orientation.
func (s *Store) SetColors(id cube.ID, colors cube.Colors) error {
	c, ok := s.cubies[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCubie, id)
	}
	c.Colors = colors
	c.Orientation = cube.Identity
	return nil
}

// ReorderHolding rearranges the holding sequence. order must list exactly
// the cubies currently held.
func (s *Store) ReorderHolding(order []cube.ID) error {
	if len(order) != len(s.holding) {
		return fmt.Errorf("%w: reorder has %d ids, holding has %d", ErrInvariant, len(order), len(s.holding))
	}
	seen := make(map[cube.ID]bool, len(order))
	for _, id := range order {
		c, ok := s.cubies[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCubie, id)
		}
		if c.Placed || seen[id] {
			return fmt.Errorf("%w: %s", ErrNotInHolding, id)
		}
		seen[id] = true
	}
	s.holding = append(s.holding[:0:0], order...)
	return nil
}

// Check verifies the store invariants.
func (s *Store) Check() error {
	if len(s.cubies) != len(cube.IDs) {
		return fmt.Errorf("%w: %d cubies", ErrInvariant, len(s.cubies))
	}
	if len(s.grid)+len(s.holding) != len(cube.IDs) {
		return fmt.Errorf("%w: %d placed + %d held", ErrInvariant, len(s.grid), len(s.holding))
	}
	for p, id := range s.grid {
		c := s.cubies[id]
		if c == nil || !c.Placed || c.Position != p || !p.Valid() {
			return fmt.Errorf("%w: grid %v -> %s", ErrInvariant, p, id)
		}
	}
	seen := make(map[cube.ID]bool, len(s.holding))
	for _, id := range s.holding {
		c := s.cubies[id]
		if c == nil || c.Placed || seen[id] {
			return fmt.Errorf("%w: holding %s", ErrInvariant, id)
		}
		seen[id] = true
	}
	return nil
}

// IsSolved reports whether every cubie sits at its reference position
// showing its reference colors. Orientation is ignored.
func (s *Store) IsSolved() bool {
	if len(s.holding) > 0 {
		return false
	}
	for _, ref := range cube.Reference() {
		c := s.cubies[ref.ID]
		if !c.Placed || c.Position != ref.Position || c.Colors != ref.Colors {
			return false
		}
	}
	return true
}

// Equal compares two stores cubie by cubie, independent of internal
// ordering. Holding order is compared too.
func (s *Store) Equal(o *Store) bool {
	if len(s.holding) != len(o.holding) {
		return false
	}
	for i := range s.holding {
		if s.holding[i] != o.holding[i] {
			return false
		}
	}
	for id, c := range s.cubies {
		oc, ok := o.cubies[id]
		if !ok || c.Placed != oc.Placed || c.Colors != oc.Colors {
			return false
		}
		if c.Placed && c.Position != oc.Position {
			return false
		}
	}
	return true
}

func indexOf(ids []cube.ID, id cube.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []cube.ID, id cube.ID) []cube.ID {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i:i], ids[i+1:]...)
}

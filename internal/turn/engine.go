package turn

import (
	"fmt"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/state"
)

// Select returns the placed cubies in the slice turned by m.
func Select(s *state.Store, m Move) []cube.Cubie {
	var out []cube.Cubie
	for _, c := range s.InCube() {
		if c.Position.Coord(m.Axis) == m.Layer {
			out = append(out, c)
		}
	}
	return out
}

// Plan returns the position mapping of m over the currently placed cubies.
func Plan(s *state.Store, m Move) map[cube.Position]cube.Position {
	selected := Select(s, m)
	mapping := make(map[cube.Position]cube.Position, len(selected))
	for _, c := range selected {
		mapping[c.Position] = c.Position.Rotate(m.Axis, m.Dir)
	}
	return mapping
}

// Apply turns the slice named by m and returns how many cubies moved.
// An empty slice is a no-op.
func Apply(s *state.Store, m Move) (int, error) {
	if m.Layer < -1 || m.Layer > 1 || (m.Dir != cube.Positive && m.Dir != cube.Negative) {
		return 0, fmt.Errorf("turn: invalid move %v", m)
	}
	mapping := Plan(s, m)
	if len(mapping) == 0 {
		return 0, nil
	}
	err := s.ApplyPermutation(mapping, func(c cube.Cubie) cube.Cubie {
		c.Colors = cube.Relabel(c.Colors, m.Axis, m.Dir)
		c.Orientation = c.Orientation.Turn(m.Axis, m.Dir)
		return c
	})
	if err != nil {
		return 0, fmt.Errorf("turn %v: %w", m, err)
	}
	return len(mapping), nil
}

// ApplyToken turns the slice named by t.
func ApplyToken(s *state.Store, t Token) (int, error) {
	m, ok := t.Move()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownToken, t.String())
	}
	return Apply(s, m)
}

// ApplySequence applies tokens in order, stopping at the first error.
func ApplySequence(s *state.Store, ts []Token) error {
	for _, t := range ts {
		if _, err := ApplyToken(s, t); err != nil {
			return err
		}
	}
	return nil
}

// Package layer derives the 2D views of the cube: one grid per
// horizontal slice and a strip for the holding area.
package layer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

// ErrUnknownLayer is returned when a layer name is not one of the four views.
var ErrUnknownLayer = errors.New("layer: unknown layer")

// Key names a 2D view.
type Key string

const (
	Top     Key = "top"
	Mid     Key = "mid"
	Bottom  Key = "bot"
	Holding Key = "bay"
)

// Keys lists the views in display order.
var Keys = []Key{Top, Mid, Bottom, Holding}

// Horizontal lists the three cube slices from top to bottom.
var Horizontal = []Key{Top, Mid, Bottom}

// Y returns the y-coordinate of a horizontal slice.
func (k Key) Y() (int, bool) {
	switch k {
	case Top:
		return 1, true
	case Mid:
		return 0, true
	case Bottom:
		return -1, true
	default:
		return 0, false
	}
}

// Valid reports whether k names a view.
func (k Key) Valid() bool {
	return k == Holding || k.isHorizontal()
}

func (k Key) isHorizontal() bool {
	_, ok := k.Y()
	return ok
}

// ForY returns the slice at y.
func ForY(y int) (Key, bool) {
	for _, k := range Horizontal {
		if ky, _ := k.Y(); ky == y {
			return k, true
		}
	}
	return "", false
}

// Of returns the view a cubie currently appears in.
func Of(c cube.Cubie) Key {
	if !c.Placed {
		return Holding
	}
	k, _ := ForY(c.Position.Y)
	return k
}

// ParseKey parses a view name. "bottom" and "holding" are accepted as
// aliases.
func ParseKey(s string) (Key, error) {
	switch k := Key(strings.ToLower(strings.TrimSpace(s))); k {
	case Top, Mid, Bottom, Holding:
		return k, nil
	case "bottom":
		return Bottom, nil
	case "holding", "hold":
		return Holding, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
	}
}

// Selection is the set of layers the user has made active.
type Selection struct {
	keys []Key
}

// NewSelection builds a selection, dropping duplicates and keeping
// display order.
func NewSelection(keys ...Key) (Selection, error) {
	seen := map[Key]bool{}
	for _, k := range keys {
		if !k.Valid() {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownLayer, string(k))
		}
		seen[k] = true
	}
	var out []Key
	for _, k := range Keys {
		if seen[k] {
			out = append(out, k)
		}
	}
	return Selection{keys: out}, nil
}

// Contains reports whether k is active.
func (s Selection) Contains(k Key) bool {
	for _, v := range s.keys {
		if v == k {
			return true
		}
	}
	return false
}

// Len returns the number of active layers.
func (s Selection) Len() int {
	return len(s.keys)
}

// Keys returns the active layers in display order.
func (s Selection) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

// Toggle returns a copy with k added or removed.
func (s Selection) Toggle(k Key) Selection {
	var keys []Key
	if s.Contains(k) {
		for _, v := range s.keys {
			if v != k {
				keys = append(keys, v)
			}
		}
	} else {
		keys = append(s.Keys(), k)
	}
	out, err := NewSelection(keys...)
	if err != nil {
		return s
	}
	return out
}

func (s Selection) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

// Spacing is the distance between neighbouring cubie centres in view
// units: cubie size plus gap.
const Spacing = 0.49 + 0.08

// Point is a 2D placement in view units.
type Point struct {
	X, Y float64
}

// Placement is one cubie in a view. Col and Row are grid cells: (x+1, z+1)
// for slices, the sequence index and 0 for the holding area.
type Placement struct {
	Cubie cube.Cubie
	Col   int
	Row   int
	Point Point
}

// Projection is the ordered content of one view.
type Projection struct {
	Key        Key
	Placements []Placement
}

// Source supplies the cube state to project.
type Source interface {
	InCube() []cube.Cubie
	Holding() []cube.Cubie
}

// Project computes the view k from src. It never mutates src.
func Project(src Source, k Key) Projection {
	p := Projection{Key: k}
	if k == Holding {
		held := src.Holding()
		mid := float64(len(held)-1) / 2
		for i, c := range held {
			p.Placements = append(p.Placements, Placement{
				Cubie: c,
				Col:   i,
				Point: Point{X: (float64(i) - mid) * Spacing},
			})
		}
		return p
	}

	y, ok := k.Y()
	if !ok {
		return p
	}
	for _, c := range src.InCube() {
		if c.Position.Y != y {
			continue
		}
		p.Placements = append(p.Placements, Placement{
			Cubie: c,
			Col:   c.Position.X + 1,
			Row:   c.Position.Z + 1,
			Point: Point{X: float64(c.Position.X) * Spacing, Y: float64(c.Position.Z) * Spacing},
		})
	}
	sort.Slice(p.Placements, func(i, j int) bool {
		a, b := p.Placements[i], p.Placements[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return p
}

// ProjectAll computes every view.
func ProjectAll(src Source) map[Key]Projection {
	out := make(map[Key]Projection, len(Keys))
	for _, k := range Keys {
		out[k] = Project(src, k)
	}
	return out
}

// At returns the cubie in cell (col, row).
func (p Projection) At(col, row int) (cube.Cubie, bool) {
	for _, pl := range p.Placements {
		if pl.Col == col && pl.Row == row {
			return pl.Cubie, true
		}
	}
	return cube.Cubie{}, false
}

// Contains reports whether id appears in the view.
func (p Projection) Contains(id cube.ID) bool {
	for _, pl := range p.Placements {
		if pl.Cubie.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of cubies shown.
func (p Projection) Len() int {
	return len(p.Placements)
}

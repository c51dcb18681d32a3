// Package cube provides the cubie model of a 3x3 Rubik's cube: piece
// identities, face colours, lattice positions and quarter-turn relabelling.
package cube

import "fmt"

// Color represents a sticker color. The zero value means the face shows
// no sticker.
type Color byte

const (
	NoColor Color = iota
	White         // Up face when solved
	Yellow        // Down face when solved
	Green         // Front face when solved
	Blue          // Back face when solved
	Red           // Right face when solved
	Orange        // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case NoColor:
		return "."
	default:
		return "?"
	}
}

// Face represents a cube face.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

// Faces lists every face in index order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// SolvedColor returns the color a face shows when the cube is solved.
func (f Face) SolvedColor() Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return NoColor
	}
}

// Normal returns the outward unit vector of the face.
func (f Face) Normal() Position {
	switch f {
	case U:
		return Position{Y: 1}
	case D:
		return Position{Y: -1}
	case F:
		return Position{Z: 1}
	case B:
		return Position{Z: -1}
	case R:
		return Position{X: 1}
	case L:
		return Position{X: -1}
	default:
		return Position{}
	}
}

// Colors maps each face of a cubie to the color it shows.
type Colors [6]Color

// Count returns the number of stickers.
func (c Colors) Count() int {
	n := 0
	for _, col := range c {
		if col != NoColor {
			n++
		}
	}
	return n
}

func (c Colors) String() string {
	s := "{"
	first := true
	for _, f := range Faces {
		if c[f] == NoColor {
			continue
		}
		if !first {
			s += " "
		}
		s += f.String() + ":" + c[f].String()
		first = false
	}
	return s + "}"
}

// Axis is one of the three principal axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Direction is the sign of a quarter turn: +1 is a positive right-handed
// rotation about the axis, -1 the opposite.
type Direction int

const (
	Positive Direction = 1
	Negative Direction = -1
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return -d
}

// Position is a lattice point of the 3x3x3 grid, each coordinate in {-1,0,1}.
type Position struct {
	X, Y, Z int
}

// Valid reports whether p is a cubie slot: inside the lattice and not the core.
func (p Position) Valid() bool {
	in := func(v int) bool { return v >= -1 && v <= 1 }
	return in(p.X) && in(p.Y) && in(p.Z) && p != Position{}
}

// Coord returns the coordinate along axis a.
func (p Position) Coord(a Axis) int {
	switch a {
	case X:
		return p.X
	case Y:
		return p.Y
	default:
		return p.Z
	}
}

// Rotate turns p a quarter turn about a in direction d.
func (p Position) Rotate(a Axis, d Direction) Position {
	s := int(d)
	switch a {
	case X:
		return Position{X: p.X, Y: -s * p.Z, Z: s * p.Y}
	case Y:
		return Position{X: s * p.Z, Y: p.Y, Z: -s * p.X}
	default:
		return Position{X: -s * p.Y, Y: s * p.X, Z: p.Z}
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Positions returns the 26 cubie slots in x, y, z order.
func Positions() []Position {
	out := make([]Position, 0, 26)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				p := Position{X: x, Y: y, Z: z}
				if p.Valid() {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// Cubie is a single cube piece.
// Placed is false while the cubie sits in the holding area, in which case
// Position is meaningless and kept at the zero value.
type Cubie struct {
	ID          ID
	Colors      Colors
	Position    Position
	Placed      bool
	Orientation Orientation
}

// Pos returns the cubie's position and whether it is in the cube.
func (c Cubie) Pos() (Position, bool) {
	return c.Position, c.Placed
}

func (c Cubie) String() string {
	if !c.Placed {
		return fmt.Sprintf("%s@bay%s", c.ID, c.Colors)
	}
	return fmt.Sprintf("%s@%s%s", c.ID, c.Position, c.Colors)
}

package render

import (
	"strings"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
)

// Net is the unfolded sticker layout, indexed by face then row*3+col.
// Rows and columns follow the usual unfolding: U above F with B at its
// top edge, D below F with F at its top edge, and L F R B left to right.
type Net [6][9]cube.Color

// NetOf builds the net from the placed cubies. Slots whose cubie is in
// the holding area stay NoColor.
func NetOf(src layer.Source) Net {
	var n Net
	for _, c := range src.InCube() {
		p := c.Position
		for _, f := range cube.Faces {
			col := c.Colors[f]
			if col == cube.NoColor {
				continue
			}
			row, column, ok := facelet(f, p)
			if !ok {
				continue
			}
			n[f][row*3+column] = col
		}
	}
	return n
}

func facelet(f cube.Face, p cube.Position) (row, col int, ok bool) {
	switch f {
	case cube.U:
		return p.Z + 1, p.X + 1, p.Y == 1
	case cube.D:
		return 1 - p.Z, p.X + 1, p.Y == -1
	case cube.F:
		return 1 - p.Y, p.X + 1, p.Z == 1
	case cube.B:
		return 1 - p.Y, 1 - p.X, p.Z == -1
	case cube.R:
		return 1 - p.Y, 1 - p.Z, p.X == 1
	case cube.L:
		return 1 - p.Y, p.Z + 1, p.X == -1
	}
	return 0, 0, false
}

// Face returns one face as rows of colors.
func (n Net) Face(f cube.Face) [3][3]cube.Color {
	var out [3][3]cube.Color
	for i, c := range n[f] {
		out[i/3][i%3] = c
	}
	return out
}

// Solved reports whether every face shows one color with no gaps.
func (n Net) Solved() bool {
	for _, f := range cube.Faces {
		for _, c := range n[f] {
			if c != f.SolvedColor() {
				return false
			}
		}
	}
	return true
}

// String lays the net out as text.
func (n Net) String() string {
	var b strings.Builder

	writeRow := func(f cube.Face, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(n[f][row*3+col].String())
			b.WriteByte(' ')
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(cube.U, row)
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		for _, f := range []cube.Face{cube.L, cube.F, cube.R, cube.B} {
			writeRow(f, row)
		}
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(cube.D, row)
		b.WriteByte('\n')
	}
	return b.String()
}

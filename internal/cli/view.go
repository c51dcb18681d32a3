package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubelayers/internal/anim"
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	pickedStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

var stickerColors = map[cube.Color]lipgloss.Color{
	cube.White:  lipgloss.Color("255"),
	cube.Yellow: lipgloss.Color("226"),
	cube.Green:  lipgloss.Color("34"),
	cube.Blue:   lipgloss.Color("27"),
	cube.Red:    lipgloss.Color("196"),
	cube.Orange: lipgloss.Color("208"),
}

// views lists the screens tab cycles through.
var views = []render.View{
	render.SceneView,
	render.LayerView(layer.Top),
	render.LayerView(layer.Mid),
	render.LayerView(layer.Bottom),
	render.LayerView(layer.Holding),
}

// viewKey returns the layer a view shows; the scene has none.
func viewKey(v render.View) (layer.Key, bool) {
	k := layer.Key(v)
	return k, k.Valid()
}

// sticker draws one facelet.
func sticker(c cube.Color) string {
	col, ok := stickerColors[c]
	if !ok {
		return "  "
	}
	return lipgloss.NewStyle().Background(col).Render("  ")
}

// renderNet draws the unfolded cube in color, in the same layout as
// render.Net.String.
func renderNet(n render.Net) string {
	var b strings.Builder
	row := func(f cube.Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(sticker(n[f][r*3+col]))
		}
		b.WriteByte(' ')
	}
	pad := strings.Repeat(" ", 7)

	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cube.U, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, f := range []cube.Face{cube.L, cube.F, cube.R, cube.B} {
			row(f, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cube.D, r)
		b.WriteByte('\n')
	}
	return b.String()
}

// cellCount is the number of cursor positions in a view. The bay has one
// empty cell past its last cubie to drop onto.
func cellCount(p layer.Projection) int {
	if p.Key == layer.Holding {
		return p.Len() + 1
	}
	return 9
}

// cellAt returns the cubie under cursor position i, or "" for an empty
// cell.
func cellAt(p layer.Projection, i int) cube.ID {
	if p.Key == layer.Holding {
		if i >= 0 && i < p.Len() {
			return p.Placements[i].Cubie.ID
		}
		return ""
	}
	c, ok := p.At(i%3, i/3)
	if !ok {
		return ""
	}
	return c.ID
}

// faceColor is the sticker shown from above, or the first sticker a
// cubie carries when it has none facing up.
func faceColor(c cube.Cubie) cube.Color {
	if col := c.Colors[cube.U]; col != cube.NoColor {
		return col
	}
	for _, f := range cube.Faces {
		if col := c.Colors[f]; col != cube.NoColor {
			return col
		}
	}
	return cube.NoColor
}

func cellLabel(c cube.Cubie, ok bool) string {
	if !ok {
		return " · "
	}
	s := lipgloss.NewStyle().Width(3).Align(lipgloss.Center)
	if col, found := stickerColors[faceColor(c)]; found {
		s = s.Foreground(col)
	}
	return s.Render(string(c.ID))
}

// renderLayer draws a view as a grid, back row first. The cursor cell is
// reversed and the picked up cubie underlined.
func renderLayer(p layer.Projection, cursor int, picked cube.ID) string {
	var b strings.Builder
	n := cellCount(p)
	perRow := 3
	if p.Key == layer.Holding {
		perRow = n
	}
	for i := 0; i < n; i++ {
		if i > 0 && i%perRow == 0 {
			b.WriteByte('\n')
		}
		var c cube.Cubie
		ok := false
		if p.Key == layer.Holding {
			if i < p.Len() {
				c, ok = p.Placements[i].Cubie, true
			}
		} else {
			c, ok = p.At(i%3, i/3)
		}

		label := cellLabel(c, ok)
		if ok && c.ID == picked {
			label = pickedStyle.Render(label)
		}
		if i == cursor {
			label = cursorStyle.Render(label)
		}
		b.WriteString("[" + label + "]")
	}
	b.WriteByte('\n')
	return b.String()
}

// describeFrame summarises a running transition.
func describeFrame(f anim.Frame) string {
	t := f.Transition
	if t.Kind == anim.KindTurn {
		deg := render.TurnAngle(t.Direction, f.Progress) * 180 / math.Pi
		return fmt.Sprintf("turn %v %+.0f°", t.Axis, deg)
	}
	name := t.Kind.String()
	if f.Phase < len(t.Phases) {
		name = t.Phases[f.Phase].Name
	}
	return fmt.Sprintf("%s %s %3.0f%%", t.Kind, name, f.Progress*100)
}

// Package render defines the contract for drawing the cube and helpers
// that feed a renderer from cube state.
package render

import (
	"math"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
)

// View names a drawing surface: the 3D scene or one of the layer views.
type View string

// SceneView is the 3D cube.
const SceneView View = "cube"

// LayerView returns the view for a layer.
func LayerView(k layer.Key) View {
	return View(k)
}

// Vec3 is a point in scene units.
type Vec3 struct {
	X, Y, Z float64
}

// Scale multiplies each component by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// FromPosition converts a lattice position to scene units.
func FromPosition(p cube.Position) Vec3 {
	return Vec3{float64(p.X), float64(p.Y), float64(p.Z)}.Scale(layer.Spacing)
}

// Renderer draws cubies. Implementations decide what a view looks like.
type Renderer interface {
	RenderCubieAt(id cube.ID, colors cube.Colors, pos Vec3, o cube.Orientation)
	ClearScene(view View)
	Resize(view View, width, height int)
}

// Scene redraws the 3D view from the placed cubies.
func Scene(r Renderer, src layer.Source) {
	r.ClearScene(SceneView)
	for _, c := range src.InCube() {
		r.RenderCubieAt(c.ID, c.Colors, FromPosition(c.Position), c.Orientation)
	}
}

// Projection redraws one layer view. Layer points map onto the scene's
// x/z plane.
func Projection(r Renderer, p layer.Projection) {
	r.ClearScene(LayerView(p.Key))
	for _, pl := range p.Placements {
		r.RenderCubieAt(pl.Cubie.ID, pl.Cubie.Colors, Vec3{X: pl.Point.X, Z: pl.Point.Y}, cube.Identity)
	}
}

// All redraws the scene and every layer view.
func All(r Renderer, src layer.Source) {
	Scene(r, src)
	for _, k := range layer.Keys {
		Projection(r, layer.Project(src, k))
	}
}

// TurnAngle is the rotation of a turning slice at eased progress p.
func TurnAngle(dir cube.Direction, p float64) float64 {
	return p * float64(dir) * math.Pi / 2
}

// Rotate turns v by angle radians about a, right-handed. A quarter turn
// agrees with cube.Position.Rotate.
func Rotate(v Vec3, a cube.Axis, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	switch a {
	case cube.X:
		return Vec3{v.X, v.Y*cos - v.Z*sin, v.Y*sin + v.Z*cos}
	case cube.Y:
		return Vec3{v.X*cos + v.Z*sin, v.Y, -v.X*sin + v.Z*cos}
	default:
		return Vec3{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos, v.Z}
	}
}

// TurnPose is where a cubie starting at p is drawn at progress of a turn.
func TurnPose(p cube.Position, a cube.Axis, dir cube.Direction, progress float64) Vec3 {
	return Rotate(FromPosition(p), a, TurnAngle(dir, progress))
}

// TurnFrame redraws the scene part way through a turn. src is the state
// before the turn; the cubies in turning are drawn rotated about a.
func TurnFrame(r Renderer, src layer.Source, turning []cube.ID, a cube.Axis, dir cube.Direction, progress float64) {
	moving := make(map[cube.ID]bool, len(turning))
	for _, id := range turning {
		moving[id] = true
	}
	r.ClearScene(SceneView)
	for _, c := range src.InCube() {
		pos := FromPosition(c.Position)
		if moving[c.ID] {
			pos = TurnPose(c.Position, a, dir, progress)
		}
		r.RenderCubieAt(c.ID, c.Colors, pos, c.Orientation)
	}
}

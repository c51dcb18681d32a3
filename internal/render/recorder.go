package render

import (
	"sync"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

// Draw is one recorded RenderCubieAt call.
type Draw struct {
	View   View
	ID     cube.ID
	Colors cube.Colors
	Pos    Vec3
	O      cube.Orientation
}

// Recorder is a Renderer that remembers what it was asked to draw. Calls
// land in the view most recently cleared.
type Recorder struct {
	mu      sync.Mutex
	current View
	views   map[View][]Draw
	sizes   map[View][2]int
}

func (r *Recorder) RenderCubieAt(id cube.ID, colors cube.Colors, pos Vec3, o cube.Orientation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	r.views[r.current] = append(r.views[r.current], Draw{View: r.current, ID: id, Colors: colors, Pos: pos, O: o})
}

func (r *Recorder) ClearScene(view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	r.current = view
	r.views[view] = nil
}

func (r *Recorder) Resize(view View, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	r.sizes[view] = [2]int{width, height}
}

// Draws returns the cubies drawn in view since it was last cleared.
func (r *Recorder) Draws(view View) []Draw {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Draw(nil), r.views[view]...)
}

// Size returns the last size set for view.
func (r *Recorder) Size(view View) (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.sizes[view]
	return s[0], s[1]
}

func (r *Recorder) init() {
	if r.views == nil {
		r.views = map[View][]Draw{}
		r.sizes = map[View][2]int{}
	}
}

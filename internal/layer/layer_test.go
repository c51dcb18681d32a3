package layer

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/state"
)

func TestSolvedProjections(t *testing.T) {
	s := state.New()
	all := ProjectAll(s)
	want := map[Key]int{Top: 9, Mid: 8, Bottom: 9, Holding: 0}
	for k, n := range want {
		if got := all[k].Len(); got != n {
			t.Errorf("%s: %d cubies, want %d", k, got, n)
		}
	}
	if c, ok := all[Top].At(0, 0); !ok || c.ID != cube.ULB {
		t.Errorf("top (0,0) = %v", c)
	}
	if c, ok := all[Mid].At(2, 2); !ok || c.ID != cube.RF {
		t.Errorf("mid (2,2) = %v", c)
	}
	if _, ok := all[Mid].At(1, 1); ok {
		t.Error("mid centre cell should be empty")
	}
}

func TestProjectionIsRowMajor(t *testing.T) {
	p := Project(state.New(), Bottom)
	for i := 1; i < len(p.Placements); i++ {
		a, b := p.Placements[i-1], p.Placements[i]
		if a.Row > b.Row || (a.Row == b.Row && a.Col >= b.Col) {
			t.Fatalf("placements out of order at %d: %v %v", i, a, b)
		}
	}
}

func TestHoldingLayoutIsCentered(t *testing.T) {
	s := state.New()
	for _, id := range []cube.ID{cube.UF, cube.UR, cube.UL} {
		if err := s.MoveToHolding(id); err != nil {
			t.Fatal(err)
		}
	}
	p := Project(s, Holding)
	if p.Len() != 3 {
		t.Fatalf("holding len %d", p.Len())
	}
	wantX := []float64{-Spacing, 0, Spacing}
	for i, pl := range p.Placements {
		if math.Abs(pl.Point.X-wantX[i]) > 1e-9 {
			t.Errorf("slot %d at x=%v, want %v", i, pl.Point.X, wantX[i])
		}
	}
	if p.Placements[0].Cubie.ID != cube.UF {
		t.Errorf("first slot %s", p.Placements[0].Cubie.ID)
	}
	if Project(s, Top).Contains(cube.UF) {
		t.Error("held cubie still shown in top")
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	s := state.New()
	_ = s.MoveToHolding(cube.DRF)
	_ = s.Swap(cube.UF, cube.DB)
	before := s.Clone()
	a := ProjectAll(s)
	b := ProjectAll(s)
	if !reflect.DeepEqual(a, b) {
		t.Error("two projections differ")
	}
	if !s.Equal(before) {
		t.Error("projection mutated the store")
	}
}

func TestSelection(t *testing.T) {
	sel, err := NewSelection(Mid, Top, Mid)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Len() != 2 || sel.String() != "top,mid" {
		t.Errorf("selection = %q", sel)
	}
	if !sel.Contains(Top) || sel.Contains(Bottom) {
		t.Error("contains")
	}
	sel = sel.Toggle(Bottom).Toggle(Top)
	if sel.String() != "mid,bot" {
		t.Errorf("toggled = %q", sel)
	}
	if _, err := NewSelection("side"); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	for in, want := range map[string]Key{"top": Top, " MID ": Mid, "bottom": Bottom, "bot": Bottom, "holding": Holding, "bay": Holding} {
		got, err := ParseKey(in)
		if err != nil || got != want {
			t.Errorf("ParseKey(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKey("left"); err == nil {
		t.Error("ParseKey(left) should fail")
	}
}

package cube

import "testing"

func TestReferenceHas26DistinctCubies(t *testing.T) {
	ref := Reference()
	if len(ref) != 26 {
		t.Fatalf("reference has %d cubies, want 26", len(ref))
	}
	seenID := map[ID]bool{}
	seenPos := map[Position]bool{}
	for _, c := range ref {
		if seenID[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		if seenPos[c.Position] {
			t.Errorf("duplicate position %v", c.Position)
		}
		if !c.Position.Valid() {
			t.Errorf("%s has invalid position %v", c.ID, c.Position)
		}
		if c.Colors.Count() != int(c.ID.Kind()) {
			t.Errorf("%s has %d stickers, want %d", c.ID, c.Colors.Count(), c.ID.Kind())
		}
		seenID[c.ID] = true
		seenPos[c.Position] = true
	}
}

func TestReferenceIsACopy(t *testing.T) {
	ref := Reference()
	ref[0].Colors[U] = Red
	ref[0].Placed = false
	again := Reference()
	if again[0].Colors[U] != White || !again[0].Placed {
		t.Error("mutating a Reference() copy changed the solved state")
	}
}

func TestReferencePositions(t *testing.T) {
	tests := []struct {
		id   ID
		want Position
	}{
		{ULB, Position{X: -1, Y: 1, Z: -1}},
		{UC, Position{Y: 1}},
		{RF, Position{X: 1, Z: 1}},
		{DRF, Position{X: 1, Y: -1, Z: 1}},
		{BC, Position{Z: -1}},
	}
	for _, tt := range tests {
		got, ok := HomeOf(tt.id)
		if !ok || got != tt.want {
			t.Errorf("HomeOf(%s) = %v, %v; want %v", tt.id, got, ok, tt.want)
		}
	}
	if _, ok := HomeOf("C"); ok {
		t.Error("the core must not be a cubie")
	}
}

func TestRelabelFourTimesIsIdentity(t *testing.T) {
	for _, c := range Reference() {
		for _, a := range []Axis{X, Y, Z} {
			for _, d := range []Direction{Positive, Negative} {
				got := c.Colors
				for i := 0; i < 4; i++ {
					got = Relabel(got, a, d)
				}
				if got != c.Colors {
					t.Errorf("%s: 4x relabel about %v/%d = %v, want %v", c.ID, a, d, got, c.Colors)
				}
			}
		}
	}
}

func TestRelabelInverse(t *testing.T) {
	for _, c := range Reference() {
		for _, a := range []Axis{X, Y, Z} {
			got := Relabel(Relabel(c.Colors, a, Positive), a, Negative)
			if got != c.Colors {
				t.Errorf("%s: relabel then inverse about %v = %v", c.ID, a, got)
			}
		}
	}
}

func TestRelabelYCycle(t *testing.T) {
	want := map[Face]Face{F: R, R: B, B: L, L: F, U: U, D: D}
	for from, to := range want {
		if got := RelabelFace(from, Y, Positive); got != to {
			t.Errorf("RelabelFace(%v, y, +1) = %v, want %v", from, got, to)
		}
		if got := RelabelFace(to, Y, Negative); got != from {
			t.Errorf("RelabelFace(%v, y, -1) = %v, want %v", to, got, from)
		}
	}
}

// A sticker must stay on the face whose normal is the rotated normal.
func TestRelabelMatchesNormalRotation(t *testing.T) {
	for _, f := range Faces {
		for _, a := range []Axis{X, Y, Z} {
			for _, d := range []Direction{Positive, Negative} {
				got := RelabelFace(f, a, d).Normal()
				want := f.Normal().Rotate(a, d)
				if got != want {
					t.Errorf("face %v about %v/%d: normal %v, want %v", f, a, d, got, want)
				}
			}
		}
	}
}

func TestPositionRotate(t *testing.T) {
	p := Position{X: 1, Y: 1, Z: -1}
	if got := p.Rotate(Y, Positive); got != (Position{X: -1, Y: 1, Z: -1}) {
		t.Errorf("y+ rotate = %v", got)
	}
	if got := p.Rotate(X, Positive); got != (Position{X: 1, Y: 1, Z: 1}) {
		t.Errorf("x+ rotate = %v", got)
	}
	if got := p.Rotate(Z, Positive); got != (Position{X: -1, Y: 1, Z: -1}) {
		t.Errorf("z+ rotate = %v", got)
	}
	for _, q := range Positions() {
		for _, a := range []Axis{X, Y, Z} {
			if got := q.Rotate(a, Positive).Rotate(a, Negative); got != q {
				t.Errorf("%v about %v does not invert: %v", q, a, got)
			}
		}
	}
}

func TestOrientationMatchesPositionRotation(t *testing.T) {
	o := Identity
	p := Position{X: 1, Y: 0, Z: 1}
	q := p
	steps := []struct {
		a Axis
		d Direction
	}{{X, Positive}, {Y, Negative}, {Z, Positive}, {Y, Positive}}
	for _, s := range steps {
		o = o.Turn(s.a, s.d)
		q = q.Rotate(s.a, s.d)
	}
	if got := o.Apply(p); got != q {
		t.Errorf("orientation applied = %v, want %v", got, q)
	}
	back := Identity
	for i := 0; i < 4; i++ {
		back = back.Turn(Z, Negative)
	}
	if !back.IsIdentity() {
		t.Errorf("four quarter turns = %v", back)
	}
}

func TestPositionsCount(t *testing.T) {
	if n := len(Positions()); n != 26 {
		t.Errorf("Positions() = %d slots, want 26", n)
	}
}

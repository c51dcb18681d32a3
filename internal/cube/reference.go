package cube

// reference is the solved cube. It is never handed out directly.
var reference = func() [26]Cubie {
	var out [26]Cubie
	for i, id := range IDs {
		var pos Position
		var colors Colors
		for _, r := range string(id) {
			f := faceOf(r)
			n := f.Normal()
			pos.X += n.X
			pos.Y += n.Y
			pos.Z += n.Z
			colors[f] = f.SolvedColor()
		}
		out[i] = Cubie{
			ID:          id,
			Colors:      colors,
			Position:    pos,
			Placed:      true,
			Orientation: Identity,
		}
	}
	return out
}()

func faceOf(r rune) Face {
	switch r {
	case 'U':
		return U
	case 'D':
		return D
	case 'F':
		return F
	case 'B':
		return B
	case 'R':
		return R
	default:
		return L
	}
}

// Reference returns a fresh copy of the solved state in reference order.
func Reference() []Cubie {
	out := make([]Cubie, len(reference))
	copy(out, reference[:])
	return out
}

// Solved returns the solved record of a single cubie.
func Solved(id ID) (Cubie, bool) {
	i := id.Index()
	if i < 0 {
		return Cubie{}, false
	}
	return reference[i], true
}

// HomeOf returns the solved position of id.
func HomeOf(id ID) (Position, bool) {
	c, ok := Solved(id)
	return c.Position, ok
}

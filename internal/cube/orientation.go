package cube

// Orientation is the accumulated rotation of a cubie as an integer
// rotation matrix. It only matters for drawing a cubie; state equality
// ignores it.
type Orientation [3][3]int

// Identity is the orientation of every cubie in the solved cube.
var Identity = Orientation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// QuarterTurn returns the rotation matrix of a quarter turn about a.
func QuarterTurn(a Axis, d Direction) Orientation {
	s := int(d)
	switch a {
	case X:
		return Orientation{{1, 0, 0}, {0, 0, -s}, {0, s, 0}}
	case Y:
		return Orientation{{0, 0, s}, {0, 1, 0}, {-s, 0, 0}}
	default:
		return Orientation{{0, -s, 0}, {s, 0, 0}, {0, 0, 1}}
	}
}

// Mul returns o·p.
func (o Orientation) Mul(p Orientation) Orientation {
	var out Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += o[i][k] * p[k][j]
			}
		}
	}
	return out
}

// Turn applies a further quarter turn about a in world space.
func (o Orientation) Turn(a Axis, d Direction) Orientation {
	return QuarterTurn(a, d).Mul(o)
}

// Apply rotates p by o.
func (o Orientation) Apply(p Position) Position {
	return Position{
		X: o[0][0]*p.X + o[0][1]*p.Y + o[0][2]*p.Z,
		Y: o[1][0]*p.X + o[1][1]*p.Y + o[1][2]*p.Z,
		Z: o[2][0]*p.X + o[2][1]*p.Y + o[2][2]*p.Z,
	}
}

// IsIdentity reports whether o is the identity rotation. The zero value
// counts as identity so that literal Cubies without an orientation compare
// as unrotated.
func (o Orientation) IsIdentity() bool {
	return o == Identity || o == Orientation{}
}

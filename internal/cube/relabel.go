package cube

// cycles holds the face 4-cycle of a positive quarter turn about each axis.
// The axis's own two faces are not part of its cycle.
var cycles = [3][4]Face{
	X: {U, F, D, B},
	Y: {F, R, B, L},
	Z: {U, L, D, R},
}

// RelabelFace returns where a sticker on face f ends up after a quarter
// turn about a in direction d.
func RelabelFace(f Face, a Axis, d Direction) Face {
	cyc := cycles[a]
	for i, g := range cyc {
		if g != f {
			continue
		}
		if d == Positive {
			return cyc[(i+1)%4]
		}
		return cyc[(i+3)%4]
	}
	return f
}

// Relabel moves every sticker of c to the face it faces after a quarter
// turn about a in direction d.
func Relabel(c Colors, a Axis, d Direction) Colors {
	var out Colors
	for _, f := range Faces {
		if c[f] == NoColor {
			continue
		}
		out[RelabelFace(f, a, d)] = c[f]
	}
	return out
}

package core

// Frame is an orthonormal basis anchored at Origin. For a camera frame, W
// points from the focus back toward the eye, so the view direction is -W.
type Frame struct {
	Origin  Vec3
	U, V, W Vec3
}

// NewFrame builds a right-handed frame at origin looking toward focus.
// ok is false when the view direction is zero or parallel to up.
func NewFrame(origin, focus, up Vec3) (Frame, bool) {
	w := origin.Subtract(focus)
	if w.LengthSquared() == 0 {
		return Frame{}, false
	}
	w = w.Normalize()
	u := up.Cross(w)
	if u.LengthSquared() < 1e-12 {
		return Frame{}, false
	}
	u = u.Normalize()
	v := w.Cross(u)
	return Frame{Origin: origin, U: u, V: v, W: w}, true
}

// ToWorld converts frame-local coordinates (a, b, c) to a world direction
func (f Frame) ToWorld(a, b, c float64) Vec3 {
	return f.U.Multiply(a).Add(f.V.Multiply(b)).Add(f.W.Multiply(c))
}

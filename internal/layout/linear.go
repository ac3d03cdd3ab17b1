package layout

// Linear maps a continuous domain onto a continuous range. Values outside the
// domain extrapolate; there is no clamping.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale from [d0, d1] to [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range. A degenerate domain maps everything to the
// range midpoint.
func (l Linear) Scale(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// Domain returns the input interval.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output interval.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

package render

import (
	"github.com/Traksewt/pv/pkg/math"
)

// splinePoint is one sample of an interpolated backbone curve.
type splinePoint struct {
	pos     math.Vec3
	tangent math.Vec3
	// src is the index of the nearest control point, used to inherit
	// source-residue identity.
	src int
}

// catmullRom evaluates a centripetal-free Catmull-Rom segment between p1
// and p2 at t in [0, 1], returning position and (unnormalized) derivative.
func catmullRom(p0, p1, p2, p3 math.Vec3, t float32) (pos, deriv math.Vec3) {
	t2 := t * t
	t3 := t2 * t

	// Standard Catmull-Rom basis with tension 0.5.
	pos = p1.Scale(2).
		Add(p2.Sub(p0).Scale(t)).
		Add(p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)).
		Add(p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)).
		Scale(0.5)

	deriv = p2.Sub(p0).
		Add(p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(2 * t)).
		Add(p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(3 * t2)).
		Scale(0.5)
	return pos, deriv
}

// sampleSpline fits a Catmull-Rom curve through the control points and
// samples it at detail subdivisions per segment. The curve passes
// through every control point; endpoints are handled by duplicating the
// terminal points. Control point count must be at least 2.
func sampleSpline(ctrl []math.Vec3, detail int) []splinePoint {
	if detail < 1 {
		detail = 1
	}
	n := len(ctrl)
	var out []splinePoint

	at := func(i int) math.Vec3 {
		if i < 0 {
			return ctrl[0]
		}
		if i >= n {
			return ctrl[n-1]
		}
		return ctrl[i]
	}

	for seg := 0; seg < n-1; seg++ {
		p0, p1, p2, p3 := at(seg-1), at(seg), at(seg+1), at(seg+2)
		steps := detail
		last := seg == n-2
		if last {
			// Close the curve at the final control point.
			steps = detail + 1
		}
		for step := 0; step < steps; step++ {
			t := float32(step) / float32(detail)
			pos, deriv := catmullRom(p0, p1, p2, p3, t)
			tangent := deriv.Normalize()
			if tangent == (math.Vec3{}) {
				// Degenerate segment (coincident control points):
				// fall back to the chord direction.
				tangent = p2.Sub(p1).Normalize()
			}
			src := seg
			if t > 0.5 {
				src = seg + 1
			}
			out = append(out, splinePoint{pos: pos, tangent: tangent, src: src})
		}
	}
	return out
}

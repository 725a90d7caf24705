package render

import (
	"github.com/chewxy/math32"

	"github.com/Traksewt/pv/pkg/math"
)

// framePoint is a spline sample with a full orthonormal orientation
// frame, ready for cross-section extrusion.
type framePoint struct {
	pos      math.Vec3
	tangent  math.Vec3
	normal   math.Vec3
	binormal math.Vec3
	src      int
}

// buildFrames assigns a consistent normal/binormal pair to each spline
// point by parallel transport: the previous normal is rotated by the
// minimal rotation carrying the previous tangent onto the current one.
// Unlike a Frenet frame this cannot flip 180 degrees across
// near-straight or inflection segments.
func buildFrames(points []splinePoint) []framePoint {
	if len(points) == 0 {
		return nil
	}
	frames := make([]framePoint, len(points))

	normal := points[0].tangent.Orthogonal()
	for i, p := range points {
		if i > 0 {
			prev := points[i-1].tangent
			axis := prev.Cross(p.tangent)
			sin := axis.Length()
			if sin > 1e-6 {
				cos := prev.Dot(p.tangent)
				angle := math32.Atan2(sin, cos)
				q := math.QuatFromAxisAngle(axis.Scale(1/sin), angle)
				normal = q.RotateVec3(normal)
			}
			// Re-orthogonalize against drift.
			normal = normal.Sub(p.tangent.Scale(normal.Dot(p.tangent))).Normalize()
		}
		frames[i] = framePoint{
			pos:      p.pos,
			tangent:  p.tangent,
			normal:   normal,
			binormal: p.tangent.Cross(normal),
			src:      p.src,
		}
	}
	return frames
}

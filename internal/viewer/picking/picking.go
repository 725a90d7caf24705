// Package picking provides ray casting against atoms for mouse picking.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Traksewt/pv/pkg/math"
	"github.com/Traksewt/pv/pkg/mol"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	// Unproject near and far points
	nearPoint := math.Vec4{ndcX, ndcY, -1.0, 1.0}
	farPoint := math.Vec4{ndcX, ndcY, 1.0, 1.0}

	nearWorld := invViewProj.MulVec4(nearPoint)
	farWorld := invViewProj.MulVec4(farPoint)

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}

	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// IntersectSphere tests ray intersection with a sphere. Returns the
// distance to the nearest intersection in front of the origin.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math32.Sqrt(disc)
	t = -b - sqrtDisc
	if t < 0 {
		t = -b + sqrtDisc // Ray origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// PickAtom returns the atom whose sphere of the given radius the ray
// hits closest to the origin, or nil if the ray misses every atom.
func PickAtom(s *mol.Structure, r Ray, radius float32) *mol.Atom {
	var best *mol.Atom
	bestT := float32(math32.MaxFloat32)

	s.EachAtom(func(a *mol.Atom) {
		t, hit := r.IntersectSphere(a.Pos, radius)
		if hit && t < bestT {
			bestT = t
			best = a
		}
	})

	return best
}

// Package camera provides the orbit camera used to inspect molecules.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Traksewt/pv/pkg/math"
)

// OrbitCamera orbits around a center point, typically the centroid of
// the loaded structure. Distances are in angstroms.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with defaults suited to a
// mid-sized protein.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        60.0,
		RotationX:       0.3,
		RotationY:       0.0,
		MinDistance:     2.0,
		MaxDistance:     1000.0,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return math.Vec3{
		X: c.Center.X + x,
		Y: c.Center.Y + y,
		Z: c.Center.Z + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point in the camera's view plane.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.002

	right := math.Vec3{
		X: math32.Cos(c.RotationY),
		Y: 0,
		Z: -math32.Sin(c.RotationY),
	}
	up := math.Vec3{X: 0, Y: 1, Z: 0}

	c.Center = c.Center.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough that the whole box is in view.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min).Length()
	if size < 1 {
		size = 1
	}

	c.Distance = size * 1.5
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.RotationX = 0.3
	c.RotationY = 0.0
}

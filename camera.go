package tri

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective projection parameters shared by every 3D demo.
const (
	FieldOfView = 45
	NearPlane   = 0.1
	FarPlane    = 100
)

// Orbit camera limits.
const (
	orbitDragSpeed  = 0.01
	orbitZoomStep   = 0.1
	orbitMinZoom    = 0.1
	orbitMaxZoom    = 5
	orbitDistance   = 5
	orbitMaxPitch   = math.Pi / 2
	defaultEyeDepth = 3
)

// DefaultEye is the camera position of the non-orbiting 3D demos.
var DefaultEye = mgl32.Vec3{0, 0, defaultEyeDepth}

// Perspective returns the projection for a surface of the given size.
// A zero height is treated as 1 so a minimized window does not produce
// a NaN aspect ratio.
func Perspective(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// LookAt returns the view of a camera at eye looking at the origin.
func LookAt(eye mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Orbit is a mouse-driven camera orbiting the origin.
type Orbit struct {
	AngleX float32 // pitch, clamped to ±π/2
	AngleY float32 // yaw
	Zoom   float32
}

// NewOrbit returns an orbit camera at zoom 1.
func NewOrbit() Orbit {
	return Orbit{Zoom: 1}
}

// Drag rotates the camera by a pointer movement in pixels.
func (o *Orbit) Drag(dx, dy float32) {
	o.AngleY += dx * orbitDragSpeed
	o.AngleX = mgl32.Clamp(o.AngleX+dy*orbitDragSpeed, -orbitMaxPitch, orbitMaxPitch)
}

// Scroll zooms by a wheel delta.
func (o *Orbit) Scroll(dy float32) {
	o.Zoom = mgl32.Clamp(o.Zoom*(1+dy*orbitZoomStep), orbitMinZoom, orbitMaxZoom)
}

// View returns the orbit view matrix: yaw after pitch, then a pull-back
// of 5/zoom along -Z.
func (o Orbit) View() mgl32.Mat4 {
	zoom := o.Zoom
	if zoom == 0 {
		zoom = 1
	}
	rot := mgl32.HomogRotate3DY(-o.AngleY).Mul4(mgl32.HomogRotate3DX(o.AngleX))
	return mgl32.Translate3D(0, 0, -orbitDistance/zoom).Mul4(rot)
}

// Eye returns the camera position in world space.
func (o Orbit) Eye() mgl32.Vec3 {
	return o.View().Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// NormalMatrix returns the inverse transpose of the model's upper 3x3,
// which carries normals into world space.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

package tri

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitDragClampsPitch(t *testing.T) {
	o := NewOrbit()
	o.Drag(10, 0)
	if !approx(o.AngleY, 0.1, colorEps) {
		t.Errorf("AngleY = %v, want 0.1", o.AngleY)
	}
	o.Drag(0, 1000)
	if !approx(o.AngleX, math.Pi/2, colorEps) {
		t.Errorf("AngleX = %v, want π/2", o.AngleX)
	}
	o.Drag(0, -5000)
	if !approx(o.AngleX, -math.Pi/2, colorEps) {
		t.Errorf("AngleX = %v, want -π/2", o.AngleX)
	}
}

func TestOrbitScrollClampsZoom(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		want   float32
	}{
		{"one notch in", []float32{1}, 1.1},
		{"one notch out", []float32{-1}, 0.9},
		{"clamped high", []float32{20, 20, 20, 20}, 5},
		{"clamped low", []float32{-9.5, -9.5}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbit()
			for _, d := range tt.deltas {
				o.Scroll(d)
			}
			if !approx(o.Zoom, tt.want, colorEps) {
				t.Errorf("Zoom = %v, want %v", o.Zoom, tt.want)
			}
		})
	}
}

func TestOrbitEye(t *testing.T) {
	o := NewOrbit()
	if eye := o.Eye(); !eye.ApproxEqualThreshold(mgl32.Vec3{0, 0, 5}, 1e-4) {
		t.Errorf("Eye() = %v, want (0,0,5)", eye)
	}
	o.Scroll(10) // zoom 2
	if eye := o.Eye(); !approx(eye.Len(), 2.5, 1e-3) {
		t.Errorf("|Eye()| = %v, want 2.5", eye.Len())
	}
}

func TestPerspectiveZeroHeight(t *testing.T) {
	m := Perspective(800, 0)
	for _, v := range m {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("Perspective(800, 0) = %v", m)
		}
	}
}

func TestLookAtPutsOriginInFront(t *testing.T) {
	p := LookAt(DefaultEye).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(p[2], -3, colorEps) {
		t.Errorf("origin in view space z = %v, want -3", p[2])
	}
}

func TestNormalMatrix(t *testing.T) {
	tests := []struct {
		name  string
		model mgl32.Mat4
	}{
		{"identity", mgl32.Ident4()},
		{"rotation", mgl32.HomogRotate3DY(0.7)},
		{"non-uniform scale", mgl32.Scale3D(4, 1, 1).Mul4(mgl32.HomogRotate3DZ(0.3))},
	}
	// A surface along (1, 1, 0) with normal (1, -1, 0).
	tangent := mgl32.Vec3{1, 1, 0}
	normal := mgl32.Vec3{1, -1, 0}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := tt.model.Mul4x1(tangent.Vec4(0)).Vec3()
			nw := NormalMatrix(tt.model).Mul3x1(normal)
			if d := tw.Dot(nw); !approx(d, 0, 1e-4) {
				t.Errorf("transformed normal not perpendicular: dot = %v", d)
			}
		})
	}

	rot := mgl32.HomogRotate3DX(1.1)
	got := NormalMatrix(rot).Mul3x1(normal)
	want := rot.Mul4x1(normal.Vec4(0)).Vec3()
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("rotation normal = %v, want %v", got, want)
	}
}

package tri

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEffectNextCycles(t *testing.T) {
	e := EffectNormal
	want := []Effect{EffectWave, EffectPulse, EffectRainbow, EffectNormal}
	for i, w := range want {
		e = e.Next()
		if e != w {
			t.Fatalf("step %d: Next() = %v, want %v", i, e, w)
		}
	}
}

func TestEffectString(t *testing.T) {
	tests := map[Effect]string{
		EffectNormal:  "Normal",
		EffectWave:    "Wave",
		EffectPulse:   "Pulse",
		EffectRainbow: "Rainbow",
		Effect(42):    "Unknown",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("Effect(%d).String() = %q, want %q", int32(e), got, want)
		}
	}
}

func TestEffectNormalIsIdentity(t *testing.T) {
	pos := mgl32.Vec3{0.3, -0.2, 0.1}
	uv := mgl32.Vec2{0.25, 0.75}
	c := mgl32.Vec3{0.1, 0.2, 0.3}
	if got := EffectPosition(EffectNormal, pos, 1.7); got != pos {
		t.Errorf("position changed: %v", got)
	}
	if got := EffectTexCoord(EffectNormal, uv, 1.7); got != uv {
		t.Errorf("uv changed: %v", got)
	}
	if got := EffectColor(EffectNormal, c, uv, 1.7); got != c {
		t.Errorf("color changed: %v", got)
	}
}

func TestEffectFormulas(t *testing.T) {
	t.Run("wave at t=0", func(t *testing.T) {
		// sin(0) = 0 at x = 0, so the vertex stays put.
		got := EffectPosition(EffectWave, mgl32.Vec3{0, 0.5, 0}, 0)
		if !approx(got[1], 0.5, colorEps) {
			t.Errorf("y = %v, want 0.5", got[1])
		}
	})
	t.Run("pulse keeps center", func(t *testing.T) {
		got := EffectTexCoord(EffectPulse, mgl32.Vec2{0.5, 0.5}, 0.4)
		if !got.ApproxEqual(mgl32.Vec2{0.5, 0.5}) {
			t.Errorf("uv = %v, want center", got)
		}
	})
	t.Run("rainbow mixes 30 percent", func(t *testing.T) {
		got := EffectColor(EffectRainbow, mgl32.Vec3{}, mgl32.Vec2{}, 0)
		// hue 0: rainbow red = 0.5.
		if !approx(got[0], 0.15, colorEps) {
			t.Errorf("r = %v, want 0.15", got[0])
		}
	})
}

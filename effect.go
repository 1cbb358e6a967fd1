package tri

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Effect is an animated texture effect of the advanced textured demo.
type Effect int32

const (
	EffectNormal Effect = iota
	EffectWave
	EffectPulse
	EffectRainbow

	effectCount
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectNormal:
		return "Normal"
	case EffectWave:
		return "Wave"
	case EffectPulse:
		return "Pulse"
	case EffectRainbow:
		return "Rainbow"
	default:
		return "Unknown"
	}
}

// Next returns the following effect, wrapping after Rainbow.
func (e Effect) Next() Effect {
	return (e + 1) % effectCount
}

// Phase offsets of the rainbow's green and blue channels (2π/3, 4π/3).
const (
	rainbowPhaseG = 2.094
	rainbowPhaseB = 4.188
	rainbowMix    = 0.3
)

// EffectPosition displaces an object-space vertex position.
func EffectPosition(e Effect, pos mgl32.Vec3, t float32) mgl32.Vec3 {
	switch e {
	case EffectWave:
		pos[1] += sin32(pos[0]*3+t*2) * 0.1
	case EffectPulse:
		pos = pos.Mul(1 + sin32(t*3)*0.2)
	}
	return pos
}

// EffectTexCoord distorts a texture coordinate before sampling.
func EffectTexCoord(e Effect, uv mgl32.Vec2, t float32) mgl32.Vec2 {
	switch e {
	case EffectWave:
		uv[0] += sin32(uv[1]*5+t*2) * 0.1
	case EffectPulse:
		s := 1 + sin32(t*3)*0.3
		uv = mgl32.Vec2{(uv[0]-0.5)*s + 0.5, (uv[1]-0.5)*s + 0.5}
	}
	return uv
}

// EffectColor post-processes a sampled color. uv is the undistorted
// texture coordinate.
func EffectColor(e Effect, c mgl32.Vec3, uv mgl32.Vec2, t float32) mgl32.Vec3 {
	if e != EffectRainbow {
		return c
	}
	hue := t*0.5 + uv[0] + uv[1]
	rainbow := mgl32.Vec3{
		sin32(hue)*0.5 + 0.5,
		sin32(hue+rainbowPhaseG)*0.5 + 0.5,
		sin32(hue+rainbowPhaseB)*0.5 + 0.5,
	}
	return c.Mul(1 - rainbowMix).Add(rainbow.Mul(rainbowMix))
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

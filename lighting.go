package tri

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightFalloff is the fixed attenuation constant applied to every light
// after the first when several lights are summed.
const LightFalloff = 0.05

// MaxLights is the number of lights the lit shaders declare.
const MaxLights = 3

// Light is a point light.
type Light struct {
	Position  mgl32.Vec3
	Color     Color
	Intensity float32
}

// Material describes how a surface responds to light. A zero Specular
// gives the diffuse-only model.
type Material struct {
	Name      string
	Color     Color
	Ambient   float32
	Specular  float32
	Shininess float32
}

// Materials cycled by the advanced Phong demo.
var (
	MaterialRed   = Material{Name: "red", Color: RGB(0.8, 0.2, 0.2), Ambient: 0.3, Specular: 0.8, Shininess: 32}
	MaterialGreen = Material{Name: "green", Color: RGB(0.2, 0.8, 0.2), Ambient: 0.2, Specular: 0.9, Shininess: 64}
	MaterialBlue  = Material{Name: "blue", Color: RGB(0.2, 0.2, 0.8), Ambient: 0.4, Specular: 0.6, Shininess: 16}
)

// Diffuse returns max(dot(normal, lightDir), 0) * lightColor. Both
// vectors are expected to be normalized.
func Diffuse(normal, lightDir mgl32.Vec3, lightColor Color) Color {
	return lightColor.Scale(max(normal.Dot(lightDir), 0))
}

// Reflect reflects the incident vector i about the normal n.
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// Specular returns the Phong specular term for one light.
func Specular(normal, lightDir, viewDir mgl32.Vec3, lightColor Color, strength, shininess float32) Color {
	if strength == 0 {
		return Color{}
	}
	reflectDir := Reflect(lightDir.Mul(-1), normal)
	spec := math.Pow(float64(max(viewDir.Dot(reflectDir), 0)), float64(shininess))
	return lightColor.Scale(strength * float32(spec))
}

// Phong shades a fragment lit by a single light:
// (ambient + diffuse + specular) * material color.
func Phong(normal, fragPos, viewPos mgl32.Vec3, light Light, m Material) Color {
	return phongTerms(normal, fragPos, viewPos, light, m, true).Mul(m.Color)
}

// PhongLights sums the Phong terms of several lights. The first light
// is unattenuated; every other light is scaled by
// 1 / (1 + LightFalloff * d^2) where d is its distance to the fragment.
// The ambient term is taken once, from the first light.
func PhongLights(normal, fragPos, viewPos mgl32.Vec3, lights []Light, m Material) Color {
	return phongFalloff(normal, fragPos, viewPos, lights, m, LightFalloff)
}

func phongFalloff(normal, fragPos, viewPos mgl32.Vec3, lights []Light, m Material, falloff float32) Color {
	var sum Color
	for i, l := range lights {
		terms := phongTerms(normal, fragPos, viewPos, l, m, i == 0)
		if i > 0 {
			d := l.Position.Sub(fragPos).Len()
			terms = terms.Scale(1 / (1 + falloff*d*d))
		}
		sum = sum.Add(terms)
	}
	return sum.Mul(m.Color)
}

func phongTerms(normal, fragPos, viewPos mgl32.Vec3, light Light, m Material, ambient bool) Color {
	n := safeNormalize(normal)
	l := safeNormalize(light.Position.Sub(fragPos))
	v := safeNormalize(viewPos.Sub(fragPos))

	lc := light.Color.Scale(light.Intensity)
	out := Diffuse(n, l, lc).Add(Specular(n, l, v, lc, m.Specular, m.Shininess))
	if ambient {
		out = out.Add(lc.Scale(m.Ambient))
	}
	return out
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// NormalColor maps a unit normal to a displayable color, the "normal
// view" of the advanced Phong demo.
func NormalColor(n mgl32.Vec3) Color {
	n = safeNormalize(n)
	return RGB(n[0]*0.5+0.5, n[1]*0.5+0.5, n[2]*0.5+0.5)
}

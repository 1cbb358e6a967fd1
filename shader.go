package tri

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

// ShaderSet holds one program's shaders for every backend. Uniform
// names are shared: WGSL struct members, GLSL uniforms and the keys
// read by the Go shaders all use the UniformLayout field names.
type ShaderSet struct {
	// WGSL has entry points vs_main and fs_main. Uniforms are bound at
	// @group(0) @binding(0); textured programs add the texture at
	// binding 1 and the sampler at binding 2.
	WGSL string
	GLSL GLSLSource
	Soft SoftShader
}

// GLSLSource is a GLSL 330 core shader pair. Textured programs read
// unit 0 through a sampler2D named "tex".
type GLSLSource struct {
	Vertex   string
	Fragment string
}

// Sampler returns filtered texels with repeat addressing.
type Sampler interface {
	Sample(u, v float32) mgl32.Vec4
}

// SoftShader is a program written in Go for the CPU rasterizer.
type SoftShader struct {
	// Vertex returns the clip-space position with GL depth range
	// (z in [-w, w]) and the varyings to interpolate.
	Vertex func(v Vertex, u Uniforms) (mgl32.Vec4, []float32)

	// Fragment returns RGBA in [0, 1] from interpolated varyings. s is
	// nil for untextured programs.
	Fragment func(varyings []float32, u Uniforms, s Sampler) mgl32.Vec4
}

var (
	//go:embed shaders/solid.wgsl
	solidWGSL string
	//go:embed shaders/solid.vert
	solidVert string
	//go:embed shaders/solid.frag
	solidFrag string

	//go:embed shaders/colored.wgsl
	coloredWGSL string
	//go:embed shaders/colored.vert
	coloredVert string
	//go:embed shaders/colored.frag
	coloredFrag string

	//go:embed shaders/textured.wgsl
	texturedWGSL string
	//go:embed shaders/textured.vert
	texturedVert string
	//go:embed shaders/textured.frag
	texturedFrag string

	//go:embed shaders/lit.wgsl
	litWGSL string
	//go:embed shaders/lit.vert
	litVert string
	//go:embed shaders/lit.frag
	litFrag string

	//go:embed shaders/hsv.wgsl
	hsvWGSL string
	//go:embed shaders/hsv.vert
	hsvVert string
	//go:embed shaders/hsv.frag
	hsvFrag string
)

func opaque(c mgl32.Vec3) mgl32.Vec4 {
	return c.Vec4(1)
}

func flatVertex(v Vertex, _ Uniforms) (mgl32.Vec4, []float32) {
	return v.Position.Vec4(1), nil
}

var solidSoft = SoftShader{
	Vertex: flatVertex,
	Fragment: func(_ []float32, u Uniforms, _ Sampler) mgl32.Vec4 {
		return opaque(u.Vec3("color"))
	},
}

var coloredSoft = SoftShader{
	Vertex: func(v Vertex, u Uniforms) (mgl32.Vec4, []float32) {
		return u.Mat4("transform").Mul4x1(v.Position.Vec4(1)), v.Color[:]
	},
	Fragment: func(in []float32, _ Uniforms, _ Sampler) mgl32.Vec4 {
		return mgl32.Vec4{in[0], in[1], in[2], 1}
	},
}

func mvp(u Uniforms) mgl32.Mat4 {
	return u.Mat4("projection").Mul4(u.Mat4("view")).Mul4(u.Mat4("model"))
}

var texturedSoft = SoftShader{
	Vertex: func(v Vertex, u Uniforms) (mgl32.Vec4, []float32) {
		pos := EffectPosition(Effect(u.Int("effect")), v.Position, u.Float("time"))
		return mvp(u).Mul4x1(pos.Vec4(1)), v.TexCoord[:]
	},
	Fragment: func(in []float32, u Uniforms, s Sampler) mgl32.Vec4 {
		effect, t := Effect(u.Int("effect")), u.Float("time")
		uv := mgl32.Vec2{in[0], in[1]}
		texel := mgl32.Vec4{1, 1, 1, 1}
		if s != nil {
			st := EffectTexCoord(effect, uv, t)
			texel = s.Sample(st[0], st[1])
		}
		tint := u.Vec3("tint")
		k := u.Float("brightness") * u.Float("pulse")
		rgb := mgl32.Vec3{texel[0] * tint[0] * k, texel[1] * tint[1] * k, texel[2] * tint[2] * k}
		return EffectColor(effect, rgb, uv, t).Vec4(texel[3])
	},
}

var litLightNames = [MaxLights][2]string{
	{"light0Pos", "light0Color"},
	{"light1Pos", "light1Color"},
	{"light2Pos", "light2Color"},
}

var litSoft = SoftShader{
	Vertex: func(v Vertex, u Uniforms) (mgl32.Vec4, []float32) {
		model := u.Mat4("model")
		world := model.Mul4x1(v.Position.Vec4(1))
		normal := NormalMatrix(model).Mul3x1(v.Normal)
		clip := u.Mat4("projection").Mul4(u.Mat4("view")).Mul4x1(world)
		return clip, []float32{world[0], world[1], world[2], normal[0], normal[1], normal[2]}
	},
	Fragment: func(in []float32, u Uniforms, _ Sampler) mgl32.Vec4 {
		fragPos := mgl32.Vec3{in[0], in[1], in[2]}
		normal := mgl32.Vec3{in[3], in[4], in[5]}
		if u.Int("showNormals") != 0 {
			return opaque(NormalColor(normal).Vec3())
		}
		n := int(mgl32.Clamp(float32(u.Int("lightCount")), 1, MaxLights))
		lights := make([]Light, n)
		for i := range lights {
			lights[i] = Light{
				Position:  u.Vec3(litLightNames[i][0]),
				Color:     ColorFromVec3(u.Vec3(litLightNames[i][1])),
				Intensity: u.Float("intensity"),
			}
		}
		m := Material{
			Color:     ColorFromVec3(u.Vec3("objectColor")),
			Ambient:   u.Float("ambient"),
			Specular:  u.Float("specular"),
			Shininess: u.Float("shininess"),
		}
		c := phongFalloff(normal, fragPos, u.Vec3("viewPos"), lights, m, u.Float("falloff"))
		return opaque(c.Vec3())
	},
}

var hsvSoft = SoftShader{
	Vertex: flatVertex,
	Fragment: func(_ []float32, u Uniforms, _ Sampler) mgl32.Vec4 {
		return opaque(HSV(u.Float("hue"), u.Float("saturation"), u.Float("value")).Vec3())
	},
}

package tri

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
)

// Default demo window size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600

	advancedWidth  = 1000
	advancedHeight = 800
)

// RoseTexture is the image the rose and advanced textured demos load.
const RoseTexture = "rose.png"

// frameRotation is the per-frame Y rotation of the fixed-step demos.
const frameRotation = 0.01

var (
	clearTeal     = RGB(0.2, 0.3, 0.3)
	clearSky      = RGB(0.2, 0.3, 0.5)
	clearCharcoal = RGB(0.1, 0.1, 0.1)
	clearNavy     = RGB(0.1, 0.1, 0.3)
	clearNight    = RGB(0.1, 0.1, 0.2)
)

// Basic triangle corners, counter-clockwise from bottom left.
var (
	cornerLeft  = mgl32.Vec3{-0.5, -0.5, 0}
	cornerRight = mgl32.Vec3{0.5, -0.5, 0}
	cornerTop   = mgl32.Vec3{0, 0.5, 0}
)

func basicTriangle() Triangle {
	return Triangle{{Position: cornerLeft}, {Position: cornerRight}, {Position: cornerTop}}
}

func texturedTriangle() Triangle {
	return Triangle{
		{Position: cornerTop, TexCoord: mgl32.Vec2{0.5, 1}},
		{Position: cornerLeft, TexCoord: mgl32.Vec2{0, 0}},
		{Position: cornerRight, TexCoord: mgl32.Vec2{1, 0}},
	}
}

func one(t Triangle) func(*State) []Triangle {
	return func(*State) []Triangle { return []Triangle{t} }
}

func rotateY(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(angle)
}

func spinFrame(s *State) { s.Rotation += frameRotation }

func spinTime(rate float32) func(*State) {
	return func(s *State) { s.Rotation = s.Time * rate }
}

// texturedUniforms sets every textured uniform except the ones the
// caller overrides afterwards.
func texturedUniforms(s *State, view mgl32.Mat4, pulse float32, u Uniforms) {
	u.SetMat4("model", rotateY(s.Rotation))
	u.SetMat4("view", view)
	u.SetMat4("projection", s.Projection())
	u.SetColor("tint", s.Tint)
	u.SetFloat("time", s.Time)
	u.SetFloat("brightness", s.Brightness.Value)
	u.SetFloat("pulse", pulse)
	u.SetInt("effect", int32(s.Effect))
}

// litUniforms sets the lit uniforms for material m and the given
// lights. Unused light slots are zeroed.
func litUniforms(s *State, view mgl32.Mat4, eye mgl32.Vec3, m Material, lights []Light, u Uniforms) {
	u.SetMat4("model", rotateY(s.Rotation))
	u.SetMat4("view", view)
	u.SetMat4("projection", s.Projection())
	u.SetVec3("viewPos", eye)
	u.SetColor("objectColor", m.Color)
	u.SetFloat("ambient", m.Ambient)
	u.SetFloat("specular", m.Specular)
	u.SetFloat("shininess", m.Shininess)
	u.SetInt("lightCount", int32(len(lights))) //nolint:gosec // at most MaxLights
	u["showNormals"] = Bool(s.ShowNormals)
	u.SetFloat("intensity", s.Intensity.Value)
	u.SetFloat("falloff", LightFalloff)
	for i, names := range litLightNames {
		var l Light
		if i < len(lights) {
			l = lights[i]
		}
		u.SetVec3(names[0], l.Position)
		u.SetColor(names[1], l.Color)
	}
}

func tintBinding(key gpucontext.Key, name string, c Color) KeyBinding {
	return KeyBinding{Key: key, Help: name + " tint", Apply: func(s *State) {
		s.Tint = c
		s.Status("tint changed", slog.String("tint", name))
	}}
}

func colorBinding(key gpucontext.Key, name string, c Color) KeyBinding {
	return KeyBinding{Key: key, Help: name + " surface", Apply: func(s *State) {
		s.ObjectColor = c
		s.Status("object color changed", slog.String("color", name))
	}}
}

func sliderBindings(up, down gpucontext.Key, pick func(*State) *Slider, help string) []KeyBinding {
	return []KeyBinding{
		{Key: up, Help: "increase " + help, Apply: func(s *State) {
			sl := pick(s)
			sl.Inc()
			s.Status(sl.String())
		}},
		{Key: down, Help: "decrease " + help, Apply: func(s *State) {
			sl := pick(s)
			sl.Dec()
			s.Status(sl.String())
		}},
	}
}

func regenerateBinding() KeyBinding {
	return KeyBinding{Key: gpucontext.KeyR, Help: "generate new random normals", Apply: func(s *State) {
		s.Regenerate()
		s.Status("generated new random normals")
	}}
}

var simpleDemo = Demo{
	Name:      "simple",
	Title:     "Simple Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantSolid,
	Clear:     clearTeal,
	Triangles: one(basicTriangle()),
	Uniforms: func(_ *State, _ int, u Uniforms) {
		u.SetColor("color", RGB(0.8, 0.3, 0.8))
	},
}

var triangleDemo = Demo{
	Name:    "triangle",
	Title:   "Triangle Demo",
	Width:   DefaultWidth,
	Height:  DefaultHeight,
	Variant: VariantColored,
	Clear:   clearTeal,
	Triangles: one(Triangle{
		{Position: cornerLeft, Color: Red.Vec3()},
		{Position: cornerRight, Color: Green.Vec3()},
		{Position: cornerTop, Color: Blue.Vec3()},
	}),
	Uniforms: func(_ *State, _ int, u Uniforms) {
		u.SetMat4("transform", mgl32.Ident4())
	},
}

var texturedDemo = Demo{
	Name:      "textured",
	Title:     "Textured Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantTextured,
	Clear:     clearTeal,
	DepthTest: true,
	Texture:   &TextureSource{Generate: DefaultCheckerboard},
	Triangles: one(texturedTriangle()),
	Update:    spinFrame,
	Uniforms: func(s *State, _ int, u Uniforms) {
		texturedUniforms(s, LookAt(DefaultEye), 1, u)
	},
	Bindings: []KeyBinding{
		tintBinding(gpucontext.KeyR, "red", TintRed),
		tintBinding(gpucontext.KeyG, "green", TintGreen),
		tintBinding(gpucontext.KeyB, "blue", TintBlue),
		tintBinding(gpucontext.KeyW, "white", TintWhite),
	},
}

var roseDemo = Demo{
	Name:      "rose",
	Title:     "Rose Textured Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantTextured,
	Clear:     clearSky,
	DepthTest: true,
	Texture:   &TextureSource{Path: RoseTexture, Generate: DefaultCheckerboard},
	Triangles: one(texturedTriangle()),
	Update:    spinTime(0.5),
	Uniforms: func(s *State, _ int, u Uniforms) {
		texturedUniforms(s, LookAt(DefaultEye), RosePulse(s.Time), u)
	},
}

// RosePulse is the brightness pulse of the rose demo.
func RosePulse(t float32) float32 {
	return sin32(t*2)*0.1 + 0.9
}

var phongDemo = Demo{
	Name:      "phong",
	Title:     "Phong Shading Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantLit,
	Clear:     clearCharcoal,
	DepthTest: true,
	Triangles: one(Face(cornerTop, cornerLeft, cornerRight, mgl32.Vec3{0, 0, 1})),
	Setup: func(s *State) {
		s.ObjectColor = RGB(0.3, 0.7, 0.9)
	},
	Update: spinFrame,
	Uniforms: func(s *State, _ int, u Uniforms) {
		m := Material{Color: s.ObjectColor, Ambient: 0.1, Specular: 0.5, Shininess: 32}
		key := Light{Position: mgl32.Vec3{2, 2, 2}, Color: White, Intensity: 1}
		litUniforms(s, LookAt(DefaultEye), DefaultEye, m, []Light{key}, u)
	},
	Bindings: []KeyBinding{
		colorBinding(gpucontext.KeyR, "red", SurfaceRed),
		colorBinding(gpucontext.KeyG, "green", SurfaceGreen),
		colorBinding(gpucontext.KeyB, "blue", SurfaceBlue),
		colorBinding(gpucontext.KeyY, "yellow", SurfaceYellow),
	},
}

var diffuseDemo = Demo{
	Name:      "diffuse",
	Title:     "Diffuse Lighting Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantLit,
	Clear:     clearSky,
	DepthTest: true,
	Triangles: func(s *State) []Triangle {
		t := Triangle{{Position: cornerLeft}, {Position: cornerRight}, {Position: cornerTop}}
		for i := range t {
			t[i].Normal = s.RandomNormal()
		}
		return []Triangle{t}
	},
	Update: spinTime(0.5),
	Uniforms: func(s *State, _ int, u Uniforms) {
		// Shininess 1 keeps pow() defined when the specular term is off.
		m := Material{Color: RGB(0.8, 0.2, 0.2), Ambient: 0.3, Shininess: 1}
		key := Light{Position: mgl32.Vec3{1, 1, 2}, Color: White, Intensity: 1}
		litUniforms(s, LookAt(DefaultEye), DefaultEye, m, []Light{key}, u)
	},
	Bindings: []KeyBinding{regenerateBinding()},
}

// Materials cycled with M in the advanced Phong demo.
var Materials = []Material{MaterialRed, MaterialGreen, MaterialBlue}

// Lights of the advanced Phong demo: a white key light and two dimmer
// fill lights that fall off with distance.
var advancedLights = []Light{
	{Position: mgl32.Vec3{1, 1, 2}, Color: White, Intensity: 1},
	{Position: mgl32.Vec3{-2, 1, 1}, Color: RGB(0.4, 0.4, 0.6), Intensity: 1},
	{Position: mgl32.Vec3{0, -2, 1.5}, Color: RGB(0.6, 0.5, 0.4), Intensity: 1},
}

func advancedPhongTriangles(s *State) []Triangle {
	front := mgl32.Vec3{0, 0, 1}

	random := Face(mgl32.Vec3{-1, -0.5, 0}, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{-0.5, 0.5, 0}, front)
	for i := range random {
		random[i].Normal = s.RandomNormal()
	}

	flat := Face(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{1, -0.5, 0}, mgl32.Vec3{0.5, 0.5, 0}, front)

	varied := Face(mgl32.Vec3{-0.5, 0, 0}, mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0, 1, 0}, front)
	for i := range varied {
		angle := float64(i) * 2 * math.Pi / 3
		varied[i].Normal = mgl32.Vec3{
			float32(math.Cos(angle)) * 0.5,
			float32(math.Sin(angle)) * 0.5,
			0.8,
		}.Normalize()
	}

	return []Triangle{random, flat, varied}
}

var advancedPhongDemo = Demo{
	Name:      "advanced-phong",
	Title:     "Advanced Phong Shading",
	Width:     advancedWidth,
	Height:    advancedHeight,
	Variant:   VariantLit,
	Clear:     clearNavy,
	DepthTest: true,
	Orbit:     true,
	Triangles: advancedPhongTriangles,
	Update:    spinTime(0.3),
	Uniforms: func(s *State, i int, u Uniforms) {
		m := Materials[(i+s.Material)%len(Materials)]
		litUniforms(s, s.Camera.View(), s.Camera.Eye(), m, advancedLights, u)
	},
	Bindings: append([]KeyBinding{
		regenerateBinding(),
		{Key: gpucontext.KeyM, Help: "switch material", Apply: func(s *State) {
			s.Material = (s.Material + 1) % len(Materials)
			s.Status("switched material", slog.String("material", Materials[s.Material].Name))
		}},
		{Key: gpucontext.KeyN, Help: "toggle normal visualization", Apply: func(s *State) {
			s.ShowNormals = !s.ShowNormals
			s.Status("normal visualization", slog.Bool("on", s.ShowNormals))
		}},
	}, sliderBindings(gpucontext.KeyUp, gpucontext.KeyDown,
		func(s *State) *Slider { return &s.Intensity }, "light intensity")...),
}

var advancedTexturedDemo = Demo{
	Name:      "advanced-textured",
	Title:     "Advanced Textured Triangle",
	Width:     advancedWidth,
	Height:    advancedHeight,
	Variant:   VariantTextured,
	Clear:     clearNight,
	DepthTest: true,
	Orbit:     true,
	Texture:   &TextureSource{Path: RoseTexture, Generate: DefaultCheckerboard},
	Triangles: func(*State) []Triangle {
		return []Triangle{
			{
				{Position: mgl32.Vec3{-1, -0.5, 0}, TexCoord: mgl32.Vec2{0, 0}},
				{Position: mgl32.Vec3{0, -0.5, 0}, TexCoord: mgl32.Vec2{1, 0}},
				{Position: mgl32.Vec3{-0.5, 0.5, 0}, TexCoord: mgl32.Vec2{0.5, 1}},
			},
			{ // mirrored
				{Position: mgl32.Vec3{0, -0.5, 0}, TexCoord: mgl32.Vec2{1, 0}},
				{Position: mgl32.Vec3{1, -0.5, 0}, TexCoord: mgl32.Vec2{0, 0}},
				{Position: mgl32.Vec3{0.5, 0.5, 0}, TexCoord: mgl32.Vec2{0.5, 1}},
			},
			{ // upside down
				{Position: mgl32.Vec3{-0.5, 0, 0}, TexCoord: mgl32.Vec2{0, 1}},
				{Position: mgl32.Vec3{0.5, 0, 0}, TexCoord: mgl32.Vec2{1, 1}},
				{Position: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0.5, 0}},
			},
		}
	},
	Update: spinTime(0.3),
	Uniforms: func(s *State, _ int, u Uniforms) {
		texturedUniforms(s, s.Camera.View(), 1, u)
	},
	Bindings: append([]KeyBinding{
		{Key: gpucontext.KeyE, Help: "switch effect", Apply: func(s *State) {
			s.Effect = s.Effect.Next()
			s.Status("effect changed", slog.String("effect", s.Effect.String()))
		}},
	}, sliderBindings(gpucontext.KeyUp, gpucontext.KeyDown,
		func(s *State) *Slider { return &s.Brightness }, "brightness")...),
}

// hueSpeed is the time-driven hue rate in degrees per second.
const hueSpeed = 60

var hsvDemo = Demo{
	Name:      "hsv",
	Title:     "HSV Color Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantHSV,
	Clear:     clearCharcoal,
	Triangles: one(basicTriangle()),
	Update: func(s *State) {
		if s.Pointer.Inside && s.Width > 0 {
			s.Hue = mgl32.Clamp(s.Pointer.X/float32(s.Width), 0, 1) * 360
			return
		}
		s.Hue = float32(math.Mod(float64(s.Time*hueSpeed), 360))
	},
	Uniforms: func(s *State, _ int, u Uniforms) {
		u.SetFloat("hue", s.Hue)
		u.SetFloat("saturation", s.Saturation.Value)
		u.SetFloat("value", s.Value.Value)
	},
	Bindings: append(
		sliderBindings(gpucontext.KeyUp, gpucontext.KeyDown,
			func(s *State) *Slider { return &s.Saturation }, "saturation"),
		sliderBindings(gpucontext.KeyRight, gpucontext.KeyLeft,
			func(s *State) *Slider { return &s.Value }, "value")...),
}

var gradientDemo = Demo{
	Name:      "gradient",
	Title:     "Gradient Textured Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantTextured,
	Clear:     clearTeal,
	DepthTest: true,
	Texture: &TextureSource{Generate: func() *Texture {
		return Gradient(64, 64, RGB(0.1, 0.2, 0.8), RGB(1, 0.6, 0.1), AxisX)
	}},
	Triangles: one(texturedTriangle()),
	Update:    spinFrame,
	Uniforms: func(s *State, _ int, u Uniforms) {
		texturedUniforms(s, LookAt(DefaultEye), 1, u)
	},
}

// noiseSeed fixes the noise demo's texture.
const noiseSeed = 1337

var noiseDemo = Demo{
	Name:      "noise",
	Title:     "Noise Textured Triangle",
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	Variant:   VariantTextured,
	Clear:     clearTeal,
	DepthTest: true,
	Texture: &TextureSource{Generate: func() *Texture {
		return Noise(64, 64, noiseSeed, 4)
	}},
	Triangles: one(texturedTriangle()),
	Update:    spinFrame,
	Uniforms: func(s *State, _ int, u Uniforms) {
		texturedUniforms(s, LookAt(DefaultEye), 1, u)
	},
}

package tri

import "fmt"

// Variant is the closed set of shader programs a demo can use. Each
// variant fixes the vertex layout, the uniform block and the shaders.
type Variant uint8

const (
	// VariantSolid draws in a single uniform color.
	VariantSolid Variant = iota
	// VariantColored interpolates per-vertex colors.
	VariantColored
	// VariantTextured samples a texture with tint and effects.
	VariantTextured
	// VariantLit applies Phong lighting.
	VariantLit
	// VariantHSV converts an HSV uniform to RGB in the fragment stage.
	VariantHSV

	variantCount
)

type variantInfo struct {
	name     string
	layout   Layout
	uniforms UniformLayout
	shaders  ShaderSet
	textured bool
}

var variants = [variantCount]variantInfo{
	VariantSolid: {
		name:   "solid",
		layout: LayoutPosition,
		uniforms: NewUniformLayout(
			UniformField{Name: "color", Kind: KindVec3},
		),
		shaders: ShaderSet{
			WGSL: solidWGSL,
			GLSL: GLSLSource{Vertex: solidVert, Fragment: solidFrag},
			Soft: solidSoft,
		},
	},
	VariantColored: {
		name:   "colored",
		layout: LayoutPosition | LayoutColor,
		uniforms: NewUniformLayout(
			UniformField{Name: "transform", Kind: KindMat4},
		),
		shaders: ShaderSet{
			WGSL: coloredWGSL,
			GLSL: GLSLSource{Vertex: coloredVert, Fragment: coloredFrag},
			Soft: coloredSoft,
		},
	},
	VariantTextured: {
		name:   "textured",
		layout: LayoutPosition | LayoutTexCoord,
		uniforms: NewUniformLayout(
			UniformField{Name: "model", Kind: KindMat4},
			UniformField{Name: "view", Kind: KindMat4},
			UniformField{Name: "projection", Kind: KindMat4},
			UniformField{Name: "tint", Kind: KindVec3},
			UniformField{Name: "time", Kind: KindFloat},
			UniformField{Name: "brightness", Kind: KindFloat},
			UniformField{Name: "pulse", Kind: KindFloat},
			UniformField{Name: "effect", Kind: KindInt},
		),
		shaders: ShaderSet{
			WGSL: texturedWGSL,
			GLSL: GLSLSource{Vertex: texturedVert, Fragment: texturedFrag},
			Soft: texturedSoft,
		},
		textured: true,
	},
	VariantLit: {
		name:   "lit",
		layout: LayoutPosition | LayoutNormal,
		uniforms: NewUniformLayout(
			UniformField{Name: "model", Kind: KindMat4},
			UniformField{Name: "view", Kind: KindMat4},
			UniformField{Name: "projection", Kind: KindMat4},
			UniformField{Name: "viewPos", Kind: KindVec3},
			UniformField{Name: "ambient", Kind: KindFloat},
			UniformField{Name: "objectColor", Kind: KindVec3},
			UniformField{Name: "specular", Kind: KindFloat},
			UniformField{Name: "light0Pos", Kind: KindVec3},
			UniformField{Name: "shininess", Kind: KindFloat},
			UniformField{Name: "light0Color", Kind: KindVec3},
			UniformField{Name: "lightCount", Kind: KindInt},
			UniformField{Name: "light1Pos", Kind: KindVec3},
			UniformField{Name: "showNormals", Kind: KindInt},
			UniformField{Name: "light1Color", Kind: KindVec3},
			UniformField{Name: "intensity", Kind: KindFloat},
			UniformField{Name: "light2Pos", Kind: KindVec3},
			UniformField{Name: "falloff", Kind: KindFloat},
			UniformField{Name: "light2Color", Kind: KindVec3},
		),
		shaders: ShaderSet{
			WGSL: litWGSL,
			GLSL: GLSLSource{Vertex: litVert, Fragment: litFrag},
			Soft: litSoft,
		},
	},
	VariantHSV: {
		name:   "hsv",
		layout: LayoutPosition,
		uniforms: NewUniformLayout(
			UniformField{Name: "hue", Kind: KindFloat},
			UniformField{Name: "saturation", Kind: KindFloat},
			UniformField{Name: "value", Kind: KindFloat},
		),
		shaders: ShaderSet{
			WGSL: hsvWGSL,
			GLSL: GLSLSource{Vertex: hsvVert, Fragment: hsvFrag},
			Soft: hsvSoft,
		},
	},
}

// Variants returns every variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, variantCount)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

func (v Variant) info() variantInfo {
	if v >= variantCount {
		panic(fmt.Sprintf("tri: invalid variant %d", v))
	}
	return variants[v]
}

// String returns the variant name.
func (v Variant) String() string {
	if v >= variantCount {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return variants[v].name
}

// Layout returns the vertex layout.
func (v Variant) Layout() Layout { return v.info().layout }

// UniformLayout returns the uniform block.
func (v Variant) UniformLayout() UniformLayout { return v.info().uniforms }

// Shaders returns the shader sources.
func (v Variant) Shaders() ShaderSet { return v.info().shaders }

// Textured reports whether the variant samples a texture.
func (v Variant) Textured() bool { return v.info().textured }

// Program returns the program description for the variant.
func (v Variant) Program(label string, depthTest bool) ProgramDesc {
	info := v.info()
	return ProgramDesc{
		Label:     label,
		Shaders:   info.shaders,
		Layout:    info.layout,
		Uniforms:  info.uniforms,
		Textured:  info.textured,
		DepthTest: depthTest,
	}
}

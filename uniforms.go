package tri

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the type of a uniform value.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindInt
	KindVec3
	KindMat4
)

// String returns the WGSL spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindInt:
		return "i32"
	case KindVec3:
		return "vec3<f32>"
	case KindMat4:
		return "mat4x4<f32>"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// align and size follow the WGSL uniform address space rules.
func (k Kind) align() int {
	switch k {
	case KindVec3, KindMat4:
		return 16
	default:
		return 4
	}
}

func (k Kind) size() int {
	switch k {
	case KindVec3:
		return 12
	case KindMat4:
		return 64
	default:
		return 4
	}
}

// Value is a tagged uniform value. Only the field selected by Kind is
// meaningful.
type Value struct {
	Kind  Kind
	Float float32
	Int   int32
	Vec3  mgl32.Vec3
	Mat4  mgl32.Mat4
}

// Float returns a float uniform value.
func Float(f float32) Value { return Value{Kind: KindFloat, Float: f} }

// Int returns an int uniform value.
func Int(i int32) Value { return Value{Kind: KindInt, Int: i} }

// Vec3 returns a vec3 uniform value.
func Vec3(v mgl32.Vec3) Value { return Value{Kind: KindVec3, Vec3: v} }

// Mat4 returns a mat4 uniform value.
func Mat4(m mgl32.Mat4) Value { return Value{Kind: KindMat4, Mat4: m} }

// Bool returns an int uniform value of 1 or 0.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Uniforms holds the uniform values of one draw call by name.
type Uniforms map[string]Value

// SetFloat sets a float uniform.
func (u Uniforms) SetFloat(name string, f float32) { u[name] = Float(f) }

// SetInt sets an int uniform.
func (u Uniforms) SetInt(name string, i int32) { u[name] = Int(i) }

// SetVec3 sets a vec3 uniform.
func (u Uniforms) SetVec3(name string, v mgl32.Vec3) { u[name] = Vec3(v) }

// SetColor sets a vec3 uniform from a color.
func (u Uniforms) SetColor(name string, c Color) { u[name] = Vec3(c.Vec3()) }

// SetMat4 sets a mat4 uniform.
func (u Uniforms) SetMat4(name string, m mgl32.Mat4) { u[name] = Mat4(m) }

// Float returns the named float, or 0 if absent or of another kind.
func (u Uniforms) Float(name string) float32 { return u[name].Float }

// Int returns the named int, or 0 if absent or of another kind.
func (u Uniforms) Int(name string) int32 { return u[name].Int }

// Vec3 returns the named vec3.
func (u Uniforms) Vec3(name string) mgl32.Vec3 { return u[name].Vec3 }

// Mat4 returns the named mat4. An absent matrix is the identity.
func (u Uniforms) Mat4(name string) mgl32.Mat4 {
	v, ok := u[name]
	if !ok || v.Kind != KindMat4 {
		return mgl32.Ident4()
	}
	return v.Mat4
}

// Clone returns a shallow copy.
func (u Uniforms) Clone() Uniforms {
	out := make(Uniforms, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Names returns the uniform names in sorted order.
func (u Uniforms) Names() []string {
	names := make([]string, 0, len(u))
	for k := range u {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UniformField is one member of a uniform block.
type UniformField struct {
	Name   string
	Kind   Kind
	Offset int
}

// UniformLayout is an ordered uniform block with WGSL offsets.
type UniformLayout struct {
	Fields []UniformField
	Size   int
}

// NewUniformLayout lays out the given fields in order.
func NewUniformLayout(fields ...UniformField) UniformLayout {
	var l UniformLayout
	off := 0
	maxAlign := 16
	for _, f := range fields {
		a := f.Kind.align()
		off = alignUp(off, a)
		f.Offset = off
		off += f.Kind.size()
		l.Fields = append(l.Fields, f)
	}
	l.Size = alignUp(off, maxAlign)
	return l
}

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}

// Field returns the named field.
func (l UniformLayout) Field(name string) (UniformField, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return UniformField{}, false
}

// Pack encodes u into a little-endian buffer matching the layout.
// Every field must be present with the declared kind.
func (l UniformLayout) Pack(u Uniforms) ([]byte, error) {
	buf := make([]byte, l.Size)
	for _, f := range l.Fields {
		v, ok := u[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUniformMissing, f.Name)
		}
		if v.Kind != f.Kind {
			return nil, fmt.Errorf("%w: %s is %v, want %v", ErrUniformType, f.Name, v.Kind, f.Kind)
		}
		b := buf[f.Offset:]
		switch f.Kind {
		case KindFloat:
			putFloat(b, v.Float)
		case KindInt:
			binary.LittleEndian.PutUint32(b, uint32(v.Int)) //nolint:gosec // bit pattern reinterpretation
		case KindVec3:
			for i := range 3 {
				putFloat(b[i*4:], v.Vec3[i])
			}
		case KindMat4:
			// mgl32 matrices are column-major like WGSL.
			for i := range 16 {
				putFloat(b[i*4:], v.Mat4[i])
			}
		}
	}
	return buf, nil
}

// Validate checks u against the layout without encoding.
func (l UniformLayout) Validate(u Uniforms) error {
	_, err := l.Pack(u)
	return err
}

func putFloat(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}

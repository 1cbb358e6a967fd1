package tri

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUniformLayoutOffsets(t *testing.T) {
	l := NewUniformLayout(
		UniformField{Name: "a", Kind: KindFloat},
		UniformField{Name: "v", Kind: KindVec3},
		UniformField{Name: "b", Kind: KindFloat},
		UniformField{Name: "m", Kind: KindMat4},
		UniformField{Name: "i", Kind: KindInt},
	)
	want := map[string]int{"a": 0, "v": 16, "b": 28, "m": 32, "i": 96}
	for name, off := range want {
		f, ok := l.Field(name)
		if !ok {
			t.Fatalf("field %q missing", name)
		}
		if f.Offset != off {
			t.Errorf("%s offset = %d, want %d", name, f.Offset, off)
		}
	}
	if l.Size != 112 {
		t.Errorf("Size = %d, want 112", l.Size)
	}
}

func TestVariantUniformSizes(t *testing.T) {
	tests := []struct {
		variant Variant
		size    int
	}{
		{VariantSolid, 16},
		{VariantColored, 64},
		{VariantTextured, 224},
		{VariantLit, 320},
		{VariantHSV, 16},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			if got := tt.variant.UniformLayout().Size; got != tt.size {
				t.Errorf("size = %d, want %d", got, tt.size)
			}
		})
	}
}

func TestUniformLayoutPack(t *testing.T) {
	l := NewUniformLayout(
		UniformField{Name: "color", Kind: KindVec3},
		UniformField{Name: "n", Kind: KindInt},
	)
	u := Uniforms{}
	u.SetVec3("color", mgl32.Vec3{1, 2, 3})
	u.SetInt("n", -2)

	buf, err := l.Pack(u)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(buf) != 16 {
		t.Fatalf("len = %d, want 16", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])); got != 3 {
		t.Errorf("color.z = %v, want 3", got)
	}
	if got := int32(binary.LittleEndian.Uint32(buf[12:])); got != -2 { //nolint:gosec // test
		t.Errorf("n = %d, want -2", got)
	}
}

func TestUniformLayoutPackErrors(t *testing.T) {
	l := NewUniformLayout(UniformField{Name: "time", Kind: KindFloat})

	if _, err := l.Pack(Uniforms{}); !errors.Is(err, ErrUniformMissing) {
		t.Errorf("missing: err = %v, want ErrUniformMissing", err)
	}
	if _, err := l.Pack(Uniforms{"time": Int(1)}); !errors.Is(err, ErrUniformType) {
		t.Errorf("wrong kind: err = %v, want ErrUniformType", err)
	}
	if err := l.Validate(Uniforms{"time": Float(1), "extra": Int(3)}); err != nil {
		t.Errorf("extra uniforms should be ignored, got %v", err)
	}
}

func TestUniformsAccessors(t *testing.T) {
	u := Uniforms{}
	if m := u.Mat4("model"); m != mgl32.Ident4() {
		t.Errorf("absent Mat4 = %v, want identity", m)
	}
	u.SetColor("tint", RGB(1, 0.5, 0))
	if got := u.Vec3("tint"); got != (mgl32.Vec3{1, 0.5, 0}) {
		t.Errorf("tint = %v", got)
	}
	u["flag"] = Bool(true)
	c := u.Clone()
	c.SetFloat("time", 2)
	if _, ok := u["time"]; ok {
		t.Error("Clone shares storage")
	}
	if names := c.Names(); len(names) != 3 || names[0] != "flag" {
		t.Errorf("Names() = %v", names)
	}
}

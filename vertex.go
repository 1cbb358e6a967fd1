package tri

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TriangleVertices is the number of vertices every draw call requests.
const TriangleVertices = 3

// Vertex is one corner of a triangle. Which fields are meaningful is
// decided by the Layout the vertex is packed with.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// Triangle is exactly three vertices.
type Triangle [TriangleVertices]Vertex

// Layout is the set of attributes present in a vertex buffer.
type Layout uint8

// Vertex attributes. Position is always present.
const (
	LayoutPosition Layout = 1 << iota
	LayoutColor
	LayoutTexCoord
	LayoutNormal
)

// Has reports whether all attributes in a are present.
func (l Layout) Has(a Layout) bool {
	return l&a == a
}

// Attribute describes one vertex attribute inside an interleaved buffer.
type Attribute struct {
	Name       string
	Location   uint32
	Components int
	Offset     int
}

var attributeOrder = []struct {
	flag       Layout
	name       string
	components int
}{
	{LayoutPosition, "position", 3},
	{LayoutColor, "color", 3},
	{LayoutTexCoord, "texCoord", 2},
	{LayoutNormal, "normal", 3},
}

// Attributes returns the attributes of l in buffer order. Shader
// locations are assigned sequentially in the same order.
func (l Layout) Attributes() []Attribute {
	l |= LayoutPosition
	attrs := make([]Attribute, 0, len(attributeOrder))
	offset := 0
	for _, a := range attributeOrder {
		if !l.Has(a.flag) {
			continue
		}
		attrs = append(attrs, Attribute{
			Name:       a.name,
			Location:   uint32(len(attrs)),
			Components: a.components,
			Offset:     offset,
		})
		offset += a.components * 4
	}
	return attrs
}

// Stride returns the byte size of one packed vertex.
func (l Layout) Stride() int {
	stride := 0
	for _, a := range l.Attributes() {
		stride += a.Components * 4
	}
	return stride
}

// Floats appends the components of v selected by l.
func (l Layout) Floats(dst []float32, v Vertex) []float32 {
	dst = append(dst, v.Position[:]...)
	if l.Has(LayoutColor) {
		dst = append(dst, v.Color[:]...)
	}
	if l.Has(LayoutTexCoord) {
		dst = append(dst, v.TexCoord[:]...)
	}
	if l.Has(LayoutNormal) {
		dst = append(dst, v.Normal[:]...)
	}
	return dst
}

// Pack interleaves the vertices of tris into little-endian float32 bytes.
func Pack(l Layout, tris []Triangle) []byte {
	floats := make([]float32, 0, len(tris)*TriangleVertices*l.Stride()/4)
	for _, tri := range tris {
		for _, v := range tri {
			floats = l.Floats(floats, v)
		}
	}
	data := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(f))
	}
	return data
}

// VertexCount returns the number of vertices in tris.
func VertexCount(tris []Triangle) int {
	return len(tris) * TriangleVertices
}

// Face returns a triangle with a shared normal and per-vertex colors
// left zero. It is a convenience for lit demos.
func Face(a, b, c, normal mgl32.Vec3) Triangle {
	return Triangle{
		{Position: a, Normal: normal},
		{Position: b, Normal: normal},
		{Position: c, Normal: normal},
	}
}

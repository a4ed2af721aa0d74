package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/x448/float16"

	"github.com/wippyai/meshblob/errors"
)

func putFloats(dst []byte, values ...float32) {
	for i, v := range values {
		binary.NativeEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

func triangle() *Data {
	vertices := make([]byte, 3*12)
	putFloats(vertices,
		-1, -1, 0,
		1, -1, 0,
		0, 1, 0.5)
	indices := make([]byte, 6)
	for i, v := range []uint16{0, 1, 2} {
		binary.NativeEndian.PutUint16(indices[i*2:], v)
	}
	return &Data{
		Primitive:   PrimitiveTriangles,
		IndexType:   IndexTypeUnsignedShort,
		IndexData:   indices,
		IndexCount:  3,
		VertexData:  vertices,
		VertexCount: 3,
		Attributes: []Attribute{
			{Name: AttributePosition, Format: VertexFormatVector3, Stride: 12},
		},
	}
}

func TestVertexFormatLayout(t *testing.T) {
	tests := []struct {
		format     VertexFormat
		name       string
		size       int
		compSize   int
		components int
		vectors    int
	}{
		{VertexFormatFloat, "Float", 4, 4, 1, 1},
		{VertexFormatVector3, "Vector3", 12, 4, 3, 1},
		{VertexFormatVector2h, "Vector2h", 4, 2, 2, 1},
		{VertexFormatVector3d, "Vector3d", 24, 8, 3, 1},
		{VertexFormatVector4ubNormalized, "Vector4ubNormalized", 4, 1, 4, 1},
		{VertexFormatVector3sNormalized, "Vector3sNormalized", 6, 2, 3, 1},
		{VertexFormatUnsignedInt, "UnsignedInt", 4, 4, 1, 1},
		{VertexFormatMatrix3x3, "Matrix3x3", 36, 4, 3, 3},
		{VertexFormatMatrix4x4, "Matrix4x4", 64, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.format.Valid() {
				t.Fatalf("%v not valid", tt.format)
			}
			if got := tt.format.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.format.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.format.ComponentSize(); got != tt.compSize {
				t.Errorf("ComponentSize() = %d, want %d", got, tt.compSize)
			}
			if got := tt.format.ComponentCount(); got != tt.components {
				t.Errorf("ComponentCount() = %d, want %d", got, tt.components)
			}
			if got := tt.format.VectorCount(); got != tt.vectors {
				t.Errorf("VectorCount() = %d, want %d", got, tt.vectors)
			}
		})
	}
}

func TestVertexFormatValidity(t *testing.T) {
	if _, ok := VertexFormatOf(ComponentFloat, 3, 1, true); ok {
		t.Error("normalized float accepted")
	}
	if _, ok := VertexFormatOf(ComponentShort, 5, 1, false); ok {
		t.Error("five components accepted")
	}
	if f, ok := VertexFormatOf(ComponentShort, 2, 1, true); !ok || f.String() != "Vector2sNormalized" {
		t.Errorf("VertexFormatOf(Short, 2, 1, true) = %v, %v", f, ok)
	}
	if VertexFormat(0).Valid() {
		t.Error("zero format valid")
	}
	if VertexFormat(uint32(VertexFormatFloat) | 1<<20).Valid() {
		t.Error("format with stray bits valid")
	}

	custom := VertexFormatWrap(0xdead)
	if !custom.IsImplementationSpecific() || !custom.Valid() {
		t.Errorf("wrapped format: specific=%v valid=%v", custom.IsImplementationSpecific(), custom.Valid())
	}
	if custom.Unwrap() != 0xdead {
		t.Errorf("Unwrap() = 0x%x", custom.Unwrap())
	}
	if custom.Size() != 0 || custom.ComponentSize() != 0 {
		t.Errorf("implementation-specific size = %d/%d, want 0", custom.Size(), custom.ComponentSize())
	}
}

func TestIndexTypeSize(t *testing.T) {
	tests := []struct {
		t    IndexType
		size int
	}{
		{IndexTypeNone, 0},
		{IndexTypeUnsignedByte, 1},
		{IndexTypeUnsignedShort, 2},
		{IndexTypeUnsignedInt, 4},
		{IndexType(9), 0},
	}
	for _, tt := range tests {
		if got := tt.t.Size(); got != tt.size {
			t.Errorf("%v.Size() = %d, want %d", tt.t, got, tt.size)
		}
	}
	if IndexType(9).Valid() {
		t.Error("IndexType(9) valid")
	}
}

func TestNames(t *testing.T) {
	if s := AttributeCustom(3).String(); s != "Custom(3)" {
		t.Errorf("AttributeCustom(3) = %q", s)
	}
	if !AttributeCustom(0).IsCustom() || AttributeNormal.IsCustom() {
		t.Error("IsCustom mismatch")
	}
	if s := PrimitiveTriangles.String(); s != "Triangles" {
		t.Errorf("PrimitiveTriangles = %q", s)
	}
	if s := PrimitiveWrap(7).String(); s != "ImplementationSpecific(0x7)" {
		t.Errorf("PrimitiveWrap(7) = %q", s)
	}
}

func TestIndices(t *testing.T) {
	m := triangle()
	got, err := m.Indices()
	if err != nil {
		t.Fatalf("Indices: %v", err)
	}
	want := []uint32{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}

	m.IndexType = IndexTypeNone
	m.IndexCount = 0
	if _, err := m.Indices(); err == nil {
		t.Error("Indices on non-indexed mesh should fail")
	}
}

func TestIndexOffsetView(t *testing.T) {
	m := &Data{
		IndexType:   IndexTypeUnsignedByte,
		IndexData:   []byte{9, 9, 4, 5, 6},
		IndexOffset: 2,
		IndexCount:  3,
	}
	got, err := m.Indices()
	if err != nil {
		t.Fatalf("Indices: %v", err)
	}
	if got[0] != 4 || got[2] != 6 {
		t.Errorf("Indices() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Data)
		kind   errors.Kind
	}{
		{"valid", func(*Data) {}, ""},
		{"index past end", func(d *Data) { d.IndexCount = 4 }, errors.KindOutOfBounds},
		{"index offset past end", func(d *Data) { d.IndexOffset = 2 }, errors.KindOutOfBounds},
		{"unknown index type", func(d *Data) { d.IndexType = 7 }, errors.KindInvalidEnum},
		{"count without index type", func(d *Data) { d.IndexType = IndexTypeNone }, errors.KindInvalidData},
		{"stride too large", func(d *Data) { d.Attributes[0].Stride = 16 }, errors.KindOutOfBounds},
		{"offset too large", func(d *Data) { d.Attributes[0].Offset = 4 }, errors.KindOutOfBounds},
		{"negative offset", func(d *Data) { d.Attributes[0].Offset = -1 }, errors.KindOutOfBounds},
		{"bad format", func(d *Data) { d.Attributes[0].Format = 0 }, errors.KindInvalidEnum},
		{"reverse stride", func(d *Data) {
			d.Attributes[0].Offset = 24
			d.Attributes[0].Stride = -12
		}, ""},
		{"reverse stride before start", func(d *Data) {
			d.Attributes[0].Offset = 12
			d.Attributes[0].Stride = -12
		}, errors.KindOutOfBounds},
		{"zero vertices skip range", func(d *Data) {
			d.VertexCount = 0
			d.Attributes[0].Stride = 1000
		}, ""},
		{"implementation specific", func(d *Data) {
			d.Attributes[0].Format = VertexFormatWrap(1)
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangle()
			tt.modify(m)
			err := m.Validate()
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.IsKind(err, tt.kind) {
				t.Fatalf("Validate() = %v, want kind %s", err, tt.kind)
			}
		})
	}

	var nilMesh *Data
	if !errors.IsKind(nilMesh.Validate(), errors.KindInvalidInput) {
		t.Error("nil mesh should be invalid input")
	}
}

func TestAttributeFloats(t *testing.T) {
	m := triangle()
	values, err := m.AttributeFloats(0)
	if err != nil {
		t.Fatalf("AttributeFloats: %v", err)
	}
	if len(values) != 3 || len(values[2]) != 3 {
		t.Fatalf("shape = %d x %d", len(values), len(values[0]))
	}
	if values[2][1] != 1 || values[2][2] != 0.5 {
		t.Errorf("vertex 2 = %v", values[2])
	}
}

func TestAttributeFloatsConversions(t *testing.T) {
	// vertex layout: Vector2h, Vector4ubNormalized, Vector3sNormalized (+2 pad)
	vertex := make([]byte, 16)
	binary.NativeEndian.PutUint16(vertex[0:], float16.Fromfloat32(0.25).Bits())
	binary.NativeEndian.PutUint16(vertex[2:], float16.Fromfloat32(-2).Bits())
	copy(vertex[4:], []byte{0, 255, 51, 255})
	binary.NativeEndian.PutUint16(vertex[8:], uint16(0x8000)) // -32768 clamps to -1
	binary.NativeEndian.PutUint16(vertex[10:], uint16(math.MaxInt16))
	binary.NativeEndian.PutUint16(vertex[12:], 0)

	m := &Data{
		Primitive:   PrimitivePoints,
		VertexData:  vertex,
		VertexCount: 1,
		Attributes: []Attribute{
			{Name: AttributeTextureCoordinates, Format: VertexFormatVector2h, Stride: 16},
			{Name: AttributeColor, Format: VertexFormatVector4ubNormalized, Offset: 4, Stride: 16},
			{Name: AttributeNormal, Format: VertexFormatVector3sNormalized, Offset: 8, Stride: 16},
		},
	}

	uv, err := m.AttributeFloats(0)
	if err != nil {
		t.Fatal(err)
	}
	if uv[0][0] != 0.25 || uv[0][1] != -2 {
		t.Errorf("half = %v", uv[0])
	}

	color, err := m.AttributeFloats(1)
	if err != nil {
		t.Fatal(err)
	}
	if color[0][0] != 0 || color[0][1] != 1 || color[0][2] != 0.2 {
		t.Errorf("color = %v", color[0])
	}

	normal, err := m.AttributeFloats(2)
	if err != nil {
		t.Fatal(err)
	}
	if normal[0][0] != -1 || normal[0][1] != 1 || normal[0][2] != 0 {
		t.Errorf("normal = %v", normal[0])
	}

	m.Attributes[0].Format = VertexFormatWrap(3)
	if _, err := m.AttributeFloats(0); !errors.IsKind(err, errors.KindUnsupported) {
		t.Errorf("implementation-specific decode: %v", err)
	}
	if _, err := m.AttributeFloats(5); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("missing attribute: %v", err)
	}
}

func TestArrayAttribute(t *testing.T) {
	data := make([]byte, 2*8)
	putFloats(data, 1, 2, 3, 4)
	m := &Data{
		VertexData:  data,
		VertexCount: 2,
		Attributes: []Attribute{
			{Name: AttributeCustom(0), Format: VertexFormatFloat, Stride: 8, ArraySize: 2},
		},
	}
	if got := m.Attributes[0].ElementSize(); got != 8 {
		t.Errorf("ElementSize() = %d, want 8", got)
	}
	values, err := m.AttributeFloats(0)
	if err != nil {
		t.Fatal(err)
	}
	if values[1][0] != 3 || values[1][1] != 4 {
		t.Errorf("vertex 1 = %v", values[1])
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := triangle().Bounds()
	if !ok {
		t.Fatal("Bounds not available")
	}
	if min != [3]float32{-1, -1, 0} {
		t.Errorf("min = %v", min)
	}
	if max != [3]float32{1, 1, 0.5} {
		t.Errorf("max = %v", max)
	}

	if _, _, ok := (&Data{}).Bounds(); ok {
		t.Error("Bounds on empty mesh should not be available")
	}
}

func TestAttributeID(t *testing.T) {
	m := &Data{Attributes: []Attribute{
		{Name: AttributeTextureCoordinates},
		{Name: AttributePosition},
		{Name: AttributeTextureCoordinates},
	}}
	if id, ok := m.AttributeID(AttributeTextureCoordinates, 1); !ok || id != 2 {
		t.Errorf("AttributeID(uv, 1) = %d, %v", id, ok)
	}
	if _, ok := m.AttributeID(AttributeNormal, 0); ok {
		t.Error("found missing normal")
	}
	if !m.HasAttribute(AttributePosition) {
		t.Error("HasAttribute(Position) = false")
	}
}

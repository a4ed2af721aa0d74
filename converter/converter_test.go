package converter

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/mesh"
)

func triangle() *mesh.Data {
	vertices := make([]byte, 3*12)
	for i, v := range []float32{-1, -1, 0, 1, -1, 0, 0, 1, 0.5} {
		binary.NativeEndian.PutUint32(vertices[i*4:], math.Float32bits(v))
	}
	indices := make([]byte, 6)
	for i, v := range []uint16{0, 1, 2} {
		binary.NativeEndian.PutUint16(indices[i*2:], v)
	}
	return &mesh.Data{
		Primitive:   mesh.PrimitiveTriangles,
		IndexType:   mesh.IndexTypeUnsignedShort,
		IndexData:   indices,
		IndexCount:  3,
		VertexData:  vertices,
		VertexCount: 3,
		Attributes: []mesh.Attribute{
			{Name: mesh.AttributePosition, Format: mesh.VertexFormatVector3, Stride: 12},
		},
	}
}

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Signature() != chunk.SignatureCurrent {
		t.Errorf("Signature() = %v, want current", c.Signature())
	}
	if c.logger == nil {
		t.Error("logger is nil")
	}
}

func TestConvertSize(t *testing.T) {
	tests := []struct {
		sig  chunk.Signature
		want int
	}{
		{chunk.SignatureLittle32, 48 + 20 + 6 + 36},
		{chunk.SignatureBig32, 48 + 20 + 6 + 36},
		{chunk.SignatureLittle64, 64 + 24 + 6 + 36},
		{chunk.SignatureBig64, 64 + 24 + 6 + 36},
	}

	for _, tt := range tests {
		t.Run(tt.sig.String(), func(t *testing.T) {
			c := New(WithSignature(tt.sig))
			blob, err := c.Convert(triangle())
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if len(blob) != tt.want {
				t.Errorf("len = %d, want %d", len(blob), tt.want)
			}
			size, err := c.Size(triangle())
			if err != nil || size != uint64(tt.want) {
				t.Errorf("Size() = %d, %v", size, err)
			}

			h, tr, err := chunk.ReadHeader(blob)
			if err != nil {
				t.Fatalf("ReadHeader: %v", err)
			}
			if h.Size != uint64(tt.want) || h.Type != chunk.TypeMesh || h.TypeVersion != 0 || tr.Signature != tt.sig {
				t.Errorf("header = %+v", h)
			}
		})
	}
}

func TestConvertBig64Little32Difference(t *testing.T) {
	little, err := New(WithSignature(chunk.SignatureLittle32)).Convert(triangle())
	if err != nil {
		t.Fatal(err)
	}
	big, err := New(WithSignature(chunk.SignatureBig64)).Convert(triangle())
	if err != nil {
		t.Fatal(err)
	}
	// 16 bytes of wider header fields plus 4 per attribute record
	if d := len(big) - len(little); d != 20 {
		t.Errorf("difference = %d, want 20", d)
	}
}

func TestConvertLayout(t *testing.T) {
	m := triangle()
	c := New(WithSignature(chunk.SignatureBig32))
	blob, err := c.Convert(m)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	tr := chunk.TraitsFor(chunk.SignatureBig32)

	mh, err := chunk.ReadMeshHeader(blob, tr)
	if err != nil {
		t.Fatalf("ReadMeshHeader: %v", err)
	}
	if mh.IndexCount != 3 || mh.VertexCount != 3 || mh.AttributeCount != 1 {
		t.Errorf("counts = %d/%d/%d", mh.IndexCount, mh.VertexCount, mh.AttributeCount)
	}
	if mh.IndexType != mesh.IndexTypeUnsignedShort || mh.Primitive != mesh.PrimitiveTriangles {
		t.Errorf("type/primitive = %v/%v", mh.IndexType, mh.Primitive)
	}
	if mh.IndexOffset != 0 || mh.IndexDataSize != 6 || mh.VertexDataSize != 36 {
		t.Errorf("data sizes = %d/%d/%d", mh.IndexOffset, mh.IndexDataSize, mh.VertexDataSize)
	}

	a, err := chunk.ReadAttribute(blob[tr.MeshHeaderSize:], tr)
	if err != nil {
		t.Fatalf("ReadAttribute: %v", err)
	}
	want := chunk.AttributeRecord{
		Format:       mesh.VertexFormatVector3,
		Name:         mesh.AttributePosition,
		IsOffsetOnly: true,
		VertexCount:  3,
		Stride:       12,
	}
	if a != want {
		t.Errorf("attribute = %+v, want %+v", a, want)
	}

	indices := blob[tr.MeshHeaderSize+tr.AttributeSize:]
	if !bytes.Equal(indices[:6], []byte{0, 0, 0, 1, 0, 2}) {
		t.Errorf("big-endian indices = % x", indices[:6])
	}
	vertices := indices[6:]
	if got := math.Float32frombits(binary.BigEndian.Uint32(vertices[32:])); got != 0.5 {
		t.Errorf("last position z = %v", got)
	}
}

func TestConvertDoesNotModifyInput(t *testing.T) {
	m := triangle()
	before := bytes.Clone(m.VertexData)
	beforeIdx := bytes.Clone(m.IndexData)
	for _, sig := range chunk.Signatures() {
		if _, err := New(WithSignature(sig)).Convert(m); err != nil {
			t.Fatalf("%v: %v", sig, err)
		}
	}
	if !bytes.Equal(before, m.VertexData) || !bytes.Equal(beforeIdx, m.IndexData) {
		t.Error("input buffers modified")
	}
}

func TestConvertIndexView(t *testing.T) {
	m := triangle()
	// two leading bytes outside the view
	m.IndexData = append([]byte{0xaa, 0xbb}, m.IndexData...)
	m.IndexOffset = 2

	blob, err := New(WithSignature(chunk.SignatureLittle32)).Convert(m)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(blob) != 48+20+6+36 {
		t.Errorf("len = %d", len(blob))
	}
	tr := chunk.TraitsFor(chunk.SignatureLittle32)
	mh, _ := chunk.ReadMeshHeader(blob, tr)
	if mh.IndexOffset != 0 || mh.IndexDataSize != 6 {
		t.Errorf("index offset/size = %d/%d", mh.IndexOffset, mh.IndexDataSize)
	}
	indices := blob[68:74]
	if !bytes.Equal(indices, []byte{0, 0, 1, 0, 2, 0}) {
		t.Errorf("indices = % x", indices)
	}
}

func TestConvertNonIndexed(t *testing.T) {
	m := triangle()
	m.IndexType = mesh.IndexTypeNone
	m.IndexData = nil
	m.IndexCount = 0

	blob, err := New(WithSignature(chunk.SignatureLittle64)).Convert(m)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(blob) != 64+24+36 {
		t.Errorf("len = %d", len(blob))
	}
	mh, _ := chunk.ReadMeshHeader(blob, chunk.TraitsFor(chunk.SignatureLittle64))
	if mh.IndexType != mesh.IndexTypeNone || mh.IndexCount != 0 || mh.IndexDataSize != 0 {
		t.Errorf("mesh header = %+v", mh)
	}
}

func TestConvertRejects(t *testing.T) {
	foreign := chunk.SignatureBig32
	if !chunk.HostIsLittleEndian() {
		foreign = chunk.SignatureLittle32
	}

	tests := []struct {
		name string
		sig  chunk.Signature
		mod  func(*mesh.Data) *mesh.Data
		kind errors.Kind
	}{
		{"nil mesh", chunk.SignatureLittle32, func(*mesh.Data) *mesh.Data { return nil }, errors.KindInvalidInput},
		{"bad signature", chunk.Signature(42), func(m *mesh.Data) *mesh.Data { return m }, errors.KindInvalidEnum},
		{"attribute past buffer", chunk.SignatureLittle32, func(m *mesh.Data) *mesh.Data {
			m.Attributes[0].Offset = 4
			return m
		}, errors.KindInvalidInput},
		{"index count past buffer", chunk.SignatureLittle32, func(m *mesh.Data) *mesh.Data {
			m.IndexCount = 4
			return m
		}, errors.KindInvalidInput},
		{"implementation-specific with swap", foreign, func(m *mesh.Data) *mesh.Data {
			m.Attributes = append(m.Attributes, mesh.Attribute{
				Name:   mesh.AttributeCustom(1),
				Format: mesh.VertexFormatWrap(0x1234),
				Stride: 12,
			})
			return m
		}, errors.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithSignature(tt.sig)).Convert(tt.mod(triangle()))
			if !errors.IsKind(err, tt.kind) {
				t.Fatalf("Convert() = %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestConvertImplementationSpecificNative(t *testing.T) {
	m := triangle()
	m.Attributes = append(m.Attributes, mesh.Attribute{
		Name:   mesh.AttributeCustom(1),
		Format: mesh.VertexFormatWrap(0x1234),
		Stride: 12,
	})
	blob, err := New().Convert(m)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	tr := chunk.TraitsFor(chunk.SignatureCurrent)
	a, err := chunk.ReadAttribute(blob[tr.MeshHeaderSize+tr.AttributeSize:], tr)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Format.IsImplementationSpecific() || a.Format.Unwrap() != 0x1234 {
		t.Errorf("format = %v", a.Format)
	}
}

func TestConvertTo(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithSignature(chunk.SignatureBig64))
	if err := c.ConvertTo(&buf, triangle()); err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	blob, _ := c.Convert(triangle())
	if !bytes.Equal(buf.Bytes(), blob) {
		t.Error("ConvertTo output differs from Convert")
	}
}

func TestConvertWideOffset(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("offset does not fit int on this host")
	}
	wide := uint64(1)<<32 + 8
	m := triangle()
	// empty attributes are not range-checked, so any offset is valid
	m.Attributes = append(m.Attributes, mesh.Attribute{
		Name:   mesh.AttributeColor,
		Format: mesh.VertexFormatVector4ubNormalized,
		Offset: int(wide),
		Stride: 4,
	})
	m.VertexCount = 0
	m.IndexType = mesh.IndexTypeNone
	m.IndexData = nil
	m.IndexCount = 0

	for _, sig := range []chunk.Signature{chunk.SignatureLittle32, chunk.SignatureBig32} {
		t.Run(sig.String(), func(t *testing.T) {
			c := New(WithSignature(sig))
			if _, err := c.Convert(m); !errors.IsKind(err, errors.KindOverflow) {
				t.Errorf("Convert() = %v, want overflow", err)
			}
			if _, err := c.Size(m); !errors.IsKind(err, errors.KindOverflow) {
				t.Errorf("Size() = %v, want overflow", err)
			}
		})
	}

	for _, sig := range []chunk.Signature{chunk.SignatureLittle64, chunk.SignatureBig64} {
		t.Run(sig.String(), func(t *testing.T) {
			blob, err := New(WithSignature(sig)).Convert(m)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			tr := chunk.TraitsFor(sig)
			a, err := chunk.ReadAttribute(blob[tr.MeshHeaderSize+tr.AttributeSize:], tr)
			if err != nil {
				t.Fatal(err)
			}
			if a.Offset != wide {
				t.Errorf("offset = %d, want %d", a.Offset, wide)
			}
		})
	}
}

func TestSizeMatchesConvert(t *testing.T) {
	for _, sig := range chunk.Signatures() {
		c := New(WithSignature(sig))
		for _, m := range []*mesh.Data{triangle(), nil} {
			size, sizeErr := c.Size(m)
			blob, convErr := c.Convert(m)
			if (sizeErr == nil) != (convErr == nil) {
				t.Errorf("%v: Size() error %v, Convert() error %v", sig, sizeErr, convErr)
				continue
			}
			if convErr == nil && size != uint64(len(blob)) {
				t.Errorf("%v: Size() = %d, Convert() wrote %d", sig, size, len(blob))
			}
		}
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(zap.NewNop())
		}()
		go func() {
			defer wg.Done()
			if _, err := New().Convert(triangle()); err != nil {
				t.Errorf("Convert: %v", err)
			}
		}()
	}
	wg.Wait()

	SetLogger(nil)
	if Logger() == nil {
		t.Error("Logger() = nil after SetLogger(nil)")
	}
}

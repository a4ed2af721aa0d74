package converter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/internal/swap"
	"github.com/wippyai/meshblob/mesh"
)

// Converter writes meshes as blobs of one signature.
type Converter struct {
	logger    *zap.Logger
	signature chunk.Signature
}

// Option configures a Converter.
type Option func(*Converter)

// WithSignature selects the output address width and byte order.
// The default is chunk.SignatureCurrent.
func WithSignature(sig chunk.Signature) Option {
	return func(c *Converter) {
		c.signature = sig
	}
}

// WithLogger sets the logger used by this converter.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{signature: chunk.SignatureCurrent}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Signature returns the configured signature, unresolved.
func (c *Converter) Signature() chunk.Signature {
	return c.signature
}

// Size returns the number of bytes Convert would produce for m without
// writing anything.
func (c *Converter) Size(m *mesh.Data) (uint64, error) {
	_, size, err := c.prepare(m)
	if err != nil {
		return 0, err
	}
	return size, nil
}

// Convert serializes m into a newly allocated blob.
func (c *Converter) Convert(m *mesh.Data) ([]byte, error) {
	t, size, err := c.prepare(m)
	if err != nil {
		return nil, err
	}

	// make zeroes the header padding bytes
	out := make([]byte, size)
	indexView := m.IndexBytes()

	h := chunk.MeshHeader{
		Header: chunk.Header{
			Signature:   t.Signature,
			Type:        chunk.TypeMesh,
			TypeVersion: 0,
			Size:        size,
		},
		VertexCount:    m.VertexCount,
		Primitive:      m.Primitive,
		AttributeCount: uint16(len(m.Attributes)),
		VertexDataSize: uint64(len(m.VertexData)),
	}
	if m.IsIndexed() {
		h.IndexCount = m.IndexCount
		h.IndexType = m.IndexType
		h.IndexOffset = 0
		h.IndexDataSize = uint64(len(indexView))
	}
	chunk.PutMeshHeader(out, t, h)
	pos := t.MeshHeaderSize

	for _, a := range m.Attributes {
		chunk.PutAttribute(out[pos:], t, chunk.AttributeRecord{
			Format:       a.Format,
			Name:         a.Name,
			IsOffsetOnly: true,
			VertexCount:  m.VertexCount,
			Stride:       a.Stride,
			ArraySize:    a.ArraySize,
			Offset:       uint64(a.Offset),
		})
		pos += t.AttributeSize
	}

	indexStart := pos
	pos += copy(out[pos:], indexView)
	if t.Swap {
		swap.Elements(out[indexStart:pos], m.IndexType.Size())
	}

	vertexStart := pos
	pos += copy(out[pos:], m.VertexData)
	if t.Swap {
		vertices := out[vertexStart:pos]
		for _, a := range m.Attributes {
			swap.Attribute(vertices, a, m.VertexCount)
		}
	}

	if uint64(pos) != size {
		panic(fmt.Sprintf("converter: wrote %d bytes, expected %d", pos, size))
	}

	c.logger.Debug("mesh serialized",
		zap.Stringer("signature", t.Signature),
		zap.Uint64("size", size),
		zap.Uint32("vertices", m.VertexCount),
		zap.Uint32("indices", h.IndexCount),
		zap.Int("attributes", len(m.Attributes)),
		zap.Bool("swapped", t.Swap))
	return out, nil
}

// ConvertTo serializes m and writes the blob to w.
func (c *Converter) ConvertTo(w io.Writer, m *mesh.Data) error {
	blob, err := c.Convert(m)
	if err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

// prepare validates m against the configured signature and returns the
// resolved traits and the blob size.
func (c *Converter) prepare(m *mesh.Data) (chunk.Traits, uint64, error) {
	if !c.signature.Valid() {
		return chunk.Traits{}, 0, errors.InvalidEnum(errors.PhaseConvert, []string{"signature"}, uint8(c.signature), "signature")
	}
	if err := m.Validate(); err != nil {
		return chunk.Traits{}, 0, errors.Wrap(errors.PhaseConvert, errors.KindInvalidInput, err, "invalid mesh")
	}
	if len(m.Attributes) > math.MaxUint16 {
		return chunk.Traits{}, 0, errors.Overflow(errors.PhaseConvert, []string{"attribute count"}, len(m.Attributes), "uint16")
	}

	t := chunk.TraitsFor(c.signature)
	for i, a := range m.Attributes {
		path := []string{"attribute", strconv.Itoa(i)}
		// empty attributes skip range validation, so their offset is unbounded
		if uint64(a.Offset) > t.MaxSize {
			return chunk.Traits{}, 0, errors.Overflow(errors.PhaseConvert, append(path, "offset"), a.Offset,
				"the offset field of "+t.Signature.String())
		}
		if t.Swap && a.Format.IsImplementationSpecific() {
			return chunk.Traits{}, 0, errors.Unsupported(errors.PhaseConvert, path, a.Format,
				fmt.Sprintf("cannot convert %s to %s: implementation-specific format has an unknown byte layout",
					a.Format, t.Signature))
		}
	}

	size := blobSize(t, m)
	if size > t.MaxSize {
		return chunk.Traits{}, 0, errors.Overflow(errors.PhaseConvert, []string{"size"}, size,
			"the size field of "+t.Signature.String())
	}
	if size > math.MaxInt {
		return chunk.Traits{}, 0, errors.Overflow(errors.PhaseConvert, []string{"size"}, size, "host memory")
	}
	return t, size, nil
}

func blobSize(t chunk.Traits, m *mesh.Data) uint64 {
	indexBytes := uint64(m.IndexCount) * uint64(m.IndexType.Size())
	return uint64(t.MeshHeaderSize) +
		uint64(len(m.Attributes))*uint64(t.AttributeSize) +
		indexBytes +
		uint64(len(m.VertexData))
}

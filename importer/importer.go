package importer

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/internal/swap"
	"github.com/wippyai/meshblob/mesh"
)

// Importer reads one blob at a time.
type Importer struct {
	logger *zap.Logger
	data   []byte
	header chunk.Header
	traits chunk.Traits
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used by this importer.
func WithLogger(l *zap.Logger) Option {
	return func(i *Importer) {
		i.logger = l
	}
}

// New creates an Importer with nothing opened.
func New(opts ...Option) *Importer {
	i := &Importer{}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = Logger()
	}
	if i.logger == nil {
		i.logger = zap.NewNop()
	}
	return i
}

// Open validates the header of data and keeps a copy of the blob. Bytes
// past the declared size are ignored. On failure any previously opened
// blob is closed.
func (i *Importer) Open(data []byte) error {
	i.Close()

	h, t, err := chunk.ReadHeader(data)
	if err != nil {
		return err
	}

	i.data = make([]byte, h.Size)
	copy(i.data, data)
	i.header = h
	i.traits = t

	if h.Type != chunk.TypeMesh {
		i.logger.Warn("blob holds no mesh",
			zap.Stringer("type", h.Type),
			zap.Uint16("type_version", h.TypeVersion))
	}
	i.logger.Debug("blob opened",
		zap.Stringer("signature", h.Signature),
		zap.Stringer("type", h.Type),
		zap.Uint64("size", h.Size),
		zap.Bool("swap", t.Swap))
	return nil
}

// IsOpened reports whether a blob is open.
func (i *Importer) IsOpened() bool {
	return i.data != nil
}

// Close releases the opened blob. It is a no-op when nothing is open.
func (i *Importer) Close() {
	i.data = nil
	i.header = chunk.Header{}
	i.traits = chunk.Traits{}
}

// Signature returns the signature of the opened blob.
func (i *Importer) Signature() chunk.Signature {
	return i.header.Signature
}

// Type returns the chunk type of the opened blob.
func (i *Importer) Type() chunk.Type {
	return i.header.Type
}

// TypeVersion returns the chunk type version of the opened blob.
func (i *Importer) TypeVersion() uint16 {
	return i.header.TypeVersion
}

// Size returns the declared size of the opened blob.
func (i *Importer) Size() uint64 {
	return i.header.Size
}

// Bytes returns the opened blob. The slice must not be modified.
func (i *Importer) Bytes() []byte {
	return i.data
}

// MeshCount returns 1 when the opened blob is a mesh chunk and 0 otherwise.
func (i *Importer) MeshCount() int {
	if !i.IsOpened() || i.header.Type != chunk.TypeMesh {
		return 0
	}
	return 1
}

// Mesh decodes mesh id from the opened blob.
func (i *Importer) Mesh(id int) (*mesh.Data, error) {
	if !i.IsOpened() {
		return nil, errors.NotInitialized(errors.PhaseExtract, "importer")
	}
	if id < 0 || id >= i.MeshCount() {
		return nil, errors.NotFound(errors.PhaseExtract, "mesh", id)
	}
	m, err := i.extract()
	if err != nil {
		i.logger.Debug("mesh extraction failed", zap.Error(err))
		return nil, err
	}
	i.logger.Debug("mesh extracted",
		zap.Uint32("vertices", m.VertexCount),
		zap.Uint32("indices", m.IndexCount),
		zap.Int("attributes", len(m.Attributes)))
	return m, nil
}

func (i *Importer) extract() (*mesh.Data, error) {
	t := i.traits
	data := i.data

	if i.header.TypeVersion != 0 {
		return nil, errors.Unsupported(errors.PhaseExtract, []string{"type version"}, i.header.TypeVersion,
			fmt.Sprintf("mesh version %d is not supported", i.header.TypeVersion))
	}
	if len(data) < t.MeshHeaderSize {
		return nil, errors.New(errors.PhaseExtract, errors.KindInvalidData).
			Path("mesh header").Value(len(data)).
			Detail("expected at least %d bytes, got %d", t.MeshHeaderSize, len(data)).Build()
	}

	h, err := chunk.ReadMeshHeader(data, t)
	if err != nil {
		return nil, err
	}

	expected, ok := structureSize(t, h)
	if !ok || expected != uint64(len(data)) {
		return nil, errors.New(errors.PhaseExtract, errors.KindInvalidData).
			Path("size").Value(len(data)).
			Detail("%d attributes, %d index bytes and %d vertex bytes do not add up to %d bytes",
				h.AttributeCount, h.IndexDataSize, h.VertexDataSize, len(data)).Build()
	}

	// sizes below fit in int: their sum equals len(data)
	indexStart := t.MeshHeaderSize + int(h.AttributeCount)*t.AttributeSize
	vertexStart := indexStart + int(h.IndexDataSize)

	out := &mesh.Data{
		Primitive:   h.Primitive,
		IndexType:   h.IndexType,
		VertexCount: h.VertexCount,
		VertexData:  append([]byte(nil), data[vertexStart:]...),
	}
	if out.VertexData == nil {
		out.VertexData = []byte{}
	}

	if err := i.extractIndices(out, h, data[indexStart:vertexStart]); err != nil {
		return nil, err
	}

	out.Attributes = make([]mesh.Attribute, 0, h.AttributeCount)
	for n := 0; n < int(h.AttributeCount); n++ {
		rec := data[t.MeshHeaderSize+n*t.AttributeSize:]
		a, err := chunk.ReadAttribute(rec[:t.AttributeSize], t)
		if err != nil {
			return nil, err
		}
		attr, err := i.checkAttribute(n, a, h)
		if err != nil {
			return nil, err
		}
		if t.Swap {
			swap.Attribute(out.VertexData, attr, h.VertexCount)
		}
		out.Attributes = append(out.Attributes, attr)
	}
	return out, nil
}

func (i *Importer) extractIndices(out *mesh.Data, h chunk.MeshHeader, block []byte) error {
	switch {
	case !h.IndexType.Valid():
		return errors.New(errors.PhaseExtract, errors.KindInvalidData).
			Path("index type").Value(uint8(h.IndexType)).
			Detail("unknown index type %d", uint8(h.IndexType)).Build()
	case !out.IsIndexed():
		if h.IndexCount != 0 || h.IndexDataSize != 0 {
			return errors.New(errors.PhaseExtract, errors.KindInvalidData).
				Path("indices").Value(h.IndexCount).
				Detail("%d indices in %d bytes on a non-indexed mesh", h.IndexCount, h.IndexDataSize).Build()
		}
		return nil
	}

	viewSize := uint64(h.IndexCount) * uint64(h.IndexType.Size())
	end, carry := bits.Add64(h.IndexOffset, viewSize, 0)
	if carry != 0 || end > h.IndexDataSize {
		if carry != 0 {
			end = math.MaxUint64
		}
		return errors.OutOfBounds(errors.PhaseExtract, []string{"indices"}, end, h.IndexDataSize)
	}

	out.IndexData = append([]byte(nil), block...)
	if i.traits.Swap {
		swap.Elements(out.IndexData, h.IndexType.Size())
	}
	out.IndexOffset = int(h.IndexOffset)
	out.IndexCount = h.IndexCount
	return nil
}

func (i *Importer) checkAttribute(n int, a chunk.AttributeRecord, h chunk.MeshHeader) (mesh.Attribute, error) {
	path := []string{"attribute", strconv.Itoa(n)}
	invalid := func(value any, format string, args ...any) error {
		return errors.New(errors.PhaseExtract, errors.KindInvalidData).
			Path(path...).Value(value).Detail(format, args...).Build()
	}

	if !a.IsOffsetOnly {
		return mesh.Attribute{}, invalid(a.IsOffsetOnly, "attribute data is not offset-only")
	}
	if a.VertexCount != h.VertexCount {
		return mesh.Attribute{}, invalid(a.VertexCount, "%d vertices, mesh has %d", a.VertexCount, h.VertexCount)
	}
	if !a.Format.Valid() {
		return mesh.Attribute{}, invalid(uint32(a.Format), "unknown vertex format 0x%08x", uint32(a.Format))
	}
	if a.Format.IsImplementationSpecific() && i.traits.Swap {
		return mesh.Attribute{}, errors.Unsupported(errors.PhaseExtract, path, a.Format,
			fmt.Sprintf("cannot swap %s from a %s blob", a.Format, i.traits.Signature))
	}
	if a.VertexCount != 0 {
		if err := checkRange(path, a, h.VertexDataSize); err != nil {
			return mesh.Attribute{}, err
		}
	}
	if a.Offset > math.MaxInt {
		return mesh.Attribute{}, errors.Overflow(errors.PhaseExtract, append(path, "offset"), a.Offset, "int")
	}
	return mesh.Attribute{
		Name:      a.Name,
		Format:    a.Format,
		Offset:    int(a.Offset),
		Stride:    a.Stride,
		ArraySize: a.ArraySize,
	}, nil
}

func checkRange(path []string, a chunk.AttributeRecord, vertexDataSize uint64) error {
	elementSize := a.Format.Size()
	if a.ArraySize > 1 {
		elementSize *= int(a.ArraySize)
	}
	lo, hi, ok := attributeRange(a, elementSize)
	if !ok {
		return errors.OutOfBounds(errors.PhaseExtract, path, a.Offset, vertexDataSize)
	}
	if lo < 0 {
		return errors.New(errors.PhaseExtract, errors.KindOutOfBounds).
			Path(path...).Value(lo).
			Detail("stride %d walks %d bytes before the vertex data", a.Stride, -lo).Build()
	}
	if uint64(hi) > vertexDataSize {
		return errors.OutOfBounds(errors.PhaseExtract, path, uint64(hi), vertexDataSize)
	}
	return nil
}

// attributeRange returns the lowest and one-past-highest byte of the
// attribute view. ok is false when the range does not fit in int64.
func attributeRange(a chunk.AttributeRecord, elementSize int) (lo, hi int64, ok bool) {
	if a.Offset > math.MaxInt64/2 {
		return 0, 0, false
	}
	first := int64(a.Offset)
	// at most 2^32 * 2^15, no overflow
	last := first + int64(a.VertexCount-1)*int64(a.Stride)
	lo, hi = first, last
	if last < first {
		lo, hi = last, first
	}
	return lo, hi + int64(elementSize), true
}

// structureSize returns the byte size implied by the mesh header fields.
func structureSize(t chunk.Traits, h chunk.MeshHeader) (uint64, bool) {
	fixed := uint64(t.MeshHeaderSize) + uint64(h.AttributeCount)*uint64(t.AttributeSize)
	sum, c1 := bits.Add64(fixed, h.IndexDataSize, 0)
	sum, c2 := bits.Add64(sum, h.VertexDataSize, 0)
	return sum, c1 == 0 && c2 == 0
}

// String describes the opened blob.
func (i *Importer) String() string {
	if !i.IsOpened() {
		return "importer(closed)"
	}
	return fmt.Sprintf("importer(%s %s v%d, %d bytes)",
		i.header.Signature, i.header.Type, i.header.TypeVersion, i.header.Size)
}

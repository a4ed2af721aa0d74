package meshblob

import (
	"go.uber.org/zap"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/converter"
	"github.com/wippyai/meshblob/importer"
	"github.com/wippyai/meshblob/mesh"
)

// Variant describes the layout of one signature.
type Variant struct {
	Signature      chunk.Signature
	HeaderSize     int
	MeshHeaderSize int
	AttributeSize  int
}

// Variants lists every selectable signature with its resolved layout,
// starting with the host variant.
func Variants() []Variant {
	sigs := chunk.Signatures()
	out := make([]Variant, 0, len(sigs))
	for _, sig := range sigs {
		t := chunk.TraitsFor(sig)
		out = append(out, Variant{
			Signature:      sig,
			HeaderSize:     t.HeaderSize,
			MeshHeaderSize: t.MeshHeaderSize,
			AttributeSize:  t.AttributeSize,
		})
	}
	return out
}

// Serialize writes m as a blob of the given signature.
func Serialize(m *mesh.Data, sig chunk.Signature) ([]byte, error) {
	return converter.New(converter.WithSignature(sig)).Convert(m)
}

// Open returns an importer with data opened.
func Open(data []byte) (*importer.Importer, error) {
	imp := importer.New()
	if err := imp.Open(data); err != nil {
		return nil, err
	}
	return imp, nil
}

// Decode opens data and extracts its mesh.
func Decode(data []byte) (*mesh.Data, error) {
	imp, err := Open(data)
	if err != nil {
		return nil, err
	}
	defer imp.Close()
	return imp.Mesh(0)
}

// SetLogger sets the package logger of both the converter and the importer.
func SetLogger(l *zap.Logger) {
	converter.SetLogger(l)
	importer.SetLogger(l)
}

package main

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/wippyai/meshblob/converter"
	"github.com/wippyai/meshblob/mesh"
)

// sampleTriangle returns an indexed triangle with interleaved float
// positions and half-float normals.
func sampleTriangle() *mesh.Data {
	const stride = 12 + 8
	positions := [][3]float32{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}
	vertices := make([]byte, len(positions)*stride)
	for v, p := range positions {
		base := v * stride
		for c, f := range p {
			binary.NativeEndian.PutUint32(vertices[base+c*4:], math.Float32bits(f))
		}
		normal := [4]float32{0, 0, 1, 0}
		for c, f := range normal {
			binary.NativeEndian.PutUint16(vertices[base+12+c*2:], float16.Fromfloat32(f).Bits())
		}
	}

	indices := make([]byte, 3*2)
	for i, v := range []uint16{0, 1, 2} {
		binary.NativeEndian.PutUint16(indices[i*2:], v)
	}

	return &mesh.Data{
		Primitive:   mesh.PrimitiveTriangles,
		IndexType:   mesh.IndexTypeUnsignedShort,
		IndexData:   indices,
		IndexCount:  3,
		VertexData:  vertices,
		VertexCount: uint32(len(positions)),
		Attributes: []mesh.Attribute{
			{Name: mesh.AttributePosition, Format: mesh.VertexFormatVector3, Offset: 0, Stride: stride},
			{Name: mesh.AttributeNormal, Format: mesh.VertexFormatVector3h, Offset: 12, Stride: stride},
		},
	}
}

func runTriangle(env *environment, args []string) error {
	fs := newFlagSet("triangle")
	sigName := fs.String("signature", "", "output variant: current, little32, little64, big32, big64")
	rest, err := env.parse(fs, args, 1)
	if err != nil {
		return err
	}
	sig, err := env.signature(*sigName)
	if err != nil {
		return err
	}

	blob, err := converter.New(converter.WithSignature(sig), converter.WithLogger(env.logger)).Convert(sampleTriangle())
	if err != nil {
		return err
	}
	return env.writeBlob(rest[0], blob)
}

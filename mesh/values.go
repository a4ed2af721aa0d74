package mesh

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/x448/float16"

	"github.com/wippyai/meshblob/errors"
)

// AttributeFloats decodes every value of attribute id into float32
// components, one slice per vertex. Array elements and matrix vectors are
// flattened in memory order. Normalized integers map to [0,1] or [-1,1].
func (d *Data) AttributeFloats(id int) ([][]float32, error) {
	if id < 0 || id >= len(d.Attributes) {
		return nil, errors.NotFound(errors.PhaseValidate, "attribute", id)
	}
	a := d.Attributes[id]
	if a.Format.IsImplementationSpecific() {
		return nil, errors.New(errors.PhaseValidate, errors.KindUnsupported).
			Path("attribute", strconv.Itoa(id)).Value(a.Format).
			Detail("cannot decode implementation-specific format %s", a.Format).Build()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	t := a.Format.ComponentType()
	size := t.Size()
	normalized := a.Format.IsNormalized()
	n := a.ElementSize() / size

	out := make([][]float32, d.VertexCount)
	for v := range out {
		element := d.AttributeElement(id, v)
		values := make([]float32, n)
		for c := range values {
			values[c] = component(element[c*size:], t, normalized)
		}
		out[v] = values
	}
	return out, nil
}

func component(b []byte, t ComponentType, normalized bool) float32 {
	switch t {
	case ComponentUnsignedByte:
		if normalized {
			return float32(b[0]) / math.MaxUint8
		}
		return float32(b[0])
	case ComponentByte:
		if normalized {
			return math32.Max(float32(int8(b[0]))/math.MaxInt8, -1)
		}
		return float32(int8(b[0]))
	case ComponentUnsignedShort:
		v := binary.NativeEndian.Uint16(b)
		if normalized {
			return float32(v) / math.MaxUint16
		}
		return float32(v)
	case ComponentShort:
		v := int16(binary.NativeEndian.Uint16(b))
		if normalized {
			return math32.Max(float32(v)/math.MaxInt16, -1)
		}
		return float32(v)
	case ComponentUnsignedInt:
		return float32(binary.NativeEndian.Uint32(b))
	case ComponentInt:
		return float32(int32(binary.NativeEndian.Uint32(b)))
	case ComponentHalf:
		return float16.Frombits(binary.NativeEndian.Uint16(b)).Float32()
	case ComponentFloat:
		return math.Float32frombits(binary.NativeEndian.Uint32(b))
	case ComponentDouble:
		return float32(math.Float64frombits(binary.NativeEndian.Uint64(b)))
	default:
		return 0
	}
}

// Bounds returns the axis-aligned bounding box of the first position
// attribute. ok is false if there is no decodable position data.
func (d *Data) Bounds() (min, max [3]float32, ok bool) {
	id, found := d.AttributeID(AttributePosition, 0)
	if !found || d.VertexCount == 0 {
		return min, max, false
	}
	values, err := d.AttributeFloats(id)
	if err != nil {
		return min, max, false
	}

	for i := range min {
		min[i] = math32.Inf(1)
		max[i] = math32.Inf(-1)
	}
	for _, v := range values {
		for i := 0; i < len(v) && i < 3; i++ {
			min[i] = math32.Min(min[i], v[i])
			max[i] = math32.Max(max[i], v[i])
		}
	}
	// Unused axes of 2D positions collapse to zero.
	for i := range min {
		if math32.IsInf(min[i], 1) {
			min[i], max[i] = 0, 0
		}
	}
	return min, max, true
}

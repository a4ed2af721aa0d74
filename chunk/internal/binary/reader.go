package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader reads fixed-width fields from a byte slice.
//
// The first read past the end of the data records an error and every
// later read returns zero; check Err once after a group of reads.
type Reader struct {
	order binary.ByteOrder
	err   error
	data  []byte
	pos   int
}

// NewReader creates a Reader over data using the given byte order.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data)-r.pos < n {
		r.err = r.wrapError(io.ErrUnexpectedEOF)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// U8 reads a single byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads a uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

// U32 reads a uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// U64 reads a uint64.
func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return r.order.Uint64(b)
}

// Word reads a uint64 if wide, otherwise a uint32 widened to uint64.
func (r *Reader) Word(wide bool) uint64 {
	if wide {
		return r.U64()
	}
	return uint64(r.U32())
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

package binary

import (
	"encoding/binary"
)

// Writer writes fixed-width fields into a preallocated buffer.
// Writing past the end of the buffer panics; callers size the buffer from
// the layout tables before writing.
type Writer struct {
	order binary.ByteOrder
	buf   []byte
	pos   int
}

// NewWriter creates a Writer over buf using the given byte order.
func NewWriter(buf []byte, order binary.ByteOrder) *Writer {
	return &Writer{buf: buf, order: order}
}

// Position returns the number of bytes written so far.
func (w *Writer) Position() int {
	return w.pos
}

// U8 writes a single byte.
func (w *Writer) U8(b uint8) {
	w.buf[w.pos] = b
	w.pos++
}

// WriteBytes writes a byte slice verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.pos += copy(w.buf[w.pos:w.pos+len(data)], data)
}

// Zero writes n zero bytes.
func (w *Writer) Zero(n int) {
	clear(w.buf[w.pos : w.pos+n])
	w.pos += n
}

// U16 writes a uint16.
func (w *Writer) U16(v uint16) {
	w.order.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

// U32 writes a uint32.
func (w *Writer) U32(v uint32) {
	w.order.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

// U64 writes a uint64.
func (w *Writer) U64(v uint64) {
	w.order.PutUint64(w.buf[w.pos:], v)
	w.pos += 8
}

// Word writes v as a uint64 if wide, otherwise truncated to a uint32.
func (w *Writer) Word(v uint64, wide bool) {
	if wide {
		w.U64(v)
		return
	}
	w.U32(uint32(v))
}

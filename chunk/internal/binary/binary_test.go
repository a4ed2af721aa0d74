package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWriterFields(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		want  []byte
	}{
		{"little", binary.LittleEndian, []byte{
			0x7f,
			0x02, 0x01,
			0x06, 0x05, 0x04, 0x03,
			0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08, 0x07,
			0x00, 0x00,
		}},
		{"big", binary.BigEndian, []byte{
			0x7f,
			0x01, 0x02,
			0x03, 0x04, 0x05, 0x06,
			0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
			0x00, 0x00,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{0xff}, len(tt.want))
			w := NewWriter(buf, tt.order)
			w.U8(0x7f)
			w.U16(0x0102)
			w.U32(0x03040506)
			w.U64(0x0708090a0b0c0d0e)
			w.Zero(2)
			if w.Position() != len(tt.want) {
				t.Errorf("Position() = %d, want %d", w.Position(), len(tt.want))
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("got % x, want % x", buf, tt.want)
			}
		})
	}
}

func TestWriterWord(t *testing.T) {
	buf := make([]byte, 12)
	w := NewWriter(buf, binary.BigEndian)
	w.Word(0x1122334455, false)
	w.Word(0x1122334455, true)
	want := []byte{0x22, 0x33, 0x44, 0x55, 0, 0, 0, 0x11, 0x22, 0x33, 0x44, 0x55}
	if !bytes.Equal(buf, want) {
		t.Errorf("got % x, want % x", buf, want)
	}
}

func TestReaderRoundtrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		buf := make([]byte, 1+2+4+8+4+8)
		w := NewWriter(buf, order)
		w.U8(9)
		w.U16(0xbeef)
		w.U32(0xdeadbeef)
		w.U64(0x0123456789abcdef)
		w.Word(77, false)
		w.Word(1<<40, true)

		r := NewReader(buf, order)
		if got := r.U8(); got != 9 {
			t.Errorf("%v U8 = %d", order, got)
		}
		if got := r.U16(); got != 0xbeef {
			t.Errorf("%v U16 = 0x%x", order, got)
		}
		if got := r.U32(); got != 0xdeadbeef {
			t.Errorf("%v U32 = 0x%x", order, got)
		}
		if got := r.U64(); got != 0x0123456789abcdef {
			t.Errorf("%v U64 = 0x%x", order, got)
		}
		if got := r.Word(false); got != 77 {
			t.Errorf("%v Word(false) = %d", order, got)
		}
		if got := r.Word(true); got != 1<<40 {
			t.Errorf("%v Word(true) = %d", order, got)
		}
		if r.Err() != nil {
			t.Errorf("%v Err = %v", order, r.Err())
		}
	}
}

func TestReaderShort(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, binary.LittleEndian)
	r.Skip(1)
	if got := r.U32(); got != 0 {
		t.Errorf("U32 past end = %d, want 0", got)
	}
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Fatalf("Err = %v, want ErrUnexpectedEOF", r.Err())
	}
	// sticky: later reads that would fit still fail
	if got := r.U8(); got != 0 {
		t.Errorf("U8 after error = %d", got)
	}
	if !strings.Contains(r.Err().Error(), "at position 1") {
		t.Errorf("Err = %v, want the position of the failed read", r.Err())
	}
}

func TestWriterBytes(t *testing.T) {
	buf := bytes.Repeat([]byte{0xff}, 5)
	w := NewWriter(buf, binary.LittleEndian)
	w.WriteBytes([]byte("abc"))
	w.Zero(2)
	if w.Position() != 5 {
		t.Errorf("Position() = %d, want 5", w.Position())
	}
	if string(buf) != "abc\x00\x00" {
		t.Errorf("got % x", buf)
	}
}

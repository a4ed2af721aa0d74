// Package compress frames stored blobs with zstd or lz4.
//
// Both codecs use their standard frame formats, so files written here can
// be read by the zstd and lz4 command-line tools and the other way round.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a compression frame format.
type Codec uint8

const (
	// None passes data through unchanged.
	None Codec = iota
	// Zstd is the Zstandard frame format.
	Zstd
	// LZ4 is the LZ4 frame format.
	LZ4
)

// MaxDecodedSize bounds the output of Decompress.
const MaxDecodedSize = 1 << 32

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Extension returns the file suffix of the codec, empty for None.
func (c Codec) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCodec parses a codec from its name.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// ForPath selects a codec from the file extension of path.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Detect identifies the codec from the frame magic at the start of data.
func Detect(data []byte) Codec {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// Compress frames data with codec. Level follows the codec's own scale:
// 1 to 22 for zstd, 1 to 9 for lz4. Zero selects the codec default.
func Compress(data []byte, codec Codec, level int) ([]byte, error) {
	switch codec {
	case None:
		return data, nil
	case Zstd:
		return compressZstd(data, level)
	case LZ4:
		return compressLZ4(data, level)
	default:
		return nil, fmt.Errorf("unsupported compression codec: %s", codec)
	}
}

// Decompress removes the codec frame from data.
func Decompress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case None:
		return data, nil
	case Zstd:
		return decompressZstd(data)
	case LZ4:
		return decompressLZ4(data)
	default:
		return nil, fmt.Errorf("unsupported compression codec: %s", codec)
	}
}

func compressZstd(data []byte, level int) ([]byte, error) {
	encoderLevel := zstd.SpeedDefault
	if level > 0 {
		encoderLevel = zstd.EncoderLevelFromZstd(level)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encoderLevel))
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

func compressLZ4(data []byte, level int) ([]byte, error) {
	if level < 0 || level >= len(lz4Levels) {
		return nil, fmt.Errorf("lz4 compress: level %d outside 0..%d", level, len(lz4Levels)-1)
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(io.LimitReader(zr, MaxDecodedSize+1))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if int64(len(out)) > MaxDecodedSize {
		return nil, fmt.Errorf("lz4 decompress: output exceeds %d bytes", MaxDecodedSize)
	}
	return out, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/meshblob/internal/compress"
)

// readBlob reads path, or stdin for "-", and strips any zstd or lz4 frame.
func (env *environment) readBlob(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(env.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	codec := compress.Detect(data)
	if codec == compress.None {
		return data, nil
	}
	out, err := compress.Decompress(data, codec)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	env.logger.Debug("decompressed input",
		zap.String("path", path),
		zap.Stringer("codec", codec),
		zap.Int("compressed", len(data)),
		zap.Int("size", len(out)))
	return out, nil
}

// writeBlob writes data to path, or stdout for "-". The codec comes from
// the file extension, falling back to the configured codec.
func (env *environment) writeBlob(path string, data []byte) error {
	codec := compress.ForPath(path)
	if codec == compress.None {
		var err error
		codec, err = compress.ParseCodec(env.config.Compression.Codec)
		if err != nil {
			return err
		}
	}

	if path == "-" && isTerminal(env.stdout) {
		return fmt.Errorf("refusing to write binary data to a terminal; redirect stdout or name an output file")
	}

	out, err := compress.Compress(data, codec, env.config.Compression.Level)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if path == "-" {
		_, err = env.stdout.Write(out)
	} else {
		err = os.WriteFile(path, out, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	env.logger.Debug("wrote blob",
		zap.String("path", path),
		zap.Stringer("codec", codec),
		zap.Int("size", len(data)),
		zap.Int("written", len(out)))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

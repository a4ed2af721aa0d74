package main

import (
	"go.uber.org/zap"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/converter"
	"github.com/wippyai/meshblob/importer"
)

// signature returns the named signature, or the configured default when
// name is empty.
func (env *environment) signature(name string) (chunk.Signature, error) {
	if name == "" {
		return env.config.Signature, nil
	}
	return chunk.ParseSignature(name)
}

func runConvert(env *environment, args []string) error {
	fs := newFlagSet("convert")
	sigName := fs.String("signature", "", "output variant: current, little32, little64, big32, big64")
	rest, err := env.parse(fs, args, 2)
	if err != nil {
		return err
	}
	sig, err := env.signature(*sigName)
	if err != nil {
		return err
	}

	data, err := env.readBlob(rest[0])
	if err != nil {
		return err
	}
	imp := importer.New(importer.WithLogger(env.logger))
	if err := imp.Open(data); err != nil {
		return err
	}
	defer imp.Close()
	m, err := imp.Mesh(0)
	if err != nil {
		return err
	}

	blob, err := converter.New(converter.WithSignature(sig), converter.WithLogger(env.logger)).Convert(m)
	if err != nil {
		return err
	}
	env.logger.Info("converted",
		zap.Stringer("from", imp.Signature()),
		zap.Stringer("to", sig.Resolve()),
		zap.Int("size", len(blob)))
	return env.writeBlob(rest[1], blob)
}

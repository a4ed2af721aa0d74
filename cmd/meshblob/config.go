package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/meshblob/chunk"
	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/internal/compress"
)

// Config holds command defaults read from the YAML config file.
type Config struct {
	// Signature is the default output variant of convert and triangle.
	Signature chunk.Signature `yaml:"signature"`
	// Compression applies to outputs without a compression extension.
	Compression CompressionConfig `yaml:"compression"`
	LogLevel    string            `yaml:"log_level"`
}

// CompressionConfig selects the codec and level for written blobs.
type CompressionConfig struct {
	Codec string `yaml:"codec"`
	Level int    `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Signature: chunk.SignatureCurrent,
		LogLevel:  "warn",
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/meshblob/config.yaml, falling
// back to the user config directory of the platform.
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "meshblob", "config.yaml")
}

// LoadConfig reads path over the defaults. An empty path reads the default
// location if a file exists there.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enum-like fields.
func (c Config) Validate() error {
	if !c.Signature.Valid() {
		return errors.InvalidEnum(errors.PhaseConfig, []string{"signature"}, c.Signature, "signature")
	}
	if _, err := compress.ParseCodec(c.Compression.Codec); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidEnum, err, "compression.codec")
	}
	if c.Compression.Level < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("compression", "level").Value(c.Compression.Level).
			Detail("negative compression level %d", c.Compression.Level).Build()
	}
	return nil
}

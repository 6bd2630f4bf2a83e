package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// FromReader parses and validates a config from r. Environment variable
// references ($VAR or ${VAR}) in the document are substituted before decoding.
func FromReader(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	expanded, err := envsubst.Bytes(raw)
	if err != nil {
		return nil, errors.Wrap(err, "cannot substitute environment variables in config")
	}
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(expanded))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config is invalid")
	}
	return &cfg, nil
}

// FromFile reads, substitutes, parses, and validates the config at path.
func FromFile(path string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open config %q", path)
	}
	defer utils.UncheckedErrorFunc(f.Close)
	cfg, err := FromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in config %q", path)
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// layer is one configuration source. Layers registered earlier win: merge
// only fills fields that are still zero.
type layer struct {
	source string
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []layer
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]layer, 0, 4)}
}

func (b *configBuilder) add(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.layers = append(b.layers, layer{source: source, cfg: cfg})
	return b
}

func (b *configBuilder) merge() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(merged, l.cfg); err != nil {
			return nil, fmt.Errorf("merge %s config: %w", l.source, err)
		}
	}
	return merged, nil
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	cfg, err := b.merge()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := &StructuredConfig{}
	return b.add("env", cfg, parseEnv(cfg))
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	cfg, err := parseFlags(args)
	return b.add("flags", cfg, err)
}

// withJSONPath registers an explicit JSON path. The client uses it because
// its flags belong to the command tree.
func (b *configBuilder) withJSONPath(path string) *configBuilder {
	if path == "" {
		return b
	}
	return b.add("json path", &StructuredConfig{JSONFilePath: path}, nil)
}

// withJSON reads the file named by the first layer that sets a path. It is
// skipped once an earlier source failed.
func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}
	for _, l := range b.layers {
		if l.cfg.JSONFilePath == "" {
			continue
		}
		cfg, err := parseJSON(l.cfg.JSONFilePath)
		return b.add("json "+l.cfg.JSONFilePath, cfg, err)
	}
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("defaults", defaults(), nil)
}

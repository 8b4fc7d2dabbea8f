package filestore

import (
	"encoding/json"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
	"gopkg.in/yaml.v3"
)

// Codec serializes whole collections.
type Codec interface {
	// Name is the format name used in configuration.
	Name() string
	// Ext is the file extension, without the dot.
	Ext() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// CodecFor returns the codec registered under format.
// An empty format selects JSON.
func CodecFor(format string) (Codec, error) {
	switch format {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCodec, format)
	}
}

// JSONCodec stores collections as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Ext() string  { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAMLCodec stores collections as YAML documents.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }
func (YAMLCodec) Ext() string  { return "yaml" }

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

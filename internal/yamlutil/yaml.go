// Package yamlutil decodes and encodes the site configuration file.
// It is the only package that imports the YAML library.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize bounds how much YAML is read from one source.
var MaxDocumentSize int64 = 1 << 20

var (
	ErrEmptyDocument = errors.New("yamlutil: empty document")
	ErrNilTarget     = errors.New("yamlutil: nil decode target")
	ErrTooLarge      = errors.New("yamlutil: document exceeds maximum size")
)

// Mode selects how unknown keys are treated during decoding.
type Mode int

const (
	// Lenient ignores keys that have no matching field.
	Lenient Mode = iota
	// Strict rejects keys that have no matching field.
	Strict
)

func (m Mode) options() []yaml.DecodeOption {
	if m == Strict {
		return []yaml.DecodeOption{yaml.Strict()}
	}
	return nil
}

// Decode parses data into v.
func Decode(data []byte, v any, mode Mode) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if int64(len(data)) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxDocumentSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, mode.options()...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeReader reads at most MaxDocumentSize+1 bytes from r and decodes them.
func DecodeReader(r io.Reader, v any, mode Mode) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	return Decode(data, v, mode)
}

// Encode renders v as block-style YAML with two-space indentation and
// indented sequences.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

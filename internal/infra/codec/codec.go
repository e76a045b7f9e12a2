// Package codec serializes store snapshots as JSON or YAML.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"missioncontrol/internal/infra/persistence/memory"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyPayload is returned when a decode source holds no document.
var ErrEmptyPayload = errors.New("codec: snapshot payload is empty")

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("codec: unknown format %q", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(name string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	return f, err == nil
}

// Encode writes snapshot to w.
func Encode(w io.Writer, f Format, snapshot memory.Snapshot) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("codec: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("codec: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("codec: encode yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("codec: unknown format %q", f)
}

// Decode reads one snapshot from r. Unknown fields are rejected. The result
// is not validated; ImportState does that.
func Decode(r io.Reader, f Format) (memory.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return memory.Snapshot{}, fmt.Errorf("codec: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return memory.Snapshot{}, ErrEmptyPayload
	}
	var snapshot memory.Snapshot
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snapshot); err != nil {
			return memory.Snapshot{}, fmt.Errorf("codec: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&snapshot); err != nil {
			return memory.Snapshot{}, fmt.Errorf("codec: decode yaml: %w", err)
		}
	default:
		return memory.Snapshot{}, fmt.Errorf("codec: unknown format %q", f)
	}
	return snapshot, nil
}

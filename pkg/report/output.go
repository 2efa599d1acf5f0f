package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format selects how the final result is printed.
type Format string

const (
	// FormatText narrates progress and prints no record.
	FormatText Format = "text"

	// FormatJSON prints only the record, as indented JSON.
	FormatJSON Format = "json"

	// FormatYAML prints only the record, as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (expected text, json or yaml)", name)
	}
}

// Structured reports whether the format suppresses narration.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Marshal encodes v in the given structured format.
func Marshal(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("format %q has no record encoding", format)
	}
}

// Render writes v to w in a structured format. Text format writes nothing.
func Render(w io.Writer, format Format, v any) error {
	if !format.Structured() {
		return nil
	}
	data, err := Marshal(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WriteFile writes v to path, creating parent directories as needed.
func WriteFile(fs afero.Fs, path string, v any) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create result directory: %w", err)
		}
	}

	data, err := Marshal(FormatForPath(path), v)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

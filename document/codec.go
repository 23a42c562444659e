package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that
// is not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a document in the given format.
func Decode(r io.Reader, f Format) (*Document, error) {
	doc := New()
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("document: decode yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("document: decode json: %w", err)
		}
	}
	return doc, nil
}

// Encode writes doc in the given format. JSON is indented by two spaces.
func Encode(w io.Writer, f Format, doc *Document) error {
	if doc == nil {
		doc = New()
	}
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("document: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("document: encode json: %w", err)
		}
		return nil
	}
}

// Marshal encodes doc to bytes.
func Marshal(f Format, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFile reads a document, choosing the format from the extension.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: load %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("document: load %s: %w", path, err)
	}
	return doc, nil
}

// SaveFile writes doc to path, creating parent directories. The file is
// written next to the target and renamed into place.
func SaveFile(path string, doc *Document) error {
	data, err := Marshal(FormatFromPath(path), doc)
	if err != nil {
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	return nil
}

package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/graph-module/graphdraw/pkg/model"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a model to indented JSON bytes.
func Marshal(m *model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(FromModel(m), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a model as JSON to path with 0644 permissions.
func WriteFile(m *model.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(FromModel(m), f)
}

// Write writes a model as JSON to w.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(m *model.Model, w io.Writer) error {
	return writeTo(FromModel(m), w)
}

// Unmarshal decodes a JSON document.
func Unmarshal(data []byte) (Document, error) {
	return readFrom(bytes.NewReader(data))
}

// ReadFile reads a JSON document from path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

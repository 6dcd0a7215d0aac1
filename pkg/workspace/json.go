package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal converts a workspace to indented JSON bytes.
func Marshal(w *Workspace) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(w, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a workspace as JSON to an io.Writer.
func Write(w *Workspace, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromWorkspace(w)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a workspace to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(w *Workspace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(w, f)
}

// Read decodes a JSON workspace from an io.Reader.
// Returns validation errors for malformed documents or model constraint
// violations. Read does not close r.
func Read(r io.Reader) (*Workspace, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToWorkspace(doc)
}

// ReadFile reads a JSON file and returns the decoded workspace.
func ReadFile(path string) (*Workspace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

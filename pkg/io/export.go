package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/timohermans/rabo-overview/pkg/flow"
)

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g flow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MarshalGraph returns the compact JSON encoding of g. Equal graphs produce
// equal bytes.
func MarshalGraph(g flow.Graph) ([]byte, error) {
	return json.Marshal(normalize(g))
}

// normalize encodes nil slices as empty arrays.
func normalize(g flow.Graph) flow.Graph {
	return flow.Assemble(g.Nodes, g.Links)
}

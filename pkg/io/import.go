package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/timohermans/rabo-overview/pkg/digraph"
	"github.com/timohermans/rabo-overview/pkg/flow"
)

// ErrNegativeValue is returned for a link with a value below zero.
var ErrNegativeValue = errors.New("negative link value")

// ReadJSON decodes a flow graph from r and validates it.
//
// ReadJSON returns an error if the JSON is malformed, a node name is empty
// or duplicated, a link refers to an unknown node, or a link value is
// negative. Errors wrap the [digraph] sentinels where they apply. Cycles are
// allowed. ReadJSON does not close r.
func ReadJSON(r io.Reader) (flow.Graph, error) {
	var g flow.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return flow.Graph{}, fmt.Errorf("decode: %w", err)
	}
	if err := validate(g); err != nil {
		return flow.Graph{}, err
	}
	return flow.Assemble(g.Nodes, g.Links), nil
}

// ImportJSON reads and validates the JSON file at path.
func ImportJSON(path string) (flow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func validate(g flow.Graph) error {
	dg := digraph.New()
	for _, n := range g.Nodes {
		if err := dg.AddNode(n.Name); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
	}
	for _, l := range g.Links {
		if err := dg.AddEdge(l.Source, l.Target); err != nil {
			return fmt.Errorf("link %s->%s: %w", l.Source, l.Target, err)
		}
		if l.Value.IsNegative() {
			return fmt.Errorf("link %s->%s: %w", l.Source, l.Target, ErrNegativeValue)
		}
	}
	return nil
}

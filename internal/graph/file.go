package graph

import (
	"io"

	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

const ErrCodeDecode = "GRAPH_DECODE"

// Decode reads a drawing saved as YAML or JSON:
//
//	nodes: [{name: a, role: start+final, x: 10, y: 20}]
//	edges: [{from: a, to: a, label: "0,1"}]
func Decode(r io.Reader) (Graph, error) {
	var g Graph
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errors.Wrap(err, errors.CategoryBadInput, "cannot decode graph").
			WithTextCode(ErrCodeDecode)
	}
	return g, nil
}

// Encode writes g as YAML.
func Encode(w io.Writer, g Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "cannot encode graph")
	}
	return enc.Close()
}

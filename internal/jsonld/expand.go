package jsonld

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"
)

// Graph is the ordered item list of one expanded @graph.
type Graph []Item

// Expander turns compact JSON-LD documents into expanded item graphs.
type Expander struct {
	processor *ld.JsonLdProcessor
	options   *ld.JsonLdOptions
}

// NewExpander creates an Expander. Remote contexts are fetched with the
// default json-gold document loader.
func NewExpander() *Expander {
	return &Expander{
		processor: ld.NewJsonLdProcessor(),
		options:   ld.NewJsonLdOptions(""),
	}
}

// Expand expands a decoded compact document and groups its nodes by graph.
func (e *Expander) Expand(doc any) ([]Graph, error) {
	expanded, err := e.processor.Expand(doc, e.options)
	if err != nil {
		return nil, fmt.Errorf("failed to expand JSON-LD document: %w", err)
	}

	return Graphs(expanded), nil
}

// ReadDocument decodes one compact JSON-LD document.
func ReadDocument(r io.Reader) (any, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON-LD document: %w", err)
	}
	return doc, nil
}

// Graphs groups already expanded elements. An element carrying @graph
// contributes its node list as one graph; bare node objects that follow
// each other are collected into a single graph.
func Graphs(expanded []any) []Graph {
	var graphs []Graph
	var loose Graph

	for _, element := range expanded {
		node, ok := element.(map[string]any)
		if !ok {
			continue
		}
		if raw, ok := node["@graph"]; ok {
			if len(loose) > 0 {
				graphs = append(graphs, loose)
				loose = nil
			}
			entries, _ := raw.([]any)
			graph := make(Graph, 0, len(entries))
			for _, entry := range entries {
				if n, ok := entry.(map[string]any); ok {
					graph = append(graph, NewItem(n))
				}
			}
			graphs = append(graphs, graph)
			continue
		}
		loose = append(loose, NewItem(node))
	}

	if len(loose) > 0 {
		graphs = append(graphs, loose)
	}
	return graphs
}

package graphml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/factgraph/facts"
	"github.com/viant/factgraph/graph"
)

// Kind selects the graph document shape produced by Writer
type Kind int

const (
	// Consolidated writes declared keys with type, class, name and keggid node data
	Consolidated Kind = iota
	// Reconstructed writes bare nodes and attribute-labelled edges
	Reconstructed
)

type (
	document struct {
		XMLName xml.Name  `xml:"graphml"`
		Xmlns   string    `xml:"xmlns,attr"`
		Keys    []keyElem `xml:"key"`
		Graph   graphElem `xml:"graph"`
	}
	keyElem struct {
		ID   string `xml:"id,attr"`
		For  string `xml:"for,attr"`
		Name string `xml:"attr.name,attr"`
		Type string `xml:"attr.type,attr"`
	}
	graphElem struct {
		ID          string     `xml:"id,attr,omitempty"`
		EdgeDefault string     `xml:"edgedefault,attr"`
		Nodes       []nodeElem `xml:"node"`
		Edges       []edgeElem `xml:"edge"`
	}
	nodeElem struct {
		ID   string     `xml:"id,attr"`
		Data []dataElem `xml:"data"`
	}
	edgeElem struct {
		ID     string     `xml:"id,attr,omitempty"`
		Source string     `xml:"source,attr"`
		Target string     `xml:"target,attr"`
		Label  string     `xml:"label,attr,omitempty"`
		Data   []dataElem `xml:"data"`
	}
	dataElem struct {
		Key   string `xml:"key,attr"`
		Value string `xml:",chardata"`
	}
)

var consolidatedKeys = []keyElem{
	{ID: "type", For: "node", Name: "type", Type: "string"},
	{ID: "label", For: "edge", Name: "label", Type: "string"},
	{ID: "class", For: "node", Name: "class", Type: "string"},
	{ID: "name", For: "node", Name: "name", Type: "string"},
	{ID: "keggid", For: "node", Name: "keggid", Type: "string"},
}

// Writer writes a graph as a GraphML document
type Writer struct {
	fs   afs.Service
	URL  string
	Kind Kind
}

// NewWriter creates a graph document writer
func NewWriter(fs afs.Service, URL string, kind Kind) *Writer {
	return &Writer{fs: fs, URL: URL, Kind: kind}
}

// Export renders and writes the graph, replacing any existing document
func (w *Writer) Export(ctx context.Context, g *graph.Graph) error {
	data, err := Marshal(g, w.Kind)
	if err != nil {
		return err
	}
	return facts.Overwrite(ctx, w.fs, w.URL, data)
}

// Marshal renders a graph document
func Marshal(g *graph.Graph, kind Kind) ([]byte, error) {
	doc := &document{Xmlns: Namespace}
	switch kind {
	case Reconstructed:
		doc.Graph = reconstructed(g)
	default:
		doc.Keys = consolidatedKeys
		doc.Graph = consolidated(g)
	}
	buf := bytes.NewBufferString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode graph document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func consolidated(g *graph.Graph) graphElem {
	result := graphElem{ID: "pathway", EdgeDefault: "directed"}
	for _, node := range g.Nodes {
		name := node.Description
		if name == "" {
			name = node.ID
		}
		result.Nodes = append(result.Nodes, nodeElem{
			ID: node.ID,
			Data: []dataElem{
				{Key: "type", Value: node.Type},
				{Key: "class", Value: string(node.Role)},
				{Key: "name", Value: name},
				{Key: "keggid"},
			},
		})
	}
	for _, edge := range g.Edges {
		elem := edgeElem{Source: edge.Source, Target: edge.Target}
		if edge.Label != "" {
			elem.Data = []dataElem{{Key: "label", Value: edge.Label}}
		}
		result.Edges = append(result.Edges, elem)
	}
	return result
}

func reconstructed(g *graph.Graph) graphElem {
	result := graphElem{EdgeDefault: "directed"}
	for _, node := range g.Nodes {
		result.Nodes = append(result.Nodes, nodeElem{ID: node.ID})
	}
	for i, edge := range g.Edges {
		result.Edges = append(result.Edges, edgeElem{
			ID:     fmt.Sprintf("e%d", i),
			Source: edge.Source,
			Target: edge.Target,
			Label:  edge.Label,
		})
	}
	return result
}

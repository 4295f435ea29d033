package facts

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"github.com/viant/factgraph/graph"
	"gopkg.in/yaml.v3"
)

// Load reads fact tables written by Writer back into a graph
func (w *Writer) Load(ctx context.Context) (*graph.Graph, error) {
	nodes, err := w.readTable(ctx, NodesTable, true)
	if err != nil {
		return nil, err
	}
	edges, err := w.readTable(ctx, EdgesTable, true)
	if err != nil {
		return nil, err
	}
	sensitive, err := w.readTable(ctx, SensitiveTable, false)
	if err != nil {
		return nil, err
	}
	return Decode(w.Layout, nodes, edges, sensitive)
}

// Decode builds a graph from table rows, preserving row order
func Decode(layout Layout, nodes, edges, sensitive [][]string) (*graph.Graph, error) {
	offset := 0
	if layout == Indexed {
		offset = 1
	}
	result := &graph.Graph{}
	for i, row := range nodes {
		if len(row) < offset+2 {
			return nil, fmt.Errorf("%v: row %d: expected %d columns, got %d", NodesTable, i+1, offset+2, len(row))
		}
		node := &graph.Node{ID: row[offset], Role: graph.Role(row[offset+1])}
		if !node.Role.IsValid() {
			return nil, fmt.Errorf("%v: row %d: invalid role: %q", NodesTable, i+1, row[offset+1])
		}
		result.Nodes = append(result.Nodes, node)
	}
	for i, row := range edges {
		if len(row) < offset+2 {
			return nil, fmt.Errorf("%v: row %d: expected at least %d columns, got %d", EdgesTable, i+1, offset+2, len(row))
		}
		edge := &graph.Edge{Source: row[offset], Target: row[offset+1]}
		if len(row) > offset+2 {
			edge.Label = row[offset+2]
		}
		result.Edges = append(result.Edges, edge)
	}
	for i, row := range sensitive {
		if len(row) < 2 {
			return nil, fmt.Errorf("%v: row %d: expected at least 2 columns, got %d", SensitiveTable, i+1, len(row))
		}
		marker := &graph.Marker{Key: row[0], Node: row[1]}
		if len(row) > 2 {
			marker.Tag = row[2]
		}
		result.Markers = append(result.Markers, marker)
	}
	result.Recount()
	return result, nil
}

func (w *Writer) readTable(ctx context.Context, name string, required bool) ([][]string, error) {
	URL := w.URL(name)
	if !required {
		exists, err := w.fs.Exists(ctx, URL)
		if err != nil || !exists {
			return nil, err
		}
	}
	data, err := w.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return ReadRows(data)
}

// ReadRows decodes tab separated rows
func ReadRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// ReadManifest reads the manifest written next to the tables, it returns nil when none exists
func (w *Writer) ReadManifest(ctx context.Context) (*Manifest, error) {
	URL := w.URL(ManifestFile)
	exists, err := w.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return nil, err
	}
	data, err := w.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	manifest := &Manifest{}
	if err = yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return manifest, nil
}

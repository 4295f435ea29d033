package facts

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"github.com/viant/factgraph/graph"
	"strings"
)

// Layout selects fact table column shapes
type Layout string

const (
	// Plain writes (id, role), (source, target, label) and (key, id)
	Plain Layout = "plain"
	// Indexed writes (N<i>, value, role), (E<i>, source, target, label) and (S<i>, value, tag)
	Indexed Layout = "indexed"
)

// ParseLayout parses layout name
func ParseLayout(name string) (Layout, error) {
	switch Layout(strings.ToLower(name)) {
	case Plain, "":
		return Plain, nil
	case Indexed:
		return Indexed, nil
	}
	return "", fmt.Errorf("unsupported layout: %v", name)
}

// Table file names
const (
	NodesTable     = "nodes.facts"
	EdgesTable     = "edges.facts"
	SensitiveTable = "sensitive.facts"
)

// Delimiter separates fact table fields
const Delimiter = '\t'

// Table represents a fully materialized fact table
type Table struct {
	Name string
	Rows [][]string
}

// Bytes renders table rows, tab separated, without header
func (t *Table) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	writer.Comma = Delimiter
	if err := writer.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("failed to render %v: %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

// Tables builds nodes, edges and sensitive tables for the supplied layout
func Tables(g *graph.Graph, layout Layout) []*Table {
	nodes := &Table{Name: NodesTable}
	edges := &Table{Name: EdgesTable}
	sensitive := &Table{Name: SensitiveTable}
	switch layout {
	case Indexed:
		for i, node := range g.Nodes {
			nodes.Rows = append(nodes.Rows, []string{fmt.Sprintf("N%d", i), value(node), string(node.Role)})
		}
		for i, edge := range g.Edges {
			edges.Rows = append(edges.Rows, []string{fmt.Sprintf("E%d", i), edge.Source, edge.Target, edge.Label})
		}
		for i, marker := range g.Markers {
			sensitive.Rows = append(sensitive.Rows, []string{fmt.Sprintf("S%d", i), markerValue(g, marker), marker.Tag})
		}
	default:
		for _, node := range g.Nodes {
			nodes.Rows = append(nodes.Rows, []string{node.ID, string(node.Role)})
		}
		for _, edge := range g.Edges {
			edges.Rows = append(edges.Rows, []string{edge.Source, edge.Target, edge.Label})
		}
		for _, marker := range g.Markers {
			sensitive.Rows = append(sensitive.Rows, []string{marker.Key, marker.Node})
		}
	}
	return []*Table{nodes, edges, sensitive}
}

func value(node *graph.Node) string {
	if node.Value != "" {
		return node.Value
	}
	return node.ID
}

func markerValue(g *graph.Graph, marker *graph.Marker) string {
	if node := g.Node(marker.Node); node != nil {
		return value(node)
	}
	return marker.Node
}

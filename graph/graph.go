package graph

import (
	"context"
	"sort"
)

// Role represents the taint-analysis category of a node
type Role string

const (
	Source    Role = "source"
	Sink      Role = "sink"
	Sanitizer Role = "sanitizer"
	Normal    Role = "normal"
)

// Roles lists every role in reporting order
var Roles = []Role{Source, Sink, Sanitizer, Normal}

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	switch r {
	case Source, Sink, Sanitizer, Normal:
		return true
	}
	return false
}

// Node represents a classified graph node.
type Node struct {
	ID          string `yaml:"id"`                    // identifier, unique within one run
	Role        Role   `yaml:"role"`                  // final taint role
	Type        string `yaml:"type,omitempty"`        // declared node type
	Description string `yaml:"description,omitempty"` // free text used for classification only
	Formula     string `yaml:"formula,omitempty"`     // payload kept for graph documents
	Value       string `yaml:"value,omitempty"`       // raw value for indexed fact layouts
}

// Edge represents a directed labelled edge.
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Label  string `yaml:"label,omitempty"`
}

// Marker binds a node to a sensitive data category
type Marker struct {
	Key  string `yaml:"key"`
	Node string `yaml:"node"`
	Tag  string `yaml:"tag,omitempty"`
}

// Stats summarises a graph
type Stats struct {
	TotalNodes   int          `yaml:"totalNodes"`
	TotalEdges   int          `yaml:"totalEdges"`
	DroppedEdges int          `yaml:"droppedEdges,omitempty"`
	Markers      int          `yaml:"markers"`
	Roles        map[Role]int `yaml:"roles,omitempty"`
}

// Graph holds accumulated nodes, edges and sensitive markers.
type Graph struct {
	Nodes   []*Node
	Edges   []*Edge
	Markers []*Marker
	Stats   Stats

	index map[string]int
}

// Node returns a node by identifier
func (g *Graph) Node(id string) *Node {
	if g.index == nil {
		g.reindex()
	}
	if idx, ok := g.index[id]; ok && idx < len(g.Nodes) {
		return g.Nodes[idx]
	}
	return nil
}

// NodesWithRole returns node identifiers with the supplied role, in node order
func (g *Graph) NodesWithRole(role Role) []string {
	var result []string
	for _, node := range g.Nodes {
		if node.Role == role {
			result = append(result, node.ID)
		}
	}
	return result
}

// AddMarker adds a sensitive marker
func (g *Graph) AddMarker(marker *Marker) {
	g.Markers = append(g.Markers, marker)
	g.Stats.Markers = len(g.Markers)
}

// Recount refreshes role counts after roles changed
func (g *Graph) Recount() {
	g.Stats.TotalNodes = len(g.Nodes)
	g.Stats.TotalEdges = len(g.Edges)
	g.Stats.Markers = len(g.Markers)
	g.Stats.Roles = make(map[Role]int)
	for _, node := range g.Nodes {
		g.Stats.Roles[node.Role]++
	}
}

// SortMarkers orders markers by node position, then by key
func (g *Graph) SortMarkers() {
	if g.index == nil {
		g.reindex()
	}
	position := func(id string) int {
		if idx, ok := g.index[id]; ok {
			return idx
		}
		return len(g.Nodes)
	}
	sort.SliceStable(g.Markers, func(i, j int) bool {
		a, b := g.Markers[i], g.Markers[j]
		if pa, pb := position(a.Node), position(b.Node); pa != pb {
			return pa < pb
		}
		if a.Node != b.Node {
			return a.Node < b.Node
		}
		return a.Key < b.Key
	})
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, node := range g.Nodes {
		g.index[node.ID] = i
	}
}

// Exporter defines an interface to export a Graph to an output artifact.
type Exporter interface {
	Export(ctx context.Context, graph *Graph) error
}

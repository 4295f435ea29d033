package graph

import (
	"sort"
)

// Policy controls how edges with unseen endpoints and repeated edges are handled
type Policy int

const (
	// Consolidate suppresses repeated edges within one document and drops edges whose
	// endpoints were never observed as nodes.
	Consolidate Policy = iota
	// Implicit keeps every edge and creates missing endpoints as normal nodes.
	Implicit
)

// String returns policy name
func (p Policy) String() string {
	if p == Implicit {
		return "implicit"
	}
	return "consolidate"
}

// Document represents raw nodes and edges read from one input document
type Document struct {
	Name  string
	Nodes []*Node
	Edges []*Edge
}

// Accumulator merges node and edge observations across documents
type Accumulator struct {
	policy      Policy
	defaultType string
	document    string
	nodes       map[string]*Node
	edges       []*Edge
	markers     []*Marker
	seen        map[edgeKey]bool
	less        func(a, b *Node) bool
	typeRoles   bool
}

type edgeKey struct {
	source string
	target string
}

// NewAccumulator creates an accumulator, defaultType is the declared type assigned when a document omits one
func NewAccumulator(policy Policy, defaultType string) *Accumulator {
	return &Accumulator{
		policy:      policy,
		defaultType: defaultType,
		nodes:       make(map[string]*Node),
		seen:        make(map[edgeKey]bool),
	}
}

// SetOrder overrides identifier ordering used when the graph is finalized
func (a *Accumulator) SetOrder(less func(a, b *Node) bool) {
	a.less = less
}

// SetTypeRoles makes a winning declared type carry its role along, for roles derived from types.
// Otherwise the first observed role is kept.
func (a *Accumulator) SetTypeRoles(enabled bool) {
	a.typeRoles = enabled
}

// Begin opens a new document scope
func (a *Accumulator) Begin(name string) {
	a.document = name
	a.seen = make(map[edgeKey]bool)
}

// AddDocument adds all document nodes followed by its edges
func (a *Accumulator) AddDocument(doc *Document) {
	a.Begin(doc.Name)
	for _, node := range doc.Nodes {
		a.AddNode(node)
	}
	for _, edge := range doc.Edges {
		a.AddEdge(edge)
	}
}

// AddNode merges a node observation and returns the retained node.
// The first non-default declared type wins.
func (a *Accumulator) AddNode(node *Node) *Node {
	if node == nil || node.ID == "" {
		return nil
	}
	prev, ok := a.nodes[node.ID]
	if !ok {
		clone := *node
		a.nodes[node.ID] = &clone
		return &clone
	}
	if a.isDefaultType(prev.Type) && !a.isDefaultType(node.Type) {
		prev.Type = node.Type
		if a.typeRoles && node.Role != "" {
			prev.Role = node.Role
		}
	}
	if prev.Role == "" {
		prev.Role = node.Role
	}
	if prev.Description == "" {
		prev.Description = node.Description
	}
	if prev.Formula == "" {
		prev.Formula = node.Formula
	}
	if prev.Value == "" {
		prev.Value = node.Value
	}
	return prev
}

// HasNode returns true if identifier was observed
func (a *Accumulator) HasNode(id string) bool {
	_, ok := a.nodes[id]
	return ok
}

// AddEdge records an edge, it returns false when the edge was suppressed
func (a *Accumulator) AddEdge(edge *Edge) bool {
	if edge == nil || edge.Source == "" || edge.Target == "" {
		return false
	}
	switch a.policy {
	case Implicit:
		for _, id := range []string{edge.Source, edge.Target} {
			if !a.HasNode(id) {
				a.AddNode(&Node{ID: id, Role: Normal})
			}
		}
	default:
		key := edgeKey{source: edge.Source, target: edge.Target}
		if a.seen[key] {
			return false
		}
		a.seen[key] = true
	}
	clone := *edge
	a.edges = append(a.edges, &clone)
	return true
}

// AddMarker records a sensitive marker
func (a *Accumulator) AddMarker(marker *Marker) {
	if marker == nil || marker.Node == "" {
		return
	}
	clone := *marker
	a.markers = append(a.markers, &clone)
}

// Graph finalizes accumulated observations, nodes are sorted by identifier
func (a *Accumulator) Graph() *Graph {
	result := &Graph{}
	ids := make([]string, 0, len(a.nodes))
	for id := range a.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		node := a.nodes[id]
		if node.Role == "" {
			node.Role = Normal
		}
		result.Nodes = append(result.Nodes, node)
	}
	if a.less != nil {
		sort.SliceStable(result.Nodes, func(i, j int) bool {
			return a.less(result.Nodes[i], result.Nodes[j])
		})
	}
	result.reindex()
	for _, edge := range a.edges {
		if a.policy == Consolidate && !(a.HasNode(edge.Source) && a.HasNode(edge.Target)) {
			result.Stats.DroppedEdges++
			continue
		}
		result.Edges = append(result.Edges, edge)
	}
	result.Markers = append(result.Markers, a.markers...)
	result.SortMarkers()
	result.Recount()
	return result
}

func (a *Accumulator) isDefaultType(kind string) bool {
	return kind == "" || kind == a.defaultType
}

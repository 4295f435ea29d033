package classify

import (
	"fmt"
	"github.com/viant/factgraph/graph"
	"strings"
)

// Strategy selects how document nodes get their provisional role
type Strategy string

const (
	// Declared maps declared node types, then promotes drugs and compounds over the merged set
	Declared Strategy = "declared"
	// Heuristic classifies nodes by identifier and description indicators
	Heuristic Strategy = "heuristic"
)

// ParseStrategy parses strategy name
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(name)) {
	case Declared, "":
		return Declared, nil
	case Heuristic:
		return Heuristic, nil
	}
	return "", fmt.Errorf("unsupported strategy: %v", name)
}

// Assign sets the provisional role of a document node
func (r *Rules) Assign(strategy Strategy, node *graph.Node) {
	if node.Type == "" {
		node.Type = r.DefaultType
	}
	switch strategy {
	case Heuristic:
		node.Role = r.Classify(node.ID, node.Description)
	default:
		node.Role = r.MapType(node.Type)
	}
}

// Promote applies the promotion rule over the whole node set and returns promoted identifiers
func (r *Rules) Promote(nodes []*graph.Node) []string {
	p := r.Promotion
	if p == nil {
		return nil
	}
	var promoted []string
	for _, node := range nodes {
		if !containsAny(strings.ToLower(node.ID), p.IDContains) && !containsAny(strings.ToLower(node.Type), p.TypeContains) {
			continue
		}
		node.Role = p.Role
		promoted = append(promoted, node.ID)
	}
	return promoted
}

// SensitiveMarkers returns one marker per source node, keyed with the sensitive prefix
func (r *Rules) SensitiveMarkers(nodes []*graph.Node) []*graph.Marker {
	var result []*graph.Marker
	for _, node := range nodes {
		if node.Role != graph.Source {
			continue
		}
		result = append(result, &graph.Marker{Key: r.SensitivePrefix + node.ID, Node: node.ID})
	}
	return result
}

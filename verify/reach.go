package verify

import (
	"github.com/charmbracelet/log"
	"github.com/viant/factgraph/graph"
)

// closure maps a node to every node reachable through at least one edge
type closure map[string]map[string]bool

func (c closure) has(from, to string) bool {
	return c[from][to]
}

func reachability(g *graph.Graph, logger *log.Logger) closure {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, node := range g.Nodes {
		adjacency[node.ID] = nil
	}
	for _, edge := range g.Edges {
		_, hasSource := adjacency[edge.Source]
		_, hasTarget := adjacency[edge.Target]
		if !hasSource || !hasTarget {
			logger.Warn("skipping edge with missing node", "source", edge.Source, "target", edge.Target)
			continue
		}
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}
	result := make(closure, len(g.Nodes))
	for _, node := range g.Nodes {
		visited := map[string]bool{}
		queue := append([]string(nil), adjacency[node.ID]...)
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, adjacency[next]...)
		}
		result[node.ID] = visited
	}
	return result
}

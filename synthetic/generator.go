package synthetic

import (
	"fmt"
	"github.com/go-playground/validator"
	"github.com/viant/factgraph/graph"
	"math/rand"
	"strconv"
)

// Defaults
const (
	DefaultNodes     = 30
	DefaultNeighbors = 4
	DefaultRewire    = 0.15
	DefaultSeed      = 42
	DefaultTag       = "pii_compound"
	InteractsLabel   = "interacts"
)

// Config represents small-world generation parameters
type Config struct {
	Nodes     int     `yaml:"nodes" validate:"min=2"`
	Neighbors int     `yaml:"neighbors" validate:"min=0,ltefield=Nodes"`
	Rewire    float64 `yaml:"rewire" validate:"min=0,max=1"`
	Seed      int64   `yaml:"seed"`
	Tag       string  `yaml:"tag"`
}

// DefaultConfig returns default generation parameters
func DefaultConfig() *Config {
	return &Config{
		Nodes:     DefaultNodes,
		Neighbors: DefaultNeighbors,
		Rewire:    DefaultRewire,
		Seed:      DefaultSeed,
		Tag:       DefaultTag,
	}
}

// Validate checks parameters
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	return nil
}

// Role returns the deterministic role of vertex v
func (c *Config) Role(v int) graph.Role {
	switch {
	case v == 0:
		return graph.Source
	case v == c.Nodes-1:
		return graph.Sink
	case v%5 == 0:
		return graph.Sanitizer
	}
	return graph.Normal
}

// IsSensitive returns true for every third vertex other than the source and sink
func (c *Config) IsSensitive(v int) bool {
	return v%3 == 0 && v != 0 && v != c.Nodes-1
}

// Generate builds a small-world graph with roles, sensitive markers and bidirectional interaction edges
func Generate(cfg *Config) (*graph.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tag := cfg.Tag
	if tag == "" {
		tag = DefaultTag
	}
	topology, err := WattsStrogatz(cfg.Nodes, cfg.Neighbors, cfg.Rewire, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	acc := graph.NewAccumulator(graph.Implicit, "")
	rank := make(map[string]int, cfg.Nodes)
	acc.SetOrder(func(a, b *graph.Node) bool {
		return rank[a.ID] < rank[b.ID]
	})
	acc.Begin("synthetic")
	for v := 0; v < cfg.Nodes; v++ {
		id := strconv.Itoa(v)
		rank[id] = v
		acc.AddNode(&graph.Node{ID: id, Role: cfg.Role(v)})
	}
	for _, edge := range topology.Edges() {
		u, v := strconv.Itoa(edge[0]), strconv.Itoa(edge[1])
		acc.AddEdge(&graph.Edge{Source: u, Target: v, Label: InteractsLabel})
		acc.AddEdge(&graph.Edge{Source: v, Target: u, Label: InteractsLabel})
	}
	index := 0
	for v := 0; v < cfg.Nodes; v++ {
		if !cfg.IsSensitive(v) {
			continue
		}
		acc.AddMarker(&graph.Marker{Key: fmt.Sprintf("S%d", index), Node: strconv.Itoa(v), Tag: tag})
		index++
	}
	return acc.Graph(), nil
}

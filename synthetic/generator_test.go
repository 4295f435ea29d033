package synthetic_test

import (
	"errors"
	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/viant/factgraph/facts"
	"github.com/viant/factgraph/graph"
	"github.com/viant/factgraph/synthetic"
	"strconv"
	"testing"
)

func TestGenerate(t *testing.T) {
	cfg := synthetic.DefaultConfig()
	actual, err := synthetic.Generate(cfg)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, actual.Nodes, 30) {
		return
	}
	for i, node := range actual.Nodes {
		assert.Equal(t, strconv.Itoa(i), node.ID)
	}
	assert.Equal(t, []string{"0"}, actual.NodesWithRole(graph.Source))
	assert.Equal(t, []string{"29"}, actual.NodesWithRole(graph.Sink))
	assert.Equal(t, []string{"5", "10", "15", "20", "25"}, actual.NodesWithRole(graph.Sanitizer))
	assert.Len(t, actual.Edges, 120)
	for _, edge := range actual.Edges {
		assert.NotEqual(t, edge.Source, edge.Target)
		assert.Equal(t, synthetic.InteractsLabel, edge.Label)
	}

	var marked []string
	for i, marker := range actual.Markers {
		assert.Equal(t, "S"+strconv.Itoa(i), marker.Key)
		assert.Equal(t, synthetic.DefaultTag, marker.Tag)
		marked = append(marked, marker.Node)
	}
	assert.Equal(t, []string{"3", "6", "9", "12", "15", "18", "21", "24", "27"}, marked)
}

func TestGenerate_Deterministic(t *testing.T) {
	render := func() [][]byte {
		g, err := synthetic.Generate(&synthetic.Config{Nodes: 50, Neighbors: 6, Rewire: 0.3, Seed: 11})
		if !assert.NoError(t, err) {
			return nil
		}
		var result [][]byte
		for _, table := range facts.Tables(g, facts.Indexed) {
			data, err := table.Bytes()
			assert.NoError(t, err)
			result = append(result, data)
		}
		return result
	}
	first := render()
	assert.Len(t, first, 3)
	assert.Equal(t, first, render())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		description string
		config      synthetic.Config
		expectErr   bool
	}{
		{description: "default", config: *synthetic.DefaultConfig()},
		{description: "single node", config: synthetic.Config{Nodes: 1, Neighbors: 0}, expectErr: true},
		{description: "neighbours over nodes", config: synthetic.Config{Nodes: 4, Neighbors: 6}, expectErr: true},
		{description: "negative probability", config: synthetic.Config{Nodes: 4, Neighbors: 2, Rewire: -0.1}, expectErr: true},
		{description: "probability over one", config: synthetic.Config{Nodes: 4, Neighbors: 2, Rewire: 1.5}, expectErr: true},
		{description: "negative neighbours", config: synthetic.Config{Nodes: 4, Neighbors: -1}, expectErr: true},
		{description: "complete graph", config: synthetic.Config{Nodes: 4, Neighbors: 4, Rewire: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr {
				var fieldErrors validator.ValidationErrors
				assert.True(t, errors.As(err, &fieldErrors), err)
				_, err = synthetic.Generate(&tc.config)
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Role(t *testing.T) {
	cfg := &synthetic.Config{Nodes: 10}
	assert.Equal(t, graph.Source, cfg.Role(0))
	assert.Equal(t, graph.Sink, cfg.Role(9))
	assert.Equal(t, graph.Sanitizer, cfg.Role(5))
	assert.Equal(t, graph.Normal, cfg.Role(3))
	assert.True(t, cfg.IsSensitive(3))
	assert.False(t, cfg.IsSensitive(0))
	assert.False(t, cfg.IsSensitive(9))
}

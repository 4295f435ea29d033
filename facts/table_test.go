package facts_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/factgraph/facts"
	"github.com/viant/factgraph/graph"
	"testing"
)

func sampleGraph() *graph.Graph {
	acc := graph.NewAccumulator(graph.Implicit, "")
	acc.AddNode(&graph.Node{ID: "C00031", Role: graph.Source})
	acc.AddNode(&graph.Node{ID: "K00844", Role: graph.Sanitizer})
	acc.AddNode(&graph.Node{ID: "map00010", Role: graph.Sink, Value: "Glycolysis"})
	acc.AddEdge(&graph.Edge{Source: "C00031", Target: "K00844", Label: "substrate"})
	acc.AddEdge(&graph.Edge{Source: "K00844", Target: "map00010"})
	acc.AddMarker(&graph.Marker{Key: "drug_C00031", Node: "C00031", Tag: "pii"})
	return acc.Graph()
}

func TestTables(t *testing.T) {
	tests := []struct {
		description string
		layout      facts.Layout
		expect      map[string][][]string
	}{
		{
			description: "plain layout",
			layout:      facts.Plain,
			expect: map[string][][]string{
				facts.NodesTable: {
					{"C00031", "source"},
					{"K00844", "sanitizer"},
					{"map00010", "sink"},
				},
				facts.EdgesTable: {
					{"C00031", "K00844", "substrate"},
					{"K00844", "map00010", ""},
				},
				facts.SensitiveTable: {
					{"drug_C00031", "C00031"},
				},
			},
		},
		{
			description: "indexed layout",
			layout:      facts.Indexed,
			expect: map[string][][]string{
				facts.NodesTable: {
					{"N0", "C00031", "source"},
					{"N1", "K00844", "sanitizer"},
					{"N2", "Glycolysis", "sink"},
				},
				facts.EdgesTable: {
					{"E0", "C00031", "K00844", "substrate"},
					{"E1", "K00844", "map00010", ""},
				},
				facts.SensitiveTable: {
					{"S0", "C00031", "pii"},
				},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tables := facts.Tables(sampleGraph(), tc.layout)
			if !assert.Len(t, tables, 3) {
				return
			}
			for _, table := range tables {
				assert.EqualValues(t, tc.expect[table.Name], table.Rows, table.Name)
			}
		})
	}
}

func TestTable_Bytes(t *testing.T) {
	table := &facts.Table{Name: facts.EdgesTable, Rows: [][]string{{"a", "b", "x"}, {"b", "c", ""}}}
	data, err := table.Bytes()
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "a\tb\tx\nb\tc\t\n", string(data))

	empty := &facts.Table{Name: facts.SensitiveTable}
	data, err = empty.Bytes()
	assert.NoError(t, err)
	assert.Empty(t, data)
}

func TestParseLayout(t *testing.T) {
	for _, name := range []string{"", "plain", "PLAIN"} {
		layout, err := facts.ParseLayout(name)
		assert.NoError(t, err)
		assert.Equal(t, facts.Plain, layout)
	}
	layout, err := facts.ParseLayout("Indexed")
	assert.NoError(t, err)
	assert.Equal(t, facts.Indexed, layout)
	_, err = facts.ParseLayout("json")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	first, err := facts.Fingerprint([]byte("C00031\tsource\n"))
	if !assert.NoError(t, err) {
		return
	}
	second, err := facts.Fingerprint([]byte("C00031\tsource\n"))
	assert.NoError(t, err)
	other, err := facts.Fingerprint([]byte("C00031\tsink\n"))
	assert.NoError(t, err)
	assert.Len(t, first, 16)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

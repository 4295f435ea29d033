package summary_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/factgraph/graph"
	"github.com/viant/factgraph/summary"
	"gopkg.in/yaml.v3"
	"testing"
)

func TestGrammar_Parse(t *testing.T) {
	tests := []struct {
		description string
		text        string
		pathType    string
		expectYaml  string
		expectErr   bool
	}{
		{
			description: "sanitized path",
			text:        "Source[N1] -> E1 -> Sanitizer[N2] -> Sink[N3]",
			pathType:    summary.Sanitized,
			expectYaml: `source: N1
sink: N3
sanitizers: [N2]
hops: [E1]
pathType: sanitized
`,
		},
		{
			description: "hops keep textual order",
			text:        "Source[N1] via E5 then E2 into Sink[N9]",
			pathType:    summary.Complete,
			expectYaml: `source: N1
sink: N9
hops: [E5, E2]
pathType: complete
`,
		},
		{
			description: "sensitivity tags",
			text:        "Source[N4] SensFromType[S1] SensFromType[S7] -> Sink[N8]",
			pathType:    summary.Unsanitized,
			expectYaml: `source: N4
sink: N8
sensitive: [S1, S7]
pathType: unsanitized
`,
		},
		{
			description: "missing sink",
			text:        "Source[N1] -> E1",
			pathType:    summary.Complete,
			expectErr:   true,
		},
		{
			description: "missing source",
			text:        "E1 -> Sink[N2]",
			pathType:    summary.Complete,
			expectErr:   true,
		},
	}

	grammar := summary.DefaultGrammar()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := grammar.Parse(tc.text, tc.pathType)
			if tc.expectErr {
				assert.ErrorIs(t, err, summary.ErrInvalidRow)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			expect := &summary.Row{}
			if !assert.NoError(t, yaml.Unmarshal([]byte(tc.expectYaml), expect)) {
				return
			}
			assert.EqualValues(t, expect, actual)
		})
	}
}

func TestRow_Edges(t *testing.T) {
	tests := []struct {
		description string
		text        string
		expect      []*graph.Edge
	}{
		{
			description: "hop chain",
			text:        "Source[N1] E5 E2 Sink[N9]",
			expect: []*graph.Edge{
				{Source: "N1", Target: "E5", Label: "complete"},
				{Source: "E5", Target: "E2", Label: "complete"},
				{Source: "E2", Target: "N9", Label: "complete"},
			},
		},
		{
			description: "direct source to sink",
			text:        "Source[N1] Sink[N2]",
			expect: []*graph.Edge{
				{Source: "N1", Target: "N2", Label: "complete"},
			},
		},
		{
			description: "sanitizer adds exactly two bypass edges",
			text:        "Source[N1] Sanitizer[N5] Sink[N2]",
			expect: []*graph.Edge{
				{Source: "N1", Target: "N2", Label: "complete"},
				{Source: "N1", Target: "N5", Label: summary.SanitizerLabel},
				{Source: "N5", Target: "N2", Label: summary.SanitizerLabel},
			},
		},
	}

	grammar := summary.DefaultGrammar()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			row, err := grammar.Parse(tc.text, summary.Complete)
			if !assert.NoError(t, err) {
				return
			}
			assert.EqualValues(t, tc.expect, row.Edges())
		})
	}
}

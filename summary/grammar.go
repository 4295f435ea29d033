package summary

import (
	"errors"
	"fmt"
	"github.com/viant/factgraph/graph"
	"regexp"
)

// ErrInvalidRow is returned for summaries without a source or sink token
var ErrInvalidRow = errors.New("invalid summary row")

// Path types
const (
	Complete    = "complete"
	Sanitized   = "sanitized"
	Unsanitized = "unsanitized"
)

// SanitizerLabel labels source/sink bypass edges of sanitizers
const SanitizerLabel = "sanitizer"

// Grammar holds summary token patterns, each with a single capture group
type Grammar struct {
	Source    *regexp.Regexp
	Sink      *regexp.Regexp
	Sanitizer *regexp.Regexp
	Sensitive *regexp.Regexp
	Hop       *regexp.Regexp
}

// DefaultGrammar returns patterns of the path analysis summary format
func DefaultGrammar() *Grammar {
	return &Grammar{
		Source:    regexp.MustCompile(`Source\[(N\d+)\]`),
		Sink:      regexp.MustCompile(`Sink\[(N\d+)\]`),
		Sanitizer: regexp.MustCompile(`Sanitizer\[(N\d+)\]`),
		Sensitive: regexp.MustCompile(`SensFromType\[(S\d+)\]`),
		Hop:       regexp.MustCompile(`(E\d+)`),
	}
}

// Row represents one decoded path summary
type Row struct {
	Source     string   `yaml:"source"`
	Sink       string   `yaml:"sink"`
	Sanitizers []string `yaml:"sanitizers,omitempty"`
	Sensitive  []string `yaml:"sensitive,omitempty"`
	Hops       []string `yaml:"hops,omitempty"` // in textual order
	PathType   string   `yaml:"pathType"`
}

// Parse decodes a summary, hops keep their textual order
func (g *Grammar) Parse(text, pathType string) (*Row, error) {
	row := &Row{
		Source:     first(g.Source, text),
		Sink:       first(g.Sink, text),
		Sanitizers: all(g.Sanitizer, text),
		Sensitive:  all(g.Sensitive, text),
		Hops:       all(g.Hop, text),
		PathType:   pathType,
	}
	if row.Source == "" || row.Sink == "" {
		return nil, fmt.Errorf("%w: missing source or sink: %q", ErrInvalidRow, text)
	}
	return row, nil
}

// Nodes returns every identifier named by the row with its role
func (r *Row) Nodes() []*graph.Node {
	result := []*graph.Node{
		{ID: r.Source, Role: graph.Source},
		{ID: r.Sink, Role: graph.Sink},
	}
	for _, id := range r.Sanitizers {
		result = append(result, &graph.Node{ID: id, Role: graph.Sanitizer})
	}
	for _, id := range r.Sensitive {
		result = append(result, &graph.Node{ID: id, Role: graph.Normal})
	}
	for _, id := range r.Hops {
		result = append(result, &graph.Node{ID: id, Role: graph.Normal})
	}
	return result
}

// Edges chains source through hops to sink, then adds source/sink bypass edges for each sanitizer
func (r *Row) Edges() []*graph.Edge {
	var result []*graph.Edge
	prev := r.Source
	for _, hop := range r.Hops {
		result = append(result, &graph.Edge{Source: prev, Target: hop, Label: r.PathType})
		prev = hop
	}
	result = append(result, &graph.Edge{Source: prev, Target: r.Sink, Label: r.PathType})
	for _, sanitizer := range r.Sanitizers {
		result = append(result,
			&graph.Edge{Source: r.Source, Target: sanitizer, Label: SanitizerLabel},
			&graph.Edge{Source: sanitizer, Target: r.Sink, Label: SanitizerLabel},
		)
	}
	return result
}

func first(expr *regexp.Regexp, text string) string {
	if match := expr.FindStringSubmatch(text); len(match) > 1 {
		return match[1]
	}
	return ""
}

func all(expr *regexp.Regexp, text string) []string {
	var result []string
	for _, match := range expr.FindAllStringSubmatch(text, -1) {
		if len(match) > 1 {
			result = append(result, match[1])
		}
	}
	return result
}

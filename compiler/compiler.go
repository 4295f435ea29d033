package compiler

import (
	"context"
	"errors"
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/factgraph/classify"
	"github.com/viant/factgraph/graph"
	"github.com/viant/factgraph/graphml"
	"github.com/viant/factgraph/summary"
)

// ErrMissingInput is returned when the input path does not exist
var ErrMissingInput = errors.New("input path does not exist")

// InputError reports a missing or unusable input location
type InputError struct {
	URL    string
	Dir    bool
	Reason string
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %v: %v", ErrMissingInput, e.URL, e.Reason)
	}
	return fmt.Sprintf("%v: %v", ErrMissingInput, e.URL)
}

func (e *InputError) Unwrap() error {
	return ErrMissingInput
}

// Compiler turns graph documents and path summaries into classified graphs
type Compiler struct {
	fs       afs.Service
	logger   *log.Logger
	rules    *classify.Rules
	strategy classify.Strategy
	match    graphml.MatcherFn
	grammar  *summary.Grammar
}

// Result represents a compiled graph with its provenance
type Result struct {
	Graph       *graph.Graph
	Documents   []string
	Skipped     []*graphml.Skipped
	Promoted    []string
	Digest      string
	Rows        int
	SkippedRows int
}

// New creates a compiler
func New(options ...Option) *Compiler {
	result := &Compiler{
		strategy: classify.Declared,
		match:    graphml.Files(graphml.Extension),
	}
	for _, opt := range options {
		opt(result)
	}
	if result.fs == nil {
		result.fs = afs.New()
	}
	if result.logger == nil {
		result.logger = log.Default()
	}
	if result.rules == nil {
		result.rules = classify.Default()
	}
	if result.grammar == nil {
		result.grammar = summary.DefaultGrammar()
	}
	return result
}

// CompileDir reads every graph document in dir, classifies nodes per document, merges them
// with the consolidation policy and finally applies the global promotion pass
func (c *Compiler) CompileDir(ctx context.Context, dir string) (*Result, error) {
	if err := c.ensureInput(ctx, dir, true); err != nil {
		return nil, err
	}
	batch, err := graphml.NewReader(c.fs, c.match, c.logger).ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	acc := graph.NewAccumulator(graph.Consolidate, c.rules.DefaultType)
	acc.SetTypeRoles(c.strategy == classify.Declared)
	for _, doc := range batch.Documents {
		for _, node := range doc.Nodes {
			c.rules.Assign(c.strategy, node)
			if node.Role == graph.Sink || node.Role == graph.Sanitizer {
				c.logger.Debug("classified", "node", node.ID, "role", node.Role, "document", doc.Name)
			}
		}
		acc.AddDocument(doc)
	}
	result := &Result{Graph: acc.Graph(), Documents: batch.Names(), Skipped: batch.Skipped}
	if c.strategy == classify.Declared {
		result.Promoted = c.rules.Promote(result.Graph.Nodes)
	}
	for _, marker := range c.rules.SensitiveMarkers(result.Graph.Nodes) {
		result.Graph.AddMarker(marker)
	}
	result.Graph.SortMarkers()
	result.Graph.Recount()
	if result.Digest, err = batch.Digest(); err != nil {
		return nil, fmt.Errorf("failed to compute input digest: %w", err)
	}
	c.report(result)
	return result, nil
}

// CompileSummaries reads a path summary file and rebuilds the graph with the implicit policy
func (c *Compiler) CompileSummaries(ctx context.Context, URL string) (*Result, error) {
	if err := c.ensureInput(ctx, URL, false); err != nil {
		return nil, err
	}
	rows, err := summary.NewReader(c.grammar, c.logger).ReadFile(ctx, c.fs, URL)
	if err != nil {
		return nil, err
	}
	result := &Result{Graph: summary.Build(rows.Rows), Rows: len(rows.Rows), SkippedRows: rows.Skipped}
	c.report(result)
	return result, nil
}

// CompileDocument reads one graph document. Roles carried by a class attribute are kept,
// remaining nodes are classified with the compiler strategy.
func (c *Compiler) CompileDocument(ctx context.Context, URL string) (*Result, error) {
	if err := c.ensureInput(ctx, URL, false); err != nil {
		return nil, err
	}
	doc, err := graphml.ReadFile(ctx, c.fs, URL)
	if err != nil {
		return nil, err
	}
	var pending []*graph.Node
	for _, node := range doc.Nodes {
		if node.Role != "" {
			continue
		}
		c.rules.Assign(c.strategy, node)
		pending = append(pending, node)
	}
	acc := graph.NewAccumulator(graph.Consolidate, c.rules.DefaultType)
	acc.SetTypeRoles(c.strategy == classify.Declared)
	acc.AddDocument(doc)
	result := &Result{Graph: acc.Graph(), Documents: []string{doc.Name}}
	if c.strategy == classify.Declared {
		result.Promoted = c.rules.Promote(unclassified(result.Graph, pending))
	}
	for _, marker := range c.rules.SensitiveMarkers(result.Graph.Nodes) {
		result.Graph.AddMarker(marker)
	}
	result.Graph.SortMarkers()
	result.Graph.Recount()
	c.report(result)
	return result, nil
}

func unclassified(g *graph.Graph, pending []*graph.Node) []*graph.Node {
	var result []*graph.Node
	seen := map[string]bool{}
	for _, node := range pending {
		if merged := g.Node(node.ID); merged != nil && !seen[node.ID] {
			seen[node.ID] = true
			result = append(result, merged)
		}
	}
	return result
}

func (c *Compiler) ensureInput(ctx context.Context, URL string, dir bool) error {
	exists, err := c.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return &InputError{URL: URL, Dir: dir}
	}
	if !dir {
		return nil
	}
	object, err := c.fs.Object(ctx, URL)
	if err != nil {
		return &InputError{URL: URL, Dir: dir, Reason: err.Error()}
	}
	if !object.IsDir() {
		return &InputError{URL: URL, Dir: dir, Reason: "not a directory"}
	}
	return nil
}

func (c *Compiler) report(result *Result) {
	stats := result.Graph.Stats
	keyvals := []interface{}{
		"documents", len(result.Documents),
		"skipped", len(result.Skipped),
		"rows", result.Rows,
		"nodes", stats.TotalNodes,
		"edges", stats.TotalEdges,
		"dropped", stats.DroppedEdges,
	}
	for _, role := range graph.Roles {
		keyvals = append(keyvals, string(role), stats.Roles[role])
	}
	c.logger.Info("compiled", keyvals...)
}

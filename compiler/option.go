package compiler

import (
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/factgraph/classify"
	"github.com/viant/factgraph/graphml"
	"github.com/viant/factgraph/summary"
)

type Option func(*Compiler)

// WithFS sets file system service
func WithFS(fs afs.Service) Option {
	return func(c *Compiler) {
		c.fs = fs
	}
}

// WithLogger sets diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithRules sets classification rules
func WithRules(rules *classify.Rules) Option {
	return func(c *Compiler) {
		c.rules = rules
	}
}

// WithStrategy sets how document nodes are classified
func WithStrategy(strategy classify.Strategy) Option {
	return func(c *Compiler) {
		c.strategy = strategy
	}
}

// WithExtension matches graph documents by file extension
func WithExtension(extension string) Option {
	return func(c *Compiler) {
		c.match = graphml.Files(extension)
	}
}

// WithMatcher sets graph document matcher
func WithMatcher(matcher graphml.MatcherFn) Option {
	return func(c *Compiler) {
		c.match = matcher
	}
}

// WithGrammar sets path summary grammar
func WithGrammar(grammar *summary.Grammar) Option {
	return func(c *Compiler) {
		c.grammar = grammar
	}
}

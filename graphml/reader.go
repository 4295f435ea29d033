package graphml

import (
	"bytes"
	"context"
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/factgraph/graph"
	"golang.org/x/mod/sumdb/dirhash"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the default graph document extension
const Extension = ".graphml"

// MatcherFn matches candidate files
type MatcherFn func(info os.FileInfo) bool

// Files matches regular files with the supplied extension
func Files(extension string) MatcherFn {
	return func(info os.FileInfo) bool {
		if info.IsDir() {
			return false
		}
		return strings.HasSuffix(info.Name(), extension)
	}
}

// Skipped represents a document excluded from a batch
type Skipped struct {
	Name string
	Err  error
}

// Batch holds documents read from one directory
type Batch struct {
	Documents []*graph.Document
	Skipped   []*Skipped
	contents  map[string][]byte
}

// Names returns names of parsed documents
func (b *Batch) Names() []string {
	var result []string
	for _, doc := range b.Documents {
		result = append(result, doc.Name)
	}
	return result
}

// Digest returns an "h1:" digest over the parsed documents
func (b *Batch) Digest() (string, error) {
	open := func(name string) (io.ReadCloser, error) {
		content, ok := b.contents[name]
		if !ok {
			return nil, fmt.Errorf("unknown document: %v", name)
		}
		return io.NopCloser(bytes.NewReader(content)), nil
	}
	return dirhash.Hash1(b.Names(), open)
}

// Reader reads graph documents from a directory
type Reader struct {
	fs     afs.Service
	match  MatcherFn
	logger *log.Logger
}

// NewReader creates a reader
func NewReader(fs afs.Service, match MatcherFn, logger *log.Logger) *Reader {
	if match == nil {
		match = Files(Extension)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{fs: fs, match: match, logger: logger}
}

// ReadDir reads every matching document directly inside dir, in name order.
// Malformed documents are logged and reported as skipped.
func (r *Reader) ReadDir(ctx context.Context, dir string) (*Batch, error) {
	locations := map[string]string{}
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || !r.match(info) {
			return false, nil
		}
		locations[info.Name()] = url.Join(url.Join(baseURL, parent), info.Name())
		return true, nil
	}
	if err := r.fs.Walk(ctx, dir, visitor); err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", dir, err)
	}
	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Strings(names)

	batch := &Batch{contents: make(map[string][]byte)}
	for _, name := range names {
		r.logger.Info("processing", "document", name)
		content, err := r.fs.DownloadWithURL(ctx, locations[name])
		if err != nil {
			r.logger.Warn("failed to read document", "document", name, "err", err)
			batch.Skipped = append(batch.Skipped, &Skipped{Name: name, Err: err})
			continue
		}
		doc, err := Parse(name, content)
		if err != nil {
			r.logger.Warn("skipping document", "document", name, "err", err)
			batch.Skipped = append(batch.Skipped, &Skipped{Name: name, Err: err})
			continue
		}
		r.logger.Debug("parsed", "document", name, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
		batch.Documents = append(batch.Documents, doc)
		batch.contents[name] = content
	}
	return batch, nil
}

// ReadFile reads a single graph document
func ReadFile(ctx context.Context, fs afs.Service, URL string) (*graph.Document, error) {
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return Parse(filepath.Base(URL), content)
}

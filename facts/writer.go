package facts

import (
	"context"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/factgraph/graph"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"strings"
)

// ManifestFile is the run manifest name
const ManifestFile = "manifest.yaml"

// TableInfo describes a written fact table
type TableInfo struct {
	File        string `yaml:"file"`
	Rows        int    `yaml:"rows"`
	Fingerprint string `yaml:"fingerprint"`
}

// Manifest describes one emission run
type Manifest struct {
	Layout Layout       `yaml:"layout"`
	Input  string       `yaml:"input,omitempty"`
	Digest string       `yaml:"digest,omitempty"`
	Tables []*TableInfo `yaml:"tables"`
	Stats  graph.Stats  `yaml:"stats"`
}

// Writer emits nodes, edges and sensitive fact tables
type Writer struct {
	fs       afs.Service
	Location string // output directory
	Prefix   string // optional file name prefix, joined with "_"
	Layout   Layout
	Input    string // input recorded in manifest
	Digest   string // input digest recorded in manifest
	Manifest bool
	written  *Manifest
}

// NewWriter creates a fact table writer
func NewWriter(fs afs.Service, location, prefix string, layout Layout) *Writer {
	return &Writer{fs: fs, Location: location, Prefix: prefix, Layout: layout, Manifest: true}
}

// NewPrefixWriter creates a writer from an output prefix such as "out/kegg"
func NewPrefixWriter(fs afs.Service, outputPrefix string, layout Layout) *Writer {
	location, prefix := path.Split(outputPrefix)
	location = strings.TrimRight(location, "/")
	if location == "" {
		location, _ = os.Getwd()
	}
	return NewWriter(fs, location, prefix, layout)
}

// URL returns the location of a named table
func (w *Writer) URL(name string) string {
	if w.Prefix != "" {
		name = w.Prefix + "_" + name
	}
	return url.Join(w.Location, name)
}

// Written returns the manifest of the last export
func (w *Writer) Written() *Manifest {
	return w.written
}

// Export renders every table in memory, then overwrites each target file
func (w *Writer) Export(ctx context.Context, g *graph.Graph) error {
	manifest := &Manifest{Layout: w.Layout, Input: w.Input, Digest: w.Digest, Stats: g.Stats}
	tables := Tables(g, w.Layout)
	rendered := make([][]byte, len(tables))
	for i, table := range tables {
		data, err := table.Bytes()
		if err != nil {
			return err
		}
		rendered[i] = data
		fingerprint, err := Fingerprint(data)
		if err != nil {
			return err
		}
		manifest.Tables = append(manifest.Tables, &TableInfo{File: path.Base(w.URL(table.Name)), Rows: len(table.Rows), Fingerprint: fingerprint})
	}
	for i, table := range tables {
		if err := Overwrite(ctx, w.fs, w.URL(table.Name), rendered[i]); err != nil {
			return err
		}
	}
	w.written = manifest
	if !w.Manifest {
		return nil
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	return Overwrite(ctx, w.fs, w.URL(ManifestFile), data)
}

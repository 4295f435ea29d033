package facts_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/factgraph/facts"
	"github.com/viant/factgraph/graph"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_Export(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "kegg_"+facts.NodesTable)
	if !assert.NoError(t, os.WriteFile(stale, []byte("stale\tcontent\nthat\tis\nlonger\tthan\nthe\tnew\none\tone\n"), 0644)) {
		return
	}
	writer := facts.NewWriter(afs.New(), dir, "kegg", facts.Plain)
	writer.Input = "pathways"
	if !assert.NoError(t, writer.Export(context.Background(), sampleGraph())) {
		return
	}

	nodes, err := os.ReadFile(stale)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "C00031\tsource\nK00844\tsanitizer\nmap00010\tsink\n", string(nodes))
	edges, err := os.ReadFile(filepath.Join(dir, "kegg_"+facts.EdgesTable))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "C00031\tK00844\tsubstrate\nK00844\tmap00010\t\n", string(edges))

	data, err := os.ReadFile(filepath.Join(dir, "kegg_"+facts.ManifestFile))
	if !assert.NoError(t, err) {
		return
	}
	manifest := &facts.Manifest{}
	if !assert.NoError(t, yaml.Unmarshal(data, manifest)) {
		return
	}
	assert.Equal(t, facts.Plain, manifest.Layout)
	assert.Equal(t, "pathways", manifest.Input)
	assert.Equal(t, 3, manifest.Stats.TotalNodes)
	if assert.Len(t, manifest.Tables, 3) {
		assert.Equal(t, "kegg_"+facts.NodesTable, manifest.Tables[0].File)
		assert.Equal(t, 3, manifest.Tables[0].Rows)
		fingerprint, err := facts.Fingerprint(nodes)
		assert.NoError(t, err)
		assert.Equal(t, fingerprint, manifest.Tables[0].Fingerprint)
	}
	assert.EqualValues(t, manifest, writer.Written())

	stored, err := facts.NewWriter(afs.New(), dir, "kegg", facts.Indexed).ReadManifest(context.Background())
	if assert.NoError(t, err) {
		assert.EqualValues(t, manifest, stored)
	}
	missing, err := facts.NewWriter(afs.New(), dir, "other", facts.Plain).ReadManifest(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWriter_Load(t *testing.T) {
	for _, layout := range []facts.Layout{facts.Plain, facts.Indexed} {
		t.Run(string(layout), func(t *testing.T) {
			writer := facts.NewWriter(afs.New(), t.TempDir(), "", layout)
			writer.Manifest = false
			source := sampleGraph()
			if !assert.NoError(t, writer.Export(context.Background(), source)) {
				return
			}
			actual, err := writer.Load(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			assert.Len(t, actual.Nodes, 3)
			assert.EqualValues(t, source.Edges, actual.Edges)
			assert.Equal(t, 1, len(actual.NodesWithRole(graph.Sanitizer)))
			assert.Len(t, actual.Markers, 1)
		})
	}
}

func TestWriter_LoadWithoutSensitive(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, facts.NodesTable), []byte("a\tsource\nb\tsink\n"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, facts.EdgesTable), []byte("a\tb\n"), 0644))
	writer := facts.NewWriter(afs.New(), dir, "", facts.Plain)
	actual, err := writer.Load(context.Background())
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, actual.Nodes, 2)
	assert.EqualValues(t, []*graph.Edge{{Source: "a", Target: "b"}}, actual.Edges)
	assert.Empty(t, actual.Markers)
}

func TestDecode(t *testing.T) {
	_, err := facts.Decode(facts.Plain, [][]string{{"a", "toxic"}}, nil, nil)
	assert.Error(t, err)
	_, err = facts.Decode(facts.Indexed, [][]string{{"N0", "a"}}, nil, nil)
	assert.Error(t, err)
	_, err = facts.Decode(facts.Plain, nil, [][]string{{"a"}}, nil)
	assert.Error(t, err)
}

func TestNewPrefixWriter(t *testing.T) {
	writer := facts.NewPrefixWriter(afs.New(), "out/kegg", facts.Plain)
	assert.Equal(t, "out", writer.Location)
	assert.Equal(t, "kegg", writer.Prefix)

	writer = facts.NewPrefixWriter(afs.New(), "kegg", facts.Plain)
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.Equal(t, wd, writer.Location)
	assert.Equal(t, "kegg", writer.Prefix)
}

func TestOverwrite(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "out.facts")
	fs := afs.New()
	ctx := context.Background()
	assert.NoError(t, facts.Overwrite(ctx, fs, URL, []byte("first run with a long body\n")))
	assert.NoError(t, facts.Overwrite(ctx, fs, URL, []byte("second\n")))
	data, err := os.ReadFile(URL)
	assert.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

package graphml_test

import (
	"context"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/factgraph/graphml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_ReadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.graphml":        declaredDocument,
		"a.graphml":        bareDocument,
		"broken.graphml":   "<graphml><graph>",
		"notes.txt":        "not a graph",
		"nested/c.graphml": declaredDocument,
	}
	for name, content := range files {
		location := filepath.Join(dir, name)
		if !assert.NoError(t, os.MkdirAll(filepath.Dir(location), 0755)) {
			return
		}
		if !assert.NoError(t, os.WriteFile(location, []byte(content), 0644)) {
			return
		}
	}
	logger := log.New(os.Stderr)
	reader := graphml.NewReader(afs.New(), nil, logger)
	batch, err := reader.ReadDir(context.Background(), dir)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"a.graphml", "b.graphml"}, batch.Names())
	if assert.Len(t, batch.Skipped, 1) {
		assert.Equal(t, "broken.graphml", batch.Skipped[0].Name)
		assert.ErrorIs(t, batch.Skipped[0].Err, graphml.ErrMalformedDocument)
	}

	digest, err := batch.Digest()
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, strings.HasPrefix(digest, "h1:"))

	again, err := reader.ReadDir(context.Background(), dir)
	if !assert.NoError(t, err) {
		return
	}
	repeated, err := again.Digest()
	assert.NoError(t, err)
	assert.Equal(t, digest, repeated)
}

func TestReader_ReadDirCustomExtension(t *testing.T) {
	dir := t.TempDir()
	if !assert.NoError(t, os.WriteFile(filepath.Join(dir, "kegg.xml"), []byte(declaredDocument), 0644)) {
		return
	}
	if !assert.NoError(t, os.WriteFile(filepath.Join(dir, "other.graphml"), []byte(declaredDocument), 0644)) {
		return
	}
	reader := graphml.NewReader(afs.New(), graphml.Files(".xml"), nil)
	batch, err := reader.ReadDir(context.Background(), dir)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"kegg.xml"}, batch.Names())
}

func TestReadFile(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "single.graphml")
	if !assert.NoError(t, os.WriteFile(URL, []byte(declaredDocument), 0644)) {
		return
	}
	doc, err := graphml.ReadFile(context.Background(), afs.New(), URL)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "single.graphml", doc.Name)
	assert.Len(t, doc.Nodes, 2)
}

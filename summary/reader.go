package summary

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/factgraph/graph"
	"io"
)

// Reader decodes tab separated summary files, one summary per row with the path type in the last column
type Reader struct {
	Grammar *Grammar
	logger  *log.Logger
}

// NewReader creates a summary reader
func NewReader(grammar *Grammar, logger *log.Logger) *Reader {
	if grammar == nil {
		grammar = DefaultGrammar()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{Grammar: grammar, logger: logger}
}

// Result holds decoded rows
type Result struct {
	Rows    []*Row
	Skipped int
}

// ReadFile reads summaries from URL
func (r *Reader) ReadFile(ctx context.Context, fs afs.Service, URL string) (*Result, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return r.Read(data)
}

// Read decodes rows, invalid rows are skipped
func (r *Reader) Read(data []byte) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	result := &Result{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode summaries: %w", err)
		}
		row, err := r.parseRecord(record)
		if err != nil {
			r.logger.Debug("skipping row", "line", line, "err", err)
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func (r *Reader) parseRecord(record []string) (*Row, error) {
	if len(record) < 2 {
		return nil, fmt.Errorf("%w: expected summary and path type columns, got %d", ErrInvalidRow, len(record))
	}
	return r.Grammar.Parse(record[0], record[len(record)-1])
}

// Build accumulates rows into a graph, every named identifier becomes a node and
// each sensitivity tag is bound to the row source
func Build(rows []*Row) *graph.Graph {
	acc := graph.NewAccumulator(graph.Implicit, "")
	markers := map[graph.Marker]bool{}
	for i, row := range rows {
		acc.Begin(fmt.Sprintf("row%d", i))
		for _, node := range row.Nodes() {
			acc.AddNode(node)
		}
		for _, edge := range row.Edges() {
			acc.AddEdge(edge)
		}
		for _, tag := range row.Sensitive {
			marker := graph.Marker{Key: tag, Node: row.Source, Tag: tag}
			if markers[marker] {
				continue
			}
			markers[marker] = true
			acc.AddMarker(&marker)
		}
	}
	return acc.Graph()
}

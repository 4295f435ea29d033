package verify

import (
	"context"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/factgraph/facts"
	"strconv"
)

// Report file names
const (
	CompletePathwaysFile   = "complete_pathways.facts"
	UnverifiedPathwaysFile = "unverified_pathways.facts"
	DrugInteractionsFile   = "drug_interactions.facts"
	ResultsFile            = "test_results.csv"
	SummaryFile            = "test_summary.csv"
)

// Tables renders report tables
func (r *Report) Tables() []*facts.Table {
	complete := &facts.Table{Name: CompletePathwaysFile}
	for _, pathway := range r.Complete {
		complete.Rows = append(complete.Rows, []string{pathway.Source, pathway.Sink})
	}
	unverified := &facts.Table{Name: UnverifiedPathwaysFile}
	for _, pathway := range r.Unsanitized {
		unverified.Rows = append(unverified.Rows, []string{pathway.Source, pathway.Sink, pathway.Reason})
	}
	interactions := &facts.Table{Name: DrugInteractionsFile}
	for _, interaction := range r.Interactions {
		interactions.Rows = append(interactions.Rows, []string{interaction.Drug, interaction.Target, interaction.Pathway})
	}
	results := &facts.Table{Name: ResultsFile}
	for _, check := range r.Checks {
		results.Rows = append(results.Rows, []string{check.Name, string(check.Status), check.Message})
	}
	passed, total := r.Summary()
	summary := &facts.Table{Name: SummaryFile, Rows: [][]string{
		{"total", "passed"},
		{strconv.Itoa(total), strconv.Itoa(passed)},
	}}
	return []*facts.Table{complete, unverified, interactions, results, summary}
}

// Write writes every report table into location, replacing prior reports
func (r *Report) Write(ctx context.Context, fs afs.Service, location string) error {
	for _, table := range r.Tables() {
		data, err := table.Bytes()
		if err != nil {
			return err
		}
		if err = facts.Overwrite(ctx, fs, url.Join(location, table.Name), data); err != nil {
			return err
		}
	}
	return nil
}

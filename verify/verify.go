package verify

import (
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/viant/factgraph/graph"
)

// Status represents a check outcome
type Status string

const (
	Passed Status = "passed"
	Failed Status = "failed"
)

// Check names
const (
	NodeClassification   = "node_classification"
	PathwayIntegrity     = "pathway_integrity"
	SanitizationCoverage = "sanitization_coverage"
	DrugTargetAnalysis   = "drug_target_analysis"
)

// NoSanitizer is the reason reported for sensitive pathways without a sanitizer
const NoSanitizer = "no_sanitizer"

// Check represents a named check result
type Check struct {
	Name    string `yaml:"name"`
	Status  Status `yaml:"status"`
	Message string `yaml:"message"`
}

// Pathway represents a source that reaches a sink
type Pathway struct {
	Source string `yaml:"source"`
	Sink   string `yaml:"sink"`
	Reason string `yaml:"reason,omitempty"`
}

// Interaction represents a drug reaching a target that reaches a pathway sink
type Interaction struct {
	Drug    string `yaml:"drug"`
	Target  string `yaml:"target"`
	Pathway string `yaml:"pathway"`
}

// Report holds verification results
type Report struct {
	Checks       []*Check       `yaml:"checks"`
	Complete     []*Pathway     `yaml:"complete,omitempty"`
	Unsanitized  []*Pathway     `yaml:"unsanitized,omitempty"`
	Interactions []*Interaction `yaml:"interactions,omitempty"`
}

// Summary returns passed and total check counts
func (r *Report) Summary() (passed, total int) {
	for _, check := range r.Checks {
		total++
		if check.Status == Passed {
			passed++
		}
	}
	return passed, total
}

func (r *Report) add(name string, ok bool, message string) {
	status := Failed
	if ok {
		status = Passed
	}
	r.Checks = append(r.Checks, &Check{Name: name, Status: status, Message: message})
}

// Analyze checks classification, source-to-sink reachability, sanitizer coverage of
// sensitive sources and drug-target interactions
func Analyze(g *graph.Graph, logger *log.Logger) *Report {
	if logger == nil {
		logger = log.Default()
	}
	reach := reachability(g, logger)
	sources := g.NodesWithRole(graph.Source)
	sinks := g.NodesWithRole(graph.Sink)
	sanitizers := g.NodesWithRole(graph.Sanitizer)
	sensitive := map[string]bool{}
	for _, marker := range g.Markers {
		sensitive[marker.Node] = true
	}

	report := &Report{}
	report.add(NodeClassification, len(sources) > 0 && len(sinks) > 0 && len(sanitizers) > 0,
		fmt.Sprintf("Found %d sources, %d sinks, and %d sanitizers", len(sources), len(sinks), len(sanitizers)))

	for _, source := range sources {
		for _, sink := range sinks {
			if reach.has(source, sink) {
				report.Complete = append(report.Complete, &Pathway{Source: source, Sink: sink})
			}
		}
	}
	if len(report.Complete) > 0 {
		report.add(PathwayIntegrity, true, fmt.Sprintf("Found %d complete source-to-sink pathways", len(report.Complete)))
	} else {
		report.add(PathwayIntegrity, false, "No complete pathways found")
	}

	for _, pathway := range report.Complete {
		if !sensitive[pathway.Source] || sanitized(reach, pathway, sanitizers) {
			continue
		}
		report.Unsanitized = append(report.Unsanitized, &Pathway{Source: pathway.Source, Sink: pathway.Sink, Reason: NoSanitizer})
	}
	if len(report.Unsanitized) == 0 {
		report.add(SanitizationCoverage, true, "All sensitive pathways are sanitized")
	} else {
		report.add(SanitizationCoverage, false, fmt.Sprintf("Found %d unsanitized sensitive pathways", len(report.Unsanitized)))
	}

	for _, drug := range sources {
		for _, target := range sanitizers {
			if !reach.has(drug, target) {
				continue
			}
			for _, sink := range sinks {
				if reach.has(target, sink) {
					report.Interactions = append(report.Interactions, &Interaction{Drug: drug, Target: target, Pathway: sink})
				}
			}
		}
	}
	if len(report.Interactions) > 0 {
		report.add(DrugTargetAnalysis, true, fmt.Sprintf("Found %d drug-target interactions", len(report.Interactions)))
	} else {
		report.add(DrugTargetAnalysis, false, "No drug-target interactions found")
	}
	return report
}

func sanitized(reach closure, pathway *Pathway, sanitizers []string) bool {
	for _, sanitizer := range sanitizers {
		if reach.has(pathway.Source, sanitizer) && reach.has(sanitizer, pathway.Sink) {
			return true
		}
	}
	return false
}

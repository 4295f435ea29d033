// Command factgraph converts pathway graph documents and path summaries into taint-analysis fact tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/factgraph/classify"
	"github.com/viant/factgraph/compiler"
	"github.com/viant/factgraph/facts"
	"github.com/viant/factgraph/graph"
	"github.com/viant/factgraph/graphml"
	"github.com/viant/factgraph/synthetic"
	"github.com/viant/factgraph/verify"
	"io"
	"os"
	"strings"
)

const usage = `Usage: factgraph <command> [flags] <args>

Commands:
  facts [-rules file] [-heuristic] [-layout plain|indexed] <input_dir> <output_prefix>
  consolidate [-rules file] <input_dir> <output.graphml>
  reconstruct [-facts dir] <path_summary.tsv> <output.graphml>
  generate [-n 30] [-k 4] [-p 0.15] [-seed 42] [-out facts]
  verify [-out dir] [-layout plain|indexed] <pathway.graphml|facts_prefix>
`

var errUsage = errors.New("usage")

type app struct {
	fs     afs.Service
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	loadEnv()
	level := log.InfoLevel
	if getEnvBool(envDebug, false) {
		level = log.DebugLevel
	}
	a := &app{
		fs:     afs.New(),
		logger: log.NewWithOptions(stderr, log.Options{ReportTimestamp: true, Level: level}),
		stdout: stdout,
		stderr: stderr,
	}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	var err error
	var inputErr *compiler.InputError
	switch args[0] {
	case "facts":
		err = a.facts(ctx, args[1:])
	case "consolidate":
		err = a.consolidate(ctx, args[1:])
	case "reconstruct":
		err = a.reconstruct(ctx, args[1:])
	case "generate":
		err = a.generate(ctx, args[1:])
	case "verify":
		err = a.verify(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, usage)
		return 1
	case errors.As(err, &inputErr):
		kind := "file"
		if inputErr.Dir {
			kind = "directory"
		}
		if inputErr.Reason != "" {
			fmt.Fprintf(stderr, "Error: Input %s '%s': %s\n", kind, inputErr.URL, inputErr.Reason)
			return 1
		}
		fmt.Fprintf(stderr, "Error: Input %s '%s' does not exist\n", kind, inputErr.URL)
		return 1
	default:
		a.logger.Error("failed", "err", err)
		return 1
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.SetOutput(io.Discard)
	return set
}

func parse(set *flag.FlagSet, args []string, expected int) ([]string, error) {
	if err := set.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if set.NArg() != expected {
		return nil, fmt.Errorf("%w: %v expects %d arguments, got %d", errUsage, set.Name(), expected, set.NArg())
	}
	return set.Args(), nil
}

func (a *app) export(ctx context.Context, g *graph.Graph, exporters ...graph.Exporter) error {
	for _, exporter := range exporters {
		if err := exporter.Export(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newCompiler(ctx context.Context, rulesURL string, strategy classify.Strategy) (*compiler.Compiler, error) {
	options := []compiler.Option{compiler.WithFS(a.fs), compiler.WithLogger(a.logger), compiler.WithStrategy(strategy)}
	if rulesURL != "" {
		rules, err := classify.Load(ctx, a.fs, rulesURL)
		if err != nil {
			return nil, err
		}
		options = append(options, compiler.WithRules(rules))
	}
	return compiler.New(options...), nil
}

func (a *app) facts(ctx context.Context, args []string) error {
	set := a.flags("facts")
	rulesURL := set.String("rules", getEnvString(envRules, ""), "classification rules YAML")
	heuristic := set.Bool("heuristic", false, "classify by identifier and description indicators")
	layoutName := set.String("layout", getEnvString(envLayout, string(facts.Plain)), "fact table layout")
	positional, err := parse(set, args, 2)
	if err != nil {
		return err
	}
	layout, err := facts.ParseLayout(*layoutName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	strategy, err := classify.ParseStrategy(getEnvString(envStrategy, string(classify.Declared)))
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *heuristic {
		strategy = classify.Heuristic
	}
	comp, err := a.newCompiler(ctx, *rulesURL, strategy)
	if err != nil {
		return err
	}
	result, err := comp.CompileDir(ctx, positional[0])
	if err != nil {
		return err
	}
	writer := facts.NewPrefixWriter(a.fs, positional[1], layout)
	writer.Input = positional[0]
	writer.Digest = result.Digest
	if err = a.export(ctx, result.Graph, writer); err != nil {
		return err
	}
	a.logger.Info("wrote facts", "nodes", writer.URL(facts.NodesTable), "edges", writer.URL(facts.EdgesTable), "sensitive", writer.URL(facts.SensitiveTable))
	return nil
}

func (a *app) consolidate(ctx context.Context, args []string) error {
	set := a.flags("consolidate")
	rulesURL := set.String("rules", getEnvString(envRules, ""), "classification rules YAML")
	positional, err := parse(set, args, 2)
	if err != nil {
		return err
	}
	comp, err := a.newCompiler(ctx, *rulesURL, classify.Heuristic)
	if err != nil {
		return err
	}
	result, err := comp.CompileDir(ctx, positional[0])
	if err != nil {
		return err
	}
	if err = a.export(ctx, result.Graph, graphml.NewWriter(a.fs, positional[1], graphml.Consolidated)); err != nil {
		return err
	}
	a.logger.Info("created consolidated pathway file", "output", positional[1])
	return nil
}

func (a *app) reconstruct(ctx context.Context, args []string) error {
	set := a.flags("reconstruct")
	factsDir := set.String("facts", "", "also write fact tables into this directory")
	positional, err := parse(set, args, 2)
	if err != nil {
		return err
	}
	comp, err := a.newCompiler(ctx, "", classify.Declared)
	if err != nil {
		return err
	}
	result, err := comp.CompileSummaries(ctx, positional[0])
	if err != nil {
		return err
	}
	exporters := []graph.Exporter{graphml.NewWriter(a.fs, positional[1], graphml.Reconstructed)}
	if *factsDir != "" {
		writer := facts.NewWriter(a.fs, *factsDir, "", facts.Plain)
		writer.Input = positional[0]
		exporters = append(exporters, writer)
	}
	if err = a.export(ctx, result.Graph, exporters...); err != nil {
		return err
	}
	a.logger.Info("graph document saved", "output", positional[1])
	return nil
}

func (a *app) generate(ctx context.Context, args []string) error {
	set := a.flags("generate")
	cfg := synthetic.DefaultConfig()
	set.IntVar(&cfg.Nodes, "n", cfg.Nodes, "number of nodes")
	set.IntVar(&cfg.Neighbors, "k", cfg.Neighbors, "ring neighbours")
	set.Float64Var(&cfg.Rewire, "p", cfg.Rewire, "rewiring probability")
	set.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	set.StringVar(&cfg.Tag, "tag", cfg.Tag, "sensitivity tag")
	out := set.String("out", "facts", "output directory")
	if _, err := parse(set, args, 0); err != nil {
		return err
	}
	g, err := synthetic.Generate(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	writer := facts.NewWriter(a.fs, *out, "", facts.Indexed)
	writer.Input = fmt.Sprintf("watts-strogatz n=%d k=%d p=%v seed=%d", cfg.Nodes, cfg.Neighbors, cfg.Rewire, cfg.Seed)
	if err = a.export(ctx, g, writer); err != nil {
		return err
	}
	a.logger.Info("wrote facts", "location", *out)
	return nil
}

func (a *app) verify(ctx context.Context, args []string) error {
	set := a.flags("verify")
	out := set.String("out", ".", "report directory")
	layoutName := set.String("layout", "", "fact table layout of a facts prefix input, defaults to the manifest layout")
	positional, err := parse(set, args, 1)
	if err != nil {
		return err
	}
	input := positional[0]
	var report *verify.Report
	if strings.HasSuffix(input, graphml.Extension) {
		comp, err := a.newCompiler(ctx, "", classify.Declared)
		if err != nil {
			return err
		}
		result, err := comp.CompileDocument(ctx, input)
		if err != nil {
			return err
		}
		report = verify.Analyze(result.Graph, a.logger)
	} else {
		writer := facts.NewPrefixWriter(a.fs, input, facts.Plain)
		name := *layoutName
		if name == "" {
			manifest, err := writer.ReadManifest(ctx)
			if err != nil {
				return err
			}
			name = getEnvString(envLayout, string(facts.Plain))
			if manifest != nil {
				name = string(manifest.Layout)
			}
		}
		if writer.Layout, err = facts.ParseLayout(name); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		g, err := writer.Load(ctx)
		if err != nil {
			return err
		}
		report = verify.Analyze(g, a.logger)
	}
	if err = report.Write(ctx, a.fs, *out); err != nil {
		return err
	}
	passed, total := report.Summary()
	fmt.Fprintf(a.stdout, "Test Summary: %d/%d tests passed\n", passed, total)
	return nil
}

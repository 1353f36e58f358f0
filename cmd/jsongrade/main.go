// Command jsongrade compares two JSON files and prints a weighted diff
// report. The exit code reports the outcome: 0 when the similarity passes
// the gate, 1 when it does not, 2 on usage or input errors.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/jsongrade/internal/compare"
	"github.com/kailas-cloud/jsongrade/internal/config"
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
	"github.com/kailas-cloud/jsongrade/internal/ignore"
	logpkg "github.com/kailas-cloud/jsongrade/internal/logger"
	"github.com/kailas-cloud/jsongrade/internal/report"
	"github.com/kailas-cloud/jsongrade/internal/version"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("jsongrade", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: jsongrade [flags] <expected.json> <actual.json>\n\n")
		fs.PrintDefaults()
	}

	var (
		weightsPath   = fs.String("weights", "", "weight specification file (JSON or YAML)")
		rulesPath     = fs.String("rules", "", "ignore rules file (JSON or YAML)")
		configPath    = fs.String("config", "", "engine/output config file (YAML)")
		minSimilarity = fs.Float64("min-similarity", 0, "exit non-zero when similarity falls below this value")
		quiet         = fs.Bool("quiet", false, "suppress the diff report, print only the score line")
		verbose       = fs.Bool("verbose", false, "enable debug logging")
		showVersion   = fs.Bool("version", false, "print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *showVersion {
		fmt.Printf("jsongrade %s (%s)\n", version.Version, version.Commit)
		return exitPass
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = logpkg.New("local", "debug")
		if err != nil {
			return usageError(err)
		}
		defer func() { _ = logger.Sync() }()
	}

	// Without -config the stock engine defaults apply; a config file
	// replaces the compare section wholesale.
	cfg := config.Config{}
	cfg.ApplyDefaults()
	engineCfg := compare.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			return usageError(err)
		}
		engineCfg = engineConfig(cfg.Compare)
	}

	spec, rules, err := loadSpecs(*weightsPath, *rulesPath)
	if err != nil {
		return usageError(err)
	}

	expected, err := decodeFile(fs.Arg(0))
	if err != nil {
		return usageError(err)
	}
	actual, err := decodeFile(fs.Arg(1))
	if err != nil {
		return usageError(err)
	}

	engine := compare.New(engineCfg)
	w := spec.SelfWeight()
	e, a := rules.Apply(expected), rules.Apply(actual)
	diffTree := engine.Compare(e, a, w, spec, spec.Suppress())
	result := compare.BuildResult(diffTree, e, w, spec)

	logger.Debug("comparison finished",
		zap.Uint64("count", result.Count()),
		zap.Uint64("failed", result.Failed()),
		zap.Float64("weighted_count", result.WeightedCount()),
		zap.Float64("weighted_failed", result.WeightedFailed()),
	)

	reporter := report.NewReporter(report.OutputConfig{
		Console: !*quiet && !result.Diff().IsEmpty(),
		File: report.FileConfig{
			Name:   cfg.Output.File.Name,
			Indent: cfg.Output.File.Indent,
		},
	}, os.Stdout)
	if err := reporter.Report(result.Diff()); err != nil {
		return usageError(err)
	}

	fmt.Printf("similarity: %.4f (%d of %d attributes failed)\n",
		result.Similarity(), result.Failed(), result.Count())

	if result.Similarity() < *minSimilarity {
		return exitFail
	}
	return exitPass
}

func usageError(err error) int {
	fmt.Fprintln(os.Stderr, "jsongrade:", err)
	return exitUsage
}

func decodeFile(path string) (value.Value, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return value.Value{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	v, err := value.Decode(f)
	if err != nil {
		return value.Value{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

func loadSpecs(weightsPath, rulesPath string) (weight.Spec, ignore.Rules, error) {
	var spec weight.Spec
	if weightsPath != "" {
		tree, err := loadTree(weightsPath)
		if err != nil {
			return weight.Spec{}, ignore.Rules{}, fmt.Errorf("load weights: %w", err)
		}
		spec, err = weight.Parse(tree)
		if err != nil {
			return weight.Spec{}, ignore.Rules{}, err
		}
	}

	var rules ignore.Rules
	if rulesPath != "" {
		tree, err := loadTree(rulesPath)
		if err != nil {
			return weight.Spec{}, ignore.Rules{}, fmt.Errorf("load rules: %w", err)
		}
		rules, err = ignore.Parse(tree)
		if err != nil {
			return weight.Spec{}, ignore.Rules{}, err
		}
	}

	return spec, rules, nil
}

// loadTree reads a JSON or YAML document into a generic tree. YAML is a
// superset of JSON, so one decoder covers both.
func loadTree(path string) (any, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}

// engineConfig maps the loaded compare section onto engine settings. An
// absent float_precision disables rounding rather than falling back to the
// stock default: a supplied config replaces the defaults wholesale.
func engineConfig(c config.CompareConfig) compare.Config {
	checkLength := true
	if c.CheckLength != nil {
		checkLength = *c.CheckLength
	}
	return compare.Config{
		FloatPrecision:    c.FloatPrecision,
		CheckLength:       checkLength,
		LengthDiffPenalty: c.LengthDiffPenalty,
	}
}

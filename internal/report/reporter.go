package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
)

const defaultIndent = 4

// OutputConfig selects the report sinks. The zero value writes nowhere.
type OutputConfig struct {
	// Console writes the rendered diff to the reporter's console writer.
	Console bool
	// File writes the rendered diff to a file when Name is set.
	File FileConfig
}

// FileConfig holds the file sink settings.
type FileConfig struct {
	Name   string
	Indent int
}

// Reporter writes rendered diff trees to the configured sinks. The
// configuration is consumed by value and never modified.
type Reporter struct {
	cfg     OutputConfig
	console io.Writer
}

// NewReporter creates a reporter. A nil console defaults to stdout.
func NewReporter(cfg OutputConfig, console io.Writer) *Reporter {
	if console == nil {
		console = os.Stdout
	}
	return &Reporter{cfg: cfg, console: console}
}

// Report renders the diff tree and writes it to every enabled sink.
func (r *Reporter) Report(d *diff.Node) error {
	if !r.cfg.Console && r.cfg.File.Name == "" {
		return nil
	}

	doc := Render(d)

	if r.cfg.Console {
		out, err := marshalIndented(doc, defaultIndent)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.console, string(out)); err != nil {
			return fmt.Errorf("write report to console: %w", err)
		}
	}

	if r.cfg.File.Name != "" {
		indent := r.cfg.File.Indent
		if indent <= 0 {
			indent = defaultIndent
		}
		out, err := marshalIndented(doc, indent)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Clean(r.cfg.File.Name), out, 0o600); err != nil {
			return fmt.Errorf("write report to file: %w", err)
		}
	}

	return nil
}

func marshalIndented(doc *Doc, indent int) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}

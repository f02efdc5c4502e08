package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/yaklabco/autosarlint/pkg/analysis"
)

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version     string                      `json:"version"`
	ToolVersion string                      `json:"toolVersion"`
	RunID       string                      `json:"runId"`
	Files       []JSONFileResult            `json:"files"`
	Categories  []analysis.CategoryAnalysis `json:"categories,omitempty"`
	Summary     analysis.Totals             `json:"summary"`
}

// JSONFileResult holds the diagnostics or the error of one file. Files
// without findings are only counted in the summary.
type JSONFileResult struct {
	Path        string                     `json:"path"`
	Diagnostics []analysis.DiagnosticEntry `json:"diagnostics"`
	Error       string                     `json:"error,omitempty"`
}

// JSONRenderer formats a report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONRenderer) buildOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version:     report.Version,
		ToolVersion: r.opts.ToolVersion,
		RunID:       report.RunID,
		Files:       make([]JSONFileResult, 0),
		Categories:  report.ByCategory,
		Summary:     report.Totals,
	}

	index := make(map[string]int)
	file := func(path string) *JSONFileResult {
		i, ok := index[path]
		if !ok {
			i = len(output.Files)
			index[path] = i
			output.Files = append(output.Files, JSONFileResult{
				Path:        path,
				Diagnostics: make([]analysis.DiagnosticEntry, 0),
			})
		}
		return &output.Files[i]
	}

	for _, entry := range report.Diagnostics {
		f := file(entry.FilePath)
		f.Diagnostics = append(f.Diagnostics, entry)
	}
	for _, fileErr := range report.Errors {
		file(fileErr.Path).Error = fileErr.Message
	}

	slices.SortStableFunc(output.Files, func(a, b JSONFileResult) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return output
}

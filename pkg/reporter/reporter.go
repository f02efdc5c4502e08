// Package reporter renders lint results as text, tables, JSON, SARIF,
// summary tables or unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for result and returns the number of
	// unsuppressed issues reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges Reporter to a Renderer by analysing the result
// once up front.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{renderer: renderer, analysisOpts: opts.analysisOptions()}
}

// New creates a Reporter for opts.Format. An empty format selects text.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return newRendererFacade(NewTextRenderer(opts), opts), nil
	case FormatTable:
		return newRendererFacade(NewTableRenderer(opts), opts), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts), nil
	case FormatSARIF:
		return newRendererFacade(NewSARIFRenderer(opts), opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

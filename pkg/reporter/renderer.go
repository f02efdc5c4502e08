package reporter

import (
	"context"

	"github.com/yaklabco/autosarlint/pkg/analysis"
)

// Renderer formats an analysis.Report. Renderers only handle presentation;
// all counting and grouping happens in analysis.Analyze.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

package lint

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/directive"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/suppress"
)

// Parse-recovery pseudo-rule. It is not a catalog rule: it is toggled by
// config.Config.ParseRecovery and can only be suppressed through "all".
const (
	ParseRecoveryRuleID   = "parse-recovery"
	ParseRecoveryCategory = "Parse Recovery"
)

// maxRecoveryExcerpt bounds the token text quoted in a parse-recovery message.
const maxRecoveryExcerpt = 24

// DetectorPanicError records a detector that panicked. The panic is
// contained to that detector; the rest of the scan is unaffected.
type DetectorPanicError struct {
	RuleID string
	Value  any
	Stack  []byte
}

func (e *DetectorPanicError) Error() string {
	return fmt.Sprintf("detector %s panicked: %v", e.RuleID, e.Value)
}

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the scanned file.
	Snapshot *cppast.FileSnapshot

	// Diagnostics contains the final issues, in deterministic order.
	Diagnostics []Diagnostic

	// Suppressed contains the diagnostics removed by directives, in the same
	// order as Diagnostics.
	Suppressed []Diagnostic

	// Directives are the suppression requests found in the file.
	Directives []directive.Request

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains detector failures keyed by rule ID. A returned
	// error or a *DetectorPanicError.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// SuppressedCount returns the number of suppressed diagnostics.
func (fr *FileResult) SuppressedCount() int {
	return len(fr.Suppressed)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser scans C++ files into FileSnapshots.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile scans and lints a single file.
//
// Detectors run concurrently over the same immutable snapshot, bounded by
// cfg.DetectorJobs. Their outputs are concatenated in rule ID order, then
// filtered by the file's suppression directives and sorted.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Snapshot:   snapshot,
		Directives: directive.Extract(snapshot),
		RuleErrors: make(map[string]error),
	}

	resolved := ResolveRules(e.Registry, cfg)
	outputs, err := e.runDetectors(ctx, snapshot, resolved, cfg)
	if err != nil {
		return result, err
	}

	var candidates []Diagnostic
	for i, out := range outputs {
		rr := resolved[i]
		if out.err != nil {
			result.RuleErrors[rr.Rule.ID()] = out.err
			continue
		}
		for _, diag := range out.diags {
			candidates = append(candidates, finishDiagnostic(diag, rr, path))
		}
	}

	if cfg.ParseRecoveryEnabled() {
		candidates = append(candidates, parseRecoveryDiagnostics(snapshot)...)
	}

	idx := suppress.NewIndex(result.Directives)
	kept, suppressed := suppress.Partition(candidates, idx, func(d Diagnostic) (int, string) {
		return d.StartLine, d.RuleID
	})
	SortDiagnostics(kept)
	SortDiagnostics(suppressed)
	result.Diagnostics = kept
	result.Suppressed = suppressed

	result.collectEdits(resolved, len(snapshot.Content))

	return result, nil
}

type detectorOutput struct {
	diags []Diagnostic
	err   error
}

// runDetectors applies every resolved rule. Each detector writes only its
// own slot of the returned slice.
func (e *Engine) runDetectors(
	ctx context.Context,
	snapshot *cppast.FileSnapshot,
	resolved []ResolvedRule,
	cfg *config.Config,
) ([]detectorOutput, error) {
	outputs := make([]detectorOutput, len(resolved))
	cache := NewNodeCache(snapshot)
	logger := logging.FromContext(ctx)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(detectorJobs(cfg))

	for i, rr := range resolved {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("linting cancelled: %w", err)
			}

			ruleCtx := NewRuleContext(gctx, snapshot, cfg, rr.Config).WithCache(cache)
			ruleCtx.Registry = e.Registry

			diags, err := applyIsolated(rr.Rule, ruleCtx)
			if err != nil {
				logger.Warn("detector failed",
					logging.FieldRule, rr.Rule.ID(),
					logging.FieldPath, snapshot.Path,
					logging.FieldError, err)
			}
			outputs[i] = detectorOutput{diags: diags, err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// applyIsolated runs one detector, converting a panic into an error.
func applyIsolated(rule Rule, ruleCtx *RuleContext) (diags []Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = &DetectorPanicError{RuleID: rule.ID(), Value: r, Stack: debug.Stack()}
		}
	}()
	return rule.Apply(ruleCtx)
}

func detectorJobs(cfg *config.Config) int {
	if cfg != nil && cfg.DetectorJobs > 0 {
		return cfg.DetectorJobs
	}
	return runtime.GOMAXPROCS(0)
}

// finishDiagnostic stamps engine-owned fields onto a detector's output.
func finishDiagnostic(diag Diagnostic, rr ResolvedRule, path string) Diagnostic {
	diag.RuleID = rr.Rule.ID()
	diag.Severity = rr.Severity
	if diag.FilePath == "" {
		diag.FilePath = path
	}
	if diag.RuleName == "" {
		diag.RuleName = rr.Rule.Name()
	}
	if diag.Category == "" {
		diag.Category = rr.Rule.Category()
	}
	return diag
}

// parseRecoveryDiagnostics reports one diagnostic per Error token.
func parseRecoveryDiagnostics(snapshot *cppast.FileSnapshot) []Diagnostic {
	var out []Diagnostic
	for _, tok := range snapshot.Tokens {
		if tok.Kind != cppast.TokError {
			continue
		}
		diag := NewTokenDiagnostic(ParseRecoveryRuleID, snapshot, tok,
			fmt.Sprintf("unrecognised input skipped: %q", excerpt(tok.Text))).
			WithSeverity(config.SeverityInfo).
			Build()
		diag.RuleName = ParseRecoveryRuleID
		diag.Category = ParseRecoveryCategory
		out = append(out, diag)
	}
	return out
}

func excerpt(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > maxRecoveryExcerpt {
		return text[:maxRecoveryExcerpt] + "..."
	}
	return text
}

// collectEdits validates the fix edits of the final diagnostics, merging
// deletions and filtering conflicts. Suppressed diagnostics contribute none.
func (fr *FileResult) collectEdits(resolved []ResolvedRule, contentLen int) {
	autoFix := make(map[string]bool, len(resolved))
	for _, rr := range resolved {
		autoFix[rr.Rule.ID()] = rr.AutoFix
	}

	var allEdits []fix.TextEdit
	for _, d := range fr.Diagnostics {
		if autoFix[d.RuleID] {
			allEdits = append(allEdits, d.FixEdits...)
		}
	}
	if len(allEdits) == 0 {
		return
	}

	accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, contentLen)
	if err != nil {
		// Validation error: keep diagnostics, drop edits.
		fr.EditConflicts = true
		return
	}
	fr.Edits = accepted
	fr.SkippedEdits = skipped
	fr.EditConflicts = len(skipped) > 0
}

// SortDiagnostics orders diagnostics by path, start position, rule ID, end
// position and message.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, CompareDiagnostics)
}

// CompareDiagnostics is the total order used by SortDiagnostics.
func CompareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.FilePath, b.FilePath),
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.StartColumn, b.StartColumn),
		cmp.Compare(a.RuleID, b.RuleID),
		cmp.Compare(a.EndLine, b.EndLine),
		cmp.Compare(a.EndColumn, b.EndColumn),
		cmp.Compare(a.Message, b.Message),
	)
}

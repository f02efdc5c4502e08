// Package analysis turns a runner result into the grouped, counted views
// that the reporters render: a flat diagnostic list and per-file,
// per-rule and per-category aggregates.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Analyze builds a Report from result in a single pass over its
// diagnostics. A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator()
	for _, file := range result.Files {
		report.Totals.Files++
		path := relativePath(file.Path, opts.WorkingDir)
		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: path, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fa := acc.file(path)
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}
		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			severity := normalizeSeverity(diag.Severity)
			report.Totals.Issues++
			report.Totals.add(severity)
			if diag.HasFix() {
				report.Totals.Fixable++
			}

			fa.count(severity)
			acc.fileRules[path][diag.RuleID] = true

			ra := acc.rule(diag)
			ra.count(severity)
			if diag.HasFix() {
				ra.Fixable = true
			}
			acc.ruleFiles[diag.RuleID][path] = true

			ca := acc.category(diag.Category)
			ca.count(severity)
			acc.categoryRules[diag.Category][diag.RuleID] = true

			if opts.IncludeDiagnostics {
				entry := newEntry(path, severity, diag, false)
				if opts.IncludeSource && file.Result.Snapshot != nil {
					entry.SourceLine = string(file.Result.Snapshot.LineContent(diag.StartLine))
				}
				report.Diagnostics = append(report.Diagnostics, entry)
			}
		}
		for i := range file.Result.Suppressed {
			diag := &file.Result.Suppressed[i]
			report.Totals.Suppressed++
			fa.Suppressed++
			acc.rule(diag).Suppressed++
			if opts.IncludeDiagnostics && opts.IncludeSuppressed {
				report.Diagnostics = append(report.Diagnostics,
					newEntry(path, normalizeSeverity(diag.Severity), diag, true))
			}
		}
	}
	report.Totals.CodeLines = result.Stats.Code.Code
	report.Totals.FilesModified = result.Stats.FilesModified
	report.Totals.Fixed = result.Stats.DiagnosticsFixed
	report.Totals.SuppressionsInserted = result.Stats.SuppressionsInserted

	if opts.IncludeByRule {
		report.ByRule = acc.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile(opts)
	}
	if opts.IncludeByCategory {
		report.ByCategory = acc.byCategory(opts)
	}
	return report
}

func relativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}

func (c *SeverityCounts) count(sev config.Severity) {
	c.Issues++
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	}
}

func (t *Totals) add(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		t.Errors++
	case config.SeverityWarning:
		t.Warnings++
	case config.SeverityInfo:
		t.Infos++
	}
}

func newEntry(path string, sev config.Severity, diag *lint.Diagnostic, suppressed bool) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Category:    diag.Category,
		Severity:    string(sev),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
		Suppressed:  suppressed,
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

// accumulator collects the grouped views while Analyze walks the result.
type accumulator struct {
	files      map[string]*FileAnalysis
	rules      map[string]*RuleAnalysis
	categories map[string]*CategoryAnalysis

	fileRules     map[string]map[string]bool
	ruleFiles     map[string]map[string]bool
	categoryRules map[string]map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{
		files:         make(map[string]*FileAnalysis),
		rules:         make(map[string]*RuleAnalysis),
		categories:    make(map[string]*CategoryAnalysis),
		fileRules:     make(map[string]map[string]bool),
		ruleFiles:     make(map[string]map[string]bool),
		categoryRules: make(map[string]map[string]bool),
	}
}

func (a *accumulator) file(path string) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		a.files[path] = fa
		a.fileRules[path] = make(map[string]bool)
	}
	return fa
}

func (a *accumulator) rule(diag *lint.Diagnostic) *RuleAnalysis {
	ra, ok := a.rules[diag.RuleID]
	if !ok {
		ra = &RuleAnalysis{RuleID: diag.RuleID, RuleName: diag.RuleName, Category: diag.Category}
		a.rules[diag.RuleID] = ra
		a.ruleFiles[diag.RuleID] = make(map[string]bool)
	}
	return ra
}

func (a *accumulator) category(name string) *CategoryAnalysis {
	ca, ok := a.categories[name]
	if !ok {
		ca = &CategoryAnalysis{Category: name}
		a.categories[name] = ca
		a.categoryRules[name] = make(map[string]bool)
	}
	return ca
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// byRule lists the rules with at least one unsuppressed issue.
func (a *accumulator) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for id, ra := range a.rules {
		if ra.Issues == 0 {
			continue
		}
		ra.Files = sortedKeys(a.ruleFiles[id])
		out = append(out, *ra)
	}
	slices.SortFunc(out, func(l, r RuleAnalysis) int {
		return compareGroups(l.SeverityCounts, r.SeverityCounts, l.RuleID, r.RuleID, opts)
	})
	return out
}

// byFile lists the files with at least one unsuppressed issue.
func (a *accumulator) byFile(opts Options) []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range a.files {
		if fa.Issues == 0 {
			continue
		}
		fa.Rules = sortedKeys(a.fileRules[path])
		out = append(out, *fa)
	}
	slices.SortFunc(out, func(l, r FileAnalysis) int {
		return compareGroups(l.SeverityCounts, r.SeverityCounts, l.Path, r.Path, opts)
	})
	return out
}

func (a *accumulator) byCategory(opts Options) []CategoryAnalysis {
	out := make([]CategoryAnalysis, 0, len(a.categories))
	for name, ca := range a.categories {
		ca.Rules = sortedKeys(a.categoryRules[name])
		out = append(out, *ca)
	}
	slices.SortFunc(out, func(l, r CategoryAnalysis) int {
		return compareGroups(l.SeverityCounts, r.SeverityCounts, l.Category, r.Category, opts)
	})
	return out
}

// compareGroups orders two groups by opts.SortBy; ties fall back to the
// group key so output is deterministic.
func compareGroups(l, r SeverityCounts, lkey, rkey string, opts Options) int {
	var c int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		c = cmp.Or(
			cmp.Compare(r.Errors, l.Errors),
			cmp.Compare(r.Warnings, l.Warnings),
			cmp.Compare(r.Issues, l.Issues),
		)
	default:
		c = cmp.Compare(l.Issues, r.Issues)
		if opts.SortDesc {
			c = -c
		}
	}
	return cmp.Or(c, cmp.Compare(lkey, rkey))
}

package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
)

const (
	sarifToolName       = "autosarlint"
	sarifInformationURI = "https://github.com/yaklabco/autosarlint"
)

// SARIFRenderer formats a report as a SARIF 2.1.0 log with one run.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	log, err := r.buildLog(report)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if r.opts.Compact {
		err = log.Write(bw)
	} else {
		err = log.PrettyWrite(bw)
	}
	if err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	_, err = bw.WriteString("\n")
	return err
}

func (r *SARIFRenderer) buildLog(report *analysis.Report) (*sarif.Report, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("create SARIF log: %w", err)
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifInformationURI)
	run.Tool.Driver.WithVersion(r.opts.ToolVersion)
	run.WithAutomationDetails(sarif.NewRunAutomationDetails().
		WithGUID(report.RunID).
		WithID(sarifToolName + "/" + report.RunID))

	invocation := run.AddInvocation(len(report.Errors) == 0)
	invocation.WithEndTimeUTC(report.Timestamp)
	if r.opts.WorkingDir != "" {
		invocation.WithWorkingDirectory(sarif.NewSimpleArtifactLocation(filepath.ToSlash(r.opts.WorkingDir)))
	}

	for i := range report.Diagnostics {
		entry := &report.Diagnostics[i]
		r.addRule(run, entry)
		run.AddResult(r.newResult(entry))
	}

	log.AddRun(run)
	return log, nil
}

// addRule registers the rule of entry once; AddRule returns the existing
// descriptor for a known ID.
func (r *SARIFRenderer) addRule(run *sarif.Run, entry *analysis.DiagnosticEntry) {
	rule := run.AddRule(entry.RuleID)
	if rule.Name != nil {
		return
	}
	rule.WithName(entry.RuleName)
	rule.WithDescription(entry.RuleName)
	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: sarifLevel(entry.Severity)})
	if entry.Category != "" {
		rule.WithProperties(sarif.Properties{"category": entry.Category})
	}
}

func (r *SARIFRenderer) newResult(entry *analysis.DiagnosticEntry) *sarif.Result {
	uri := filepath.ToSlash(entry.FilePath)
	region := sarif.NewRegion().
		WithStartLine(entry.StartLine).
		WithStartColumn(entry.StartColumn).
		WithEndLine(entry.EndLine).
		WithEndColumn(entry.EndColumn)

	result := sarif.NewRuleResult(entry.RuleID).
		WithLevel(sarifLevel(entry.Severity)).
		WithMessage(sarif.NewTextMessage(entry.Message)).
		WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(uri)).
				WithRegion(region)),
		})

	if entry.Suppressed {
		result.AddSuppression(sarif.NewSuppression("inSource").WithStatus("accepted"))
	}

	if len(entry.Fixes) > 0 {
		description := entry.Suggestion
		if description == "" {
			description = "Apply the automatic fix for " + entry.RuleID
		}
		change := sarif.NewArtifactChange(sarif.NewSimpleArtifactLocation(uri))
		for _, edit := range entry.Fixes {
			deleted := sarif.NewRegion().
				WithByteOffset(edit.StartOffset).
				WithByteLength(edit.EndOffset - edit.StartOffset)
			change.WithReplacement(sarif.NewReplacement(deleted).
				WithInsertedContent(sarif.NewArtifactContent().WithText(edit.NewText)))
		}
		result.AddFix(sarif.NewFix().
			WithDescriptionText(description).
			WithArtifactChanges([]*sarif.ArtifactChange{change}))
	}
	return result
}

// sarifLevel maps a severity to a SARIF result level.
func sarifLevel(severity string) string {
	switch config.Severity(severity) {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}

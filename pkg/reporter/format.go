package reporter

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
)

// Format is an output format. It shares its values with the config key.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a format name; the empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, sarif, diff, summary", name)
	}
	return format, nil
}

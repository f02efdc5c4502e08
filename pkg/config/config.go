// Package config defines core configuration types for autosarlint.
// These types are pure data structures with no dependency on the loader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank orders severities from most to least serious (error = 0).
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Severity *string        `json:"severity,omitempty" toml:"severity,omitempty" yaml:"severity,omitempty"`
	AutoFix  *bool          `json:"auto_fix,omitempty" toml:"auto_fix,omitempty" yaml:"auto_fix,omitempty"`
	Options  map[string]any `json:"options,omitempty" toml:"options,omitempty" yaml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Mode    string `json:"mode" toml:"mode" yaml:"mode"` // "sidecar"
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled"`

	// Dir overrides the cache directory. Empty means $XDG_CACHE_HOME/autosarlint.
	Dir string `json:"dir,omitempty" toml:"dir,omitempty" yaml:"dir,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-dynamic-cast"
	RuleFormatID       RuleFormat = "id"       // "A5-2-1"
	RuleFormatCombined RuleFormat = "combined" // "A5-2-1/no-dynamic-cast"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
	// SummaryOrderCategories shows the category table first.
	SummaryOrderCategories SummaryOrder = "categories"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles, SummaryOrderCategories:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions analysed when none are configured.
func DefaultExtensions() []string {
	return []string{".cpp", ".cc", ".cxx", ".c++", ".c", ".h", ".hh", ".hpp", ".hxx", ".ipp", ".inl"}
}

// Config is the root configuration structure for autosarlint.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	// Empty keeps each rule's own default.
	SeverityDefault string `json:"severity_default,omitempty" toml:"severity_default,omitempty" yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID or name.
	Rules map[string]RuleConfig `json:"rules,omitempty" toml:"rules,omitempty" yaml:"rules,omitempty"`

	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Extensions lists the file extensions to analyse, with leading dot.
	Extensions []string `json:"extensions,omitempty" toml:"extensions,omitempty" yaml:"extensions,omitempty"`

	// Charset is the IANA name of the source encoding. Empty means UTF-8.
	Charset string `json:"charset,omitempty" toml:"charset,omitempty" yaml:"charset,omitempty"`

	// ParseRecovery reports one parse-recovery diagnostic per unrecognised
	// token. Nil means enabled.
	ParseRecovery *bool `json:"parse_recovery,omitempty" toml:"parse_recovery,omitempty" yaml:"parse_recovery,omitempty"`

	// DetectorJobs bounds the detectors run concurrently on one file.
	// Zero means GOMAXPROCS.
	DetectorJobs int `json:"detector_jobs,omitempty" toml:"detector_jobs,omitempty" yaml:"detector_jobs,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `json:"backups" toml:"backups" yaml:"backups"`

	// Cache configures the result cache.
	Cache CacheConfig `json:"cache" toml:"cache" yaml:"cache"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `json:"-" toml:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `json:"-" toml:"-" yaml:"-"`

	// Suppress inserts suppression directives for remaining diagnostics.
	Suppress bool `json:"-" toml:"-" yaml:"-"`

	// NextLine makes Suppress insert next-line directives above offending lines.
	NextLine bool `json:"-" toml:"-" yaml:"-"`

	// IncludeSuppressed makes reporters emit suppressed diagnostics too.
	IncludeSuppressed bool `json:"-" toml:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `json:"-" toml:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `json:"-" toml:"-" yaml:"-"`

	// Jobs specifies the number of files analysed in parallel.
	Jobs int `json:"-" toml:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `json:"-" toml:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `json:"-" toml:"-" yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `json:"-" toml:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `json:"-" toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatID,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// ParseRecoveryEnabled reports whether parse-recovery diagnostics are on.
func (c *Config) ParseRecoveryEnabled() bool {
	return c == nil || c.ParseRecovery == nil || *c.ParseRecovery
}

package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/config"
)

// envVarPrefix is the prefix for all autosarlint environment variables.
const envVarPrefix = "AUTOSARLINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds an environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT": {field: "severity_default", typ: envTypeString, description: "Severity for rules without their own: error, warning or info"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text, table, json, sarif, diff or summary"},
	"RULE_FORMAT":      {field: "rule_format", typ: envTypeString, description: "Rule label in output: id, name or combined"},
	"CHARSET":          {field: "charset", typ: envTypeString, description: "Source encoding (IANA name), e.g. ISO-8859-1"},
	"BACKUPS_MODE":     {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"CACHE_DIR":        {field: "cache.dir", typ: envTypeString, description: "Directory of the result cache"},
	"FIX":              {field: "fix", typ: envTypeBool, description: "Apply automatic fixes: true or false"},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool, description: "Show fixes without writing: true or false"},
	"NO_BACKUPS":       {field: "no_backups", typ: envTypeBool, description: "Disable backups when fixing: true or false"},
	"CACHE":            {field: "cache.enabled", typ: envTypeBool, description: "Reuse results of unchanged files: true or false"},
	"PARSE_RECOVERY":   {field: "parse_recovery", typ: envTypeBool, description: "Report unrecognised tokens: true or false"},
	"JOBS":             {field: "jobs", typ: envTypeInt, description: "Number of files analysed in parallel (0 = auto)"},
	"DETECTOR_JOBS":    {field: "detector_jobs", typ: envTypeInt, description: "Detectors run concurrently per file (0 = auto)"},
	"ENABLE":           {field: "enable", typ: envTypeSlice, description: "Comma-separated rules or categories to enable"},
	"DISABLE":          {field: "disable", typ: envTypeSlice, description: "Comma-separated rules or categories to disable"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated ignore globs"},
	"EXTENSIONS":       {field: "extensions", typ: envTypeSlice, description: "Comma-separated file extensions to analyse"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with AUTOSARLINT_ (e.g., AUTOSARLINT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedKeys(envMappings) {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: envVar, Value: value, Message: "invalid boolean (expected true/false/1/0)"}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: envVar, Value: value, Message: "invalid integer"}
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into trimmed, non-empty
// elements.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "rule_format":
		cfg.RuleFormat = config.RuleFormat(value)
	case "charset":
		cfg.Charset = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "cache.dir":
		cfg.Cache.Dir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dry_run":
		cfg.DryRun = value
	case "no_backups":
		cfg.NoBackups = value
	case "cache.enabled":
		cfg.Cache.Enabled = value
	case "parse_recovery":
		cfg.ParseRecovery = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "detector_jobs":
		cfg.DetectorJobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "enable":
		cfg.EnableRules = value
	case "disable":
		cfg.DisableRules = value
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}

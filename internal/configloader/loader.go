// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, rule key normalisation and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, it is merged above the discovered project config.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves rule names, aliases and categories in rule keys.
	// Defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (AUTOSARLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.autosarlint.* upward search)
//  5. User config ($XDG_CONFIG_HOME/autosarlint/config.yml)
//  6. System config (/etc/autosarlint/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	cfg := config.NewConfig()
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		normalizeRuleKeys(fileCfg, registry, result)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.name, logging.FieldPath, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	cfg.EnableRules = normalizeRuleList(cfg.EnableRules, registry)
	cfg.DisableRules = normalizeRuleList(cfg.DisableRules, registry)
	cfg.FixRules = normalizeRuleList(cfg.FixRules, registry)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, validation.Errors
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration file; the extension selects YAML,
// JSON or TOML.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Parse(path, content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

// normalizeRuleKeys rewrites rule keys to canonical IDs. A key may be an
// ID, a rule name, a registered alias or a category; a category key
// configures every rule in it. Keys naming a single rule win over
// category keys, and a rule named by two keys keeps the last one seen in
// key order, with a warning.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string)
	var groups []string

	for _, key := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[key]
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			if IsCategory(registry, key) {
				groups = append(groups, key)
				continue
			}
			// Unknown rule keys are kept; validation warns about them.
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}
		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	for _, group := range groups {
		for _, id := range CategoryRules(registry, group) {
			if _, explicit := seenIDs[id]; explicit {
				continue
			}
			normalized[id] = mergeRuleConfig(normalized[id], cfg.Rules[group])
		}
	}

	cfg.Rules = normalized
}

// normalizeRuleList rewrites a list of rule keys from the command line or
// environment to canonical IDs, expanding categories. Unknown keys are
// kept so validation can report them.
func normalizeRuleList(keys []string, registry *lint.Registry) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			out = append(out, id)
			continue
		}
		if IsCategory(registry, key) {
			out = append(out, CategoryRules(registry, key)...)
			continue
		}
		out = append(out, key)
	}
	return out
}

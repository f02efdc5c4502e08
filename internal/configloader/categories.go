package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/lint"
)

// allRulesKey is the group key that addresses the whole catalog.
const allRulesKey = "all"

// categoryKey folds a category or group key so "Standard Conversions",
// "standard-conversions" and "standard_conversions" compare equal.
func categoryKey(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", " ", "_", " ").Replace(folded)
}

// IsCategory reports whether key names a rule category of registry, or is
// "all".
func IsCategory(registry *lint.Registry, key string) bool {
	return len(CategoryRules(registry, key)) > 0
}

// CategoryRules returns the sorted IDs of the rules in the category named
// by key. "all" returns every rule. An unknown category returns nil.
func CategoryRules(registry *lint.Registry, key string) []string {
	folded := categoryKey(key)
	if folded == allRulesKey {
		return registry.IDs()
	}

	var ids []string
	for _, d := range registry.Descriptors() {
		if d.Category != "" && categoryKey(d.Category) == folded {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Categories returns the distinct rule categories of registry, sorted.
func Categories(registry *lint.Registry) []string {
	var out []string
	for _, d := range registry.Descriptors() {
		if d.Category != "" && !slices.Contains(out, d.Category) {
			out = append(out, d.Category)
		}
	}
	slices.Sort(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

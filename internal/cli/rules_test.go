package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return registry
}

func TestRulesCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	for _, name := range []string{"rule-format", "format", "category", "fixable"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "id", cmd.Flags().Lookup("rule-format").DefValue)
}

func TestSelectRules(t *testing.T) {
	t.Parallel()

	registry := testRegistry()

	all, err := selectRules(registry, &rulesFlags{})
	require.NoError(t, err)
	assert.Len(t, all, registry.Len())
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.True(t, prev.Category < cur.Category || (prev.Category == cur.Category && prev.ID < cur.ID),
			"%s/%s before %s/%s", prev.Category, prev.ID, cur.Category, cur.ID)
	}

	conversions, err := selectRules(registry, &rulesFlags{category: "standard_conversions"})
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	assert.Equal(t, "A4-10-1", conversions[0].ID)

	fixable, err := selectRules(registry, &rulesFlags{fixable: true})
	require.NoError(t, err)
	require.NotEmpty(t, fixable)
	for _, d := range fixable {
		assert.True(t, d.Fixable, d.ID)
	}

	_, err = selectRules(registry, &rulesFlags{category: "Nonsense"})
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, err.Error(), "Statements")
}

func TestOutputRulesText(t *testing.T) {
	t.Parallel()

	descs := []lint.RuleDescriptor{
		{ID: "A6-6-1", Name: "no-goto", Category: "Statements", Summary: "No goto",
			DefaultSeverity: config.SeverityError, DefaultEnabled: true},
		{ID: "M6-4-1", Name: "if-else-if", Category: "Statements", Summary: "Terminate if chains",
			DefaultSeverity: config.SeverityWarning, Fixable: true},
	}

	var out bytes.Buffer
	require.NoError(t, outputRulesText(&out, pretty.NewStyles(false), descs, config.RuleFormatID))

	assert.Equal(t, "Statements\n"+
		"  A6-6-1  error   No goto   \n"+
		"  M6-4-1  warning Terminate if chains  + off\n"+
		"\n2 rules (+ = fixable, off = disabled by default)\n", out.String())

	out.Reset()
	require.NoError(t, outputRulesText(&out, pretty.NewStyles(false), nil, config.RuleFormatID))
	assert.Equal(t, "No rules match.\n", out.String())
}

func TestStyleFlagLine(t *testing.T) {
	t.Parallel()

	h := NewHelpFormatter("never", &bytes.Buffer{})

	tests := []struct {
		name string
		line string
	}{
		{"long flag with type", "      --format string     output format"},
		{"short and long", "  -f, --force             Overwrite existing configuration file"},
		{"blank", ""},
		{"no description", "      --flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.line, h.styleFlagLine(tt.line), "uncolored help keeps pflag's layout")
		})
	}
}

func TestRenderPack(t *testing.T) {
	t.Parallel()

	pack := rules.PackByName("relaxed")
	require.NotNil(t, pack)

	for _, format := range []string{"yaml", "json", "toml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			data, err := renderPack(pack, format)
			require.NoError(t, err)

			path := "pack." + map[string]string{"yaml": "yml", "json": "json", "toml": "toml"}[format]
			cfg, err := config.Parse(path, data)
			require.NoError(t, err, string(data))
			assert.Len(t, cfg.Rules, len(pack.Rules))
			for id, rc := range pack.Rules {
				got, ok := cfg.Rules[id]
				if assert.True(t, ok, id) && rc.Enabled != nil {
					require.NotNil(t, got.Enabled, id)
					assert.Equal(t, *rc.Enabled, *got.Enabled, id)
				}
			}
		})
	}
}

package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/lint"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newRule("A5-2-1", "no-dynamic-cast", nil))
	reg.RegisterAlias("M5-2-2", "A5-2-1")

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{key: "A5-2-1", wantID: "A5-2-1", wantOK: true},
		{key: "no-dynamic-cast", wantID: "A5-2-1", wantOK: true},
		{key: "M5-2-2", wantID: "A5-2-1", wantOK: true},
		{key: "A5-2-9", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			id, rule, ok := reg.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if tt.wantOK {
				require.NotNil(t, rule)
				assert.Equal(t, tt.wantID, rule.ID())
			}
		})
	}

	_, ok := reg.GetByID("no-dynamic-cast")
	assert.False(t, ok, "GetByID must not match names")
	_, ok = reg.GetByName("A5-2-1")
	assert.False(t, ok, "GetByName must not match IDs")
}

func TestRegistry_RegisterReplacesByID(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newRule("A7-1-6", "old-name", nil))
	reg.Register(newRule("A7-1-6", "no-typedef", nil))

	assert.Equal(t, 1, reg.Len())
	_, ok := reg.GetByName("old-name")
	assert.False(t, ok)
	rule, ok := reg.Get("no-typedef")
	require.True(t, ok)
	assert.Equal(t, "A7-1-6", rule.ID())
}

func TestRegistry_RulesSortedByID(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	for _, id := range []string{"M6-4-1", "A5-2-2", "A18-1-1", "A0-1-4"} {
		reg.Register(newRule(id, "rule-"+id, nil))
	}

	assert.Equal(t, []string{"A0-1-4", "A18-1-1", "A5-2-2", "M6-4-1"}, reg.IDs())
	rules := reg.Rules()
	require.Len(t, rules, 4)
	assert.Equal(t, "A0-1-4", rules[0].ID())

	descs := reg.Descriptors()
	require.Len(t, descs, 4)
	assert.Equal(t, lint.RuleDescriptor{
		ID:              "A0-1-4",
		Name:            "rule-A0-1-4",
		Category:        "Testing",
		Summary:         "test rule A0-1-4",
		DefaultSeverity: "warning",
		DefaultEnabled:  true,
	}, descs[0])
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newRule("A6-6-1", "no-goto", nil))
	reg.RegisterAlias("goto", "A6-6-1")

	clone := reg.Clone()
	clone.Register(newRule("A6-5-3", "no-do-while", nil))

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 2, clone.Len())
	_, ok := clone.Get("goto")
	assert.True(t, ok)
}

package rules_test

import (
	"testing"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	ev, err := rules.NewEvaluator(domain.DefaultRuleTable(), rules.ProfileImports)
	require.NoError(t, err)

	view := rules.Describe(ev)
	assert.Equal(t, rules.ProfileImports, view.Profile)
	require.Len(t, view.Rules, len(domain.ValidRules))

	active := map[string]bool{}
	for _, r := range view.Rules {
		active[r.ID] = r.Active
	}
	assert.True(t, active[domain.RuleImportDirection])
	assert.False(t, active[domain.RuleFunctionVerb])

	var component *rules.CategoryView
	for i := range view.Categories {
		if view.Categories[i].Name == "component" {
			component = &view.Categories[i]
		}
	}
	require.NotNil(t, component)
	assert.True(t, component.PairsWithStyle)
	assert.Equal(t, []string{"layer", "cssFile"}, component.RequiredFields)
	assert.Contains(t, view.Injectors, domain.InjectorMetadata)
	assert.NotEmpty(t, view.Verbs)
}

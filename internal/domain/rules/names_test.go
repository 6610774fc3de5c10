package rules_test

import (
	"testing"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckName(t *testing.T) {
	table := domain.DefaultRuleTable()
	tests := []struct {
		name, kind string
		valid      bool
		rule       string
		suggestion string
	}{
		{"validateEmail", rules.NameFunction, true, "", ""},
		{"emailValidate", rules.NameFunction, false, domain.RuleFunctionVerb, "validateEmail"},
		{"Fetch_user", "", false, domain.RuleFunctionCasing, "fetchUser"},
		{"UserCard", rules.NameComponent, true, "", ""},
		{"userCard", rules.NameComponent, false, domain.RuleComponentCasing, "UserCard"},
		{"loading", rules.NameBoolean, false, domain.RuleBooleanPrefix, "isLoading"},
		{"hasAccess", rules.NameBoolean, true, "", ""},
		{"maxRetries", rules.NameConstant, false, domain.RuleConstantCasing, "MAX_RETRIES"},
		{"API_CLIENT", rules.NameInstance, false, domain.RuleConstantCasing, "apiClient"},
		{"logger", rules.NameInstance, true, "", ""},
		{"http_client", rules.NameClass, false, domain.RuleClassCasing, "HttpClient"},
		{"cardTitle", rules.NameCSSClass, false, domain.RuleCSSClassCasing, "card-title"},
		{"card__title--active", rules.NameCSSClass, true, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := rules.CheckName(table, tt.name, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Equal(t, tt.rule, v.Rule)
			assert.Equal(t, tt.suggestion, v.Suggestion)
		})
	}
}

func TestCheckName_Exemptions(t *testing.T) {
	v, err := rules.CheckName(domain.DefaultRuleTable(), "useCart", rules.NameFunction)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "hook", v.Exempt)
}

func TestCheckName_UnknownKind(t *testing.T) {
	_, err := rules.CheckName(domain.DefaultRuleTable(), "x", "enum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown name kind")
}

func TestCheckFilename(t *testing.T) {
	table := domain.DefaultRuleTable()

	v, err := rules.CheckFilename(table, "old_button.css", domain.CategoryStyle)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, "old-button.css", v.Suggestion)

	v, err = rules.CheckFilename(table, "Button.tsx", domain.CategoryComponent)
	require.NoError(t, err)
	assert.True(t, v.Valid)

	_, err = rules.CheckFilename(table, "x.ts", "widgets")
	require.Error(t, err)
}

func TestSuggestFilename_Deterministic(t *testing.T) {
	table := domain.DefaultRuleTable()
	cases := map[string][2]string{
		"button.tsx":           {domain.CategoryComponent, "Button.tsx"},
		"cart.ts":              {domain.CategoryHook, "useCart.ts"},
		"UseCart.ts":           {domain.CategoryHook, "useCart.ts"},
		"payment.ts":           {domain.CategoryError, "PaymentError.ts"},
		"UserProfile.types.ts": {domain.CategoryType, "userProfile.types.ts"},
		"OldButton.css":        {domain.CategoryStyle, "old-button.css"},
		"ApiClient.ts":         {domain.CategoryService, "apiClient.ts"},
	}
	for base, tc := range cases {
		cat, ok := table.Category(tc[0])
		require.True(t, ok)
		for i := 0; i < 3; i++ {
			assert.Equal(t, tc[1], rules.SuggestFilename(cat, base), base)
		}
	}
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{"all", "imports", "metadata", "naming", "styles"}, rules.Profiles())

	ids, err := rules.ProfileRules("")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidRules, ids)

	ids, err = rules.ProfileRules(rules.ProfileImports)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RuleImportDirection}, ids)
	assert.NotEmpty(t, rules.ProfileDescription(rules.ProfileStyles))
}

package naming_test

import (
	"testing"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/naming"
	"github.com/stretchr/testify/assert"
)

func isVerb(w string) bool {
	return domain.DefaultRuleTable().IsVerb(w)
}

func TestHasVerbPrefix_ApprovedVerbs(t *testing.T) {
	passing := []string{
		"validateEmail", "fetchUser", "getHTTPResponse", "formatDate",
		"isVisible", "hasAccess", "toggleMenu", "parseQuery",
	}
	for _, name := range passing {
		assert.True(t, naming.HasVerbPrefix(name, isVerb), "%s should start with a verb", name)
	}
}

func TestHasVerbPrefix_Rejects(t *testing.T) {
	failing := []string{"emailValidate", "userData", "", "x", "dateFormatter"}
	for _, name := range failing {
		assert.False(t, naming.HasVerbPrefix(name, isVerb), "%s should NOT start with a verb", name)
	}
}

func TestSuggestVerbFirst(t *testing.T) {
	assert.Equal(t, "validateEmail", naming.SuggestVerbFirst("emailValidate", isVerb))
	assert.Equal(t, "fetchUserData", naming.SuggestVerbFirst("userDataFetch", isVerb))
	assert.Equal(t, "parseURLQuery", naming.SuggestVerbFirst("URLQueryParse", isVerb))
	assert.Empty(t, naming.SuggestVerbFirst("userData", isVerb))
}

func TestSuggestVerbFirst_Deterministic(t *testing.T) {
	first := naming.SuggestVerbFirst("cartItemsRemove", isVerb)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, naming.SuggestVerbFirst("cartItemsRemove", isVerb))
	}
}

func TestCasingConversions(t *testing.T) {
	assert.Equal(t, "MAX_RETRIES", naming.ToUpperSnake("maxRetries"))
	assert.Equal(t, "API_URL", naming.ToUpperSnake("apiURL"))
	assert.Equal(t, "getUser", naming.ToCamel("get_user"))
	assert.Equal(t, "getUser", naming.ToCamel("GetUser"))
	assert.Equal(t, "UserCard", naming.ToPascal("user-card"))
	assert.Equal(t, "btn-primary", naming.ToKebab("btnPrimary"))
	assert.Equal(t, "btn-primary", naming.ToKebab("btn_primary"))
	assert.Equal(t, "user-card", naming.ToKebab("UserCard"))
	assert.Equal(t, "html-parser", naming.ToKebab("HTMLParser"))
}

func TestSuggestBoolean(t *testing.T) {
	assert.Equal(t, "isLoading", naming.SuggestBoolean("loading"))
	assert.Equal(t, "isOpen", naming.SuggestBoolean("open"))
	assert.Equal(t, "IS_ENABLED", naming.SuggestBoolean("ENABLED"))
}

func TestHasPrefixWord(t *testing.T) {
	assert.True(t, naming.HasPrefixWord("isLoading", domain.DefaultBooleanPrefixes))
	assert.True(t, naming.HasPrefixWord("HAS_ACCESS", domain.DefaultBooleanPrefixes))
	assert.False(t, naming.HasPrefixWord("loading", domain.DefaultBooleanPrefixes))
	assert.False(t, naming.HasPrefixWord("island", domain.DefaultBooleanPrefixes))
}

func TestExemption(t *testing.T) {
	assert.Equal(t, "test helper", naming.Exemption("describe"))
	assert.Equal(t, "test helper", naming.Exemption("testRendersButton"))
	assert.Equal(t, "event handler", naming.Exemption("onClick"))
	assert.Equal(t, "event handler", naming.Exemption("handleSubmit"))
	assert.Equal(t, "hook", naming.Exemption("useCart"))
	assert.Empty(t, naming.Exemption("emailValidate"))
	assert.Empty(t, naming.Exemption("online"))
	assert.Empty(t, naming.Exemption("testing"))
}

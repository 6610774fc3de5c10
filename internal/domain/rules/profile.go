package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

// Audit profiles. Each selects a subset of rule IDs.
const (
	ProfileNaming   = "naming"
	ProfileMetadata = "metadata"
	ProfileStyles   = "styles"
	ProfileImports  = "imports"
	ProfileAll      = "all"
)

// ErrUnknownProfile is returned for a profile name that is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

var profiles = map[string][]string{
	ProfileNaming: {
		domain.RuleFilenameCasing, domain.RuleExportShape, domain.RuleFunctionCasing,
		domain.RuleFunctionVerb, domain.RuleComponentCasing, domain.RuleBooleanPrefix,
		domain.RuleConstantCasing, domain.RuleClassCasing, domain.RuleCSSClassCasing,
	},
	ProfileMetadata: {
		domain.RuleMetadataBlock, domain.RuleRequiredField, domain.RuleFieldValue,
	},
	ProfileStyles: {
		domain.RuleMissingCompanion, domain.RuleOrphanStyle, domain.RuleCSSClassCasing,
	},
	ProfileImports: {
		domain.RuleImportDirection,
	},
	ProfileAll: domain.ValidRules,
}

var profileDescriptions = map[string]string{
	ProfileNaming:   "filename, function, component, boolean, constant, class and CSS class naming",
	ProfileMetadata: "leading @tag block and required fields",
	ProfileStyles:   "component/style pairing and CSS class naming",
	ProfileImports:  "forbidden import directions between categories",
	ProfileAll:      "every rule",
}

// ProfileRules returns the rule IDs selected by a profile.
func ProfileRules(name string) ([]string, error) {
	if name == "" {
		name = ProfileAll
	}
	ids, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownProfile, name, strings.Join(Profiles(), ", "))
	}
	return append([]string(nil), ids...), nil
}

// Profiles lists the profile names alphabetically.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ProfileDescription returns a one-line summary of a profile.
func ProfileDescription(name string) string {
	return profileDescriptions[name]
}

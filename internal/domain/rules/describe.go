package rules

import "github.com/grammarops/grammarops/internal/domain"

// TableView is the serializable form of an evaluator's effective rules.
type TableView struct {
	Profile         string         `json:"profile"`
	Rules           []RuleView     `json:"rules"`
	Categories      []CategoryView `json:"categories"`
	Verbs           []string       `json:"verbs"`
	BooleanPrefixes []string       `json:"boolean_prefixes"`
	Frameworks      []string       `json:"frameworks,omitempty"`
	Injectors       []string       `json:"injectors"`
}

type RuleView struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Active   bool   `json:"active"`
}

type CategoryView struct {
	Name             string   `json:"name"`
	Paths            []string `json:"paths"`
	Filename         string   `json:"filename"`
	Layers           []string `json:"layers,omitempty"`
	RequiredFields   []string `json:"required_fields,omitempty"`
	PairsWithStyle   bool     `json:"pairs_with_style,omitempty"`
	ForbiddenImports []string `json:"forbidden_imports,omitempty"`
	LLMRole          string   `json:"llm_role,omitempty"`
}

// Describe returns the rule table as seen through e's profile.
func Describe(e *Evaluator) TableView {
	t := e.Table()
	view := TableView{
		Profile:         e.Profile(),
		Verbs:           t.Verbs(),
		BooleanPrefixes: t.BooleanPrefixes(),
		Frameworks:      t.Frameworks(),
	}
	for _, id := range domain.ValidRules {
		view.Rules = append(view.Rules, RuleView{ID: id, Severity: t.Severity(id), Active: e.selected[id]})
	}
	for _, c := range t.Categories() {
		view.Categories = append(view.Categories, CategoryView{
			Name:             c.Name,
			Paths:            c.Paths,
			Filename:         c.FilenameHint,
			Layers:           c.Layers,
			RequiredFields:   c.RequiredFields,
			PairsWithStyle:   c.PairsWithStyle,
			ForbiddenImports: c.ForbiddenImports,
			LLMRole:          c.LLMRole,
		})
	}
	for _, inj := range t.Injectors() {
		view.Injectors = append(view.Injectors, inj.Name)
	}
	return view
}

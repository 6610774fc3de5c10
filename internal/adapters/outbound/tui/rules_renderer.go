package tui

import (
	"fmt"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
)

// RenderRules prints the effective rule table: active rules with their
// severity, then every category with its conventions.
func RenderRules(t *domain.RuleTable, profile string, active []string) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Rules") + "  " + dimStyle.Render("profile "+profile) + "\n")
	if fw := t.Frameworks(); len(fw) > 0 {
		b.WriteString("  " + dimStyle.Render("frameworks "+strings.Join(fw, ", ")) + "\n")
	}
	b.WriteString("  " + separatorLine + "\n")
	on := make(map[string]bool, len(active))
	for _, id := range active {
		on[id] = true
	}
	for _, id := range domain.ValidRules {
		mark := passStyle.Render("●")
		sev := severityTag(t.Severity(id))
		if !on[id] {
			mark = faintStyle.Render("○")
			sev = faintStyle.Render("off  ")
		}
		fmt.Fprintf(&b, "    %s %s %s\n", mark, padRight(id, 20), sev)
	}

	b.WriteString("\n  " + titleStyle.Render("Categories") + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, c := range t.Categories() {
		fmt.Fprintf(&b, "    %s %s\n", sectionStyle.Render(padRight(c.Name, 10)), dimStyle.Render(strings.Join(c.Paths, ", ")))
		fmt.Fprintf(&b, "      %s %s\n", dimStyle.Render("filename"), c.FilenameHint)
		if len(c.RequiredFields) > 0 {
			fmt.Fprintf(&b, "      %s %s\n", dimStyle.Render("requires"), "@"+strings.Join(c.RequiredFields, ", @"))
		}
		if len(c.Layers) > 0 {
			fmt.Fprintf(&b, "      %s %s\n", dimStyle.Render("layers  "), strings.Join(c.Layers, ", "))
		}
		if len(c.ForbiddenImports) > 0 {
			fmt.Fprintf(&b, "      %s %s\n", dimStyle.Render("no deps "), strings.Join(c.ForbiddenImports, ", "))
		}
	}

	fmt.Fprintf(&b, "\n  %s %s\n", titleStyle.Render("Verbs"), dimStyle.Render(fmt.Sprintf("(%d)", len(t.Verbs()))))
	b.WriteString("    " + dimStyle.Render(strings.Join(t.Verbs(), " ")) + "\n\n")
	return b.String()
}

// RenderNameVerdict prints the outcome of a check-name query.
func RenderNameVerdict(v rules.NameVerdict) string {
	var b strings.Builder
	switch {
	case v.Exempt != "":
		fmt.Fprintf(&b, "  %s %s %s\n", passStyle.Render("✓"), titleStyle.Render(v.Name), dimStyle.Render(fmt.Sprintf("(%s, exempt: %s)", v.Kind, v.Exempt)))
	case v.Valid:
		fmt.Fprintf(&b, "  %s %s %s\n", passStyle.Render("✓"), titleStyle.Render(v.Name), dimStyle.Render("("+v.Kind+")"))
	default:
		fmt.Fprintf(&b, "  %s %s %s\n", failStyle.Render("✗"), titleStyle.Render(v.Name), dimStyle.Render("("+v.Kind+")"))
		fmt.Fprintf(&b, "    %s %s\n", faintStyle.Render(v.Rule), v.Message)
		if v.Expected != "" {
			fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("expected"), v.Expected)
		}
		if v.Suggestion != "" {
			fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("suggestion:"), passStyle.Render(v.Suggestion))
		}
	}
	return b.String()
}

// RenderFixPlan prints the files an injection run touched or skipped.
func RenderFixPlan(plan *domain.FixPlan) string {
	var b strings.Builder
	verb := "Inserted"
	if plan.DryRun {
		verb = "Would insert"
	}
	fmt.Fprintf(&b, "\n  %s %s\n", titleStyle.Render("fix"), dimStyle.Render(fmt.Sprintf("injector %s · run %s", plan.Injector, plan.RunID)))
	b.WriteString("  " + separatorLine + "\n")
	for _, f := range plan.Applied {
		fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), f.Path)
	}
	for _, f := range plan.Skipped {
		fmt.Fprintf(&b, "    %s %s  %s\n", faintStyle.Render("○"), dimStyle.Render(f.Path), faintStyle.Render(f.Description))
	}
	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf("%s metadata in %d files, skipped %d.", verb, len(plan.Applied), len(plan.Skipped))))
	if !plan.DryRun && len(plan.Applied) > 0 {
		b.WriteString("  " + hintStyle.Render("Undo with `grammarops rollback`.") + "\n")
	}
	return b.String()
}

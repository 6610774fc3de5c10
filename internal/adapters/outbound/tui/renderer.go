package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grammarops/grammarops/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	info    = lipgloss.Color("#8B949E")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(fg)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderAudit renders an audit report grouped by file category.
func RenderAudit(r *domain.AuditReport) string {
	var b strings.Builder

	title := headerStyle.Render("grammarops")
	subtitle := dimStyle.Render(fmt.Sprintf("profile %s · %d files", r.Profile, r.FilesScanned))
	rate := lipgloss.NewStyle().Bold(true).Foreground(rateColor(r.PassRate)).
		Render(fmt.Sprintf("%.1f%% passing", r.PassRate))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + rate))
	b.WriteString("\n\n")

	if len(r.Violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
	}

	for _, group := range groupByCategory(r.Violations) {
		fmt.Fprintf(&b, "  %s %s\n",
			sectionStyle.Render(group.category),
			dimStyle.Render(fmt.Sprintf("(%d)", len(group.violations))))
		file := ""
		for _, v := range group.violations {
			if v.File != file {
				file = v.File
				b.WriteString("    " + fileStyle.Render(file) + "\n")
			}
			renderViolation(&b, v)
		}
		b.WriteString("\n")
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", sectionStyle.Render("skipped"), dimStyle.Render(fmt.Sprintf("(%d)", len(r.Skipped))))
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "    %s  %s\n", dimStyle.Render(s.Path), faintStyle.Render(s.Reason))
		}
		b.WriteString("\n")
	}

	if len(r.Fixed) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", sectionStyle.Render("fixed"), dimStyle.Render(fmt.Sprintf("(%d)", len(r.Fixed))))
		for _, f := range r.Fixed {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), f)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")
	renderSummary(&b, r)

	if rec := recommendation(r.Violations); rec != "" {
		b.WriteString("\n  " + hintStyle.Render(rec) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	loc := ""
	if v.Line > 0 {
		loc = dimStyle.Render(fmt.Sprintf("%d:", v.Line)) + " "
	}
	fmt.Fprintf(b, "      %s %s%s %s\n", severityTag(v.Severity), loc, v.Message, faintStyle.Render(v.Rule))
	if v.Expected != "" || v.Actual != "" {
		fmt.Fprintf(b, "            %s\n", dimStyle.Render(fmt.Sprintf("expected %s, got %s", orDash(v.Expected), orDash(v.Actual))))
	}
	if v.Suggestion != "" {
		fmt.Fprintf(b, "            %s %s\n", dimStyle.Render("suggestion:"), passStyle.Render(v.Suggestion))
	}
}

func renderSummary(b *strings.Builder, r *domain.AuditReport) {
	fmt.Fprintf(b, "  %s  %s  %s\n",
		titleStyle.Render(fmt.Sprintf("%d scanned", r.FilesScanned)),
		passStyle.Render(fmt.Sprintf("%d passed", r.FilesPassed)),
		failStyle.Render(fmt.Sprintf("%d failed", r.FilesFailed)))
	fmt.Fprintf(b, "  %s  %s  %s\n",
		errorTagStyle.Render(fmt.Sprintf("%d errors", r.Counts[domain.SeverityError])),
		warnTagStyle.Render(fmt.Sprintf("%d warnings", r.Counts[domain.SeverityWarning])),
		infoTagStyle.Render(fmt.Sprintf("%d info", r.Counts[domain.SeverityInfo])))
	if len(r.Skipped) > 0 {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d skipped", len(r.Skipped))) + "\n")
	}
}

// recommendation suggests the next command for the most common fixable
// violations.
func recommendation(vs []domain.Violation) string {
	var metadata, pairing, naming int
	for _, v := range vs {
		switch v.Kind {
		case domain.KindMissingField:
			metadata++
		case domain.KindPairing:
			pairing++
		case domain.KindMalformedPattern:
			if v.Rule != domain.RuleFieldValue {
				naming++
			}
		}
	}
	switch {
	case metadata > 0:
		return fmt.Sprintf("%d files lack metadata: run `grammarops fix --injector metadata` to insert it.", metadata)
	case pairing > 0:
		return "Create the missing style files or point @cssFile at an existing one."
	case naming > 0:
		return "Use `grammarops check-name <identifier>` to preview a compliant name."
	}
	return ""
}

type categoryGroup struct {
	category   string
	violations []domain.Violation
}

func groupByCategory(vs []domain.Violation) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, v := range vs {
		i, ok := index[v.Category]
		if !ok {
			i = len(groups)
			index[v.Category] = i
			groups = append(groups, categoryGroup{category: v.Category})
		}
		groups[i].violations = append(groups[i].violations, v)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].category < groups[j].category })
	return groups
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func rateColor(rate float64) lipgloss.Color {
	switch {
	case rate >= 90:
		return success
	case rate >= 60:
		return warning
	default:
		return danger
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grammarops/grammarops/internal/adapters/outbound/report"
	"github.com/grammarops/grammarops/internal/adapters/outbound/tui"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
)

type auditFlags struct {
	profile    string
	all        bool
	single     string
	changed    bool
	format     string
	reportPath string
	strict     bool
	fix        bool
}

func newAuditCmd(g *globals) *cobra.Command {
	var f auditFlags

	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Audit a project against the naming and metadata conventions",
		Long: "Discover source files, evaluate every active rule and print a report.\n" +
			"Exits 1 when the run fails (any error, or any violation with --strict) and 2 on usage or config errors.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(f.format); err != nil {
				return err
			}
			opts := application.AuditOptions{
				Profile: f.profile,
				Single:  f.single,
				Changed: f.changed,
				Strict:  f.strict,
			}
			if f.all {
				opts.Single, opts.Changed = "", false
			}

			svc := g.auditService(f.format == formatConsole)
			var (
				r   *domain.AuditReport
				err error
			)
			if f.fix {
				r, err = application.AuditAndFix(cmd.Context(), svc, g.fixService(), pathArg(args), opts)
			} else {
				r, err = svc.Audit(cmd.Context(), pathArg(args), opts)
			}
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}
			return emitReport(cmd, r, f.format, f.reportPath)
		},
	}

	cmd.Flags().StringVar(&f.profile, "profile", rules.ProfileAll, "Rule profile (naming, metadata, styles, imports, all)")
	cmd.Flags().BoolVar(&f.all, "all", false, "Audit every discovered file (default)")
	cmd.Flags().StringVar(&f.single, "single", "", "Audit a single file")
	cmd.Flags().BoolVar(&f.changed, "changed", false, "Audit only files changed in the git working tree")
	cmd.Flags().StringVar(&f.format, "format", formatConsole, "Output format (console, json)")
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Also write the JSON report to this file")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on any violation, not just errors")
	cmd.Flags().BoolVar(&f.fix, "fix", false, "Insert missing metadata blocks, then audit again")
	cmd.MarkFlagsMutuallyExclusive("all", "single", "changed")

	return cmd
}

func emitReport(cmd *cobra.Command, r *domain.AuditReport, format, reportPath string) error {
	if reportPath != "" {
		if err := report.WriteFile(reportPath, r); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if format == formatJSON {
		if err := report.WriteJSON(cmd.OutOrStdout(), r); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderAudit(r))
	}

	if r.Failed() {
		return fmt.Errorf("%w: %d errors, %d warnings", ErrViolationsFound,
			r.Counts[domain.SeverityError], r.Counts[domain.SeverityWarning])
	}
	return nil
}

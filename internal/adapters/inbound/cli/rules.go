package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grammarops/grammarops/internal/adapters/outbound/report"
	"github.com/grammarops/grammarops/internal/adapters/outbound/tui"
	"github.com/grammarops/grammarops/internal/domain/rules"
)

func newRulesCmd(g *globals) *cobra.Command {
	var (
		profile string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "Print the effective rule table",
		Long:  "Print the rule table after applying .grammarops.yaml, marking which rules the profile activates.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			absPath, err := filepath.Abs(pathArg(args))
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			table, ev, _, err := g.auditService(false).Setup(absPath, profile)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return report.Encode(cmd.OutOrStdout(), rules.Describe(ev))
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(table, ev.Profile(), ev.Rules()))
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", rules.ProfileAll, "Rule profile to mark as active")
	cmd.Flags().StringVar(&format, "format", formatConsole, "Output format (console, json)")

	return cmd
}

func newCheckNameCmd(g *globals) *cobra.Command {
	var (
		kind     string
		category string
		path     string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "check-name <identifier>",
		Short: "Check one identifier or file name against the naming rules",
		Long: "Check an identifier of the given kind, or with --category a file name, and print a suggestion when it does not conform.\n" +
			"Kinds: " + fmt.Sprint(rules.NameKinds),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			table, _, _, err := g.auditService(false).Setup(absPath, "")
			if err != nil {
				return err
			}

			var verdict rules.NameVerdict
			if category != "" {
				verdict, err = rules.CheckFilename(table, args[0], category)
			} else {
				verdict, err = rules.CheckName(table, args[0], kind)
			}
			if err != nil {
				return err
			}

			if format == formatJSON {
				if err := report.Encode(cmd.OutOrStdout(), verdict); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderNameVerdict(verdict))
			}
			if !verdict.Valid {
				return fmt.Errorf("%w: %s", ErrViolationsFound, verdict.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", rules.NameFunction, "Identifier kind")
	cmd.Flags().StringVar(&category, "category", "", "Check a file name against this category instead")
	cmd.Flags().StringVar(&path, "path", ".", "Project whose .grammarops.yaml applies")
	cmd.Flags().StringVar(&format, "format", formatConsole, "Output format (console, json)")
	cmd.MarkFlagsMutuallyExclusive("kind", "category")

	return cmd
}

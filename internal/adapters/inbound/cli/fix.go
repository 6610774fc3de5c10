package cli

import (
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/grammarops/grammarops/internal/adapters/outbound/report"
	"github.com/grammarops/grammarops/internal/adapters/outbound/tui"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
)

func newFixCmd(g *globals) *cobra.Command {
	cmd := newInjectCmd(g, "fix [path]", domain.InjectorMetadata)
	cmd.Aliases = []string{"add-metadata"}
	cmd.Short = "Insert missing metadata blocks"
	cmd.AddCommand(newHistoryCmd(g))
	return cmd
}

// newInjectCmd builds a command that runs one injector over the project.
// The --injector flag overrides the preset.
func newInjectCmd(g *globals, use, preset string) *cobra.Command {
	var (
		injector    string
		single      string
		dryRun      bool
		interactive bool
		format      string
	)

	cmd := &cobra.Command{
		Use:  use,
		Long: "Prepend a generated @tag block to files that carry none of the injector's tags.\nExisting content is never removed and identifiers are never renamed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			opts := domain.FixOptions{Injector: injector, DryRun: dryRun}
			if single != "" {
				opts.Files = []string{single}
			}

			var confirm application.ConfirmFunc
			if interactive && !dryRun {
				confirm = promptConfirm(cmd.ErrOrStderr())
			}

			plan, err := g.fixService().Apply(cmd.Context(), pathArg(args), opts, confirm)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if format == formatJSON {
				return report.Encode(cmd.OutOrStdout(), plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixPlan(plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&injector, "injector", preset, "Injector to run (metadata, llm-directives or a configured one)")
	cmd.Flags().StringVar(&single, "single", "", "Fix a single file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Confirm each file before writing")
	cmd.Flags().StringVar(&format, "format", formatConsole, "Output format (console, json)")

	return cmd
}

func newAddLLMDirectivesCmd(g *globals) *cobra.Command {
	cmd := newInjectCmd(g, "add-llm-directives [path]", domain.InjectorLLMDirectives)
	cmd.Short = "Insert @llm-read/@llm-write/@llm-role directives"
	return cmd
}

func promptConfirm(out io.Writer) application.ConfirmFunc {
	return func(relPath, block string) bool {
		fmt.Fprintf(out, "\n%s\n%s", relPath, block)
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Insert into %s", relPath),
			IsConfirm: true,
		}
		_, err := prompt.Run()
		return err == nil
	}
}

func newRollbackCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [path]",
		Short: "Restore the files changed by the last fix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := g.fixService().Rollback(pathArg(args))
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d files\n", len(files))
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
			}
			return nil
		},
	}
}

func newHistoryCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "history [path]",
		Short: "List previous fix runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := g.fixService().History(pathArg(args))
			if err != nil {
				return fmt.Errorf("reading fix log: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No fixes recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %3d files  %s\n", e.Timestamp, e.Injector, len(e.Files), e.RunID)
			}
			return nil
		},
	}
}

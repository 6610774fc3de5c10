package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grammarops/grammarops/internal/adapters/outbound/config"
	"github.com/grammarops/grammarops/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .grammarops.yaml configuration file",
		Long:  "Create a .grammarops.yaml with the default excludes and header window so the project's overrides have a place to live.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(pathArg(args))
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			target, err := config.Write(absPath, starterConfig(), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .grammarops.yaml")

	return cmd
}

func starterConfig() domain.ProjectConfig {
	gitignore := true
	cfg := domain.DefaultConfig()
	cfg.RespectGitignore = &gitignore
	cfg.HeaderLines = domain.DefaultHeaderLines
	cfg.Exclude = []string{"**/generated/**", "**/vendor/**"}
	return cfg
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grammarops/grammarops/internal/adapters/outbound/tui"
	"github.com/grammarops/grammarops/internal/adapters/outbound/watcher"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain/rules"
)

func newWatchCmd(g *globals) *cobra.Command {
	var (
		profile  string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Audit again whenever files change",
		Long:  "Run an audit, then watch the project and re-run it after each batch of file changes until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(pathArg(args))
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc := g.auditService(false)
			opts := application.AuditOptions{Profile: profile}
			out := cmd.OutOrStdout()

			// Configuration errors are fatal before watching starts.
			if err := runWatchAudit(ctx, svc, absPath, opts, out, nil); err != nil {
				return err
			}

			w := watcher.New(absPath, debounce, g.log())
			return w.Run(ctx, func(ctx context.Context, changed []string) {
				if err := runWatchAudit(ctx, svc, absPath, opts, out, changed); err != nil {
					g.log().Error("audit failed", zap.Error(err))
				}
			})
		},
	}

	cmd.Flags().StringVar(&profile, "profile", rules.ProfileAll, "Rule profile (naming, metadata, styles, imports, all)")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before re-auditing")

	return cmd
}

func runWatchAudit(ctx context.Context, svc *application.AuditService, root string, opts application.AuditOptions, out io.Writer, changed []string) error {
	r, err := svc.Audit(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	if len(changed) > 0 {
		fmt.Fprintf(out, "\nchanged: %s\n", strings.Join(changed, ", "))
	}
	fmt.Fprint(out, tui.RenderAudit(r))
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/grammarops/grammarops/internal/adapters/outbound/backup"
	"github.com/grammarops/grammarops/internal/adapters/outbound/config"
	"github.com/grammarops/grammarops/internal/adapters/outbound/fixlog"
	"github.com/grammarops/grammarops/internal/adapters/outbound/framework"
	"github.com/grammarops/grammarops/internal/adapters/outbound/gitinfo"
	"github.com/grammarops/grammarops/internal/adapters/outbound/parser"
	"github.com/grammarops/grammarops/internal/adapters/outbound/progress"
	"github.com/grammarops/grammarops/internal/adapters/outbound/scanner"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrViolationsFound is returned when an audit fails under the active mode.
var ErrViolationsFound = errors.New("violations found")

// Exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrViolationsFound):
		return ExitViolations
	default:
		return ExitError
	}
}

// globals carries the persistent flags and the logger built from them.
type globals struct {
	v      *viper.Viper
	logger *zap.Logger
}

func (g *globals) setup() error {
	if g.v.GetBool("no-color") {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	logger, err := logging.New(g.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	g.logger = logger
	return nil
}

func (g *globals) log() *zap.Logger {
	return logging.OrNop(g.logger)
}

func (g *globals) configLoader() domain.ConfigLoader {
	if base := g.v.GetString("config"); base != "" {
		return config.NewWithBase(base)
	}
	return config.New()
}

func (g *globals) auditService(showProgress bool) *application.AuditService {
	return application.NewAuditService(
		scanner.New(g.log()),
		parser.New(),
		g.configLoader(),
		gitinfo.New(),
		framework.New(),
		progress.New(showProgress),
		g.log(),
	)
}

func (g *globals) fixService() *application.FixService {
	return application.NewFixService(
		scanner.New(g.log()),
		g.configLoader(),
		backup.New(),
		fixlog.New(),
		g.log(),
	)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GRAMMAROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	g := &globals{v: v}

	cmd := &cobra.Command{
		Use:   "grammarops",
		Short: "Enforce naming and metadata conventions in a web codebase",
		Long: "Grammar Ops audits a TypeScript/JavaScript/CSS project against a fixed rule table:\n" +
			"filename casing, verb-first functions, boolean prefixes, leading @tag metadata blocks,\n" +
			"component/style pairing and import direction between categories.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.log().Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Base .grammarops.yaml applied before the project's own file")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")
	pf.Bool("no-color", false, "Disable colored output")
	_ = v.BindPFlags(pf)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAuditCmd(g))
	cmd.AddCommand(newFixCmd(g))
	cmd.AddCommand(newAddLLMDirectivesCmd(g))
	cmd.AddCommand(newRollbackCmd(g))
	cmd.AddCommand(newRulesCmd(g))
	cmd.AddCommand(newCheckNameCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func validateFormat(format string) error {
	if format != formatConsole && format != formatJSON {
		return fmt.Errorf("unknown format %q (valid: console, json)", format)
	}
	return nil
}

const (
	formatConsole = "console"
	formatJSON    = "json"
)

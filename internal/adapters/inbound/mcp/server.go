package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/grammarops/grammarops/internal/adapters/outbound/backup"
	"github.com/grammarops/grammarops/internal/adapters/outbound/config"
	"github.com/grammarops/grammarops/internal/adapters/outbound/fixlog"
	"github.com/grammarops/grammarops/internal/adapters/outbound/framework"
	"github.com/grammarops/grammarops/internal/adapters/outbound/gitinfo"
	"github.com/grammarops/grammarops/internal/adapters/outbound/parser"
	"github.com/grammarops/grammarops/internal/adapters/outbound/scanner"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/logging"
)

// Option customizes the MCP server.
type Option func(*services)

// WithConfigLoader replaces the default .grammarops.yaml loader.
func WithConfigLoader(l domain.ConfigLoader) Option {
	return func(s *services) { s.loader = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *services) { s.logger = l }
}

type services struct {
	root   string
	loader domain.ConfigLoader
	logger *zap.Logger
}

func (s *services) audit() *application.AuditService {
	return application.NewAuditService(scanner.New(s.logger), parser.New(), s.loader, gitinfo.New(), framework.New(), nil, s.logger)
}

func (s *services) fix() *application.FixService {
	return application.NewFixService(scanner.New(s.logger), s.loader, backup.New(), fixlog.New(), s.logger)
}

// NewGrammarOpsMCPServer creates an MCP server exposing audits, rule lookups
// and name checks for the project at projectPath.
func NewGrammarOpsMCPServer(projectPath string, opts ...Option) *server.MCPServer {
	svc := &services{root: projectPath, loader: config.New()}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = logging.OrNop(svc.logger)

	s := server.NewMCPServer(
		"grammarops",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
)

func registerTools(s *server.MCPServer, svc *services) {
	s.AddTool(
		mcplib.NewTool("grammarops_audit",
			mcplib.WithDescription("Audit the project and return the JSON report with every violation"),
			mcplib.WithString("profile", mcplib.Description("Rule profile: naming, metadata, styles, imports or all (default)")),
			mcplib.WithBoolean("changed", mcplib.Description("Only report files changed in the git working tree")),
			mcplib.WithBoolean("strict", mcplib.Description("Fail on warnings too")),
		),
		handleAudit(svc),
	)

	s.AddTool(
		mcplib.NewTool("grammarops_check_file",
			mcplib.WithDescription("Return the violations for a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("File path relative to the project root"),
			),
			mcplib.WithString("profile", mcplib.Description("Rule profile (default all)")),
		),
		handleCheckFile(svc),
	)

	s.AddTool(
		mcplib.NewTool("grammarops_get_rules",
			mcplib.WithDescription("Return the effective rule table: categories, required tags, verbs and active rules"),
			mcplib.WithString("profile", mcplib.Description("Rule profile used to mark active rules (default all)")),
		),
		handleGetRules(svc),
	)

	s.AddTool(
		mcplib.NewTool("grammarops_suggest_name",
			mcplib.WithDescription("Check an identifier or file name against the naming rules and suggest a conforming one"),
			mcplib.WithString("name",
				mcplib.Required(),
				mcplib.Description("Identifier or file name to check"),
			),
			mcplib.WithString("kind", mcplib.Description("Identifier kind: "+strings.Join(rules.NameKinds, ", ")+" (default function)")),
			mcplib.WithString("category", mcplib.Description("Check name as a file name of this category instead")),
		),
		handleSuggestName(svc),
	)

	s.AddTool(
		mcplib.NewTool("grammarops_fix",
			mcplib.WithDescription("Insert missing metadata blocks. Defaults to a dry run that only reports what would change."),
			mcplib.WithString("injector", mcplib.Description("Injector name (default metadata)")),
			mcplib.WithString("files", mcplib.Description("Comma-separated file paths; empty means every applicable file")),
			mcplib.WithBoolean("apply", mcplib.Description("Write the changes instead of a dry run")),
		),
		handleFix(svc),
	)
}

func handleAudit(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.audit().Audit(ctx, svc.root, application.AuditOptions{
			Profile: request.GetString("profile", ""),
			Changed: request.GetBool("changed", false),
			Strict:  request.GetBool("strict", false),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

type fileResult struct {
	File       string             `json:"file"`
	Passed     bool               `json:"passed"`
	Violations []domain.Violation `json:"violations"`
}

func handleCheckFile(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.audit().Audit(ctx, svc.root, application.AuditOptions{
			Profile: request.GetString("profile", ""),
			Single:  file,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(fileResult{
			File:       file,
			Passed:     len(report.Violations) == 0,
			Violations: report.Violations,
		})
	}
}

func handleGetRules(svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		view, err := describeRules(svc, request.GetString("profile", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(view)
	}
}

func handleSuggestName(svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		table, _, _, err := svc.audit().Setup(svc.root, "")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var verdict rules.NameVerdict
		if category := request.GetString("category", ""); category != "" {
			verdict, err = rules.CheckFilename(table, name, category)
		} else {
			verdict, err = rules.CheckName(table, name, request.GetString("kind", ""))
		}
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(verdict)
	}
}

func handleFix(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := domain.FixOptions{
			Injector: request.GetString("injector", ""),
			DryRun:   !request.GetBool("apply", false),
		}
		for _, f := range strings.Split(request.GetString("files", ""), ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.Files = append(opts.Files, f)
			}
		}

		plan, err := svc.fix().Apply(ctx, svc.root, opts, nil)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

func describeRules(svc *services, profile string) (rules.TableView, error) {
	_, ev, _, err := svc.audit().Setup(svc.root, profile)
	if err != nil {
		return rules.TableView{}, err
	}
	return rules.Describe(ev), nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grammarops/grammarops/internal/application"
)

const (
	rulesURI  = "grammarops://rules"
	reportURI = "grammarops://report"
)

func registerResources(s *server.MCPServer, svc *services) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Rule Table",
			mcplib.WithResourceDescription("Effective naming and metadata rules for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			view, err := describeRules(svc, "")
			if err != nil {
				return nil, err
			}
			return jsonContents(rulesURI, view)
		},
	)

	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Audit Report",
			mcplib.WithResourceDescription("A fresh audit of the whole project"),
			mcplib.WithMIMEType("application/json"),
		),
		func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			report, err := svc.audit().Audit(ctx, svc.root, application.AuditOptions{})
			if err != nil {
				return nil, fmt.Errorf("audit failed: %w", err)
			}
			return jsonContents(reportURI, report)
		},
	)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

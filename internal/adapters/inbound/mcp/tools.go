package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pomlint/pomlint/internal/adapters/outbound/config"
	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

// registerTools registers all pomlint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. pomlint_validate
	s.AddTool(
		mcplib.NewTool("pomlint_validate",
			mcplib.WithDescription("Validate Maven POM files under the project and return the issues as JSON"),
			mcplib.WithString("path", mcplib.Description("Path relative to the project root (defaults to the root)")),
			mcplib.WithBoolean("recursive", mcplib.Description("Discover descriptors in subdirectories")),
			mcplib.WithString("profile", mcplib.Description("Validation profile: strict, standard, minimal, or custom (default: standard)")),
			mcplib.WithString("severity", mcplib.Description("Minimum severity to report: error, warning, info, or all (default: all)")),
		),
		handleValidate(projectPath),
	)

	// 2. pomlint_fixable_issues
	s.AddTool(
		mcplib.NewTool("pomlint_fixable_issues",
			mcplib.WithDescription("List the issues of one POM file that pomlint can fix automatically"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the pom.xml, relative to the project root"),
			),
		),
		handleFixableIssues(projectPath),
	)

	// 3. pomlint_fix
	s.AddTool(
		mcplib.NewTool("pomlint_fix",
			mcplib.WithDescription("Apply deterministic fixes to one POM file and report what re-validation found afterwards"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the pom.xml, relative to the project root"),
			),
			mcplib.WithBoolean("dry_run", mcplib.Description("Plan fixes without touching the file")),
			mcplib.WithBoolean("no_backup", mcplib.Description("Skip the .backup copy before modifying the file")),
		),
		handleFix(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.ValidateService, *application.FixService) {
	par := parser.New()
	validateSvc := application.NewValidateService(par, scanner.New(), config.New())
	return validateSvc, application.NewFixService(validateSvc, par, par)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		opts := application.DefaultValidateOptions()
		opts.Recursive, _ = args["recursive"].(bool)

		if p, _ := args["profile"].(string); p != "" {
			parsed, err := domain.ParseProfile(p)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			opts.Profile = parsed
		}
		if sev, _ := args["severity"].(string); sev != "" {
			parsed, err := domain.ParseSeverity(sev)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			opts.Severity = parsed
		}

		root := projectPath
		if sub, _ := args["path"].(string); sub != "" {
			root = filepath.Join(projectPath, sub)
		}

		validateSvc, _ := newServices()
		run, err := validateSvc.ValidateTree(root, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		report := application.NewReportBuilder("mcp", nil).Build(run, root)
		return jsonResult(report)
	}
}

func handleFixableIssues(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		_, fixSvc := newServices()
		fixable, result, err := fixSvc.FixableIssues(filepath.Join(projectPath, path), application.DefaultValidateOptions())
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		payload := struct {
			Fixable  []domain.ValidationIssue `json:"fixable"`
			Errors   int                      `json:"errors"`
			Warnings int                      `json:"warnings"`
		}{Fixable: fixable, Errors: len(result.Errors), Warnings: len(result.Warnings)}
		return jsonResult(payload)
	}
}

func handleFix(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		noBackup, _ := request.GetArguments()["no_backup"].(bool)
		dryRun, _ := request.GetArguments()["dry_run"].(bool)
		opts := application.FixOptions{
			Backup:   !noBackup,
			DryRun:   dryRun,
			Validate: application.DefaultValidateOptions(),
		}

		_, fixSvc := newServices()
		report, err := fixSvc.FixPom(filepath.Join(projectPath, path), opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
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

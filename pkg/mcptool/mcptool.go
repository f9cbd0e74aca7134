// Package mcptool exposes the profile analysis as an MCP tool.
package mcptool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codeGROOVE-dev/stackscope/pkg/analyzer"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

// ToolName is the name under which the analysis tool is registered.
const ToolName = "analyze_tech_profile"

// Argument names accepted by the tool.
const (
	ArgGitHubURL      = "github_url"
	ArgTwitterURL     = "twitter_url"
	ArgSpeakerDeckURL = "speakerdeck_url"
	ArgBlogURL        = "blog_url"
)

// Summarizer renders the summary for an analysis request.
type Summarizer interface {
	Summary(ctx context.Context, req analyzer.Request) (string, error)
}

// NewServer creates an MCP server with the analysis tool registered.
func NewServer(name, version string, svc Summarizer, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Analyze a developer's public GitHub, X, Speaker Deck and blog presence into a tech stack and personality summary."),
		server.WithRecovery(),
	)
	s.AddTool(Tool(), Handler(svc, logger))
	return s
}

// Tool describes analyze_tech_profile. All arguments are optional, but at
// least one must be given.
func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Analyze public profiles and summarize the person's tech stack, interests, communication style and work style."),
		mcp.WithString(ArgGitHubURL, mcp.Description("GitHub profile URL, e.g. https://github.com/octocat")),
		mcp.WithString(ArgTwitterURL, mcp.Description("X (Twitter) profile URL, e.g. https://x.com/golang")),
		mcp.WithString(ArgSpeakerDeckURL, mcp.Description("Speaker Deck profile URL, e.g. https://speakerdeck.com/jane")),
		mcp.WithString(ArgBlogURL, mcp.Description("Blog URL")),
	)
}

// Handler returns the tool handler. Invalid arguments and failures are
// reported as tool errors, never as protocol errors.
func Handler(svc Summarizer, logger *slog.Logger) server.ToolHandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r := analyzer.Request{
			GitHubURL:      req.GetString(ArgGitHubURL, ""),
			TwitterURL:     req.GetString(ArgTwitterURL, ""),
			SpeakerDeckURL: req.GetString(ArgSpeakerDeckURL, ""),
			BlogURL:        req.GetString(ArgBlogURL, ""),
		}

		summary, err := svc.Summary(ctx, r)
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			return mcpError(fmt.Sprintf("invalid params: %v", err)), nil
		case err != nil:
			logger.ErrorContext(ctx, "analysis failed", "error", err)
			return mcpError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return mcpText(summary), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

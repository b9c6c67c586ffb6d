package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kutbudev/lifedeck-cli/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// session holds the entity cache the tool handlers operate on.
var session *store.Session

// ServeStdio starts the MCP server using the official go-sdk over stdio.
func ServeStdio(s *store.Session) error {
	if s == nil {
		return errors.New("session is required")
	}
	session = s

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lifedeck",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: `🃏 LIFEDECK - Personal Life Management

You are connected to the user's lifedeck: their tasks, habits, daily
check-ins and streaks. Use it to keep their day on track.

## When to reach for lifedeck
- User mentions something they need to do → create_task
- User says they did a habit (exercised, read, meditated) → log_habit
- User asks "what's on today" or about their day → today
- A task the user asked for is finished → complete_task
- User asks how consistent they've been → day_streak

## Quick Reference
- today() shows the current day with its checklist and habits
- log_habit(habit: "name") marks a habit done for today
- create_task(title: "...", priority: "H") adds a task
- complete_task(taskId: "uuid") finishes one

⚠️ Habit logs and completed days feed streaks - never log a habit the
user did not confirm doing.`,
		},
	)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// textResult converts any data to a CallToolResult with JSON TextContent.
// Data goes into Content rather than StructuredContent so that every MCP
// client can read it.
func textResult(data interface{}) *mcp.CallToolResult {
	if data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "{}"}},
		}
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf(`{"error": %q}`, err.Error())},
			},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

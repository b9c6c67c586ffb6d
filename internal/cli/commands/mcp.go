package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/api"
	"github.com/kutbudev/lifedeck-cli/internal/config"
	"github.com/kutbudev/lifedeck-cli/internal/mcp"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start MCP server (stdio)",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig()
					if err != nil {
						return fmt.Errorf("failed to load config: %w", err)
					}
					if cfg.APIKey == "" || cfg.UserID == "" {
						return fmt.Errorf("not signed in; run 'lifedeck setup' first")
					}
					userID, err := uuid.Parse(cfg.UserID)
					if err != nil {
						return fmt.Errorf("invalid user id in config: %w", err)
					}

					// tag every MCP-originated request so the server can
					// attribute writes to this stdio run
					client := api.NewClient()
					client.SetAgentInfo("lifedeck-mcp", os.Getenv("LIFEDECK_AGENT_MODEL"), uuid.New().String())

					return mcp.ServeStdio(store.NewSession(client, userID))
				},
			},
			{
				Name:  "config",
				Usage: "Print MCP config examples for clients",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "client",
						Aliases: []string{"c"},
						Usage:   "target client (generic|codex)",
						Value:   "generic",
					},
				},
				Action: func(c *cli.Context) error {
					switch strings.ToLower(c.String("client")) {
					case "codex":
						printCodexConfig()
					default:
						printGenericConfig()
					}
					return nil
				},
			},
			{
				Name:  "tools",
				Usage: "List available MCP tools",
				Action: func(c *cli.Context) error {
					b, _ := json.MarshalIndent(mcp.ToolDefinitions(), "", "  ")
					os.Stdout.Write(b)
					os.Stdout.Write([]byte("\n"))
					return nil
				},
			},
		},
	}
}

func printGenericConfig() {
	cfg := map[string]interface{}{
		"mcpServers": map[string]interface{}{
			"lifedeck": map[string]interface{}{
				"command": "lifedeck",
				"args":    []string{"mcp", "serve"},
			},
		},
	}
	b, _ := json.MarshalIndent(cfg, "", "  ")
	fmt.Println(string(b))
}

func printCodexConfig() {
	fmt.Println("# Add the following to ~/.codex/config.toml (merge with existing settings)")
	fmt.Println("[mcp_servers.lifedeck]")
	fmt.Println("command = \"lifedeck\"")
	fmt.Println("args = [\"mcp\", \"serve\"]")
	fmt.Println("enabled = true")
}

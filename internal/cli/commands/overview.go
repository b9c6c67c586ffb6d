package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:    "overview",
		Aliases: []string{"help-all"},
		Usage:   "Show all available features and commands",
		Action: func(c *cli.Context) error {
			fmt.Print(`
╔═══════════════════════════════════════════════════════════════════╗
║                       🃏 Lifedeck CLI                             ║
║                      Feature Overview                             ║
╚═══════════════════════════════════════════════════════════════════╝

📋 TASKS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck task list             List tasks (filter by status/project)
  lifedeck task create "title"   Create a new task
  lifedeck task show <id>        Show task details
  lifedeck task start <id>       Start a task (IN_PROGRESS)
  lifedeck task done <id>        Complete a task (COMPLETED)
  lifedeck task delete <id>      Delete a task
  lifedeck board                 Kanban board (--live to auto-refresh)

📁 PROJECTS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck project list          List all projects
  lifedeck project create "name" Create a new project
  lifedeck project show <id>     Show a project and its tasks
  lifedeck project use <id>      Set the active project
  lifedeck project progress <id> Set progress, or --sync from tasks
  lifedeck project delete <id>   Delete a project and its tasks

🎯 GOALS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck goal list             List goals
  lifedeck goal create "title"   Create a goal (--target N --unit X)
  lifedeck goal progress <id> N  Update a quantifiable goal
  lifedeck goal today <id>       Put a goal on today's checklist
  lifedeck goal check <id>       Tick a checklist item
  lifedeck goal done <id>        Complete a goal

🔁 HABITS & DAYS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck habit list            List habits with streaks
  lifedeck habit log <id>        Log a habit for today (--missed)
  lifedeck habit streak <id>     Show a habit's streak
  lifedeck day today             Open today's entry
  lifedeck day log               Record mood/energy/sleep/gratitude
  lifedeck day complete          Close the day, extend the streak
  lifedeck day streak            Show the completed-day streak

📝 NOTES
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck note list             List notes (🔒 marks encrypted)
  lifedeck note create "title"   Create a note (--type REFLECTION encrypts)
  lifedeck note view <id>        Render a note (markdown)
  lifedeck note copy <id>        Copy note content to the clipboard
  lifedeck note pin <id>         Toggle pin

🏷️  TAGS & CATEGORIES
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck tag list              List tags with usage counts
  lifedeck tag attach <t> <e>    Tag a note/project/task/goal
  lifedeck category list         List categories

📚 LEARNING & ROADS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck learn topics          List learning topics with progress
  lifedeck learn study <id> 1.5  Record a study session
  lifedeck road list             List roads with progress bars
  lifedeck road check <id>       Complete a milestone

⚙️  CONFIGURATION
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck setup                 Configure API key and user id
  lifedeck setup show            Show current configuration
  lifedeck vault setup           Create the reflection encryption vault
  lifedeck vault unlock          Unlock the vault

🤖 MCP (Model Context Protocol)
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  lifedeck mcp serve             Start MCP server (stdio)
  lifedeck mcp config            Print client config examples
  lifedeck mcp tools             List available MCP tools

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
💡 TIP: Use 'lifedeck <command> --help' for detailed command usage.
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
`)
			return nil
		},
	}
}

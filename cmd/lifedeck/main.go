package main

import (
	"log"
	"os"

	"github.com/kutbudev/lifedeck-cli/internal/cli/commands"
	"github.com/urfave/cli/v2"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "lifedeck",
		Usage:   "Personal life management CLI - tasks, habits, goals and days",
		Version: Version,
		Commands: []*cli.Command{
			// Core commands
			commands.NewSetupCommand(),
			commands.NewTaskCommand(),
			commands.NewProjectCommand(),
			commands.NewGoalCommand(),

			// Daily rhythm
			commands.NewDayCommand(),
			commands.NewHabitCommand(),

			// Knowledge & notes
			commands.NewNoteCommand(),
			commands.NewLearnCommand(),
			commands.NewRoadCommand(),

			// Organization
			commands.NewTagCommand(),
			commands.NewCategoryCommand(),

			// Views
			commands.NewBoardCommand(),
			commands.NewStatusCommand(),

			// Security
			commands.NewVaultCommand(),

			// Meta
			commands.NewOverviewCommand(),
			commands.NewMcpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/config"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with your API key and user id",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current configuration",
				Action: func(c *cli.Context) error {
					return handleShowConfig()
				},
			},
		},
		Action: func(c *cli.Context) error {
			return handleSetup()
		},
	}
}

func handleSetup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = &config.Config{}
	}

	questions := []*survey.Question{
		{
			Name: "apiKey",
			Prompt: &survey.Password{
				Message: "API key:",
			},
			Validate: survey.Required,
		},
		{
			Name: "userID",
			Prompt: &survey.Input{
				Message: "User id (UUID):",
				Default: cfg.UserID,
			},
			Validate: func(ans interface{}) error {
				s, _ := ans.(string)
				if _, err := uuid.Parse(s); err != nil {
					return fmt.Errorf("not a valid UUID")
				}
				return nil
			},
		},
	}

	answers := struct {
		APIKey string
		UserID string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	cfg.APIKey = answers.APIKey
	cfg.UserID = answers.UserID
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	fmt.Println("✅ Configuration saved.")

	// sanity-check the credentials against the API
	session, err := newSession()
	if err != nil {
		return nil
	}
	if err := session.FetchProjects(); err != nil {
		fmt.Printf("⚠️  Could not reach the API with these credentials: %v\n", err)
		return nil
	}
	fmt.Printf("✅ Signed in. %d projects found.\n", session.Projects.Len())
	return nil
}

func handleShowConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("no configuration found; run 'lifedeck setup' first")
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Config file: %s\n", path)
	if cfg.APIKey != "" {
		fmt.Printf("API key:     %s…\n", truncateString(cfg.APIKey, 8))
	} else {
		fmt.Println("API key:     (not set)")
	}
	fmt.Printf("User id:     %s\n", cfg.UserID)
	if cfg.ActiveProjectID != "" {
		fmt.Printf("Active project: %s\n", cfg.ActiveProjectID)
	}
	return nil
}

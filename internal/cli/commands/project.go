package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/config"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewProjectCommand creates all subcommands for the 'project' command group.
func NewProjectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Manage projects",
		Subcommands: []*cli.Command{
			projectListCmd(),
			projectCreateCmd(),
			projectShowCmd(),
			projectUseCmd(),
			projectUpdateCmd(),
			projectProgressCmd(),
			projectDeleteCmd(),
		},
	}
}

func projectListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all projects",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchProjects(); err != nil {
				fmt.Printf("Error listing projects: %v\n", err)
				return err
			}

			projects := session.Projects.Items()
			if len(projects) == 0 {
				fmt.Println("No projects found. Use 'lifedeck project create' to add one.")
				return nil
			}

			activeID := ""
			if cfg, err := config.LoadConfig(); err == nil {
				activeID = cfg.ActiveProjectID
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tPRI")
			fmt.Fprintln(w, "--\t----\t------\t--------\t---")
			for _, p := range projects {
				marker := ""
				if p.ID.String() == activeID {
					marker = " *"
				}
				fmt.Fprintf(w, "%s\t%s%s\t%s\t%d%%\t%s\n",
					shortID(p.ID), truncateString(p.Name, 30), marker,
					p.Status, p.Progress, p.Priority)
			}
			w.Flush()
			return nil
		},
	}
}

func projectCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new project",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Project description",
			},
			&cli.StringFlag{
				Name:    "priority",
				Aliases: []string{"p"},
				Usage:   "Priority (L, M, H)",
				Value:   "M",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project name is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			project, err := session.CreateProject(models.ProjectInput{
				Name:        strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				Priority:    strings.ToUpper(c.String("priority")),
			})
			if err != nil {
				fmt.Printf("Error creating project: %v\n", err)
				return err
			}

			fmt.Printf("✅ Project '%s' created!\n", project.Name)
			fmt.Printf("ID: %s\n", project.ID.String())
			return nil
		},
	}
}

func projectShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a project",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			project, session, err := resolveProject(c)
			if err != nil {
				return err
			}

			fmt.Printf("Project Details for '%s':\n", project.Name)
			fmt.Printf("----------------------------------\n")
			fmt.Printf("ID:          %s\n", project.ID.String())
			fmt.Printf("Status:      %s\n", project.Status)
			fmt.Printf("Priority:    %s\n", project.Priority)
			fmt.Printf("Progress:    %d%%\n", project.Progress)
			if project.Description != "" {
				fmt.Printf("Description: %s\n", project.Description)
			}
			fmt.Printf("Created At:  %s\n", project.CreatedAt.Format("2006-01-02 15:04:05"))

			if err := session.FetchTasks(); err == nil {
				tasks := session.TasksByProject(project.ID)
				if len(tasks) > 0 {
					fmt.Printf("\nTasks (%d):\n", len(tasks))
					for _, t := range tasks {
						fmt.Printf("  [%s] %s %s\n", shortID(t.ID), t.Status, truncateString(t.Title, 50))
					}
				}
			}
			return nil
		},
	}
}

func projectUseCmd() *cli.Command {
	return &cli.Command{
		Name:      "use",
		Usage:     "Set the active project for new tasks",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			project, _, err := resolveProject(c)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg.ActiveProjectID = project.ID.String()
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("📌 Active project set to '%s'.\n", project.Name)
			return nil
		},
	}
}

func projectUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a project's properties",
		ArgsUsage: "[project-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New project name"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New project description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status (ACTIVE, ON_HOLD, COMPLETED, ARCHIVED)"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority (L, M, H)"},
		},
		Action: func(c *cli.Context) error {
			project, session, err := resolveProject(c)
			if err != nil {
				return err
			}

			patch := make(map[string]interface{})
			if name := c.String("name"); name != "" {
				patch["name"] = name
			}
			if description := c.String("description"); description != "" {
				patch["description"] = description
			}
			if status := c.String("status"); status != "" {
				patch["status"] = strings.ToUpper(status)
			}
			if priority := c.String("priority"); priority != "" {
				patch["priority"] = strings.ToUpper(priority)
			}
			if len(patch) == 0 {
				fmt.Println("No update fields provided.")
				return nil
			}

			updated, err := session.UpdateProject(project.ID, patch)
			if err != nil {
				fmt.Printf("Error updating project: %v\n", err)
				return err
			}

			fmt.Printf("✅ Project '%s' (ID: %s) updated.\n", updated.Name, shortID(updated.ID))
			return nil
		},
	}
}

func projectProgressCmd() *cli.Command {
	return &cli.Command{
		Name:      "progress",
		Usage:     "Set project progress manually, or derive it from tasks",
		ArgsUsage: "[project-id] [0-100]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sync",
				Usage: "Derive progress from the project's completed tasks",
			},
		},
		Action: func(c *cli.Context) error {
			project, session, err := resolveProject(c)
			if err != nil {
				return err
			}

			if c.Bool("sync") {
				if err := session.FetchTasks(); err != nil {
					return err
				}
				updated, err := session.SyncProjectProgress(project.ID)
				if err != nil {
					fmt.Printf("Error syncing progress: %v\n", err)
					return err
				}
				fmt.Printf("📊 '%s' progress synced from tasks: %d%%\n", updated.Name, updated.Progress)
				return nil
			}

			if c.NArg() < 2 {
				return fmt.Errorf("progress value is required (or use --sync)")
			}
			value, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid progress value %q", c.Args().Get(1))
			}

			updated, err := session.SetProjectProgress(project.ID, value)
			if err != nil {
				fmt.Printf("Error setting progress: %v\n", err)
				return err
			}

			fmt.Printf("📊 '%s' progress set to %d%%", updated.Name, updated.Progress)
			if updated.Status == string(models.ProjectStatusCompleted) {
				fmt.Print(" — project completed! 🎉")
			}
			fmt.Println()
			return nil
		},
	}
}

func projectDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a project and all of its tasks",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			project, session, err := resolveProject(c)
			if err != nil {
				return err
			}

			if err := session.FetchTasks(); err != nil {
				return err
			}
			if err := session.DeleteProject(project.ID); err != nil {
				fmt.Printf("Error deleting project: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Project %s and its tasks deleted.\n", shortID(project.ID))
			return nil
		},
	}
}

func resolveProject(c *cli.Context) (models.Project, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Project{}, nil, fmt.Errorf("project id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Project{}, nil, err
	}
	if err := session.FetchProjects(); err != nil {
		return models.Project{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Projects))
	if err != nil {
		return models.Project{}, nil, err
	}
	project, found := session.Projects.ByID(id)
	if !found {
		return models.Project{}, nil, fmt.Errorf("project %s not found", c.Args().First())
	}
	return project, session, nil
}

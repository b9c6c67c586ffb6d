package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/config"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewTaskCommand creates all subcommands for the 'task' command group.
func NewTaskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Manage tasks",
		Subcommands: []*cli.Command{
			taskListCmd(),
			taskCreateCmd(),
			taskShowCmd(),
			taskUpdateCmd(),
			taskStartCmd(),
			taskDoneCmd(),
			taskDeleteCmd(),
		},
	}
}

func taskListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "Filter by status (TODO, IN_PROGRESS, COMPLETED)",
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Filter by project id",
			},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTasks(); err != nil {
				fmt.Printf("Error listing tasks: %v\n", err)
				return err
			}

			tasks := session.Tasks.Items()
			if status := strings.ToUpper(c.String("status")); status != "" {
				tasks = session.Tasks.Find(func(t models.Task) bool { return t.Status == status })
			}
			if arg := c.String("project"); arg != "" {
				if err := session.FetchProjects(); err != nil {
					return err
				}
				projectID, err := matchID(arg, storeIDs(session.Projects))
				if err != nil {
					return err
				}
				filtered := tasks[:0:0]
				for _, t := range tasks {
					if t.ProjectID != nil && *t.ProjectID == projectID {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found. Use 'lifedeck task create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPRI\tTITLE\tDUE")
			fmt.Fprintln(w, "--\t------\t---\t-----\t---")
			for _, t := range tasks {
				due := ""
				if t.DueDate != nil {
					due = t.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID), t.Status, t.Priority,
					truncateString(t.Title, 40), due)
			}
			w.Flush()
			return nil
		},
	}
}

func taskCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new task",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Task description",
			},
			&cli.StringFlag{
				Name:    "priority",
				Aliases: []string{"p"},
				Usage:   "Priority (L, M, H)",
				Value:   "M",
			},
			&cli.StringFlag{
				Name:  "project",
				Usage: "Project id (defaults to the active project)",
			},
			&cli.StringFlag{
				Name:  "due",
				Usage: "Due date (YYYY-MM-DD)",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Prompt for the task fields",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 && !c.Bool("interactive") {
				return fmt.Errorf("task title is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			input := models.TaskInput{
				Title:       strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				Priority:    strings.ToUpper(c.String("priority")),
			}
			if c.Bool("interactive") {
				if err := promptTaskInput(&input); err != nil {
					return err
				}
			}

			projectArg := c.String("project")
			if projectArg == "" {
				if cfg, err := config.LoadConfig(); err == nil && cfg.ActiveProjectID != "" {
					projectArg = cfg.ActiveProjectID
				}
			}
			if projectArg != "" {
				if err := session.FetchProjects(); err != nil {
					return err
				}
				projectID, err := matchID(projectArg, storeIDs(session.Projects))
				if err != nil {
					return err
				}
				input.ProjectID = &projectID
			}
			if due := c.String("due"); due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", due)
				}
				input.DueDate = &d
			}

			task, err := session.CreateTask(input)
			if err != nil {
				fmt.Printf("Error creating task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' created!\n", task.Title)
			fmt.Printf("ID: %s\n", task.ID.String())
			return nil
		},
	}
}

// promptTaskInput fills in any fields the flags and args did not provide.
func promptTaskInput(input *models.TaskInput) error {
	if input.Title == "" {
		if err := survey.AskOne(&survey.Input{Message: "Title:"}, &input.Title,
			survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if input.Description == "" {
		if err := survey.AskOne(&survey.Input{Message: "Description:"}, &input.Description); err != nil {
			return err
		}
	}
	return survey.AskOne(&survey.Select{
		Message: "Priority:",
		Options: []string{"L", "M", "H"},
		Default: input.Priority,
	}, &input.Priority)
}

func taskShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a task",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			task, session, err := resolveTask(c)
			if err != nil {
				return err
			}

			fmt.Printf("Task Details for '%s':\n", task.Title)
			fmt.Printf("----------------------------------\n")
			fmt.Printf("ID:          %s\n", task.ID.String())
			fmt.Printf("Status:      %s\n", task.Status)
			fmt.Printf("Priority:    %s\n", task.Priority)
			if task.Description != "" {
				fmt.Printf("Description: %s\n", task.Description)
			}
			if task.ProjectID != nil {
				_ = session.FetchProjects()
				if project, found := session.Projects.ByID(*task.ProjectID); found {
					fmt.Printf("Project:     %s (%s)\n", project.Name, shortID(project.ID))
				} else {
					fmt.Printf("Project:     %s\n", shortID(*task.ProjectID))
				}
			}
			if task.DueDate != nil {
				fmt.Printf("Due:         %s\n", task.DueDate.Format("2006-01-02"))
			}
			if task.CompletedAt != nil {
				fmt.Printf("Completed:   %s\n", task.CompletedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("Created At:  %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func taskUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a task's properties",
		ArgsUsage: "[task-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority (L, M, H)"},
			&cli.StringFlag{Name: "due", Usage: "New due date (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			task, session, err := resolveTask(c)
			if err != nil {
				return err
			}

			patch := make(map[string]interface{})
			if title := c.String("title"); title != "" {
				patch["title"] = title
			}
			if description := c.String("description"); description != "" {
				patch["description"] = description
			}
			if priority := c.String("priority"); priority != "" {
				patch["priority"] = strings.ToUpper(priority)
			}
			if due := c.String("due"); due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", due)
				}
				patch["due_date"] = d
			}
			if len(patch) == 0 {
				fmt.Println("No update fields provided.")
				return nil
			}

			updated, err := session.UpdateTask(task.ID, patch)
			if err != nil {
				fmt.Printf("Error updating task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' (ID: %s) updated.\n", updated.Title, shortID(updated.ID))
			return nil
		},
	}
}

func taskStartCmd() *cli.Command {
	return &cli.Command{
		Name:      "start",
		Usage:     "Start working on a task (IN_PROGRESS)",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			task, session, err := resolveTask(c)
			if err != nil {
				return err
			}

			updated, err := session.UpdateTask(task.ID, map[string]interface{}{
				"status": string(models.TaskStatusInProgress),
			})
			if err != nil {
				fmt.Printf("Error starting task: %v\n", err)
				return err
			}

			fmt.Printf("▶️  Started task: %s\n", updated.Title)
			return nil
		},
	}
}

func taskDoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task as completed",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			task, session, err := resolveTask(c)
			if err != nil {
				return err
			}

			updated, err := session.CompleteTask(task.ID)
			if err != nil {
				fmt.Printf("Error completing task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Completed task: %s\n", updated.Title)
			return nil
		},
	}
}

func taskDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task and its direct subtasks",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			task, session, err := resolveTask(c)
			if err != nil {
				return err
			}

			if err := session.DeleteTask(task.ID); err != nil {
				fmt.Printf("Error deleting task: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Task %s deleted.\n", shortID(task.ID))
			return nil
		},
	}
}

// resolveTask loads the task cache and resolves the first argument to a
// cached task.
func resolveTask(c *cli.Context) (models.Task, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Task{}, nil, fmt.Errorf("task id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Task{}, nil, err
	}
	if err := session.FetchTasks(); err != nil {
		return models.Task{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Tasks))
	if err != nil {
		return models.Task{}, nil, err
	}
	task, found := session.Tasks.ByID(id)
	if !found {
		return models.Task{}, nil, fmt.Errorf("task %s not found", c.Args().First())
	}
	return task, session, nil
}

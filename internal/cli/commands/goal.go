package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewGoalCommand creates all subcommands for the 'goal' command group.
func NewGoalCommand() *cli.Command {
	return &cli.Command{
		Name:    "goal",
		Aliases: []string{"g"},
		Usage:   "Manage goals",
		Subcommands: []*cli.Command{
			goalListCmd(),
			goalCreateCmd(),
			goalUpdateCmd(),
			goalProgressCmd(),
			goalDoneCmd(),
			goalTodayCmd(),
			goalCheckCmd(),
			goalDeleteCmd(),
		},
	}
}

func goalListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all goals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by type (DAILY, SHORT_TERM, LONG_TERM, LIFETIME)",
			},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchGoals(); err != nil {
				fmt.Printf("Error listing goals: %v\n", err)
				return err
			}

			goals := session.Goals.Items()
			if goalType := strings.ToUpper(c.String("type")); goalType != "" {
				goals = session.Goals.Find(func(g models.Goal) bool { return g.Type == goalType })
			}

			if len(goals) == 0 {
				fmt.Println("No goals found. Use 'lifedeck goal create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tTITLE\tTARGET")
			fmt.Fprintln(w, "--\t----\t------\t-----\t------")
			for _, g := range goals {
				target := ""
				if g.IsQuantifiable {
					target = fmt.Sprintf("%.1f/%.1f %s", g.CurrentValue, g.TargetValue, g.Unit)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(g.ID), g.Type, g.Status,
					truncateString(g.Title, 36), target)
			}
			w.Flush()
			return nil
		},
	}
}

func goalCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new goal",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Goal description"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Type (DAILY, SHORT_TERM, LONG_TERM, LIFETIME)", Value: "SHORT_TERM"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Priority (L, M, H)", Value: "M"},
			&cli.Float64Flag{Name: "target", Usage: "Target value for a quantifiable goal"},
			&cli.StringFlag{Name: "unit", Usage: "Unit for a quantifiable goal (pages, km, ...)"},
			&cli.StringFlag{Name: "parent", Usage: "Parent goal id for a subgoal"},
			&cli.StringFlag{Name: "due", Usage: "Due date (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("goal title is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			input := models.GoalInput{
				Title:       strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				Type:        strings.ToUpper(c.String("type")),
				Priority:    strings.ToUpper(c.String("priority")),
			}
			if target := c.Float64("target"); target > 0 {
				input.IsQuantifiable = true
				input.TargetValue = target
				input.Unit = c.String("unit")
			}
			if parent := c.String("parent"); parent != "" {
				if err := session.FetchGoals(); err != nil {
					return err
				}
				parentID, err := matchID(parent, storeIDs(session.Goals))
				if err != nil {
					return err
				}
				input.ParentID = &parentID
			}
			if due := c.String("due"); due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", due)
				}
				input.DueDate = &d
			}

			goal, err := session.CreateGoal(input)
			if err != nil {
				fmt.Printf("Error creating goal: %v\n", err)
				return err
			}

			fmt.Printf("🎯 Goal '%s' created!\n", goal.Title)
			fmt.Printf("ID: %s\n", goal.ID.String())
			return nil
		},
	}
}

func goalUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a goal's properties",
		ArgsUsage: "[goal-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status (ACTIVE, ON_HOLD, COMPLETED, ABANDONED)"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority (L, M, H)"},
		},
		Action: func(c *cli.Context) error {
			goal, session, err := resolveGoal(c)
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

			updated, err := session.UpdateGoal(goal.ID, patch)
			if err != nil {
				fmt.Printf("Error updating goal: %v\n", err)
				return err
			}

			fmt.Printf("✅ Goal '%s' updated.\n", updated.Title)
			return nil
		},
	}
}

func goalProgressCmd() *cli.Command {
	return &cli.Command{
		Name:      "progress",
		Usage:     "Record progress on a quantifiable goal",
		ArgsUsage: "[goal-id] [value]",
		Action: func(c *cli.Context) error {
			goal, session, err := resolveGoal(c)
			if err != nil {
				return err
			}
			if !goal.IsQuantifiable {
				return fmt.Errorf("goal '%s' is not quantifiable", goal.Title)
			}
			if c.NArg() < 2 {
				return fmt.Errorf("progress value is required")
			}
			value, err := strconv.ParseFloat(c.Args().Get(1), 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", c.Args().Get(1))
			}

			updated, err := session.UpdateGoal(goal.ID, map[string]interface{}{
				"current_value": value,
			})
			if err != nil {
				fmt.Printf("Error recording progress: %v\n", err)
				return err
			}

			fmt.Printf("🎯 '%s': %.1f/%.1f %s\n",
				updated.Title, updated.CurrentValue, updated.TargetValue, updated.Unit)
			return nil
		},
	}
}

func goalDoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a goal as completed",
		ArgsUsage: "[goal-id]",
		Action: func(c *cli.Context) error {
			goal, session, err := resolveGoal(c)
			if err != nil {
				return err
			}

			updated, err := session.UpdateGoal(goal.ID, map[string]interface{}{
				"status":       string(models.GoalStatusCompleted),
				"completed_at": session.Now().UTC(),
			})
			if err != nil {
				fmt.Printf("Error completing goal: %v\n", err)
				return err
			}

			fmt.Printf("🏆 Goal achieved: %s\n", updated.Title)
			return nil
		},
	}
}

// goalTodayCmd pins a goal onto today's day entry.
func goalTodayCmd() *cli.Command {
	return &cli.Command{
		Name:      "today",
		Usage:     "Add a goal to today's daily checklist",
		ArgsUsage: "[goal-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "note", Usage: "Note for the daily entry"},
		},
		Action: func(c *cli.Context) error {
			goal, session, err := resolveGoal(c)
			if err != nil {
				return err
			}

			if err := session.FetchDays(); err != nil {
				return err
			}
			day, err := session.GetOrCreateDay(session.Now())
			if err != nil {
				fmt.Printf("Error opening today: %v\n", err)
				return err
			}

			dailyGoal, err := session.CreateDailyGoal(models.DailyGoalInput{
				GoalID: goal.ID,
				DayID:  day.ID,
				Note:   c.String("note"),
			})
			if err != nil {
				fmt.Printf("Error adding goal to today: %v\n", err)
				return err
			}

			fmt.Printf("📅 '%s' added to today's checklist (entry %s).\n",
				goal.Title, shortID(dailyGoal.ID))
			return nil
		},
	}
}

// goalCheckCmd marks a daily-goal entry completed.
func goalCheckCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check off a daily goal entry",
		ArgsUsage: "[daily-goal-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("daily goal id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDailyGoals(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.DailyGoals))
			if err != nil {
				return err
			}

			updated, err := session.UpdateDailyGoal(id, map[string]interface{}{
				"is_completed": true,
			})
			if err != nil {
				fmt.Printf("Error checking daily goal: %v\n", err)
				return err
			}

			fmt.Printf("✅ Daily goal %s checked off.\n", shortID(updated.ID))
			return nil
		},
	}
}

func goalDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a goal, its direct subgoals and their daily entries",
		ArgsUsage: "[goal-id]",
		Action: func(c *cli.Context) error {
			goal, session, err := resolveGoal(c)
			if err != nil {
				return err
			}

			if err := session.FetchDailyGoals(); err != nil {
				return err
			}
			if err := session.DeleteGoal(goal.ID); err != nil {
				fmt.Printf("Error deleting goal: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Goal %s deleted.\n", shortID(goal.ID))
			return nil
		},
	}
}

func resolveGoal(c *cli.Context) (models.Goal, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Goal{}, nil, fmt.Errorf("goal id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Goal{}, nil, err
	}
	if err := session.FetchGoals(); err != nil {
		return models.Goal{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Goals))
	if err != nil {
		return models.Goal{}, nil, err
	}
	goal, found := session.Goals.ByID(id)
	if !found {
		return models.Goal{}, nil, fmt.Errorf("goal %s not found", c.Args().First())
	}
	return goal, session, nil
}

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewHabitCommand creates all subcommands for the 'habit' command group.
func NewHabitCommand() *cli.Command {
	return &cli.Command{
		Name:    "habit",
		Aliases: []string{"h"},
		Usage:   "Manage habits and habit logs",
		Subcommands: []*cli.Command{
			habitListCmd(),
			habitCreateCmd(),
			habitLogCmd(),
			habitStreakCmd(),
			habitPauseCmd(),
			habitDeleteCmd(),
		},
	}
}

func habitListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all habits with their current streaks",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchHabits(); err != nil {
				fmt.Printf("Error listing habits: %v\n", err)
				return err
			}
			// streaks need logs; a failed log fetch just leaves them at 0
			_ = session.FetchHabitLogs()

			habits := session.Habits.Items()
			if len(habits) == 0 {
				fmt.Println("No habits found. Use 'lifedeck habit create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTREAK\tACTIVE")
			fmt.Fprintln(w, "--\t----\t--------\t------\t------")
			for _, h := range habits {
				active := "yes"
				if !h.IsActive {
					active = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d🔥\t%s\n",
					shortID(h.ID), truncateString(h.Name, 30),
					h.Category, session.HabitStreak(h.ID), active)
			}
			w.Flush()
			return nil
		},
	}
}

func habitCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new habit",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Habit description"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Habit category (health, mind, ...)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("habit name is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			habit, err := session.CreateHabit(models.HabitInput{
				Name:        strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				Category:    c.String("category"),
			})
			if err != nil {
				fmt.Printf("Error creating habit: %v\n", err)
				return err
			}

			fmt.Printf("🌱 Habit '%s' created!\n", habit.Name)
			fmt.Printf("ID: %s\n", habit.ID.String())
			return nil
		},
	}
}

func habitLogCmd() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Log a habit as done (today by default)",
		ArgsUsage: "[habit-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Date to log (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "note", Usage: "Note for the log entry"},
			&cli.BoolFlag{Name: "missed", Usage: "Record the habit as missed instead of done"},
		},
		Action: func(c *cli.Context) error {
			habit, session, err := resolveHabit(c)
			if err != nil {
				return err
			}

			date := session.Now()
			if arg := c.String("date"); arg != "" {
				date, err = time.Parse("2006-01-02", arg)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", arg)
				}
			}

			if err := session.FetchDays(); err != nil {
				return err
			}
			day, err := session.GetOrCreateDay(date)
			if err != nil {
				fmt.Printf("Error opening day: %v\n", err)
				return err
			}

			log, err := session.CreateHabitLog(models.HabitLogInput{
				HabitID:     habit.ID,
				DayID:       &day.ID,
				Date:        date,
				IsCompleted: !c.Bool("missed"),
				Note:        c.String("note"),
			})
			if err != nil {
				fmt.Printf("Error logging habit: %v\n", err)
				return err
			}

			if log.IsCompleted {
				_ = session.FetchHabitLogs()
				fmt.Printf("🔥 '%s' logged for %s. Current streak: %d\n",
					habit.Name, date.Format("2006-01-02"), session.HabitStreak(habit.ID))
			} else {
				fmt.Printf("😔 '%s' recorded as missed for %s.\n",
					habit.Name, date.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func habitStreakCmd() *cli.Command {
	return &cli.Command{
		Name:      "streak",
		Usage:     "Show the current streak for a habit",
		ArgsUsage: "[habit-id]",
		Action: func(c *cli.Context) error {
			habit, session, err := resolveHabit(c)
			if err != nil {
				return err
			}
			if err := session.FetchHabitLogs(); err != nil {
				return err
			}

			streak := session.HabitStreak(habit.ID)
			switch {
			case streak == 0:
				fmt.Printf("'%s': no active streak. Today is a good day to start.\n", habit.Name)
			case streak == 1:
				fmt.Printf("'%s': 1 day streak 🔥\n", habit.Name)
			default:
				fmt.Printf("'%s': %d day streak 🔥\n", habit.Name, streak)
			}
			return nil
		},
	}
}

func habitPauseCmd() *cli.Command {
	return &cli.Command{
		Name:      "pause",
		Usage:     "Pause or resume a habit",
		ArgsUsage: "[habit-id]",
		Action: func(c *cli.Context) error {
			habit, session, err := resolveHabit(c)
			if err != nil {
				return err
			}

			updated, err := session.UpdateHabit(habit.ID, map[string]interface{}{
				"is_active": !habit.IsActive,
			})
			if err != nil {
				fmt.Printf("Error updating habit: %v\n", err)
				return err
			}

			if updated.IsActive {
				fmt.Printf("▶️  Habit '%s' resumed.\n", updated.Name)
			} else {
				fmt.Printf("⏸️  Habit '%s' paused.\n", updated.Name)
			}
			return nil
		},
	}
}

func habitDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a habit and its whole log history",
		ArgsUsage: "[habit-id]",
		Action: func(c *cli.Context) error {
			habit, session, err := resolveHabit(c)
			if err != nil {
				return err
			}

			if err := session.FetchHabitLogs(); err != nil {
				return err
			}
			if err := session.DeleteHabit(habit.ID); err != nil {
				fmt.Printf("Error deleting habit: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Habit %s and its logs deleted.\n", shortID(habit.ID))
			return nil
		},
	}
}

func resolveHabit(c *cli.Context) (models.Habit, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Habit{}, nil, fmt.Errorf("habit id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Habit{}, nil, err
	}
	if err := session.FetchHabits(); err != nil {
		return models.Habit{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Habits))
	if err != nil {
		return models.Habit{}, nil, err
	}
	habit, found := session.Habits.ByID(id)
	if !found {
		return models.Habit{}, nil, fmt.Errorf("habit %s not found", c.Args().First())
	}
	return habit, session, nil
}

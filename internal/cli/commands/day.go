package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/progress"
)

// NewDayCommand creates all subcommands for the 'day' command group.
func NewDayCommand() *cli.Command {
	return &cli.Command{
		Name:    "day",
		Aliases: []string{"d"},
		Usage:   "Manage daily journal entries",
		Subcommands: []*cli.Command{
			dayTodayCmd(),
			dayLogCmd(),
			dayCompleteCmd(),
			dayStreakCmd(),
		},
	}
}

// dayTodayCmd opens (or shows) today's entry with its checklist.
func dayTodayCmd() *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show today's entry, checklist and habit log",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDays(); err != nil {
				fmt.Printf("Error fetching days: %v\n", err)
				return err
			}

			day, err := session.GetOrCreateDay(session.Now())
			if err != nil {
				fmt.Printf("Error opening today: %v\n", err)
				return err
			}

			fmt.Printf("📅 %s\n", day.Date.Format("Monday, 2 January 2006"))
			fmt.Printf("----------------------------------\n")
			if day.Mood > 0 {
				fmt.Printf("Mood:    %d/5\n", day.Mood)
			}
			if day.Energy > 0 {
				fmt.Printf("Energy:  %d/5\n", day.Energy)
			}
			if day.SleepHours > 0 {
				fmt.Printf("Sleep:   %.1fh\n", day.SleepHours)
			}
			if day.Gratitude != "" {
				fmt.Printf("Grateful for: %s\n", day.Gratitude)
			}

			// today's checklist
			if err := session.FetchDailyGoals(); err == nil {
				_ = session.FetchGoals()
				entries := session.DailyGoals.Find(func(d models.DailyGoal) bool {
					return d.DayID == day.ID
				})
				if len(entries) > 0 {
					fmt.Println("\nChecklist:")
					for _, entry := range entries {
						box := "[ ]"
						if entry.IsCompleted {
							box = "[x]"
						}
						title := shortID(entry.GoalID)
						if goal, found := session.Goals.ByID(entry.GoalID); found {
							title = goal.Title
						}
						fmt.Printf("  %s %s (%s)\n", box, title, shortID(entry.ID))
					}
				}
			}

			// habits logged today
			if err := session.FetchHabitLogs(); err == nil {
				_ = session.FetchHabits()
				logs := session.HabitLogs.Find(func(l models.HabitLog) bool {
					return progress.SameDay(l.Date, day.Date) && l.IsCompleted
				})
				if len(logs) > 0 {
					fmt.Println("\nHabits done:")
					for _, log := range logs {
						name := shortID(log.HabitID)
						if habit, found := session.Habits.ByID(log.HabitID); found {
							name = habit.Name
						}
						fmt.Printf("  🔥 %s\n", name)
					}
				}
			}

			if day.IsCompleted {
				fmt.Println("\n✅ Day closed.")
			}
			return nil
		},
	}
}

// dayLogCmd records mood, energy, sleep and journal fields for a day.
func dayLogCmd() *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Record mood, energy, sleep or journal text for a day",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Day to log (YYYY-MM-DD, default today)"},
			&cli.IntFlag{Name: "mood", Usage: "Mood 1-5"},
			&cli.IntFlag{Name: "energy", Usage: "Energy 1-5"},
			&cli.Float64Flag{Name: "sleep", Usage: "Hours slept"},
			&cli.StringFlag{Name: "gratitude", Usage: "What you are grateful for"},
			&cli.StringFlag{Name: "reflection", Usage: "Journal reflection"},
			&cli.StringFlag{Name: "highlights", Usage: "Highlights of the day"},
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Prompt for the check-in fields"},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDays(); err != nil {
				return err
			}

			date := session.Now()
			if arg := c.String("date"); arg != "" {
				date, err = time.Parse("2006-01-02", arg)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", arg)
				}
			}
			day, err := session.GetOrCreateDay(date)
			if err != nil {
				fmt.Printf("Error opening day: %v\n", err)
				return err
			}

			patch := make(map[string]interface{})
			if mood := c.Int("mood"); mood > 0 {
				patch["mood"] = mood
			}
			if energy := c.Int("energy"); energy > 0 {
				patch["energy"] = energy
			}
			if sleep := c.Float64("sleep"); sleep > 0 {
				patch["sleep_hours"] = sleep
			}
			if gratitude := c.String("gratitude"); gratitude != "" {
				patch["gratitude"] = gratitude
			}
			if reflection := c.String("reflection"); reflection != "" {
				patch["reflection"] = reflection
			}
			if highlights := c.String("highlights"); highlights != "" {
				patch["highlights"] = highlights
			}
			if c.Bool("interactive") {
				if err := promptDayLog(patch); err != nil {
					return err
				}
			}
			if len(patch) == 0 {
				fmt.Println("Nothing to log. Use --mood, --energy, --sleep or the journal flags.")
				return nil
			}

			if _, err := session.UpdateDay(day.ID, patch); err != nil {
				fmt.Printf("Error logging day: %v\n", err)
				return err
			}

			fmt.Printf("📝 %s logged.\n", day.Date.Format("2006-01-02"))
			return nil
		},
	}
}

// promptDayLog asks for any check-in fields the flags left empty.
func promptDayLog(patch map[string]interface{}) error {
	scale := []string{"1", "2", "3", "4", "5"}
	if _, set := patch["mood"]; !set {
		var mood string
		if err := survey.AskOne(&survey.Select{Message: "Mood:", Options: scale, Default: "3"}, &mood); err != nil {
			return err
		}
		n, _ := strconv.Atoi(mood)
		patch["mood"] = n
	}
	if _, set := patch["energy"]; !set {
		var energy string
		if err := survey.AskOne(&survey.Select{Message: "Energy:", Options: scale, Default: "3"}, &energy); err != nil {
			return err
		}
		n, _ := strconv.Atoi(energy)
		patch["energy"] = n
	}
	if _, set := patch["gratitude"]; !set {
		var gratitude string
		if err := survey.AskOne(&survey.Input{Message: "Grateful for:"}, &gratitude); err != nil {
			return err
		}
		if gratitude != "" {
			patch["gratitude"] = gratitude
		}
	}
	if _, set := patch["highlights"]; !set {
		var highlights string
		if err := survey.AskOne(&survey.Input{Message: "Highlights:"}, &highlights); err != nil {
			return err
		}
		if highlights != "" {
			patch["highlights"] = highlights
		}
	}
	return nil
}

// dayCompleteCmd closes out a day.
func dayCompleteCmd() *cli.Command {
	return &cli.Command{
		Name:    "complete",
		Aliases: []string{"close"},
		Usage:   "Close out a day (today by default)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Day to close (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDays(); err != nil {
				return err
			}

			date := session.Now()
			if arg := c.String("date"); arg != "" {
				date, err = time.Parse("2006-01-02", arg)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", arg)
				}
			}
			day, err := session.GetOrCreateDay(date)
			if err != nil {
				return err
			}

			if _, err := session.CompleteDay(day.ID); err != nil {
				fmt.Printf("Error closing day: %v\n", err)
				return err
			}

			fmt.Printf("✅ %s closed. Streak: %d days.\n",
				day.Date.Format("2006-01-02"), session.DayStreak())
			return nil
		},
	}
}

// dayStreakCmd prints the chain of consecutive completed days.
func dayStreakCmd() *cli.Command {
	return &cli.Command{
		Name:  "streak",
		Usage: "Show the chain of consecutive completed days",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDays(); err != nil {
				return err
			}

			streak := session.DayStreak()
			if streak == 0 {
				fmt.Println("No day chain yet. Close today with 'lifedeck day complete'.")
				return nil
			}
			fmt.Printf("🔗 %d consecutive completed days.\n", streak)
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/progress"
)

// NewStatusCommand creates the status command, a cross-store snapshot of
// today, streaks and project progress.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Snapshot of today, streaks and active projects",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchDays(); err != nil {
				return err
			}
			if err := session.FetchHabits(); err != nil {
				return err
			}
			if err := session.FetchHabitLogs(); err != nil {
				return err
			}
			if err := session.FetchProjects(); err != nil {
				return err
			}
			if err := session.FetchTasks(); err != nil {
				return err
			}

			now := session.Now()
			fmt.Printf("🃏 lifedeck — %s\n\n", now.Format("Monday, Jan 2"))

			today := session.Days.Find(func(d models.Day) bool {
				return progress.SameDay(d.Date, now)
			})
			switch {
			case len(today) == 0:
				fmt.Println("📅 Today: not opened yet ('lifedeck day today')")
			case today[0].IsCompleted:
				fmt.Println("📅 Today: ✅ completed")
			default:
				fmt.Println("📅 Today: open")
			}
			fmt.Printf("🔥 Day streak: %d\n\n", session.DayStreak())

			habits := session.Habits.Find(func(h models.Habit) bool { return h.IsActive })
			if len(habits) > 0 {
				fmt.Println("🔁 Habits:")
				for _, h := range habits {
					done := len(session.HabitLogs.Find(func(l models.HabitLog) bool {
						return l.HabitID == h.ID && l.IsCompleted && progress.SameDay(l.Date, now)
					})) > 0
					mark := " "
					if done {
						mark = "✓"
					}
					fmt.Printf("  [%s] %-24s streak %d\n",
						mark, truncateString(h.Name, 24), session.HabitStreak(h.ID))
				}
				fmt.Println()
			}

			active := session.Projects.Find(func(p models.Project) bool {
				return p.Status == string(models.ProjectStatusActive)
			})
			if len(active) > 0 {
				fmt.Println("📁 Active projects:")
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, p := range active {
					open := len(session.Tasks.Find(func(t models.Task) bool {
						return t.ProjectID != nil && *t.ProjectID == p.ID &&
							t.Status != string(models.TaskStatusCompleted)
					}))
					fmt.Fprintf(w, "  %s\t%s\t%3d%%\t%d open tasks\n",
						shortID(p.ID), truncateString(p.Name, 30), p.Progress, open)
				}
				w.Flush()
			}
			return nil
		},
	}
}

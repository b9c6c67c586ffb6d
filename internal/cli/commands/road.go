package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewRoadCommand creates all subcommands for the 'road' command group.
func NewRoadCommand() *cli.Command {
	return &cli.Command{
		Name:  "road",
		Usage: "Manage roads (long-term milestone tracks)",
		Subcommands: []*cli.Command{
			roadListCmd(),
			roadCreateCmd(),
			roadShowCmd(),
			roadMilestoneCmd(),
			roadCheckCmd(),
			roadUncheckCmd(),
			roadDeleteCmd(),
		},
	}
}

func roadListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all roads with progress",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchRoads(); err != nil {
				fmt.Printf("Error listing roads: %v\n", err)
				return err
			}

			roads := session.Roads.Items()
			if len(roads) == 0 {
				fmt.Println("No roads found. Use 'lifedeck road create' to start one.")
				return nil
			}

			for _, r := range roads {
				bar := progressBar(r.Progress, 20)
				fmt.Printf("%s  %s %3d%%  %s (%s)\n",
					shortID(r.ID), bar, r.Progress,
					truncateString(r.Title, 40), r.Status)
			}
			return nil
		},
	}
}

func roadCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new road",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Road description"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("road title is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			road, err := session.CreateRoad(models.RoadInput{
				Title:       strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
			})
			if err != nil {
				fmt.Printf("Error creating road: %v\n", err)
				return err
			}

			fmt.Printf("🛣️  Road '%s' created (ID: %s).\n", road.Title, shortID(road.ID))
			return nil
		},
	}
}

func roadShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a road and its milestones in order",
		ArgsUsage: "[road-id]",
		Action: func(c *cli.Context) error {
			road, session, err := resolveRoad(c)
			if err != nil {
				return err
			}
			if err := session.FetchMilestones(); err != nil {
				return err
			}

			fmt.Printf("🛣️  %s — %s %d%%\n", road.Title, road.Status, road.Progress)
			if road.Description != "" {
				fmt.Println(road.Description)
			}

			milestones := session.Milestones.Find(func(m models.Milestone) bool {
				return m.RoadID == road.ID
			})
			sort.Slice(milestones, func(i, j int) bool {
				return milestones[i].Order < milestones[j].Order
			})

			if len(milestones) == 0 {
				fmt.Println("\nNo milestones yet. Use 'lifedeck road milestone' to add one.")
				return nil
			}

			fmt.Println()
			for _, m := range milestones {
				box := "[ ]"
				if m.IsCompleted {
					box = "[x]"
				}
				fmt.Printf("  %s %d. %s (%s)\n", box, m.Order, m.Title, shortID(m.ID))
			}
			return nil
		},
	}
}

func roadMilestoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "milestone",
		Aliases:   []string{"ms"},
		Usage:     "Add a milestone to a road",
		ArgsUsage: "[road-id] [title]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "order", Aliases: []string{"o"}, Usage: "Position on the road (appended when omitted)"},
		},
		Action: func(c *cli.Context) error {
			road, session, err := resolveRoad(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return fmt.Errorf("milestone title is required")
			}
			if err := session.FetchMilestones(); err != nil {
				return err
			}

			order := c.Int("order")
			if order == 0 {
				order = len(session.Milestones.Find(func(m models.Milestone) bool {
					return m.RoadID == road.ID
				})) + 1
			}

			milestone, err := session.CreateMilestone(models.MilestoneInput{
				RoadID: road.ID,
				Title:  strings.Join(c.Args().Slice()[1:], " "),
				Order:  order,
			})
			if err != nil {
				fmt.Printf("Error creating milestone: %v\n", err)
				return err
			}

			fmt.Printf("🚩 Milestone %d '%s' added (ID: %s).\n",
				milestone.Order, milestone.Title, shortID(milestone.ID))
			return nil
		},
	}
}

func roadCheckCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Complete a milestone; road progress recalculates",
		ArgsUsage: "[milestone-id]",
		Action: func(c *cli.Context) error {
			return setMilestone(c, true)
		},
	}
}

func roadUncheckCmd() *cli.Command {
	return &cli.Command{
		Name:      "uncheck",
		Usage:     "Reopen a milestone; a completed road reverts to active",
		ArgsUsage: "[milestone-id]",
		Action: func(c *cli.Context) error {
			return setMilestone(c, false)
		},
	}
}

func setMilestone(c *cli.Context, completed bool) error {
	if c.NArg() == 0 {
		return fmt.Errorf("milestone id is required")
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	if err := session.FetchRoads(); err != nil {
		return err
	}
	if err := session.FetchMilestones(); err != nil {
		return err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Milestones))
	if err != nil {
		return err
	}

	milestone, err := session.SetMilestoneCompleted(id, completed)
	if err != nil {
		fmt.Printf("Error updating milestone: %v\n", err)
		return err
	}

	road, _ := session.Roads.ByID(milestone.RoadID)
	if completed {
		fmt.Printf("🚩 '%s' done. Road '%s' at %d%%.\n",
			milestone.Title, road.Title, road.Progress)
		if road.Status == string(models.RoadStatusCompleted) {
			fmt.Println("🏁 Road completed!")
		}
	} else {
		fmt.Printf("'%s' reopened. Road '%s' back to %d%%.\n",
			milestone.Title, road.Title, road.Progress)
	}
	return nil
}

func roadDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a road and all of its milestones",
		ArgsUsage: "[road-id]",
		Action: func(c *cli.Context) error {
			road, session, err := resolveRoad(c)
			if err != nil {
				return err
			}
			if err := session.FetchMilestones(); err != nil {
				return err
			}

			if err := session.DeleteRoad(road.ID); err != nil {
				fmt.Printf("Error deleting road: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Road %s and its milestones deleted.\n", shortID(road.ID))
			return nil
		},
	}
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func resolveRoad(c *cli.Context) (models.Road, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Road{}, nil, fmt.Errorf("road id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Road{}, nil, err
	}
	if err := session.FetchRoads(); err != nil {
		return models.Road{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Roads))
	if err != nil {
		return models.Road{}, nil, err
	}
	road, found := session.Roads.ByID(id)
	if !found {
		return models.Road{}, nil, fmt.Errorf("road %s not found", c.Args().First())
	}
	return road, session, nil
}

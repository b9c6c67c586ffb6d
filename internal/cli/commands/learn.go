package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewLearnCommand creates all subcommands for the 'learn' command group.
func NewLearnCommand() *cli.Command {
	return &cli.Command{
		Name:  "learn",
		Usage: "Track learning topics and concepts",
		Subcommands: []*cli.Command{
			learnTopicsCmd(),
			learnAddTopicCmd(),
			learnShowCmd(),
			learnAddConceptCmd(),
			learnStudyCmd(),
			learnDeleteTopicCmd(),
			learnDeleteConceptCmd(),
		},
	}
}

func learnTopicsCmd() *cli.Command {
	return &cli.Command{
		Name:    "topics",
		Aliases: []string{"ls"},
		Usage:   "List learning topics with progress",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTopics(); err != nil {
				fmt.Printf("Error listing topics: %v\n", err)
				return err
			}

			topics := session.Topics.Items()
			if len(topics) == 0 {
				fmt.Println("No topics found. Use 'lifedeck learn add-topic' to start one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tHOURS")
			fmt.Fprintln(w, "--\t----\t------\t--------\t-----")
			for _, t := range topics {
				hours := fmt.Sprintf("%.1f", t.ActualHours)
				if t.TargetHours > 0 {
					hours = fmt.Sprintf("%.1f/%.1f", t.ActualHours, t.TargetHours)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n",
					shortID(t.ID), truncateString(t.Name, 30),
					t.Status, t.Progress, hours)
			}
			w.Flush()
			return nil
		},
	}
}

func learnAddTopicCmd() *cli.Command {
	return &cli.Command{
		Name:      "add-topic",
		Usage:     "Start a new learning topic",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Topic description"},
			&cli.Float64Flag{Name: "target-hours", Usage: "Planned study hours"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("topic name is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			topic, err := session.CreateTopic(models.TopicInput{
				Name:        strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				TargetHours: c.Float64("target-hours"),
			})
			if err != nil {
				fmt.Printf("Error creating topic: %v\n", err)
				return err
			}

			fmt.Printf("📚 Topic '%s' created (ID: %s).\n", topic.Name, shortID(topic.ID))
			return nil
		},
	}
}

func learnShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a topic and its concepts",
		ArgsUsage: "[topic-id]",
		Action: func(c *cli.Context) error {
			topic, session, err := resolveTopic(c)
			if err != nil {
				return err
			}
			if err := session.FetchConcepts(); err != nil {
				return err
			}

			fmt.Printf("📚 %s — %d%% (%s)\n", topic.Name, topic.Progress, topic.Status)
			if topic.Description != "" {
				fmt.Println(topic.Description)
			}
			if topic.TargetHours > 0 {
				fmt.Printf("Hours: %.1f/%.1f\n", topic.ActualHours, topic.TargetHours)
			}

			concepts := session.Concepts.Find(func(con models.LearningConcept) bool {
				return con.TopicID == topic.ID
			})
			if len(concepts) == 0 {
				fmt.Println("\nNo concepts yet. Use 'lifedeck learn add-concept' to add one.")
				return nil
			}

			fmt.Println("\nConcepts:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  ID\tNAME\tSTATUS\tLEVEL\tHOURS")
			for _, con := range concepts {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%d/5\t%.1f\n",
					shortID(con.ID), truncateString(con.Name, 30),
					con.Status, con.UnderstandingLevel, con.TimeSpent)
			}
			w.Flush()
			return nil
		},
	}
}

func learnAddConceptCmd() *cli.Command {
	return &cli.Command{
		Name:      "add-concept",
		Usage:     "Add a concept to a topic",
		ArgsUsage: "[topic-id] [name]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "resource", Aliases: []string{"r"}, Usage: "Resource URL (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			topic, session, err := resolveTopic(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return fmt.Errorf("concept name is required")
			}

			concept, err := session.CreateConcept(models.ConceptInput{
				TopicID:   topic.ID,
				Name:      strings.Join(c.Args().Slice()[1:], " "),
				Resources: c.StringSlice("resource"),
			})
			if err != nil {
				fmt.Printf("Error creating concept: %v\n", err)
				return err
			}

			fmt.Printf("💡 Concept '%s' added to '%s' (ID: %s).\n",
				concept.Name, topic.Name, shortID(concept.ID))
			return nil
		},
	}
}

// learnStudyCmd records a study session on a concept. The topic's progress
// and hours roll up automatically.
func learnStudyCmd() *cli.Command {
	return &cli.Command{
		Name:      "study",
		Usage:     "Record a study session on a concept",
		ArgsUsage: "[concept-id] [hours]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status (LEARNING, COMPLETED, MASTERED)"},
			&cli.IntFlag{Name: "level", Aliases: []string{"l"}, Usage: "Understanding level 1-5"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("concept id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTopics(); err != nil {
				return err
			}
			if err := session.FetchConcepts(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.Concepts))
			if err != nil {
				return err
			}
			concept, found := session.Concepts.ByID(id)
			if !found {
				return fmt.Errorf("concept %s not found", c.Args().First())
			}

			patch := make(map[string]interface{})
			if c.NArg() >= 2 {
				hours, err := strconv.ParseFloat(c.Args().Get(1), 64)
				if err != nil {
					return fmt.Errorf("invalid hours %q", c.Args().Get(1))
				}
				patch["time_spent"] = concept.TimeSpent + hours
			}
			if status := strings.ToUpper(c.String("status")); status != "" {
				patch["status"] = status
			} else if concept.Status == string(models.ConceptStatusNotStarted) {
				patch["status"] = string(models.ConceptStatusLearning)
			}
			if level := c.Int("level"); level > 0 {
				patch["understanding_level"] = level
			}
			if len(patch) == 0 {
				fmt.Println("Nothing to record. Pass hours, --status or --level.")
				return nil
			}

			updated, err := session.UpdateConcept(id, patch)
			if err != nil {
				fmt.Printf("Error recording study session: %v\n", err)
				return err
			}

			fmt.Printf("💡 '%s': %s, %.1fh total.\n",
				updated.Name, updated.Status, updated.TimeSpent)
			if topic, found := session.Topics.ByID(updated.TopicID); found {
				fmt.Printf("📚 '%s' is now at %d%%.\n", topic.Name, topic.Progress)
			}
			return nil
		},
	}
}

func learnDeleteTopicCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete-topic",
		Usage:     "Delete a topic and all of its concepts",
		ArgsUsage: "[topic-id]",
		Action: func(c *cli.Context) error {
			topic, session, err := resolveTopic(c)
			if err != nil {
				return err
			}
			if err := session.FetchConcepts(); err != nil {
				return err
			}

			if err := session.DeleteTopic(topic.ID); err != nil {
				fmt.Printf("Error deleting topic: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Topic %s and its concepts deleted.\n", shortID(topic.ID))
			return nil
		},
	}
}

func learnDeleteConceptCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete-concept",
		Usage:     "Delete a concept; the topic's progress recalculates",
		ArgsUsage: "[concept-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("concept id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTopics(); err != nil {
				return err
			}
			if err := session.FetchConcepts(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.Concepts))
			if err != nil {
				return err
			}

			if err := session.DeleteConcept(id); err != nil {
				fmt.Printf("Error deleting concept: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Concept %s deleted.\n", shortID(id))
			return nil
		},
	}
}

func resolveTopic(c *cli.Context) (models.LearningTopic, *store.Session, error) {
	if c.NArg() == 0 {
		return models.LearningTopic{}, nil, fmt.Errorf("topic id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.LearningTopic{}, nil, err
	}
	if err := session.FetchTopics(); err != nil {
		return models.LearningTopic{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Topics))
	if err != nil {
		return models.LearningTopic{}, nil, err
	}
	topic, found := session.Topics.ByID(id)
	if !found {
		return models.LearningTopic{}, nil, fmt.Errorf("topic %s not found", c.Args().First())
	}
	return topic, session, nil
}

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// NewTagCommand creates all subcommands for the 'tag' command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "Manage tags and tag attachments",
		Subcommands: []*cli.Command{
			tagListCmd(),
			tagCreateCmd(),
			tagAttachCmd(),
			tagDetachCmd(),
			tagDeleteCmd(),
		},
	}
}

func tagListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tags with attachment counts",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTags(); err != nil {
				fmt.Printf("Error listing tags: %v\n", err)
				return err
			}
			_ = session.FetchTagLinks()

			tags := session.Tags.Items()
			if len(tags) == 0 {
				fmt.Println("No tags found. Use 'lifedeck tag create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLOR\tUSED")
			fmt.Fprintln(w, "--\t----\t-----\t----")
			for _, t := range tags {
				tagID := t.ID
				used := len(session.TagLinks.Find(func(l models.TagLink) bool {
					return l.TagID == tagID
				}))
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					shortID(t.ID), t.Name, t.Color, used)
			}
			w.Flush()
			return nil
		},
	}
}

func tagCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new tag",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "color", Usage: "Tag color (hex or name)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag name is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			tag, err := session.CreateTag(models.TagInput{
				Name:  c.Args().First(),
				Color: c.String("color"),
			})
			if err != nil {
				fmt.Printf("Error creating tag: %v\n", err)
				return err
			}

			fmt.Printf("🏷️  Tag '%s' created (ID: %s).\n", tag.Name, shortID(tag.ID))
			return nil
		},
	}
}

func tagAttachCmd() *cli.Command {
	return &cli.Command{
		Name:      "attach",
		Usage:     "Attach a tag to a note, project, task or goal",
		ArgsUsage: "[tag-id] [note|project|task|goal] [owner-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return fmt.Errorf("usage: lifedeck tag attach <tag-id> <kind> <owner-id>")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTags(); err != nil {
				return err
			}

			tagID, err := matchID(c.Args().Get(0), storeIDs(session.Tags))
			if err != nil {
				return err
			}

			kind := strings.ToLower(c.Args().Get(1))
			var ownerID uuid.UUID
			switch kind {
			case models.TagKindNote:
				if err := session.FetchNotes(); err != nil {
					return err
				}
				ownerID, err = matchID(c.Args().Get(2), storeIDs(session.Notes))
			case models.TagKindProject:
				if err := session.FetchProjects(); err != nil {
					return err
				}
				ownerID, err = matchID(c.Args().Get(2), storeIDs(session.Projects))
			case models.TagKindTask:
				if err := session.FetchTasks(); err != nil {
					return err
				}
				ownerID, err = matchID(c.Args().Get(2), storeIDs(session.Tasks))
			case models.TagKindGoal:
				if err := session.FetchGoals(); err != nil {
					return err
				}
				ownerID, err = matchID(c.Args().Get(2), storeIDs(session.Goals))
			default:
				return fmt.Errorf("unknown kind %q, want note, project, task or goal", kind)
			}
			if err != nil {
				return err
			}

			link, err := session.AttachTag(models.TagLinkInput{
				TagID:   tagID,
				OwnerID: ownerID,
				Kind:    kind,
			})
			if err != nil {
				fmt.Printf("Error attaching tag: %v\n", err)
				return err
			}

			fmt.Printf("🏷️  Tag attached to %s %s (link %s).\n",
				kind, shortID(ownerID), shortID(link.ID))
			return nil
		},
	}
}

func tagDetachCmd() *cli.Command {
	return &cli.Command{
		Name:      "detach",
		Usage:     "Remove a single tag attachment",
		ArgsUsage: "[link-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("link id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTagLinks(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.TagLinks))
			if err != nil {
				return err
			}

			if err := session.DetachTag(id); err != nil {
				fmt.Printf("Error detaching tag: %v\n", err)
				return err
			}

			fmt.Printf("Tag link %s removed.\n", shortID(id))
			return nil
		},
	}
}

func tagDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a tag and all of its attachments",
		ArgsUsage: "[tag-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchTags(); err != nil {
				return err
			}
			if err := session.FetchTagLinks(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.Tags))
			if err != nil {
				return err
			}

			if err := session.DeleteTag(id); err != nil {
				fmt.Printf("Error deleting tag: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Tag %s and its attachments deleted.\n", shortID(id))
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/crypto"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// NewNoteCommand creates all subcommands for the 'note' command group.
func NewNoteCommand() *cli.Command {
	return &cli.Command{
		Name:    "note",
		Aliases: []string{"n"},
		Usage:   "Manage notes and reflections",
		Subcommands: []*cli.Command{
			noteListCmd(),
			noteCreateCmd(),
			noteViewCmd(),
			noteCopyCmd(),
			notePinCmd(),
			noteDeleteCmd(),
		},
	}
}

func noteListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by type (GENERAL, JOURNAL, IDEA, REFERENCE, REFLECTION)",
			},
			&cli.BoolFlag{Name: "archived", Usage: "Include archived notes"},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchNotes(); err != nil {
				fmt.Printf("Error listing notes: %v\n", err)
				return err
			}

			noteType := strings.ToUpper(c.String("type"))
			includeArchived := c.Bool("archived")
			notes := session.Notes.Find(func(n models.Note) bool {
				if noteType != "" && n.Type != noteType {
					return false
				}
				return includeArchived || !n.IsArchived
			})

			if len(notes) == 0 {
				fmt.Println("No notes found. Use 'lifedeck note create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tTITLE\tCREATED")
			fmt.Fprintln(w, "--\t----\t-----\t-------")
			for _, n := range notes {
				title := n.Title
				if n.IsPinned {
					title = "📌 " + title
				}
				if crypto.IsFramed(n.Content) {
					title = "🔒 " + title
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					shortID(n.ID), n.Type,
					truncateString(title, 44),
					n.CreatedAt.Format("2006-01-02"))
			}
			w.Flush()
			return nil
		},
	}
}

func noteCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new note",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "content",
				Aliases: []string{"c"},
				Usage:   "Note content (markdown)",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Note type (GENERAL, JOURNAL, IDEA, REFERENCE, REFLECTION)",
				Value:   "GENERAL",
			},
			&cli.BoolFlag{
				Name:  "today",
				Usage: "Attach the note to today's day entry",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("note title is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			content := c.String("content")
			noteType := strings.ToUpper(c.String("type"))

			// reflections are encrypted client-side when the vault is open
			if noteType == string(models.NoteTypeReflection) && content != "" {
				crypto.RestoreSession()
				encrypted, nonce, isEncrypted, err := crypto.EncryptContent(content)
				if err != nil {
					return fmt.Errorf("failed to encrypt reflection: %w", err)
				}
				if isEncrypted {
					content = crypto.FrameContent(encrypted, nonce)
				} else {
					fmt.Println("⚠️  Vault is locked; storing reflection unencrypted. Run 'lifedeck vault unlock' first to encrypt.")
				}
			}

			input := models.NoteInput{
				Title:   strings.Join(c.Args().Slice(), " "),
				Content: content,
				Type:    noteType,
			}
			if c.Bool("today") {
				if err := session.FetchDays(); err != nil {
					return err
				}
				day, err := session.GetOrCreateDay(session.Now())
				if err != nil {
					return err
				}
				input.DayID = &day.ID
			}

			note, err := session.CreateNote(input)
			if err != nil {
				fmt.Printf("Error creating note: %v\n", err)
				return err
			}

			fmt.Printf("📝 Note '%s' created!\n", note.Title)
			fmt.Printf("ID: %s\n", note.ID.String())
			return nil
		},
	}
}

func noteViewCmd() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Aliases:   []string{"show"},
		Usage:     "Render a note in the terminal",
		ArgsUsage: "[note-id]",
		Action: func(c *cli.Context) error {
			note, _, err := resolveNote(c)
			if err != nil {
				return err
			}

			if crypto.IsFramed(note.Content) {
				crypto.RestoreSession()
			}
			content, err := crypto.RevealContent(note.Content)
			if err != nil {
				return err
			}

			rendered, err := glamour.Render("# "+note.Title+"\n\n"+content, "dark")
			if err != nil {
				// fall back to plain text if the renderer chokes
				fmt.Printf("%s\n\n%s\n", note.Title, content)
				return nil
			}
			fmt.Print(rendered)
			return nil
		},
	}
}

func noteCopyCmd() *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a note's content to the clipboard",
		ArgsUsage: "[note-id]",
		Action: func(c *cli.Context) error {
			note, _, err := resolveNote(c)
			if err != nil {
				return err
			}

			if crypto.IsFramed(note.Content) {
				crypto.RestoreSession()
			}
			content, err := crypto.RevealContent(note.Content)
			if err != nil {
				return err
			}
			if err := clipboard.WriteAll(content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			fmt.Printf("📋 Note '%s' copied to clipboard.\n", note.Title)
			return nil
		},
	}
}

func notePinCmd() *cli.Command {
	return &cli.Command{
		Name:      "pin",
		Usage:     "Pin or unpin a note",
		ArgsUsage: "[note-id]",
		Action: func(c *cli.Context) error {
			note, session, err := resolveNote(c)
			if err != nil {
				return err
			}

			updated, err := session.UpdateNote(note.ID, map[string]interface{}{
				"is_pinned": !note.IsPinned,
			})
			if err != nil {
				fmt.Printf("Error updating note: %v\n", err)
				return err
			}

			if updated.IsPinned {
				fmt.Printf("📌 Note '%s' pinned.\n", updated.Title)
			} else {
				fmt.Printf("Note '%s' unpinned.\n", updated.Title)
			}
			return nil
		},
	}
}

func noteDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a note",
		ArgsUsage: "[note-id]",
		Action: func(c *cli.Context) error {
			note, session, err := resolveNote(c)
			if err != nil {
				return err
			}

			if err := session.DeleteNote(note.ID); err != nil {
				fmt.Printf("Error deleting note: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Note %s deleted.\n", shortID(note.ID))
			return nil
		},
	}
}

func resolveNote(c *cli.Context) (models.Note, *store.Session, error) {
	if c.NArg() == 0 {
		return models.Note{}, nil, fmt.Errorf("note id is required")
	}
	session, err := newSession()
	if err != nil {
		return models.Note{}, nil, err
	}
	if err := session.FetchNotes(); err != nil {
		return models.Note{}, nil, err
	}
	id, err := matchID(c.Args().First(), storeIDs(session.Notes))
	if err != nil {
		return models.Note{}, nil, err
	}
	note, found := session.Notes.ByID(id)
	if !found {
		return models.Note{}, nil, fmt.Errorf("note %s not found", c.Args().First())
	}
	return note, session, nil
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// NewCategoryCommand creates all subcommands for the 'category' command group.
func NewCategoryCommand() *cli.Command {
	return &cli.Command{
		Name:    "category",
		Aliases: []string{"cat"},
		Usage:   "Manage categories",
		Subcommands: []*cli.Command{
			categoryListCmd(),
			categoryCreateCmd(),
			categoryUpdateCmd(),
			categoryDeleteCmd(),
		},
	}
}

func categoryListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all categories",
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchCategories(); err != nil {
				fmt.Printf("Error listing categories: %v\n", err)
				return err
			}

			categories := session.Categories.Items()
			if len(categories) == 0 {
				fmt.Println("No categories found. Use 'lifedeck category create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLOR")
			fmt.Fprintln(w, "--\t----\t-----")
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(cat.ID), cat.Name, cat.Color)
			}
			w.Flush()
			return nil
		},
	}
}

func categoryCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"add"},
		Usage:     "Create a new category",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "color", Usage: "Category color (hex or name)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("category name is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}

			category, err := session.CreateCategory(models.CategoryInput{
				Name:  c.Args().First(),
				Color: c.String("color"),
			})
			if err != nil {
				fmt.Printf("Error creating category: %v\n", err)
				return err
			}

			fmt.Printf("📂 Category '%s' created (ID: %s).\n", category.Name, shortID(category.ID))
			return nil
		},
	}
}

func categoryUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Rename or recolor a category",
		ArgsUsage: "[category-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
			&cli.StringFlag{Name: "color", Usage: "New color"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("category id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchCategories(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.Categories))
			if err != nil {
				return err
			}

			patch := make(map[string]interface{})
			if name := c.String("name"); name != "" {
				patch["name"] = name
			}
			if color := c.String("color"); color != "" {
				patch["color"] = color
			}
			if len(patch) == 0 {
				fmt.Println("No update fields provided.")
				return nil
			}

			updated, err := session.UpdateCategory(id, patch)
			if err != nil {
				fmt.Printf("Error updating category: %v\n", err)
				return err
			}

			fmt.Printf("✅ Category '%s' updated.\n", updated.Name)
			return nil
		},
	}
}

func categoryDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a category; entities keep living, their category is cleared",
		ArgsUsage: "[category-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("category id is required")
			}
			session, err := newSession()
			if err != nil {
				return err
			}
			if err := session.FetchCategories(); err != nil {
				return err
			}
			id, err := matchID(c.Args().First(), storeIDs(session.Categories))
			if err != nil {
				return err
			}

			if err := session.DeleteCategory(id); err != nil {
				fmt.Printf("Error deleting category: %v\n", err)
				return err
			}

			fmt.Printf("🗑️  Category %s deleted; references cleared.\n", shortID(id))
			return nil
		},
	}
}

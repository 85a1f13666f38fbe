package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/nameutil"
	"github.com/nlpkit/nespan/internal/registry"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags for documents",
	Long:  "Manage tags for documents: add, remove, list",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <doc-name> <tag>",
	Short: "Add a tag to a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		tag := args[1]
		if err := nameutil.ValidateTag(tag); err != nil {
			return err
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		d, err := r.GetDocumentByName(name)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("document not found: %s", name)
		}
		if err := r.AddTagToDocument(d.ID, tag); err != nil {
			return err
		}
		fmt.Printf("added tag '%s' to '%s'\n", tag, name)
		return nil
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <doc-name> <tag>",
	Short: "Remove a tag from a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		tag := args[1]

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		d, err := r.GetDocumentByName(name)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("document not found: %s", name)
		}
		if err := r.RemoveTagFromDocument(d.ID, tag); err != nil {
			return err
		}
		fmt.Printf("removed tag '%s' from '%s'\n", tag, name)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list <doc-name>",
	Short: "List tags for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		d, err := r.GetDocumentByName(name)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("document not found: %s", name)
		}
		tags, err := r.ListTagsForDocument(d.ID)
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("- %s\n", t)
		}
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}

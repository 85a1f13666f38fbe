package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
	"github.com/nlpkit/nespan/internal/tokenize"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show details for a document",
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
		fmt.Printf("Name: %s\n", d.Name)
		if d.UID.Valid {
			fmt.Printf("UID: %s\n", d.UID.String)
		}
		if d.Description.Valid {
			fmt.Printf("Description: %s\n", d.Description.String)
		}
		if d.Language.Valid {
			fmt.Printf("Language: %s\n", d.Language.String)
		}
		if d.AuthorName.Valid {
			author := d.AuthorName.String
			if d.AuthorEmail.Valid {
				author += " <" + d.AuthorEmail.String + ">"
			}
			fmt.Printf("Author: %s\n", author)
		}
		fmt.Printf("Created: %s\n", d.CreatedAt)
		if d.LastAnnotated.Valid {
			fmt.Printf("Last annotated: %s\n", relativeTime(d.LastAnnotated.String))
		}
		fmt.Printf("Words: %d\n", tokenize.CountWords(d.Text))
		if len(d.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(d.Tags, ", "))
		}
		fmt.Println("Spans:")
		doc := span.NewDoc(d.Text)
		for _, s := range d.Spans {
			label := ""
			if s.Label.Valid {
				label = s.Label.String
			}
			sub, err := doc.Subspan(s.Start, s.End, label)
			if err != nil {
				// stored offsets should always fit; surface rather than skip
				return fmt.Errorf("span %d: %w", s.Position, err)
			}
			fmt.Printf("%d: %s\n", s.Position, sub)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

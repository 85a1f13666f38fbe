package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/tokenize"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved documents",
	Long:  "List saved documents. Example:\n  nespan list --tag mishnah",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		// check flags
		tagFilter, _ := cmd.Flags().GetString("tag")
		textFilter, _ := cmd.Flags().GetString("filter")
		fuzzyFlag, _ := cmd.Flags().GetBool("fuzzy")
		var docs []registry.Document
		if tagFilter != "" {
			docs, err = r.ListDocumentsByTag(tagFilter)
			if err != nil {
				return err
			}
		} else if textFilter != "" {
			if fuzzyFlag {
				docs, err = r.FuzzySearchDocuments(textFilter)
				if err != nil {
					return err
				}
			} else {
				docs, err = r.SearchDocuments(textFilter)
				if err != nil {
					return err
				}
			}
		} else {
			docs, err = r.ListDocuments()
			if err != nil {
				return err
			}
		}

		for _, d := range docs {
			fmt.Printf("- %s (%d words, created %s)\n", d.Name, tokenize.CountWords(d.Text), relativeTime(d.CreatedAt))
		}
		return nil
	},
}

// relativeTime renders a SQLite CURRENT_TIMESTAMP value as a human-friendly
// relative time, falling back to the raw string if it does not parse.
func relativeTime(ts string) string {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		return ts
	}
	return humanize.Time(t)
}

func init() {
	listCmd.Flags().String("tag", "", "Filter by tag name")
	listCmd.Flags().String("filter", "", "Filter by text search")
	listCmd.Flags().Bool("fuzzy", false, "Enable fuzzy matching for text filter")
	rootCmd.AddCommand(listCmd)
}

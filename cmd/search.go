package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents by name, description, text, or span label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		fuzzyFlag, _ := cmd.Flags().GetBool("fuzzy")

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		var docs []registry.Document
		if fuzzyFlag {
			docs, err = r.FuzzySearchDocuments(query)
		} else {
			docs, err = r.SearchDocuments(query)
		}
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, d := range docs {
			desc := ""
			if d.Description.Valid {
				desc = " - " + d.Description.String
			}
			fmt.Printf("- %s%s\n", d.Name, desc)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("fuzzy", false, "Enable fuzzy matching")
	rootCmd.AddCommand(searchCmd)
}

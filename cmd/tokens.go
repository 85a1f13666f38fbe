package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/tokenize"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <doc-name>",
	Short: "Show word tokens of a document with their rune offsets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		countOnly, _ := cmd.Flags().GetBool("count")

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
		ws := tokenize.WordSpans(d.Text)
		if countOnly {
			fmt.Printf("%d\n", len(ws))
			return nil
		}
		runes := []rune(d.Text)
		for i, w := range ws {
			fmt.Printf("%d\t[%d,%d)\t%s\n", i, w.Start, w.End, string(runes[w.Start:w.End]))
		}
		return nil
	},
}

func init() {
	tokensCmd.Flags().Bool("count", false, "Print only the word count")
	rootCmd.AddCommand(tokensCmd)
}

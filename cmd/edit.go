package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/ingest"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/utils"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a document's text",
	Long: `Edit a document's text. With --file the new text is read from the given
file; without it the current text is opened in $EDITOR. Spans that no longer
fit inside the new text are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		file, _ := cmd.Flags().GetString("file")

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

		// Non-interactive: replace text from a file
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open text file: %w", err)
			}
			text, err := ingest.ReadText(f)
			_ = f.Close()
			if err != nil {
				return err
			}
			text = strings.TrimRight(text, "\n")
			if err := r.ReplaceText(d.ID, text); err != nil {
				return err
			}
			fmt.Printf("updated text of '%s'\n", name)
			return nil
		}

		// Interactive: write text to temp file and open editor
		tmpf, err := os.CreateTemp("", "nespan-edit-*.txt")
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(tmpf.Name()) }()

		if _, err := tmpf.WriteString(d.Text); err != nil {
			_ = tmpf.Close()
			return err
		}
		if err := tmpf.Close(); err != nil {
			return err
		}

		if err := utils.OpenEditor(tmpf.Name()); err != nil {
			return err
		}

		f, err := os.Open(tmpf.Name())
		if err != nil {
			return err
		}
		text, err := ingest.ReadText(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		text = strings.TrimRight(text, "\n")
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("edited text is empty; not saving")
		}
		if err := r.ReplaceText(d.ID, text); err != nil {
			return err
		}
		fmt.Printf("updated text of '%s'\n", name)
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("file", "f", "", "Replace text non-interactively from this file")
	rootCmd.AddCommand(editCmd)
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/config"
	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/ingest"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
	"github.com/nlpkit/nespan/internal/user"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a named document",
	Long: `Save a named document. Text is read from --file when given, otherwise
from stdin. Initial spans can be loaded from a span file with lines of the
form '<start> <end> [label]' where offsets count runes. Examples:
  nespan save berakhot-2a -f page.txt -d 'first page' -l he
  echo 'some text' | nespan save snippet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		desc, _ := cmd.Flags().GetString("description")
		file, _ := cmd.Flags().GetString("file")
		spansFile, _ := cmd.Flags().GetString("spans")
		lang, _ := cmd.Flags().GetString("language")

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		// determine author (flag overrides stored whoami)
		authorFlag, _ := cmd.Flags().GetString("author")
		authorEmailFlag, _ := cmd.Flags().GetString("author-email")
		var authorNamePtr *string
		var authorEmailPtr *string
		if authorFlag != "" {
			authorNamePtr = &authorFlag
			if authorEmailFlag != "" {
				authorEmailPtr = &authorEmailFlag
			}
		} else {
			if p, ok, _ := user.GetProfile(); ok {
				if p.Name != "" {
					authorNamePtr = &p.Name
				}
				if p.Email != "" {
					authorEmailPtr = &p.Email
				}
			}
		}
		if lang == "" {
			cfg, err := config.LoadSettings()
			if err != nil {
				return err
			}
			lang = cfg.DefaultLanguage
		}

		var text string
		textFromStdin := file == ""
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open text file: %w", err)
			}
			text, err = ingest.ReadText(f)
			_ = f.Close()
			if err != nil {
				return err
			}
		} else {
			text, err = ingest.ReadText(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}
		text = strings.TrimRight(text, "\n")
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("document text cannot be empty")
		}

		var recs []span.Record
		if spansFile != "" {
			f, err := os.Open(spansFile)
			if err != nil {
				return fmt.Errorf("open span file: %w", err)
			}
			recs, err = ingest.ReadSpanLines(f)
			_ = f.Close()
			if err != nil {
				return err
			}
		}

		// Interactive duplicate name check. When the text itself was read
		// from stdin the stream is already exhausted, so there is nothing
		// left to prompt against.
		rdr := bufio.NewReader(cmd.InOrStdin())
		for {
			existing, err := r.GetDocumentByName(name)
			if err != nil {
				return err
			}
			if existing == nil {
				break
			}
			if textFromStdin {
				return fmt.Errorf("name '%s' already exists", name)
			}
			cmd.Printf("name '%s' already exists; enter a new name: ", name)
			newNameRaw, err := rdr.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read new name: %w", err)
			}
			newName := strings.TrimSpace(newNameRaw)
			if newName == "" {
				cmd.Println("name cannot be empty")
				name = ""
				continue
			}
			name = newName
		}

		var descPtr *string
		if desc != "" {
			descPtr = &desc
		}
		var langPtr *string
		if lang != "" {
			langPtr = &lang
		}
		if _, err := ingest.SaveIngested(r, name, descPtr, langPtr, authorNamePtr, authorEmailPtr, text, recs); err != nil {
			return err
		}

		fmt.Printf("saved '%s' with %d spans\n", name, len(recs))
		return nil
	},
}

func init() {
	saveCmd.Flags().StringP("description", "d", "", "Description for the document")
	saveCmd.Flags().StringP("file", "f", "", "Read document text from this file instead of stdin")
	saveCmd.Flags().String("spans", "", "Load initial spans from a '<start> <end> [label]' file")
	saveCmd.Flags().StringP("language", "l", "", "Language code (defaults to the configured default language)")
	saveCmd.Flags().StringP("author", "a", "", "Author name for this document (overrides stored whoami)")
	saveCmd.Flags().StringP("author-email", "e", "", "Author email for this document (optional)")
	rootCmd.AddCommand(saveCmd)
}

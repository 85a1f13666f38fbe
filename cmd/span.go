package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

var spanCmd = &cobra.Command{
	Use:   "span",
	Short: "Manage spans of a document",
	Long:  "Manage spans of a document: add, remove, list. Offsets count runes, not bytes.",
}

var spanAddCmd = &cobra.Command{
	Use:   "add <doc-name> <start> <end> [label]",
	Short: "Add a span to a document",
	Long: `Add a span to a document. By default <start> and <end> are rune offsets
into the document text; with --words they are word indexes and the span
covers words [start, end). Examples:
  nespan span add berakhot-2a 0 5 title
  nespan span add berakhot-2a 2 4 number --words`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		start, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad start offset %q", args[1])
		}
		end, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad end offset %q", args[2])
		}
		label := ""
		if len(args) == 4 {
			label = args[3]
		}
		byWords, _ := cmd.Flags().GetBool("words")
		anyLabel, _ := cmd.Flags().GetBool("any-label")
		if label != "" && !anyLabel && !span.KnownLabel(label) {
			return fmt.Errorf("unknown label %q (use --any-label to store it anyway; known labels: %s)", label, strings.Join(span.Labels(), ", "))
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

		doc := span.NewDoc(d.Text)
		var sub *span.Span
		if byWords {
			sub, err = doc.SubspanByWords(start, end)
			if err != nil {
				return err
			}
			if label != "" {
				s0, e0 := sub.Range()
				sub, err = doc.Subspan(s0, e0, label)
				if err != nil {
					return err
				}
			}
		} else {
			sub, err = doc.Subspan(start, end, label)
			if err != nil {
				return err
			}
		}

		if _, err := r.AddSpan(d.ID, sub.Serialize(false)); err != nil {
			return err
		}
		fmt.Printf("added %s to '%s'\n", sub, name)
		return nil
	},
}

var spanRemoveCmd = &cobra.Command{
	Use:   "remove <doc-name> <position>",
	Short: "Remove a span from a document by position",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad position %q", args[1])
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
		if err := r.RemoveSpan(d.ID, pos); err != nil {
			return err
		}
		fmt.Printf("removed span %d from '%s'\n", pos, name)
		return nil
	},
}

var spanListCmd = &cobra.Command{
	Use:   "list <doc-name>",
	Short: "List spans of a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one document name")
		}
		name := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")

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
		doc := span.NewDoc(d.Text)
		for _, s := range d.Spans {
			label := ""
			if s.Label.Valid {
				label = s.Label.String
			}
			sub, err := doc.Subspan(s.Start, s.End, label)
			if err != nil {
				return fmt.Errorf("span %d: %w", s.Position, err)
			}
			if asJSON {
				b, err := json.Marshal(sub.Serialize(true))
				if err != nil {
					return err
				}
				fmt.Printf("%d: %s\n", s.Position, b)
			} else {
				fmt.Printf("%d: %s\n", s.Position, sub)
			}
		}
		return nil
	},
}

func init() {
	spanAddCmd.Flags().Bool("words", false, "Interpret offsets as word indexes")
	spanAddCmd.Flags().Bool("any-label", false, "Allow labels outside the known label set")
	spanListCmd.Flags().Bool("json", false, "Print spans as JSON records")
	spanCmd.AddCommand(spanAddCmd)
	spanCmd.AddCommand(spanRemoveCmd)
	spanCmd.AddCommand(spanListCmd)
	rootCmd.AddCommand(spanCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/annotate"
	"github.com/nlpkit/nespan/internal/config"
	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/span"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <doc-name>",
	Short: "Run a rule set over a document and store the matched spans",
	Long: `Run a rule set over a document and replace its stored spans with the
matches. The rule file is TOML with [[rule]] tables carrying 'pattern' and
'label'. Without --rules the configured default rules file is used.
Use --dry-run to print the matches without storing them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		rulesPath, _ := cmd.Flags().GetString("rules")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if rulesPath == "" {
			cfg, err := config.LoadSettings()
			if err != nil {
				return err
			}
			rulesPath = cfg.RulesFile
		}
		if rulesPath == "" {
			return fmt.Errorf("no rules file: pass --rules or set RulesFile in config.toml")
		}
		rules, err := annotate.LoadRules(rulesPath)
		if err != nil {
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

		eng := annotate.New(verbose)
		recs, err := eng.Annotate(cmd.Context(), d.Text, rules)
		if err != nil {
			return err
		}

		if dryRun {
			doc := span.NewDoc(d.Text)
			for i, rec := range recs {
				sub, err := doc.Subspan(rec.Range[0], rec.Range[1], rec.Label)
				if err != nil {
					return err
				}
				fmt.Printf("%d: %s\n", i, sub)
			}
			fmt.Printf("dry run: %d spans not stored\n", len(recs))
			return nil
		}

		if err := r.ReplaceSpans(d.ID, recs, "annotate"); err != nil {
			return err
		}
		fmt.Printf("annotated '%s' with %d spans\n", name, len(recs))
		return nil
	},
}

func init() {
	annotateCmd.Flags().String("rules", "", "Path to a TOML rules file (default from config)")
	annotateCmd.Flags().BoolP("dry-run", "n", false, "Print matches without storing them")
	annotateCmd.Flags().BoolP("verbose", "v", false, "Log each rule as it runs")
	rootCmd.AddCommand(annotateCmd)
}

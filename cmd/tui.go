package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/cmd/tui/ui"
	"github.com/nlpkit/nespan/internal/annotate"
	"github.com/nlpkit/nespan/internal/config"
	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/registry"
	"github.com/nlpkit/nespan/internal/tui/adapters"
	modelpkg "github.com/nlpkit/nespan/internal/tui/model"
)

var tuiRulesFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start interactive Terminal UI",
	RunE: func(_ *cobra.Command, _ []string) error {
		// Init DB
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		ctx := context.Background()

		r := registry.NewRepository(dbConn)
		regAdapter := adapters.NewRegistryAdapter(r)

		// Annotation rules come from --rules or the settings file. With
		// neither set the annotator runs with an empty rule set and the
		// `a` key simply produces no matches.
		rulesPath := tuiRulesFile
		if rulesPath == "" {
			if settings, err := config.LoadSettings(); err == nil {
				rulesPath = settings.RulesFile
			}
		}
		rules := &annotate.RuleSet{}
		if rulesPath != "" {
			rules, err = annotate.LoadRules(rulesPath)
			if err != nil {
				return err
			}
		}
		annAdapter := adapters.NewAnnotatorAdapter(annotate.New(false), rules)

		impExpAdapter := adapters.NewImportExportAdapter(dbConn)
		installer := adapters.NewInstallerAdapter()

		uiModel := modelpkg.New(regAdapter, annAdapter, impExpAdapter, installer)
		if err := uiModel.RefreshList(ctx); err != nil {
			return err
		}

		p := ui.NewProgram(uiModel)
		_, err = p.Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiRulesFile, "rules", "", "annotation rules file used by the in-UI annotate action")
	rootCmd.AddCommand(tuiCmd)
}

// The Bubble Tea UI lives in `cmd/tui/ui` to keep UI implementation and
// tests centralized. See that package for the list, detail, annotate
// stream, and versions views.

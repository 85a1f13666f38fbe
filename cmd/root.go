package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nespan",
	Short: "nespan is a SQLite-backed registry for named-entity span annotations",
	Long:  "nespan stores text documents with rune-addressed entity spans and annotates them with regex rule sets",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nespan: run 'nespan --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

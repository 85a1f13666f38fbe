package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a database file or exported documents into the active environment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Interactive mode: prompt for type and options when invoked without subcommands
		rdr := bufio.NewReader(cmd.InOrStdin())
		cmd.Println("Select import type:\n  1) db\n  2) doc")
		cmd.Print("Enter choice [1/2]: ")
		choiceRaw, err := rdr.ReadString('\n')
		if err != nil {
			return err
		}
		choice := strings.TrimSpace(choiceRaw)
		switch choice {
		case "1":
			cmd.Print("Path to source DB file: ")
			srcRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			src := strings.TrimSpace(srcRaw)
			if src == "" {
				return fmt.Errorf("source path cannot be empty")
			}
			cmd.Print("Overwrite destination DB if it exists? [y/N]: ")
			overRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			over := strings.ToLower(strings.TrimSpace(overRaw))
			overwrite := over == "y" || over == "yes"
			if err := importer.ImportDatabase(src, overwrite); err != nil {
				return err
			}
			cmd.Printf("imported database from %s\n", src)
			return nil
		case "2":
			cmd.Print("Path to exported document file: ")
			srcRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			src := strings.TrimSpace(srcRaw)
			if src == "" {
				return fmt.Errorf("source path cannot be empty")
			}
			// Ensure destination DB exists and close to avoid file locks
			dbConn, err := db.InitDB()
			if err != nil {
				return err
			}
			_ = dbConn.Close()
			if err := importer.ImportDocuments(src); err != nil {
				return err
			}
			cmd.Printf("imported document(s) from %s\n", src)
			return nil
		default:
			return fmt.Errorf("invalid choice: %s", choice)
		}
	},
}

var importDbCmd = &cobra.Command{
	Use:   "db <file> [--overwrite]",
	Short: "Import an entire DB file as the active database (dangerous)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		// validate file exists
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("source DB not found: %w", err)
		}
		if err := importer.ImportDatabase(src, overwrite); err != nil {
			return err
		}
		fmt.Printf("imported database from %s\n", src)
		return nil
	},
}

var importDocCmd = &cobra.Command{
	Use:   "doc <file>",
	Short: "Import an exported document file into the active DB (name collisions are suffixed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("source file not found: %w", err)
		}
		// Ensure destination DB exists and close the connection immediately to avoid file locks
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		_ = dbConn.Close()
		if err := importer.ImportDocuments(src); err != nil {
			return err
		}
		fmt.Printf("imported document(s) from %s\n", src)
		return nil
	},
}

func init() {
	importDbCmd.Flags().Bool("overwrite", false, "Overwrite the active database file if it exists")
	importCmd.AddCommand(importDbCmd)
	importCmd.AddCommand(importDocCmd)
	rootCmd.AddCommand(importCmd)
}

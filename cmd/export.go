package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/db"
	"github.com/nlpkit/nespan/internal/exporter"
)

// defaultExportDest picks ./nespan-YYYY-MM-DD.db, suffixing -N to avoid
// clobbering an existing file.
func defaultExportDest() string {
	date := time.Now().UTC().Format("2006-01-02")
	dst := filepath.Join(".", fmt.Sprintf("nespan-%s.db", date))
	si := 1
	for {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(".", fmt.Sprintf("nespan-%s-%d.db", date, si))
		si++
	}
	return dst
}

// expandDocDest expands {{name}} and {{date}} placeholders in a destination
// template.
func expandDocDest(tmpl, name string) (string, error) {
	return exporter.ExpandDest(tmpl, map[string]string{
		"name": name,
		"date": time.Now().UTC().Format("2006-01-02"),
	})
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database or single documents to portable files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Interactive mode when invoked without subcommands
		rdr := bufio.NewReader(cmd.InOrStdin())
		cmd.Println("Select export type:\n  1) db\n  2) doc")
		cmd.Print("Enter choice [1/2]: ")
		choiceRaw, err := rdr.ReadString('\n')
		if err != nil {
			return err
		}
		choice := strings.TrimSpace(choiceRaw)
		switch choice {
		case "1":
			cmd.Print("Destination path (leave empty for default): ")
			dstRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			dst := strings.TrimSpace(dstRaw)
			if dst == "" {
				dst = defaultExportDest()
			}
			// ensure DB is reachable
			dbConn, err := db.InitDB()
			if err != nil {
				return err
			}
			_ = dbConn.Close()
			if err := exporter.ExportDatabase(dst); err != nil {
				return err
			}
			cmd.Printf("exported database to %s\n", dst)
			return nil
		case "2":
			cmd.Print("Name of document to export: ")
			nameRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			name := strings.TrimSpace(nameRaw)
			if name == "" {
				return fmt.Errorf("document name cannot be empty")
			}
			cmd.Print("Destination path (supports {{name}} and {{date}}): ")
			dstRaw, err := rdr.ReadString('\n')
			if err != nil {
				return err
			}
			dst := strings.TrimSpace(dstRaw)
			if dst == "" {
				return fmt.Errorf("destination required")
			}
			dst, err = expandDocDest(dst, name)
			if err != nil {
				return err
			}
			dbConn, err := db.InitDB()
			if err != nil {
				return err
			}
			defer func() { _ = dbConn.Close() }()
			if err := exporter.ExportDocument(dbConn, name, dst); err != nil {
				return err
			}
			cmd.Printf("exported document '%s' to %s\n", name, dst)
			return nil
		default:
			return fmt.Errorf("invalid choice: %s", choice)
		}
	},
}

var exportDbCmd = &cobra.Command{
	Use:   "db --dst <path>",
	Short: "Export the active database to a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dst, _ := cmd.Flags().GetString("dst")
		if dst == "" {
			dst = defaultExportDest()
		}
		// ensure DB is reachable before copying the file
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		_ = dbConn.Close()
		if err := exporter.ExportDatabase(dst); err != nil {
			return err
		}
		fmt.Printf("exported database to %s\n", dst)
		return nil
	},
}

var exportDocCmd = &cobra.Command{
	Use:   "doc <name> --dst <path>",
	Short: "Export a single named document to a standalone SQLite file",
	Long: `Export a single named document to a standalone SQLite file. The
destination supports {{name}} and {{date}} placeholders:
  nespan export doc berakhot-2a --dst '{{name}}-{{date}}.db'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dst, _ := cmd.Flags().GetString("dst")
		if dst == "" {
			return fmt.Errorf("--dst is required")
		}
		dst, err := expandDocDest(dst, name)
		if err != nil {
			return err
		}
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		if err := exporter.ExportDocument(dbConn, name, dst); err != nil {
			return err
		}
		fmt.Printf("exported document '%s' to %s\n", name, dst)
		return nil
	},
}

func init() {
	exportDbCmd.Flags().String("dst", "", "Destination file path for exported DB")
	exportDocCmd.Flags().String("dst", "", "Destination file path for exported document (required)")
	exportCmd.AddCommand(exportDbCmd)
	exportCmd.AddCommand(exportDocCmd)
	rootCmd.AddCommand(exportCmd)
}

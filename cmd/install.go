package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/install"
	"github.com/nlpkit/nespan/internal/utils"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the nespan binary to your system or user path",
	Long:  "Install the current nespan binary to a per-user or system path. Use --dry-run to preview actions.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, _ := cmd.Flags().GetBool("user")
		system, _ := cmd.Flags().GetBool("system")
		path, _ := cmd.Flags().GetString("path")
		from, _ := cmd.Flags().GetString("from")
		dry, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")
		addToPath, _ := cmd.Flags().GetBool("add-to-path")

		opts := install.Options{User: user, System: system, Path: path, From: from, DryRun: dry, AddToPath: addToPath}
		actions, target, err := install.PlanInstall(opts)
		if err != nil {
			return err
		}
		fmt.Printf("Planned actions for install to %s:\n", target)
		for _, a := range actions {
			fmt.Printf("- %s\n", a)
		}
		if dry {
			return nil
		}

		// Offer to add the target dir to PATH when it is missing and the
		// flag was not given explicitly.
		targetDir := filepath.Dir(target)
		if !opts.AddToPath && !yes && !install.ContainsPath(os.Getenv("PATH"), targetDir) {
			if system {
				opts.AddToPath = utils.Confirm("Target dir is not on PATH. System PATH modification may require admin privileges. Add it to PATH now?")
			} else {
				opts.AddToPath = utils.Confirm("Target dir is not on PATH. Add it to PATH now?")
			}
		}
		if !yes {
			if !utils.Confirm("Proceed?") {
				fmt.Println("aborted")
				return nil
			}
		}

		if _, err := install.ExecuteInstall(opts); err != nil {
			return err
		}
		fmt.Println("install completed")
		return nil
	},
}

func init() {
	installCmd.Flags().BoolP("user", "u", true, "Install into user-local bin (default)")
	installCmd.Flags().Bool("system", false, "Install system-wide (requires admin)")
	installCmd.Flags().String("path", "", "Custom target directory for the binary")
	installCmd.Flags().String("from", "", "Source binary path (default is the running executable)")
	installCmd.Flags().BoolP("dry-run", "n", false, "Show actions but do not perform them")
	installCmd.Flags().Bool("yes", false, "Assume yes for prompts (use with caution)")
	installCmd.Flags().Bool("add-to-path", false, "Automatically add target dir to PATH")
	rootCmd.AddCommand(installCmd)
}

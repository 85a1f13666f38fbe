package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlpkit/nespan/internal/release"
	"github.com/nlpkit/nespan/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information. With --check <tag> the tag is validated
against the manifest file so a release tag and the manifest version cannot
drift apart:
  nespan version --check v0.3.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checkTag, _ := cmd.Flags().GetString("check")
		if checkTag == "" {
			fmt.Printf("nespan %s\n", version.Version)
			return nil
		}

		manifestPath, _ := cmd.Flags().GetString("manifest")
		m, err := release.ReadManifest(manifestPath)
		if err != nil {
			return err
		}
		if err := m.CheckTag(checkTag); err != nil {
			return err
		}
		org, _ := cmd.Flags().GetString("org")
		repo, _ := cmd.Flags().GetString("repo")
		url, err := release.InstallURL(org, repo, checkTag)
		if err != nil {
			return err
		}
		fmt.Printf("tag %s matches manifest %s\n", checkTag, manifestPath)
		fmt.Printf("install URL: %s\n", url)
		return nil
	},
}

func init() {
	versionCmd.Flags().String("check", "", "Validate a release tag against the manifest")
	versionCmd.Flags().String("manifest", "nespan.toml", "Path to the release manifest")
	versionCmd.Flags().String("org", "nlpkit", "GitHub org for the install URL")
	versionCmd.Flags().String("repo", "nespan", "GitHub repo for the install URL")
	rootCmd.AddCommand(versionCmd)
}

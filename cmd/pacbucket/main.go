package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pacbucket/pacbucket/config"
)

var version = "dev"

// cfg is loaded once in the persistent pre-run and shared by all commands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "pacbucket",
	Short:   "Arch package repository served from an S3 bucket",
	Long: `Pacbucket serves an Arch Linux package repository out of an
S3-compatible bucket (Cloudflare R2) with HTTP range support, and keeps the
repository current by checking the AUR for updates and pruning superseded
package versions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = append(configFiles, configFile)
		}

		loaded, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		setupLogging(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: s3, filesystem, memory (env: PACBUCKET_STORAGE_BACKEND)")
	rootCmd.PersistentFlags().String("storage-path", "", "filesystem backend directory (env: PACBUCKET_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("prefix", "", "key prefix package objects live under (env: PACBUCKET_REPO_PREFIX)")
	rootCmd.PersistentFlags().String("packages-file", "", "tracked-package YAML file (env: PACBUCKET_REPO_PACKAGES_FILE)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

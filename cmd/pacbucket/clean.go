package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pacbucket/pacbucket"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete superseded package versions",
	Long: `Delete every package object that has been superseded by a newer
stored version of the same package, together with its detached signature.
The newest version of each package is always kept.`,
	RunE: runClean,
}

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "report what would be deleted without deleting")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	service := pacbucket.NewService(store, cfg.Repo.Prefix)

	result, err := service.CleanOldVersions(ctx, cleanDryRun)
	if err != nil {
		return err
	}

	for _, key := range result.Deleted {
		if cleanDryRun {
			slog.Info("would delete", "key", key)
		} else {
			slog.Info("deleted", "key", key)
		}
	}

	slog.Info("clean complete", "deleted", len(result.Deleted), "kept", result.Kept, "dry_run", cleanDryRun)
	return nil
}

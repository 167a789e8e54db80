package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pacbucket/pacbucket"
	"github.com/pacbucket/pacbucket/filesystem"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Mirror the repository to a local directory",
	Long: `Download every object under the repository prefix into a local
directory. Build jobs use this to fetch the existing repository before
regenerating the database, skipping the package about to be replaced.`,
	RunE: runPull,
}

var (
	pullDest string
	pullSkip string
)

func init() {
	pullCmd.Flags().StringVar(&pullDest, "dest", "repo", "destination directory")
	pullCmd.Flags().StringVar(&pullSkip, "skip", "", "package name to skip")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	root, err := openRoot(pullDest)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	dst := filesystem.NewStore(root)
	service := pacbucket.NewService(store, cfg.Repo.Prefix)

	slog.Info("pulling repository", "dest", pullDest, "skip", pullSkip)

	written, err := service.Pull(ctx, dst, pacbucket.PullOptions{SkipPackage: pullSkip})
	if err != nil {
		return err
	}

	slog.Info("pull complete", "objects", written)
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacbucket/pacbucket"
	"github.com/pacbucket/pacbucket/aur"
	"github.com/pacbucket/pacbucket/dispatch"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check tracked packages for AUR updates",
	Long: `Compare the AUR version of every tracked package against the
newest version stored in the repository and report the packages that need a
rebuild. With --dispatch, a build workflow is triggered for each of them.`,
	RunE: runCheck,
}

var checkDispatch bool

func init() {
	checkCmd.Flags().BoolVar(&checkDispatch, "dispatch", false, "trigger the build workflow for each update")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tracked, err := pacbucket.LoadPackageList(cfg.Repo.PackagesFile)
	if err != nil {
		return err
	}
	if len(tracked) == 0 {
		slog.Info("no tracked packages", "file", cfg.Repo.PackagesFile)
		return nil
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	service := pacbucket.NewService(store, cfg.Repo.Prefix)

	slog.Info("querying AUR", "packages", len(tracked))
	aurClient := aur.NewClient(
		aur.WithBaseURL(cfg.AUR.BaseURL),
		aur.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.AUR.Timeout) * time.Second}),
	)
	aurVersions, err := aurClient.Versions(ctx, tracked)
	if err != nil {
		return fmt.Errorf("query aur: %w", err)
	}

	storedVersions, err := service.StoredVersions(ctx)
	if err != nil {
		return err
	}

	for _, name := range tracked {
		if _, ok := aurVersions[name]; !ok {
			slog.Warn("package not found in AUR", "package", name)
		}
	}

	updates := pacbucket.FindUpdates(tracked, aurVersions, storedVersions)
	if len(updates) == 0 {
		slog.Info("no updates found, all packages are up to date")
		return nil
	}

	var trigger *dispatch.Client
	if checkDispatch {
		trigger, err = dispatch.NewClient(dispatch.Config{
			Token:      cfg.GitHub.Token,
			Repository: cfg.GitHub.Repository,
			Workflow:   cfg.GitHub.Workflow,
			Ref:        cfg.GitHub.Ref,
		})
		if err != nil {
			return err
		}
	}

	triggered := 0
	for _, update := range updates {
		if update.IsNew() {
			slog.Info("new package", "package", update.Name, "aur_version", update.AURVersion)
		} else {
			slog.Info("update available", "package", update.Name,
				"aur_version", update.AURVersion, "stored_version", update.StoredVersion)
		}

		if trigger == nil {
			continue
		}
		if err := trigger.TriggerBuild(ctx, update.Name); err != nil {
			slog.Error("failed to trigger build", "package", update.Name, "err", err)
			continue
		}
		triggered++
	}

	slog.Info("check complete", "updates", len(updates), "builds_triggered", triggered)
	return nil
}

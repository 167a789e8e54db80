package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Create a config.yaml interactively.

You will be prompted for the storage backend, its connection settings and
the server port. Secrets can be left empty here and supplied through the
PACBUCKET_STORAGE_S3_ACCESS_KEY / PACBUCKET_STORAGE_S3_SECRET_KEY
environment variables instead.`,
	// The config file does not exist yet, so skip the root pre-run.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "config.yaml", "path of the config file to write")
	rootCmd.AddCommand(initCmd)
}

// configFile mirrors the config package layout with yaml tags; only the keys
// init asks about are written.
type configFile struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path,omitempty"`
		S3      struct {
			Endpoint  string `yaml:"endpoint,omitempty"`
			Bucket    string `yaml:"bucket,omitempty"`
			AccessKey string `yaml:"access_key,omitempty"`
			SecretKey string `yaml:"secret_key,omitempty"`
		} `yaml:"s3,omitempty"`
	} `yaml:"storage"`
	Repo struct {
		Prefix       string `yaml:"prefix"`
		PackagesFile string `yaml:"packages_file"`
	} `yaml:"repo"`
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		return fmt.Errorf("config file already exists: %s", initOutput)
	}

	var out configFile

	backendSelect := promptui.Select{
		Label: "Storage backend",
		Items: []string{"s3", "filesystem"},
	}
	_, backend, err := backendSelect.Run()
	if err != nil {
		return err
	}
	out.Storage.Backend = backend

	if backend == "s3" {
		endpoint, err := (&promptui.Prompt{
			Label: "S3 endpoint URL",
			Validate: func(s string) error {
				u, err := url.Parse(strings.TrimSpace(s))
				if err != nil || u.Host == "" {
					return fmt.Errorf("enter a full URL, e.g. https://<account>.r2.cloudflarestorage.com")
				}
				return nil
			},
		}).Run()
		if err != nil {
			return err
		}
		out.Storage.S3.Endpoint = strings.TrimSpace(endpoint)

		bucket, err := (&promptui.Prompt{
			Label: "Bucket name",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("bucket cannot be empty")
				}
				return nil
			},
		}).Run()
		if err != nil {
			return err
		}
		out.Storage.S3.Bucket = strings.TrimSpace(bucket)

		accessKey, err := (&promptui.Prompt{Label: "Access key (empty to use env)"}).Run()
		if err != nil {
			return err
		}
		out.Storage.S3.AccessKey = strings.TrimSpace(accessKey)

		secretKey, err := (&promptui.Prompt{Label: "Secret key (empty to use env)", Mask: '*'}).Run()
		if err != nil {
			return err
		}
		out.Storage.S3.SecretKey = strings.TrimSpace(secretKey)
	} else {
		path, err := (&promptui.Prompt{Label: "Storage directory", Default: "./repo"}).Run()
		if err != nil {
			return err
		}
		out.Storage.Path = strings.TrimSpace(path)
	}

	port, err := (&promptui.Prompt{
		Label:   "Server port",
		Default: "8080",
		Validate: func(s string) error {
			p, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return err
	}
	out.Server.Port, _ = strconv.Atoi(strings.TrimSpace(port))

	prefix, err := (&promptui.Prompt{Label: "Repository key prefix", Default: "repo/"}).Run()
	if err != nil {
		return err
	}
	out.Repo.Prefix = strings.TrimSpace(prefix)

	packagesFile, err := (&promptui.Prompt{Label: "Tracked-package file", Default: "packages.yml"}).Run()
	if err != nil {
		return err
	}
	out.Repo.PackagesFile = strings.TrimSpace(packagesFile)

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// 0600: the file may carry credentials.
	if err := os.WriteFile(initOutput, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("wrote %s\n", initOutput)
	return nil
}

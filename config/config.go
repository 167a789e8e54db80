package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	pbhttp "github.com/pacbucket/pacbucket/http"
)

// Config is the root configuration struct for pacbucket.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Storage StorageConfig     `mapstructure:"storage"`
	Repo    RepoConfig        `mapstructure:"repo"`
	AUR     AURConfig         `mapstructure:"aur"`
	GitHub  GitHubConfig      `mapstructure:"github"`
	CORS    pbhttp.CORSConfig `mapstructure:"cors"`
	Log     LogConfig         `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// StorageConfig selects and configures the object store backend.
type StorageConfig struct {
	Backend string   `mapstructure:"backend" validate:"required,oneof=s3 filesystem memory"`
	Path    string   `mapstructure:"path" validate:"required_if=Backend filesystem"`
	S3      S3Config `mapstructure:"s3"`
}

// S3Config holds connection settings for the s3 backend.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
}

// RepoConfig holds repository layout settings.
type RepoConfig struct {
	Prefix       string `mapstructure:"prefix"`
	PackagesFile string `mapstructure:"packages_file" validate:"required"`
}

// AURConfig holds AUR RPC client settings.
type AURConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Timeout int    `mapstructure:"timeout" validate:"min=1"` // seconds
}

// GitHubConfig holds workflow-dispatch settings. Token and repository stay
// empty unless build dispatching is wanted.
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	Repository string `mapstructure:"repository"`
	Workflow   string `mapstructure:"workflow"`
	Ref        string `mapstructure:"ref"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Env   string `mapstructure:"env" validate:"required,oneof=dev prod"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":          "server.port",
	"backend":       "storage.backend",
	"storage-path":  "storage.path",
	"prefix":        "repo.prefix",
	"packages-file": "repo.packages_file",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("storage.backend", "s3")
	v.SetDefault("storage.path", "./repo")
	v.SetDefault("storage.s3.region", "auto")

	v.SetDefault("repo.prefix", "repo/")
	v.SetDefault("repo.packages_file", "packages.yml")

	v.SetDefault("aur.base_url", "https://aur.archlinux.org")
	v.SetDefault("aur.timeout", 30)

	v.SetDefault("github.workflow", "build.yml")
	v.SetDefault("github.ref", "master")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.env", "dev")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix("PACBUCKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

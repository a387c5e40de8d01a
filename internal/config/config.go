// Package config resolves the application configuration from flags, environment and config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hibare/mongostash/internal/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Actions supported by the orchestrator.
const (
	ActionBackup = "backup"
	ActionUpload = "upload"
	ActionBoth   = "both"
)

// Storage providers.
const (
	ProviderS3      = "s3"
	ProviderMinio   = "minio"
	ProviderGoCloud = "gocloud"
)

// Keys double as the environment variable names once upper-cased.
const (
	KeyMongoURI         = "mongo_uri"
	KeyDBName           = "db_name"
	KeyOutputDir        = "output_dir"
	KeyPageSize         = "page_size"
	KeyStableOrder      = "stable_order"
	KeyAction           = "action"
	KeyCron             = "cron"
	KeyAccessKey        = "aws_access_key"
	KeySecretKey        = "aws_secret_key"
	KeyRegion           = "aws_region"
	KeyBucket           = "s3_bucket"
	KeyEndpoint         = "s3_endpoint"
	KeyProvider         = "storage_provider"
	KeyNotifiersEnabled = "notifiers_enabled"
	KeyDiscordEnabled   = "discord_enabled"
	KeyDiscordWebhook   = "discord_webhook"
	KeyLogLevel         = "log_level"
	KeyLogMode          = "log_mode"
)

var (
	// ErrMissingUploadParams is returned when an upload is requested without credentials or bucket.
	ErrMissingUploadParams = errors.New("for upload or both actions, --aws-access-key, --aws-secret-key, and --s3-bucket are required")

	// ErrInvalidAction is returned for an action outside backup, upload and both.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidProvider is returned for an unknown storage provider.
	ErrInvalidProvider = errors.New("invalid storage provider")
)

// MongoConfig holds the source database settings.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// BackupConfig holds the export and dispatch settings.
type BackupConfig struct {
	OutputDir   string `yaml:"output_dir"`
	PageSize    int64  `yaml:"page_size"`
	StableOrder bool   `yaml:"stable_order"`
	Action      string `yaml:"action"`
	Cron        string `yaml:"cron"`
}

// StorageConfig holds the object storage settings.
type StorageConfig struct {
	Provider  string `yaml:"provider"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DiscordNotifierConfig holds the Discord webhook settings.
type DiscordNotifierConfig struct {
	Enabled bool   `yaml:"enabled"`
	Webhook string `yaml:"webhook"`
}

// NotifiersConfig holds the notifier settings.
type NotifiersConfig struct {
	Enabled bool                  `yaml:"enabled"`
	Discord DiscordNotifierConfig `yaml:"discord"`
}

// LoggerConfig holds the log handler settings.
type LoggerConfig struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
}

// Config is built once at startup and handed to every stage.
type Config struct {
	Mongo     MongoConfig     `yaml:"mongo"`
	Backup    BackupConfig    `yaml:"backup"`
	Storage   StorageConfig   `yaml:"storage"`
	Notifiers NotifiersConfig `yaml:"notifiers"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// RegisterFlags adds every configuration flag to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("mongo-uri", constants.DefaultMongoURI, "MongoDB connection URI (env MONGO_URI)")
	fs.String("db-name", "", "Name of the MongoDB database to backup (env DB_NAME)")
	fs.String("output-dir", constants.DefaultOutputDir, "Directory to store the backup (env OUTPUT_DIR)")
	fs.Int64("page-size", constants.DefaultPageSize, "Documents fetched per round trip (env PAGE_SIZE)")
	fs.Bool("stable-order", false, "Sort by _id while paginating (env STABLE_ORDER)")
	fs.String("action", ActionBoth, "Choose to either 'backup', 'upload' or 'both' (env ACTION)")
	fs.String("cron", constants.DefaultCron, "Cron expression used by the schedule command (env CRON)")
	fs.String("aws-access-key", "", "Storage access key (env AWS_ACCESS_KEY)")
	fs.String("aws-secret-key", "", "Storage secret key (env AWS_SECRET_KEY)")
	fs.String("aws-region", constants.DefaultRegion, "Storage region (env AWS_REGION)")
	fs.String("s3-bucket", "", "Bucket to upload the backup to; a bucket URL for the gocloud provider (env S3_BUCKET)")
	fs.String("s3-endpoint", "", "Custom S3 compatible endpoint (env S3_ENDPOINT)")
	fs.String("storage-provider", ProviderS3, "Storage provider: s3, minio or gocloud (env STORAGE_PROVIDER)")
	fs.Bool("notifiers-enabled", false, "Enable notifications (env NOTIFIERS_ENABLED)")
	fs.Bool("discord-enabled", false, "Enable the Discord notifier (env DISCORD_ENABLED)")
	fs.String("discord-webhook", "", "Discord webhook URL (env DISCORD_WEBHOOK)")
	fs.String("log-level", "info", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	fs.String("log-mode", "text", "Log format: text or json (env LOG_MODE)")
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Load resolves the configuration. Precedence is flag, environment, config file, default.
// When path is empty the default config file is read if it exists.
func Load(fs *pflag.FlagSet, path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	if path == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			path = constants.DefaultConfigFile
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if strings.HasSuffix(path, ".env") {
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Mongo: MongoConfig{
			URI:      v.GetString(KeyMongoURI),
			Database: v.GetString(KeyDBName),
		},
		Backup: BackupConfig{
			OutputDir:   v.GetString(KeyOutputDir),
			PageSize:    v.GetInt64(KeyPageSize),
			StableOrder: v.GetBool(KeyStableOrder),
			Action:      strings.ToLower(v.GetString(KeyAction)),
			Cron:        v.GetString(KeyCron),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(v.GetString(KeyProvider)),
			Bucket:    v.GetString(KeyBucket),
			Region:    v.GetString(KeyRegion),
			Endpoint:  v.GetString(KeyEndpoint),
			AccessKey: v.GetString(KeyAccessKey),
			SecretKey: v.GetString(KeySecretKey),
		},
		Notifiers: NotifiersConfig{
			Enabled: v.GetBool(KeyNotifiersEnabled),
			Discord: DiscordNotifierConfig{
				Enabled: v.GetBool(KeyDiscordEnabled),
				Webhook: v.GetString(KeyDiscordWebhook),
			},
		},
		Logger: LoggerConfig{
			Level: v.GetString(KeyLogLevel),
			Mode:  v.GetString(KeyLogMode),
		},
	}
}

// WantsBackup reports whether the action includes the export stage.
func (c *Config) WantsBackup() bool {
	return c.Backup.Action == ActionBackup || c.Backup.Action == ActionBoth
}

// WantsUpload reports whether the action includes the upload stage.
func (c *Config) WantsUpload() bool {
	return c.Backup.Action == ActionUpload || c.Backup.Action == ActionBoth
}

// Validate checks the configuration before any work starts.
func (c *Config) Validate() error {
	if !slices.Contains([]string{ActionBackup, ActionUpload, ActionBoth}, c.Backup.Action) {
		return fmt.Errorf("%w %q: choose from 'backup', 'upload', 'both'", ErrInvalidAction, c.Backup.Action)
	}

	if c.Backup.PageSize <= 0 {
		return fmt.Errorf("page size must be > 0, got %d", c.Backup.PageSize)
	}

	if !c.WantsUpload() {
		return nil
	}

	switch c.Storage.Provider {
	case ProviderS3, ProviderMinio:
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" || c.Storage.Bucket == "" {
			return ErrMissingUploadParams
		}
	case ProviderGoCloud:
		// gocloud drivers resolve credentials from their own chain
		if c.Storage.Bucket == "" {
			return ErrMissingUploadParams
		}
	default:
		return fmt.Errorf("%w %q", ErrInvalidProvider, c.Storage.Provider)
	}

	return nil
}

// Masked returns a copy with secrets replaced, suitable for printing.
func (c *Config) Masked() Config {
	out := *c
	out.Storage.AccessKey = mask(out.Storage.AccessKey)
	out.Storage.SecretKey = mask(out.Storage.SecretKey)
	out.Notifiers.Discord.Webhook = mask(out.Notifiers.Discord.Webhook)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

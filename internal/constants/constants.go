// Package constants holds program wide identifiers and defaults.
package constants

const (
	// ProgramIdentifier is used as the notifier username and in log lines.
	ProgramIdentifier = "mongostash"

	// DefaultOutputDir is the local directory backups are written to.
	DefaultOutputDir = "mongodb_backup"

	// DefaultPageSize bounds how many documents are fetched per round trip.
	DefaultPageSize = 1000

	// DefaultMongoURI is used when no connection string is configured.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultRegion is the S3 region used when none is configured.
	DefaultRegion = "us-east-1"

	// DefaultCron runs the scheduled backup once a day at 02:00 UTC.
	DefaultCron = "0 2 * * *"

	// DefaultConfigFile is read when present and no config path is given.
	DefaultConfigFile = ".env"

	// BackupFileExt is appended to every collection name.
	BackupFileExt = ".json"
)

// Version is overridden at build time.
var Version = "dev"

package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "sampler"

	// MaxInferenceAttempts caps retries of one inference stage.
	MaxInferenceAttempts = 5
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/sampler by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Captured stills are staged here before upload.
// Returns ~/.cache/sampler by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory for local data such as the SQLite store.
// Returns ~/.local/share/sampler by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/sampler/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/sampler/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath resolves the SQLite database file. Relative paths are
// placed in DataDir.
func (c *Config) SQLitePath() string {
	p := c.SampleStore.SQLitePath
	if filepath.IsAbs(p) || c.HomeDir == "" {
		return p
	}
	return filepath.Join(DataDir(c.HomeDir), p)
}

// ObjectStoreEndpoint returns the configured S3 host or the regional
// default.
func (c *Config) ObjectStoreEndpoint() string {
	if c.ObjectStore.Endpoint != "" {
		return c.ObjectStore.Endpoint
	}
	return "s3." + c.AWS.Region + ".amazonaws.com"
}

// Package config provides configuration management for the sampler.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Camera: command, width, height, warmup
//   - GPS: port, baud_rate, read_timeout, timeout
//   - Area: center and bounds of the study area
//   - AWS: region
//   - ObjectStore: bucket, prefix, endpoint, timeout
//   - SampleStore: backend, table, sqlite_path, timeout
//   - Database: host, port, user, password, database, ssl_mode
//   - Inference: transport, detector/classifier urls and endpoints,
//     timeout, attempts, backoff
//   - Capture: id_strategy, max_id_attempts
//   - Server: port
//   - Broker: url, exchange, routing_key
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Capture.SkipLocation (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SAMPLER_ prefix with underscores for nesting:
//
//	SAMPLER_GPS_PORT=/dev/ttyAMA0
//	SAMPLER_SAMPLE_STORE_BACKEND=sqlite
//	SAMPLER_INFERENCE_DETECTOR_URL=http://10.0.0.5:8080/invocations
//	SAMPLER_LOG_LEVEL=debug
package config

import (
	"time"
)

// Config represents the complete sampler configuration.
type Config struct {
	// Camera contains still-capture settings.
	Camera CameraConfig `mapstructure:"camera" yaml:"camera"`

	// GPS contains serial receiver settings.
	GPS GPSConfig `mapstructure:"gps" yaml:"gps"`

	// Area describes the study area. Its center is the fallback location
	// used when no GPS fix is obtained in time.
	Area AreaConfig `mapstructure:"area" yaml:"area"`

	// AWS contains settings shared by all AWS clients.
	AWS AWSConfig `mapstructure:"aws" yaml:"aws"`

	// ObjectStore contains settings of the raw image bucket.
	ObjectStore ObjectStoreConfig `mapstructure:"object_store" yaml:"object_store"`

	// SampleStore selects and configures the record store.
	SampleStore SampleStoreConfig `mapstructure:"sample_store" yaml:"sample_store"`

	// Database contains PostgreSQL connection settings, used when
	// SampleStore.Backend is "postgres".
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Inference configures the Stage-1 detector and Stage-2 classifier.
	Inference InferenceConfig `mapstructure:"inference" yaml:"inference"`

	// Capture contains settings of the capture controller.
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture"`

	// Server contains settings of the capture trigger endpoint.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Broker configures optional sample event publishing.
	Broker BrokerConfig `mapstructure:"broker" yaml:"broker"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// CameraConfig contains still-capture settings.
type CameraConfig struct {
	// Command is the still-capture program. It has to accept libcamera
	// apps flags (rpicam-still, libcamera-still).
	Command string `mapstructure:"command" yaml:"command"`

	// Width of the captured image in pixels.
	Width int `mapstructure:"width" yaml:"width"`

	// Height of the captured image in pixels.
	Height int `mapstructure:"height" yaml:"height"`

	// Warmup is the time the sensor gets to settle exposure before the
	// still is taken.
	Warmup time.Duration `mapstructure:"warmup" yaml:"warmup"`
}

// GPSConfig contains NMEA serial receiver settings.
type GPSConfig struct {
	// Port is the serial device of the receiver.
	Port string `mapstructure:"port" yaml:"port"`

	// BaudRate of the serial line.
	BaudRate int `mapstructure:"baud_rate" yaml:"baud_rate"`

	// ReadTimeout bounds a single read from the serial line.
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// Timeout is the wall-clock budget for obtaining a fix.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// AreaConfig describes the study area in decimal degrees.
type AreaConfig struct {
	CenterLatitude  float64 `mapstructure:"center_latitude"  yaml:"center_latitude"`
	CenterLongitude float64 `mapstructure:"center_longitude" yaml:"center_longitude"`
	MinLatitude     float64 `mapstructure:"min_latitude"     yaml:"min_latitude"`
	MaxLatitude     float64 `mapstructure:"max_latitude"     yaml:"max_latitude"`
	MinLongitude    float64 `mapstructure:"min_longitude"    yaml:"min_longitude"`
	MaxLongitude    float64 `mapstructure:"max_longitude"    yaml:"max_longitude"`
}

// AWSConfig contains settings shared by S3, DynamoDB and SageMaker clients.
// Credentials come from the standard AWS chain (env, shared files, role).
type AWSConfig struct {
	Region string `mapstructure:"region" yaml:"region"`
}

// ObjectStoreConfig contains settings of the raw image bucket.
type ObjectStoreConfig struct {
	// Bucket receives captured images.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Prefix is prepended to every object key.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Endpoint is the host part of image locators and of the S3 API.
	// Empty means s3.{region}.amazonaws.com.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Timeout bounds one upload.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SampleStoreConfig selects and configures the record store.
type SampleStoreConfig struct {
	// Backend can be 'dynamodb', 'postgres' or 'sqlite'.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Table is the DynamoDB table name. SQL backends use the fixed
	// "samples" table.
	Table string `mapstructure:"table" yaml:"table"`

	// SQLitePath is the database file for the 'sqlite' backend.
	// Relative paths are resolved against the sampler data directory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// Timeout bounds one store call (scan or put).
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// InferenceConfig configures the Stage-1 detector and Stage-2 classifier.
type InferenceConfig struct {
	// Transport can be 'http' (POST JSON to a URL) or 'sagemaker'
	// (InvokeEndpoint of a SageMaker runtime endpoint).
	Transport string `mapstructure:"transport" yaml:"transport"`

	// DetectorURL is the Stage-1 URL for the 'http' transport.
	DetectorURL string `mapstructure:"detector_url" yaml:"detector_url"`

	// ClassifierURL is the Stage-2 URL for the 'http' transport.
	ClassifierURL string `mapstructure:"classifier_url" yaml:"classifier_url"`

	// DetectorEndpoint is the Stage-1 endpoint name for 'sagemaker'.
	DetectorEndpoint string `mapstructure:"detector_endpoint" yaml:"detector_endpoint"`

	// ClassifierEndpoint is the Stage-2 endpoint name for 'sagemaker'.
	ClassifierEndpoint string `mapstructure:"classifier_endpoint" yaml:"classifier_endpoint"`

	// Timeout bounds one attempt of one stage.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Attempts is the number of tries per stage, 1 means no retry.
	Attempts int `mapstructure:"attempts" yaml:"attempts"`

	// Backoff is the pause before the second attempt, it grows linearly.
	Backoff time.Duration `mapstructure:"backoff" yaml:"backoff"`
}

// CaptureConfig contains settings of the capture controller.
type CaptureConfig struct {
	// IDStrategy can be 'scan' (max+1 then plain put, a duplicate ID
	// overwrites the older record) or 'conditional' (max+1 then put only
	// if the ID is free, re-allocating on conflict).
	IDStrategy string `mapstructure:"id_strategy" yaml:"id_strategy"`

	// MaxIDAttempts bounds re-allocation for the 'conditional' strategy.
	MaxIDAttempts int `mapstructure:"max_id_attempts" yaml:"max_id_attempts"`

	// SkipLocation makes captures use the fallback location without
	// touching the GPS receiver.
	SkipLocation bool `mapstructure:"-" yaml:"-"`
}

// ServerConfig contains settings of the capture trigger endpoint.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// BrokerConfig configures sample event publishing to AMQP.
// Empty URL disables publishing.
type BrokerConfig struct {
	URL        string `mapstructure:"url"         yaml:"url"`
	Exchange   string `mapstructure:"exchange"    yaml:"exchange"`
	RoutingKey string `mapstructure:"routing_key" yaml:"routing_key"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Camera: CameraConfig{
			Command: "rpicam-still",
			Width:   1920,
			Height:  1080,
			Warmup:  time.Second,
		},
		GPS: GPSConfig{
			Port:        "/dev/serial0",
			BaudRate:    9600,
			ReadTimeout: 500 * time.Millisecond,
			Timeout:     60 * time.Second,
		},
		// Laguna de Bay
		Area: AreaConfig{
			CenterLatitude:  14.4000,
			CenterLongitude: 121.2500,
			MinLatitude:     14.1700,
			MaxLatitude:     14.5300,
			MinLongitude:    121.0000,
			MaxLongitude:    121.4500,
		},
		AWS: AWSConfig{
			Region: "ap-southeast-1",
		},
		ObjectStore: ObjectStoreConfig{
			Bucket:  "rpi-upload-bucket",
			Prefix:  "Dataset/samples/stage_1",
			Timeout: 2 * time.Minute,
		},
		SampleStore: SampleStoreConfig{
			Backend:    "dynamodb",
			Table:      "MicroplasticData",
			SQLitePath: "samples.db",
			Timeout:    30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "microplastics",
			SSLMode:  "disable",
		},
		Inference: InferenceConfig{
			Transport: "http",
			Timeout:   60 * time.Second,
			Attempts:  1,
			Backoff:   2 * time.Second,
		},
		Capture: CaptureConfig{
			IDStrategy:    "scan",
			MaxIDAttempts: 3,
		},
		Server: ServerConfig{
			Port: 5000,
		},
		Broker: BrokerConfig{
			Exchange:   "samples",
			RoutingKey: "sample.captured",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

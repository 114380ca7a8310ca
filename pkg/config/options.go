package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCameraCommand sets the still-capture program.
func OptCameraCommand(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Camera Command", s) {
			c.Camera.Command = s
		}
	}
}

// OptCameraWidth sets the image width in pixels.
func OptCameraWidth(i int) Option {
	return func(c *Config) {
		if isValidInt("Camera Width", i) {
			c.Camera.Width = i
		}
	}
}

// OptCameraHeight sets the image height in pixels.
func OptCameraHeight(i int) Option {
	return func(c *Config) {
		if isValidInt("Camera Height", i) {
			c.Camera.Height = i
		}
	}
}

// OptCameraWarmup sets the exposure settle time before a still.
func OptCameraWarmup(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Camera Warmup", d) {
			c.Camera.Warmup = d
		}
	}
}

// OptGPSPort sets the serial device of the GPS receiver.
func OptGPSPort(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GPS Port", s) {
			c.GPS.Port = s
		}
	}
}

// OptGPSBaudRate sets the serial line speed.
func OptGPSBaudRate(i int) Option {
	return func(c *Config) {
		if isValidInt("GPS Baud Rate", i) {
			c.GPS.BaudRate = i
		}
	}
}

// OptGPSReadTimeout sets the timeout of a single serial read.
func OptGPSReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("GPS Read Timeout", d) {
			c.GPS.ReadTimeout = d
		}
	}
}

// OptGPSTimeout sets the wall-clock budget for obtaining a fix.
func OptGPSTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("GPS Timeout", d) {
			c.GPS.Timeout = d
		}
	}
}

// OptArea sets the study area. The center has to lie within the bounds,
// otherwise the whole area is rejected.
func OptArea(a AreaConfig) Option {
	return func(c *Config) {
		if isValidArea(a) {
			c.Area = a
		}
	}
}

// OptAWSRegion sets the region of all AWS clients.
func OptAWSRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("AWS Region", s) {
			c.AWS.Region = s
		}
	}
}

// OptObjectStoreBucket sets the bucket that receives images.
func OptObjectStoreBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Object Store Bucket", s) {
			c.ObjectStore.Bucket = s
		}
	}
}

// OptObjectStorePrefix sets the key prefix of uploaded images.
// Leading and trailing slashes are removed.
func OptObjectStorePrefix(s string) Option {
	s = strings.Trim(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Object Store Prefix", s) {
			c.ObjectStore.Prefix = s
		}
	}
}

// OptObjectStoreEndpoint sets the host used for the S3 API and for image
// locators.
func OptObjectStoreEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Object Store Endpoint", s) {
			c.ObjectStore.Endpoint = s
		}
	}
}

// OptObjectStoreTimeout sets the timeout of one upload.
func OptObjectStoreTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Object Store Timeout", d) {
			c.ObjectStore.Timeout = d
		}
	}
}

// OptSampleStoreBackend sets the record store.
// Valid values: "dynamodb", "postgres", "sqlite".
func OptSampleStoreBackend(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("SampleStore.Backend", s) {
			c.SampleStore.Backend = s
		}
	}
}

// OptSampleStoreTable sets the table name of records.
func OptSampleStoreTable(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sample Store Table", s) {
			c.SampleStore.Table = s
		}
	}
}

// OptSampleStoreSQLitePath sets the SQLite database file.
func OptSampleStoreSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sample Store SQLite Path", s) {
			c.SampleStore.SQLitePath = s
		}
	}
}

// OptSampleStoreTimeout sets the timeout of one store call.
func OptSampleStoreTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Sample Store Timeout", d) {
			c.SampleStore.Timeout = d
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptInferenceTransport sets how the model services are called.
// Valid values: "http", "sagemaker".
func OptInferenceTransport(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Inference.Transport", s) {
			c.Inference.Transport = s
		}
	}
}

// OptInferenceDetectorURL sets the Stage-1 URL.
func OptInferenceDetectorURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Inference Detector URL", s) {
			c.Inference.DetectorURL = s
		}
	}
}

// OptInferenceClassifierURL sets the Stage-2 URL.
func OptInferenceClassifierURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Inference Classifier URL", s) {
			c.Inference.ClassifierURL = s
		}
	}
}

// OptInferenceDetectorEndpoint sets the Stage-1 SageMaker endpoint name.
func OptInferenceDetectorEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Inference Detector Endpoint", s) {
			c.Inference.DetectorEndpoint = s
		}
	}
}

// OptInferenceClassifierEndpoint sets the Stage-2 SageMaker endpoint name.
func OptInferenceClassifierEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Inference Classifier Endpoint", s) {
			c.Inference.ClassifierEndpoint = s
		}
	}
}

// OptInferenceTimeout sets the timeout of one inference attempt.
func OptInferenceTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Inference Timeout", d) {
			c.Inference.Timeout = d
		}
	}
}

// OptInferenceAttempts sets the number of tries per stage (1 to 5).
func OptInferenceAttempts(i int) Option {
	return func(c *Config) {
		if isValidRange("Inference Attempts", i, 1, MaxInferenceAttempts) {
			c.Inference.Attempts = i
		}
	}
}

// OptInferenceBackoff sets the pause before a repeated attempt.
func OptInferenceBackoff(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Inference Backoff", d) {
			c.Inference.Backoff = d
		}
	}
}

// OptCaptureIDStrategy sets how sample IDs are committed.
// Valid values: "scan", "conditional".
func OptCaptureIDStrategy(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Capture.IDStrategy", s) {
			c.Capture.IDStrategy = s
		}
	}
}

// OptCaptureMaxIDAttempts bounds re-allocation of a taken sample ID.
func OptCaptureMaxIDAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Capture Max ID Attempts", i) {
			c.Capture.MaxIDAttempts = i
		}
	}
}

// OptCaptureSkipLocation makes captures use the fallback location.
// Runtime-only field - not in ToOptions().
func OptCaptureSkipLocation(b bool) Option {
	return func(c *Config) {
		c.Capture.SkipLocation = b
	}
}

// OptServerPort sets the port of the capture trigger endpoint.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidRange("Server Port", i, 1, 65535) {
			c.Server.Port = i
		}
	}
}

// OptBrokerURL sets the AMQP URL. Setting it enables sample events.
func OptBrokerURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Broker URL", s) {
			c.Broker.URL = s
		}
	}
}

// OptBrokerExchange sets the AMQP exchange of sample events.
func OptBrokerExchange(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Broker Exchange", s) {
			c.Broker.Exchange = s
		}
	}
}

// OptBrokerRoutingKey sets the routing key of sample events.
func OptBrokerRoutingKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Broker Routing Key", s) {
			c.Broker.RoutingKey = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

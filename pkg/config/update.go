package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Capture.SkipLocation).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	str := func(s string, opt func(string) Option) {
		if s != "" {
			res = append(res, opt(s))
		}
	}
	num := func(i int, opt func(int) Option) {
		if i > 0 {
			res = append(res, opt(i))
		}
	}
	dur := func(d time.Duration, opt func(time.Duration) Option) {
		if d > 0 {
			res = append(res, opt(d))
		}
	}

	str(c.Camera.Command, OptCameraCommand)
	num(c.Camera.Width, OptCameraWidth)
	num(c.Camera.Height, OptCameraHeight)
	dur(c.Camera.Warmup, OptCameraWarmup)

	str(c.GPS.Port, OptGPSPort)
	num(c.GPS.BaudRate, OptGPSBaudRate)
	dur(c.GPS.ReadTimeout, OptGPSReadTimeout)
	dur(c.GPS.Timeout, OptGPSTimeout)

	if c.Area != (AreaConfig{}) {
		res = append(res, OptArea(c.Area))
	}

	str(c.AWS.Region, OptAWSRegion)

	str(c.ObjectStore.Bucket, OptObjectStoreBucket)
	str(c.ObjectStore.Prefix, OptObjectStorePrefix)
	str(c.ObjectStore.Endpoint, OptObjectStoreEndpoint)
	dur(c.ObjectStore.Timeout, OptObjectStoreTimeout)

	str(c.SampleStore.Backend, OptSampleStoreBackend)
	str(c.SampleStore.Table, OptSampleStoreTable)
	str(c.SampleStore.SQLitePath, OptSampleStoreSQLitePath)
	dur(c.SampleStore.Timeout, OptSampleStoreTimeout)

	str(c.Database.Host, OptDatabaseHost)
	num(c.Database.Port, OptDatabasePort)
	str(c.Database.User, OptDatabaseUser)
	str(c.Database.Password, OptDatabasePassword)
	str(c.Database.Database, OptDatabaseDatabase)
	str(c.Database.SSLMode, OptDatabaseSSLMode)

	str(c.Inference.Transport, OptInferenceTransport)
	str(c.Inference.DetectorURL, OptInferenceDetectorURL)
	str(c.Inference.ClassifierURL, OptInferenceClassifierURL)
	str(c.Inference.DetectorEndpoint, OptInferenceDetectorEndpoint)
	str(c.Inference.ClassifierEndpoint, OptInferenceClassifierEndpoint)
	dur(c.Inference.Timeout, OptInferenceTimeout)
	num(c.Inference.Attempts, OptInferenceAttempts)
	dur(c.Inference.Backoff, OptInferenceBackoff)

	str(c.Capture.IDStrategy, OptCaptureIDStrategy)
	num(c.Capture.MaxIDAttempts, OptCaptureMaxIDAttempts)

	num(c.Server.Port, OptServerPort)

	str(c.Broker.URL, OptBrokerURL)
	str(c.Broker.Exchange, OptBrokerExchange)
	str(c.Broker.RoutingKey, OptBrokerRoutingKey)

	str(c.Log.Format, OptLogFormat)
	str(c.Log.Level, OptLogLevel)
	str(c.Log.Destination, OptLogDestination)
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidRange(name string, i, min, max int) bool {
	res := i >= min && i <= max
	if !res {
		gn.Warn("<em>%s</em> has to be between %d and %d, ignoring %d",
			name, min, max, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> has to be http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidArea(a AreaConfig) bool {
	res := a.MinLatitude >= -90 && a.MaxLatitude <= 90 &&
		a.MinLongitude >= -180 && a.MaxLongitude <= 180 &&
		a.MinLatitude < a.MaxLatitude && a.MinLongitude < a.MaxLongitude &&
		a.CenterLatitude >= a.MinLatitude && a.CenterLatitude <= a.MaxLatitude &&
		a.CenterLongitude >= a.MinLongitude && a.CenterLongitude <= a.MaxLongitude
	if !res {
		gn.Warn("<em>Area</em> center has to be inside valid bounds, ignoring")
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"SampleStore.Backend": {"dynamodb": s, "postgres": s, "sqlite": s},
		"Inference.Transport": {"http": s, "sagemaker": s},
		"Capture.IDStrategy":  {"scan": s, "conditional": s},
		"Log.Level":           {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":          {"json": s, "text": s, "tint": s},
		"Log.Destination":     {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}

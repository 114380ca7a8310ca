// Package iotesting provides shared test utilities for adapter tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"
	"testing"

	"github.com/mpsense/sampler/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "sampler_test"

	// TestTableName is the table used by store integration tests.
	TestTableName = "MicroplasticDataTest"
)

// GetTestConfig returns a configuration suitable for tests. Home points to
// a temporary directory and the database and table names are replaced by
// test ones.
//
// PostgreSQL settings can be overridden with SAMPLER_TEST_DB_HOST,
// SAMPLER_TEST_DB_PORT, SAMPLER_TEST_DB_USER and SAMPLER_TEST_DB_PASSWORD.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptSampleStoreTable(TestTableName),
	}
	if s := os.Getenv("SAMPLER_TEST_DB_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("SAMPLER_TEST_DB_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("SAMPLER_TEST_DB_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("SAMPLER_TEST_DB_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	cfg.Update(opts)
	return cfg
}

// RequireEnv returns the value of an environment variable or skips the
// test when it is not set. Integration tests against PostgreSQL, DynamoDB
// and S3 use it to run only where those services exist.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    iotesting.RequireEnv(t, "SAMPLER_TEST_DB_HOST")
//	    // ...
//	}
func RequireEnv(t *testing.T, name string) string {
	t.Helper()
	res := os.Getenv(name)
	if res == "" {
		t.Skipf("%s is not set, skipping integration test", name)
	}
	return res
}

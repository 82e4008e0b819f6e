package testing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vvka-141/schoolfacts/internal/testinfra"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// PostgresEnvVar names an existing server to test against instead of a container.
const PostgresEnvVar = "SCHOOLFACTS_TEST_PG"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetPostgresConnectionString returns the test database connection string.
// Priority: SCHOOLFACTS_TEST_PG env var > auto-started testcontainer > skip test.
func GetPostgresConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(PostgresEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", PostgresEnvVar, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequirePostgres combines SkipIfShort and GetPostgresConnectionString and
// returns a database config for the pgx driver.
func RequirePostgres(t *testing.T) schoolfacts.DatabaseConfig {
	t.Helper()

	SkipIfShort(t)
	return schoolfacts.DatabaseConfig{
		Driver: schoolfacts.DriverPostgres,
		DSN:    GetPostgresConnectionString(t),
	}
}

// SQLiteConfig returns a database config pointing at a fresh file under t.TempDir().
func SQLiteConfig(t *testing.T) schoolfacts.DatabaseConfig {
	t.Helper()

	return schoolfacts.DatabaseConfig{
		Driver: schoolfacts.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "schools.db"),
	}
}

// Package testutil provides helpers for tests that run against the Spanner
// emulator.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/price-resolver/internal/models/m_price"
)

// DefaultTestDatabase is used when SPANNER_DATABASE is unset.
const DefaultTestDatabase = "projects/test-project/instances/test-instance/databases/price-resolver-test"

// SetupSpannerTest creates a Spanner client against a migrated emulator
// database and returns a cleanup function. The test is skipped when
// SPANNER_EMULATOR_HOST is not set.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_DATABASE"); db != "" {
		return db
	}
	return DefaultTestDatabase
}

// CleanDatabase truncates the prices table for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_price.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// DeletePrice removes one row directly, bypassing the store.
func DeletePrice(t *testing.T, client *spanner.Client, id int64) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_price.NewModel().DeleteMut(id)})
	require.NoError(t, err, "failed to delete price %d", id)
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}

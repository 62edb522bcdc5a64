// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ARQAP/museum-insights/src/config"
	"github.com/ARQAP/museum-insights/src/db"
	"github.com/stretchr/testify/require"
)

// SQLiteOpener returns an opener over a fresh, migrated SQLite file that
// lives in the test's temp dir. Foreign keys are enforced.
func SQLiteOpener(t testing.TB) *db.Factory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "insights.db")
	factory, err := db.NewFactory(config.Database{Driver: "sqlite", DSN: path}, false)
	require.NoError(t, err, "failed to build sqlite factory")
	require.NoError(t, db.Migrate(context.Background(), factory), "failed to migrate test database")
	return factory
}

package main

import (
	"io"
	"log/slog"
	"testing"

	_ "github.com/golang-migrate/migrate/v4/database/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRun(t *testing.T) {
	t.Run("applies up and down", func(t *testing.T) {
		require.NoError(t, run("file://../../migrations", "stub://", migrationUp, testLogger))
		require.NoError(t, run("file://../../migrations", "stub://", migrationDown, testLogger))
	})

	t.Run("missing migrations directory", func(t *testing.T) {
		err := run("file://"+t.TempDir()+"/missing", "stub://", migrationUp, testLogger)
		assert.Error(t, err)
	})

	t.Run("unknown database scheme", func(t *testing.T) {
		err := run("file://../../migrations", "nosuchdb://localhost", migrationUp, testLogger)
		assert.ErrorContains(t, err, "init migrations")
	})
}

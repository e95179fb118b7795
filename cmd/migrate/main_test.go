package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestMigrateUpThenStatus(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "adoption.db"))

	out := execute(t, "status")
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "pending")

	out = execute(t, "up")
	assert.Contains(t, out, "applied 001_create_pets")
	assert.Contains(t, out, "applied 002_create_adoptions")

	out = execute(t, "up")
	assert.Contains(t, out, "schema is up to date")

	out = execute(t, "status")
	assert.NotContains(t, out, "pending")
	assert.Contains(t, out, "create_adoptions")
}

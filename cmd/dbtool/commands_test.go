package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsRequireDatabaseURL(t *testing.T) {
	for _, sub := range []string{"migrate", "purge"} {
		t.Run(sub, func(t *testing.T) {
			_, err := run(t, sub)
			assert.ErrorContains(t, err, "DATABASE_URL is required")
		})
	}
}

func TestSeedValidatesFileFirst(t *testing.T) {
	p := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"place":"","lon":0,"lat":0}]`), 0o600))

	_, err := run(t, "seed", "--file", p)
	assert.ErrorContains(t, err, "place cannot be empty")
}

func TestPurgeRejectsNegativeAge(t *testing.T) {
	_, err := run(t, "purge", "--older-than", "-1h")
	assert.ErrorContains(t, err, "must not be negative")
}

func TestHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"migrate", "seed", "purge"} {
		assert.Contains(t, out, sub)
	}
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/smartwords/internal/config"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")
}

func TestSeedCommand_PrintsNewSetID(t *testing.T) {
	isolateEnv(t)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"seed", "--name", "French Basics"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	_, err := uuid.Parse(strings.TrimSpace(out.String()))
	assert.NoError(t, err, "seed should print the generated set id")
}

func TestSeedCommand_InvalidName(t *testing.T) {
	isolateEnv(t)

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed", "--name", ""})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed set")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STORE_BACKEND", "redis")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"serve"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestSampleSet_HasUniqueWords(t *testing.T) {
	req := sampleSet("Spanish Basics")

	seen := map[string]bool{}
	for _, w := range req.Words {
		assert.False(t, seen[w.Word], "duplicate word %q", w.Word)
		seen[w.Word] = true
	}
	assert.NotEmpty(t, req.Words)
}

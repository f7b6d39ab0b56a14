package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothedarktowercame/loom/internal/store"
)

func TestBreedSerialWritesChild(t *testing.T) {
	dir := t.TempDir()
	outPrefix := filepath.Join(dir, "child")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewBreedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rule:90", "rule:150", "--operator", "serial", "--out", outPrefix})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	if _, err := os.Stat(outPrefix + "-1.json"); err != nil {
		t.Errorf("child file not written: %v", err)
	}
}

func TestBreedRecordsLineage(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "lineage.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewBreedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rule:90", "rule:150", "--operator", "parallel", "--mode", "blend", "--lineage", dbPath})

	require.NoError(t, cmd.Execute())

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	breedings, err := s.ListBreedings(context.Background())
	require.NoError(t, err)
	require.Len(t, breedings, 1)
	assert.Equal(t, "parallel", breedings[0].Operator)
}

func TestBreedUnknownOperator(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewBreedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rule:90", "rule:150", "--operator", "mutate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompareIdenticalRules(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompareCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rule:90", "rule:90"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["similarity"])
}

func TestLawsPass(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewLawsCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateGeneratedRule(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rule:30"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "valid")
}

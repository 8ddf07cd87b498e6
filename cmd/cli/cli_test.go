package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-classifier/internal/classifier"
	"site-classifier/internal/models"
	"site-classifier/internal/storage"
	"site-classifier/internal/taxonomy"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestCategories(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "lactobacillus")
	assert.Contains(t, out, "dealer network")
	assert.Contains(t, out, "beverage")
}

func TestClassifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p>Sports nutrition and protein powder</p>`), 0o600))

	out, err := execute(t, "classify", "--website", "https://gym.example", path)
	require.NoError(t, err)
	assert.Contains(t, out, "https://gym.example")
	assert.Contains(t, out, "F&B")
	assert.Contains(t, out, "Yes")
}

func TestClassifyRequiresFile(t *testing.T) {
	_, err := execute(t, "classify")
	assert.Error(t, err)
}

func TestRunFailsFastWithoutBrowser(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sites.txt")
	require.NoError(t, os.WriteFile(input, []byte("example.com\n"), 0o600))
	t.Setenv("SITECLASS_BROWSER_BIN", filepath.Join(dir, "no-chrome"))
	t.Setenv("SITECLASS_LOG_OUTPUT_PATHS", filepath.Join(dir, "scraper.log"))
	csvPath := filepath.Join(dir, "out.csv")

	_, err := execute(t, "run", "--input", input, "--output", csvPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Chrome")
	_, statErr := os.Stat(csvPath)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when setup fails")
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	reg := taxonomy.Default()
	store, err := storage.Open(db, reg)
	require.NoError(t, err)
	cl := classifier.New(reg)
	id, err := store.SaveBatch(context.Background(), time.Now().Add(-time.Minute), time.Now(), models.BatchResult{
		cl.Label("https://yogurt.example", "probiotic dairy"),
		models.NewErrored("https://down.example", reg.Categories(), "timeout"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "history", "--db", db, id)
	require.NoError(t, err)
	assert.Contains(t, out, "https://yogurt.example")
	assert.Contains(t, out, "https://down.example")
	assert.Contains(t, out, "F&B")

	_, err = execute(t, "history", "--db", db, "no-such-run")
	assert.ErrorContains(t, err, "not found")
}

func TestHistoryRequiresDatabase(t *testing.T) {
	_, err := execute(t, "history")
	assert.ErrorContains(t, err, "no history database")
}

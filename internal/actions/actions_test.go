package actions

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxport/internal/adapters"
	"voxport/internal/history"
	"voxport/internal/porter"
)

func TestArchiveHandlerServesZip(t *testing.T) {
	data := []byte("PK\x03\x04fake")
	served := 0
	handler := NewArchiveHandler(data, "tok", func() { served++ })

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/tok/audios_descargados.zip")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="audios_descargados.zip"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, data, body)
	assert.Equal(t, 1, served)
}

func TestArchiveHandlerRejectsOtherPaths(t *testing.T) {
	served := 0
	handler := NewArchiveHandler([]byte("x"), "tok", func() { served++ })

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other/audios_descargados.zip", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tok/audios_descargados.zip", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Equal(t, 0, served)
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveOutputPath("")
	require.NoError(t, err)
	assert.Equal(t, "audios_descargados.zip", got)

	got, err = resolveOutputPath(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audios_descargados.zip"), got)

	got, err = resolveOutputPath(filepath.Join(dir, "mine.zip"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mine.zip"), got)
}

func TestWriteArchive(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, writeArchive(dest, bytes.NewReader([]byte("zip-bytes"))))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(data))
}

func TestConsoleReporter(t *testing.T) {
	var out bytes.Buffer
	reporter := NewConsoleReporter(&out, nil)
	rec := history.Record{ID: "r1", DateUnix: 42}

	reporter.Listed(3)
	reporter.Fetched(rec, 2048)
	reporter.Failed(rec, &adapters.TransportError{Context: "error downloading r1", Status: 500})
	assert.Empty(t, out.String(), "per-record lines are held while the spinner runs")

	reporter.Flush()
	text := out.String()
	assert.Contains(t, text, "Found 3 audios in history.")
	assert.Contains(t, text, "Downloaded: 42_r1.mp3 (2.0 kB)")
	assert.Contains(t, text, "Failed to download 42_r1.mp3")
	assert.Contains(t, text, "unexpected status 500")
}

func TestConsoleReporterWarnFailures(t *testing.T) {
	var out bytes.Buffer
	reporter := NewConsoleReporter(&out, nil)

	reporter.WarnFailures(porter.Summary{Fetched: 3})
	assert.Empty(t, out.String())

	reporter.Fetched(history.Record{ID: "ok", DateUnix: 1}, 10)
	reporter.WarnFailures(porter.Summary{Fetched: 1, Failed: 2, FailedIDs: []string{"bad1", "bad2"}})

	text := out.String()
	assert.Contains(t, text, "Downloaded: 1_ok.mp3")
	assert.Contains(t, text, "2 audios could not be downloaded: bad1, bad2")
	assert.Less(t, strings.Index(text, "Downloaded"), strings.Index(text, "could not be downloaded"))
}

func TestValidateKey(t *testing.T) {
	assert.ErrorIs(t, validateKey("   "), adapters.ErrMissingCredential)
	assert.NoError(t, validateKey("sk_123"))
}

func TestIsEmptyResult(t *testing.T) {
	assert.True(t, isEmptyResult(porter.ErrNoRecords))
	assert.True(t, isEmptyResult(porter.ErrNothingFetched))
	assert.False(t, isEmptyResult(errors.New("boom")))
}

func TestSetupLoggerTagsSession(t *testing.T) {
	var out bytes.Buffer
	logger := SetupLogger(&out, true)
	logger.Debug("hello")

	line := out.String()
	assert.True(t, strings.Contains(line, "session="))
	assert.Contains(t, line, "msg=hello")
}

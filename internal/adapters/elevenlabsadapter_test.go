package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxport/internal/history"
)

const testKey = history.Credential("sk_test")

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *ElevenLabsAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewElevenLabsAdapter(Options{BaseURL: server.URL})
}

func TestListHistoryPageFirstRequest(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history", r.URL.Path)
		assert.Equal(t, "sk_test", r.Header.Get("xi-api-key"))
		assert.Equal(t, "100", r.URL.Query().Get("page_size"))
		assert.False(t, r.URL.Query().Has("start_after_history_item_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"history":[{"history_item_id":"a","date_unix":1}],"has_more":false,"last_history_item_id":"a"}`))
	})

	page, err := adapter.ListHistoryPage(context.Background(), testKey, "")
	require.NoError(t, err)
	require.Len(t, page.History, 1)
	assert.Equal(t, "a", page.History[0].ID)
	assert.False(t, page.HasMore)
}

func TestListHistoryPageSendsCursor(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("start_after_history_item_id"))
		w.Write([]byte(`{"history":[],"has_more":false}`))
	})

	_, err := adapter.ListHistoryPage(context.Background(), testKey, "abc")
	require.NoError(t, err)
}

func TestListHistoryPageNonSuccess(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	})

	_, err := adapter.ListHistoryPage(context.Background(), testKey, "")
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusUnauthorized, transportErr.Status)
	assert.Contains(t, transportErr.Body, "invalid api key")
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestMissingCredentialMakesNoRequest(t *testing.T) {
	calls := 0
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := adapter.ListHistoryPage(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = adapter.FetchAudio(context.Background(), "", "id")
	assert.ErrorIs(t, err, ErrMissingCredential)

	assert.Equal(t, 0, calls)
}

func TestFetchAudio(t *testing.T) {
	payload := []byte{0xff, 0xfb, 0x90, 0x00, 0x01}
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/rec-1/audio", r.URL.Path)
		assert.Equal(t, "sk_test", r.Header.Get("xi-api-key"))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(payload)
	})

	data, err := adapter.FetchAudio(context.Background(), testKey, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchAudioNonSuccessNamesRecord(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	data, err := adapter.FetchAudio(context.Background(), testKey, "rec-9")
	assert.Nil(t, data)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusInternalServerError, transportErr.Status)
	assert.Contains(t, err.Error(), "rec-9")
}

func TestNewHistoryAdapter(t *testing.T) {
	adapter, err := NewHistoryAdapter("elevenlabs", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ElevenLabs", adapter.PlatformName())

	_, err = NewHistoryAdapter("playht", Options{})
	assert.Error(t, err)
}

func TestNewElevenLabsAdapterDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_BASE_URL", "")
	adapter := NewElevenLabsAdapter(Options{})
	assert.Equal(t, DefaultBaseURL, adapter.baseURL)
	assert.Equal(t, DefaultTimeout, adapter.client.Timeout)

	t.Setenv("ELEVENLABS_BASE_URL", "http://localhost:9999/v1/")
	adapter = NewElevenLabsAdapter(Options{})
	assert.Equal(t, "http://localhost:9999/v1", adapter.baseURL)
}

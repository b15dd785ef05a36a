package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"voxport/internal/history"
)

const (
	// DefaultBaseURL is the public ElevenLabs v1 API
	DefaultBaseURL = "https://api.elevenlabs.io/v1"

	// DefaultTimeout bounds every request, including the audio body transfer
	DefaultTimeout = 60 * time.Second

	// PageSize is the number of history records requested per page
	PageSize = 100

	apiKeyHeader   = "xi-api-key"
	cursorParam    = "start_after_history_item_id"
	pageSizeParam  = "page_size"
	maxErrorBodyKB = 4
)

// ElevenLabsAdapter adapts the ElevenLabs history API to our common adapter interface
type ElevenLabsAdapter struct {
	BaseAdapter
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewElevenLabsAdapter creates a new ElevenLabsAdapter
func NewElevenLabsAdapter(opts Options) *ElevenLabsAdapter {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("ELEVENLABS_BASE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ElevenLabsAdapter{
		BaseAdapter: NewBaseAdapter("ElevenLabs"),
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With("platform", "elevenlabs"),
	}
}

// ListHistoryPage retrieves one page of the user's generation history
func (a *ElevenLabsAdapter) ListHistoryPage(ctx context.Context, cred history.Credential, cursor string) (history.Page, error) {
	if err := a.CheckCredential(cred); err != nil {
		return history.Page{}, err
	}

	query := url.Values{}
	query.Set(pageSizeParam, strconv.Itoa(PageSize))
	if cursor != "" {
		query.Set(cursorParam, cursor)
	}

	resp, err := a.get(ctx, cred, "/history?"+query.Encode())
	if err != nil {
		return history.Page{}, fmt.Errorf("error listing history: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return history.Page{}, newTransportError("error listing history", resp)
	}

	var page history.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return history.Page{}, fmt.Errorf("error decoding history page: %w", err)
	}

	a.logger.Debug("history page received", "cursor", cursor, "records", len(page.History), "hasMore", page.HasMore)
	return page, nil
}

// FetchAudio downloads the audio of one history record into memory
func (a *ElevenLabsAdapter) FetchAudio(ctx context.Context, cred history.Credential, recordID string) ([]byte, error) {
	if err := a.CheckCredential(cred); err != nil {
		return nil, err
	}

	resp, err := a.get(ctx, cred, "/history/"+url.PathEscape(recordID)+"/audio")
	if err != nil {
		return nil, fmt.Errorf("error downloading %s: %w", recordID, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newTransportError("error downloading "+recordID, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading audio for %s: %w", recordID, err)
	}

	a.logger.Debug("audio received", "historyItemId", recordID, "bytes", len(data))
	return data, nil
}

func (a *ElevenLabsAdapter) get(ctx context.Context, cred history.Credential, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, cred.Secret())
	return a.client.Do(req)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// newTransportError captures the status and the leading part of the error body
func newTransportError(action string, resp *http.Response) *TransportError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyKB*1024))
	return &TransportError{
		Context: action,
		Status:  resp.StatusCode,
		Body:    strings.TrimSpace(string(body)),
	}
}

package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voxport/internal/history"
)

// HistoryAdapter defines the interface for adapting a text-to-speech provider's
// history API to a common interface that can be used by the application
type HistoryAdapter interface {
	// ListHistoryPage fetches one page of history records starting after cursor.
	// An empty cursor requests the first page.
	ListHistoryPage(ctx context.Context, cred history.Credential, cursor string) (history.Page, error)

	// FetchAudio retrieves the raw audio of a single history record
	FetchAudio(ctx context.Context, cred history.Credential, recordID string) ([]byte, error)

	PlatformName() string
}

// PlatformType represents the supported providers
type PlatformType string

const (
	ElevenLabsPlatform PlatformType = "elevenlabs"
)

// Options configures the HTTP side of an adapter
type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewHistoryAdapter is a factory function that creates a new adapter for the specified provider
func NewHistoryAdapter(platform string, opts Options) (HistoryAdapter, error) {
	p := PlatformType(platform)
	switch p {
	case ElevenLabsPlatform:
		return NewElevenLabsAdapter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}

package history

import (
	"fmt"
	"log/slog"
	"time"
)

// AudioExtension is the extension given to every archived clip
const AudioExtension = ".mp3"

// Record represents one previously generated clip in the provider's history
type Record struct {
	ID          string `json:"history_item_id" csv:"history_item_id"`
	DateUnix    int64  `json:"date_unix" csv:"date_unix"`
	VoiceName   string `json:"voice_name" csv:"voice_name"`
	ModelID     string `json:"model_id" csv:"model_id"`
	ContentType string `json:"content_type" csv:"content_type"`
	Text        string `json:"text" csv:"text"`
}

// FileName returns the archive entry name for the record: {date_unix}_{history_item_id}.mp3
func (r Record) FileName() string {
	return fmt.Sprintf("%d_%s%s", r.DateUnix, r.ID, AudioExtension)
}

// CreatedAt returns the creation timestamp as time.Time
func (r Record) CreatedAt() time.Time {
	return time.Unix(r.DateUnix, 0)
}

// Page is one response of the paginated history listing
type Page struct {
	History           []Record `json:"history"`
	HasMore           bool     `json:"has_more"`
	LastHistoryItemID string   `json:"last_history_item_id"`
}

// Entry is a named binary payload destined for the archive
type Entry struct {
	Name string
	Data []byte
}

// NewEntry pairs a fetched payload with the record it belongs to
func NewEntry(r Record, data []byte) Entry {
	return Entry{Name: r.FileName(), Data: data}
}

// Credential is the opaque API key supplied by the user.
// It never renders its value through fmt or slog.
type Credential string

// String hides the key
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[redacted]"
}

// GoString hides the key from %#v
func (c Credential) GoString() string {
	return c.String()
}

// LogValue implements slog.LogValuer
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

// Empty reports whether no key was supplied
func (c Credential) Empty() bool {
	return c == ""
}

// Secret returns the raw key for the request header
func (c Credential) Secret() string {
	return string(c)
}

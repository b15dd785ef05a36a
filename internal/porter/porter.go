package porter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"voxport/internal/adapters"
	"voxport/internal/archive"
	"voxport/internal/history"
	"voxport/internal/utils"
)

var (
	// ErrEmptyResult marks the "nothing to download" terminal state
	ErrEmptyResult = errors.New("nothing to download")

	// ErrNoRecords means the history listing came back empty
	ErrNoRecords = fmt.Errorf("%w: no audio found in history", ErrEmptyResult)

	// ErrNothingFetched means every audio download failed
	ErrNothingFetched = fmt.Errorf("%w: no audio could be downloaded", ErrEmptyResult)
)

// Summary describes the outcome of a Collect run
type Summary struct {
	Listed    int
	Fetched   int
	Failed    int
	Bytes     int64
	FailedIDs []string
}

// Porter runs the enumerate, fetch and archive steps
// using an adapter to talk to a specific provider
type Porter struct {
	adapter  adapters.HistoryAdapter
	reporter Reporter
}

// NewPorter creates a new history porter using the specified adapter
func NewPorter(adapter adapters.HistoryAdapter, reporter Reporter) *Porter {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Porter{
		adapter:  adapter,
		reporter: reporter,
	}
}

// NewPorterWithOptions creates a new Porter for the named provider
func NewPorterWithOptions(platform string, opts adapters.Options, reporter Reporter) (*Porter, error) {
	adapter, err := adapters.NewHistoryAdapter(platform, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter for platform %s: %w", platform, err)
	}
	return NewPorter(adapter, reporter), nil
}

// ListAll drains every history page in arrival order.
// Any failure aborts the listing and no partial result is returned.
func (s *Porter) ListAll(ctx context.Context, cred history.Credential) ([]history.Record, error) {
	if cred.Empty() {
		return nil, adapters.ErrMissingCredential
	}

	var records []history.Record
	cursor := ""

	for {
		page, err := s.adapter.ListHistoryPage(ctx, cred, cursor)
		if err != nil {
			return nil, err
		}

		records = append(records, page.History...)

		if !page.HasMore {
			break
		}

		next := nextCursor(page)
		if next == "" || next == cursor {
			return nil, fmt.Errorf("%w after %d records", adapters.ErrStalledCursor, len(records))
		}
		cursor = next
	}

	return records, nil
}

// nextCursor prefers the provider's last_history_item_id and falls back to the last record
func nextCursor(page history.Page) string {
	if page.LastHistoryItemID != "" {
		return page.LastHistoryItemID
	}
	if n := len(page.History); n > 0 {
		return page.History[n-1].ID
	}
	return ""
}

// Fetch downloads the audio of one record.
// A failure is handed to the reporter and ok is false; the caller skips the record.
// Cancellation of ctx is not reported, the caller checks ctx.Err().
func (s *Porter) Fetch(ctx context.Context, cred history.Credential, rec history.Record) ([]byte, bool) {
	data, err := s.adapter.FetchAudio(ctx, cred, rec.ID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}
		s.reporter.Failed(rec, err)
		return nil, false
	}
	return data, true
}

// Collect lists the whole history and streams every fetched clip into sink.
// Only one payload is held in memory at a time.
func (s *Porter) Collect(ctx context.Context, cred history.Credential, sink archive.Sink) (Summary, error) {
	records, err := s.ListAll(ctx, cred)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Listed: len(records)}
	if len(records) == 0 {
		return summary, ErrNoRecords
	}
	s.reporter.Listed(len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, interrupted(summary, err)
		}

		data, ok := s.Fetch(ctx, cred, rec)
		if !ok {
			if err := ctx.Err(); err != nil {
				return summary, interrupted(summary, err)
			}
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, rec.ID)
			continue
		}

		if err := sink.Add(rec.FileName(), data); err != nil {
			if errors.Is(err, archive.ErrDuplicateEntry) || errors.Is(err, archive.ErrInvalidName) {
				s.reporter.Failed(rec, err)
				summary.Failed++
				summary.FailedIDs = append(summary.FailedIDs, rec.ID)
				continue
			}
			return summary, err
		}

		summary.Fetched++
		summary.Bytes += int64(len(data))
		s.reporter.Fetched(rec, len(data))
	}

	if summary.Fetched == 0 {
		return summary, ErrNothingFetched
	}
	return summary, nil
}

func interrupted(summary Summary, err error) error {
	return fmt.Errorf("download interrupted after %d of %d records: %w", summary.Fetched+summary.Failed, summary.Listed, err)
}

// DownloadArchive collects the whole history into an in-memory zip ready for transfer
func (s *Porter) DownloadArchive(ctx context.Context, cred history.Credential) (*bytes.Reader, Summary, error) {
	w := archive.NewZipWriter()
	summary, err := s.Collect(ctx, cred, w)
	if err != nil {
		return nil, summary, err
	}

	r, ok, err := w.Finish()
	if err != nil {
		return nil, summary, err
	}
	if !ok {
		return nil, summary, ErrNothingFetched
	}
	return r, summary, nil
}

// ExportManifestCSV writes the listed records to a CSV file
func (s *Porter) ExportManifestCSV(records []history.Record, filepath string) error {
	// Ensure filepath has .csv extension
	if !strings.HasSuffix(filepath, ".csv") {
		filepath += ".csv"
	}

	headers := utils.StructToCsvHeader(reflect.TypeOf(history.Record{}))
	if err := utils.WriteToCsvFile(filepath, headers, records); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	return nil
}

// PlatformName returns the provider behind this porter
func (s *Porter) PlatformName() string {
	return s.adapter.PlatformName()
}

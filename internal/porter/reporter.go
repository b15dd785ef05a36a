package porter

import (
	"log/slog"

	"voxport/internal/history"
)

// Reporter receives progress and per-record diagnostics from Collect
type Reporter interface {
	Listed(count int)
	Fetched(rec history.Record, size int)
	Failed(rec history.Record, err error)
}

// LogReporter reports through a structured logger
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r LogReporter) Listed(count int) {
	r.logger().Info("history listed", "records", count)
}

func (r LogReporter) Fetched(rec history.Record, size int) {
	r.logger().Info("audio downloaded", "historyItemId", rec.ID, "file", rec.FileName(), "bytes", size)
}

func (r LogReporter) Failed(rec history.Record, err error) {
	r.logger().Error("audio download failed", "historyItemId", rec.ID, "error", err)
}

type nopReporter struct{}

func (nopReporter) Listed(int)                   {}
func (nopReporter) Fetched(history.Record, int)  {}
func (nopReporter) Failed(history.Record, error) {}

package actions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"voxport/internal/archive"
	"voxport/internal/porter"
	"voxport/internal/utils"
)

const shutdownTimeout = 5 * time.Second

// ServeHistory builds the archive in memory and offers it as a browser download
func ServeHistory(c *cli.Context) error {
	cred, err := promptCredential(c)
	if err != nil {
		return err
	}

	reporter := NewConsoleReporter(c.App.Writer, nil)
	p, err := newPorter(c, reporter)
	if err != nil {
		return err
	}

	var (
		summary porter.Summary
		zipped  *bytes.Reader
	)
	build := func(ctx context.Context) error {
		var err error
		zipped, summary, err = p.DownloadArchive(ctx, cred)
		return err
	}
	err = spinner.New().Title("Downloading audio history...").Context(c.Context).ActionWithErr(build).Run()
	reporter.Flush()
	if isEmptyResult(err) {
		reporter.Warn(fmt.Sprintf("No audio to download: %v", err))
		return nil
	}
	if err != nil {
		return err
	}

	data, err := io.ReadAll(zipped)
	if err != nil {
		return err
	}
	token, err := utils.GenerateToken(utils.DefaultTokenBytes)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", c.String("addr"))
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.String("addr"), err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	served := make(chan struct{})
	var once sync.Once
	handler := NewArchiveHandler(data, token, func() {
		if c.Bool("once") {
			once.Do(func() { close(served) })
		}
	})
	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("archive server stopped", "error", err)
		}
	}()

	url := fmt.Sprintf("http://%s%s", listener.Addr().String(), DownloadPath(token))
	reporter.Success(fmt.Sprintf("%d audios ready (%s). Download: %s",
		summary.Fetched, humanize.Bytes(uint64(len(data))), url))
	reporter.WarnFailures(summary)
	if err := utils.OpenBrowser(url); err != nil {
		reporter.Warn(fmt.Sprintf("Please open the following URL in your browser: %s", url))
	}

	select {
	case <-ctx.Done():
	case <-served:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// DownloadPath is the one-time path the archive is served under
func DownloadPath(token string) string {
	return "/" + token + "/" + archive.FileName
}

// NewArchiveHandler serves data as audios_descargados.zip on DownloadPath(token).
// onServed runs after every complete response.
func NewArchiveHandler(data []byte, token string, onServed func()) http.Handler {
	path := DownloadPath(token)
	modTime := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", archive.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.FileName))
		http.ServeContent(w, r, archive.FileName, modTime, bytes.NewReader(data))

		if r.Method == http.MethodGet && onServed != nil {
			onServed()
		}
	})
}

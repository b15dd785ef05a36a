package actions

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"voxport/internal/archive"
	"voxport/internal/porter"
)

// DownloadHistory fetches every clip in the history and writes audios_descargados.zip,
// or loose mp3 files when --folder is set
func DownloadHistory(c *cli.Context) error {
	cred, err := promptCredential(c)
	if err != nil {
		return err
	}

	reporter := NewConsoleReporter(c.App.Writer, nil)
	p, err := newPorter(c, reporter)
	if err != nil {
		return err
	}

	folder := c.String("folder")
	var (
		summary porter.Summary
		zipped  *bytes.Reader
	)

	download := func(ctx context.Context) error {
		if folder != "" {
			sink, err := archive.NewDirWriter(folder)
			if err != nil {
				return err
			}
			summary, err = p.Collect(ctx, cred, sink)
			return err
		}
		var err error
		zipped, summary, err = p.DownloadArchive(ctx, cred)
		return err
	}

	err = spinner.New().Title("Downloading audio history...").Context(c.Context).ActionWithErr(download).Run()
	reporter.Flush()
	if isEmptyResult(err) {
		reporter.Warn(fmt.Sprintf("No audio to download: %v", err))
		return nil
	}
	if err != nil {
		return err
	}

	if folder != "" {
		reporter.Success(fmt.Sprintf("Download complete! %d files (%s) saved to %s",
			summary.Fetched, humanize.Bytes(uint64(summary.Bytes)), folder))
		reporter.WarnFailures(summary)
		return nil
	}

	dest, err := resolveOutputPath(c.String("output"))
	if err != nil {
		return err
	}
	if err := writeArchive(dest, zipped); err != nil {
		return err
	}

	reporter.Success(fmt.Sprintf("Download complete! %d of %d audios saved to %s (%s)",
		summary.Fetched, summary.Listed, dest, humanize.Bytes(uint64(zipped.Size()))))
	reporter.WarnFailures(summary)
	return nil
}

// resolveOutputPath places the archive inside dest when dest is a directory
func resolveOutputPath(dest string) (string, error) {
	if dest == "" {
		return archive.FileName, nil
	}
	info, err := os.Stat(dest)
	if err == nil && info.IsDir() {
		return filepath.Join(dest, archive.FileName), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking output path: %w", err)
	}
	return dest, nil
}

func writeArchive(dest string, r io.Reader) error {
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("error creating archive file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("error writing archive: %w", err)
	}
	return file.Close()
}

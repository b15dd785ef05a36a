package actions

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v2"

	"voxport/internal/history"
)

// ListHistory enumerates the history and optionally writes a CSV manifest
func ListHistory(c *cli.Context) error {
	cred, err := promptCredential(c)
	if err != nil {
		return err
	}

	reporter := NewConsoleReporter(c.App.Writer, nil)
	p, err := newPorter(c, reporter)
	if err != nil {
		return err
	}

	var records []history.Record
	list := func(ctx context.Context) error {
		var err error
		records, err = p.ListAll(ctx, cred)
		return err
	}
	if err := spinner.New().Title("Fetching audio history...").Context(c.Context).ActionWithErr(list).Run(); err != nil {
		return err
	}

	if len(records) == 0 {
		reporter.Warn("No audio found in history.")
		return nil
	}
	reporter.Listed(len(records))
	reporter.Flush()

	if dest := c.String("csv"); dest != "" {
		if err := p.ExportManifestCSV(records, dest); err != nil {
			return err
		}
		reporter.Success(fmt.Sprintf("Manifest written to %s", dest))
	}
	return nil
}

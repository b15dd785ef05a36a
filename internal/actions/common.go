package actions

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"voxport/internal/adapters"
	"voxport/internal/history"
	"voxport/internal/porter"
)

// Flag names shared by the commands
const (
	FlagAPIKey   = "api-key"
	FlagBaseURL  = "base-url"
	FlagTimeout  = "timeout"
	FlagVerbose  = "verbose"
	FlagPlatform = "platform"
)

// SetupLogger installs the process-wide logger; every line carries a session id
func SetupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

// newPorter builds a porter from the global flags
func newPorter(c *cli.Context, reporter porter.Reporter) (*porter.Porter, error) {
	opts := adapters.Options{
		BaseURL: c.String(FlagBaseURL),
		Timeout: c.Duration(FlagTimeout),
		Logger:  slog.Default(),
	}
	return porter.NewPorterWithOptions(c.String(FlagPlatform), opts, reporter)
}

// promptCredential takes the key from --api-key or asks for it with masked input
func promptCredential(c *cli.Context) (history.Credential, error) {
	key := c.String(FlagAPIKey)
	if key == "" {
		err := huh.NewInput().
			Title("Enter your ElevenLabs API key").
			EchoMode(huh.EchoModePassword).
			Validate(validateKey).
			Value(&key).
			Run()
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
	}

	key = strings.TrimSpace(key)
	if err := validateKey(key); err != nil {
		return "", err
	}
	return history.Credential(key), nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return adapters.ErrMissingCredential
	}
	return nil
}

// isEmptyResult reports the "nothing to download" state
func isEmptyResult(err error) bool {
	return errors.Is(err, porter.ErrEmptyResult)
}

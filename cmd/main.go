package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"voxport/internal/actions"
	"voxport/internal/adapters"
	"voxport/internal/archive"
)

func main() {
	app := &cli.App{
		Name:  "voxport",
		Usage: "Voxport is a CLI tool to download your whole text-to-speech audio history as one zip archive.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    actions.FlagPlatform,
				Usage:   "provider to download from",
				Value:   string(adapters.ElevenLabsPlatform),
				EnvVars: []string{"VOXPORT_PLATFORM"},
			},
			&cli.StringFlag{
				Name:    actions.FlagBaseURL,
				Usage:   "base URL of the provider API",
				Value:   adapters.DefaultBaseURL,
				EnvVars: []string{"ELEVENLABS_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:    actions.FlagTimeout,
				Usage:   "timeout for each API request",
				Value:   adapters.DefaultTimeout,
				EnvVars: []string{"VOXPORT_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:    actions.FlagVerbose,
				Aliases: []string{"v"},
				Usage:   "log every request to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			actions.SetupLogger(c.App.ErrWriter, c.Bool(actions.FlagVerbose))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "download",
				Usage:  "Download every audio in the history",
				Flags:  append(keyFlags(), downloadFlags()...),
				Action: actions.DownloadHistory,
			},
			{
				Name:  "list",
				Usage: "List the audio history",
				Flags: append(keyFlags(), &cli.StringFlag{
					Name:  "csv",
					Usage: "write a CSV manifest of the history to `FILE`",
				}),
				Action: actions.ListHistory,
			},
			{
				Name:  "serve",
				Usage: "Build the archive and offer it as a browser download",
				Flags: append(keyFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "local address to serve the archive on",
						Value: "127.0.0.1:0",
					},
					&cli.BoolFlag{
						Name:  "once",
						Usage: "stop after the archive was downloaded once",
						Value: true,
					},
				),
				Action: actions.ServeHistory,
			},
		},
	}

	// .env only carries non-secret settings; the API key is always asked for
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println("failed to load .env:", err)
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func keyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  actions.FlagAPIKey,
			Usage: "API key (prompted for when omitted)",
		},
	}
}

func downloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "archive path or directory",
			Value:   archive.FileName,
		},
		&cli.StringFlag{
			Name:  "folder",
			Usage: "save loose mp3 files into `DIR` instead of a zip",
		},
	}
}

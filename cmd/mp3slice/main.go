// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ik5/mp3slice/audio"
	"github.com/ik5/mp3slice/formats/aiff"
	"github.com/ik5/mp3slice/formats/flac"
	"github.com/ik5/mp3slice/formats/mp3"
	"github.com/ik5/mp3slice/formats/vorbis"
	"github.com/ik5/mp3slice/formats/wav"
	"github.com/ik5/mp3slice/internal/cli"
	"github.com/ik5/mp3slice/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const stdinPath = "-"

type App struct {
	cfg      *Config
	log      *logrus.Logger
	registry *audio.Registry

	stdin func() ([]byte, error)
}

func newRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("wav", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

func newRootCmd() *cobra.Command {
	app := &App{registry: newRegistry()}

	rootCmd := &cobra.Command{
		Use:           "mp3slice",
		Short:         "Probe audio streams and decode windows of PCM out of them",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
			HiddenDefaultCmd:  true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd)
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("format", "", fmt.Sprintf("Decode as this format instead of guessing from the extension (%v)", app.registry.Formats()))

	rootCmd.AddCommand(newProbeCmd(app), newReadCmd(app))

	return rootCmd
}

func (app *App) init(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	app.cfg, err = loadConfig(path, cmd.Flags())
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(app.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	app.log = logrus.New()
	app.log.SetOutput(cmd.ErrOrStderr())
	app.log.SetLevel(level)

	in := cmd.InOrStdin()
	app.stdin = sync.OnceValues(func() ([]byte, error) {
		return io.ReadAll(in)
	})

	return nil
}

func (app *App) logger(cmd string) audio.Logger {
	return LogrusAdapter{app.log.WithField("cmd", cmd)}
}

// input resolves path to a source and the decoder to open it with. Standard
// input is read into memory once and decoded as MP3 unless a format is set.
func (app *App) input(path string) (source.Source, audio.Decoder, error) {
	var src source.Source
	if path == stdinPath {
		data, err := app.stdin()
		if err != nil {
			return source.Source{}, nil, fmt.Errorf("failed reading standard input: %w", err)
		}
		src = source.Buffer(data)
	} else {
		src = source.File(path)
	}

	switch {
	case app.cfg.Format != "":
		dec, ok := app.registry.Get(app.cfg.Format)
		if !ok {
			return source.Source{}, nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, app.cfg.Format)
		}
		return src, dec, nil
	case path == stdinPath:
		return src, mp3.Decoder{}, nil
	default:
		dec, err := app.registry.Lookup(path)
		if err != nil {
			return source.Source{}, nil, err
		}
		return src, dec, nil
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

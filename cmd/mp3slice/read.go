// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/ik5/mp3slice/internal/cli"
	"github.com/ik5/mp3slice/session"
	"github.com/spf13/cobra"
)

type readOptions struct {
	start  uint64
	frames uint64
	out    string
}

func newReadCmd(app *App) *cobra.Command {
	var opts readOptions

	cmd := &cobra.Command{
		Use:   "read PATH",
		Short: "Decode a window of frames to raw float32 or 16-bit WAV",
		Long: "Read opens the input without a length scan, seeks to --start and decodes " +
			"until --frames frames are written or the stream ends. Use - to read from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.read(cmd, args[0], opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.start, "start", 0, "First frame to decode")
	cmd.Flags().Uint64Var(&opts.frames, "frames", 0, "Number of frames to decode, 0 reads to the end")
	cmd.Flags().StringVarP(&opts.out, "out", "o", stdinPath, "Output file, - for standard output")
	cmd.Flags().Int("buffer-frames", DefaultBufferFrames, "Frames decoded per read")
	cmd.Flags().String("output-format", DefaultOutputFormat, "Output encoding: raw (float32 little-endian) or wav (16-bit PCM)")

	return cmd
}

func (app *App) read(cmd *cobra.Command, path string, opts readOptions) (err error) {
	src, dec, err := app.input(path)
	if err != nil {
		return err
	}

	s, err := session.Open(dec, src, session.Config{SkipScan: true, Log: app.logger("read")})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	if opts.start != 0 {
		if err := s.Seek(opts.start); err != nil {
			return err
		}
	}

	info := s.Info()
	ch := uint64(info.Channels)

	out, err := newSink(app.cfg.Read.OutputFormat, opts.out, cmd.OutOrStdout(), int(info.SampleRate), int(info.Channels))
	if err != nil {
		return err
	}

	buf := make([]float32, uint64(app.cfg.Read.BufferFrames)*ch)
	var total uint64
	for opts.frames == 0 || total < opts.frames {
		var bound uint64
		if opts.frames != 0 {
			bound = opts.frames - total
		}

		res, err := s.Read(buf, bound)
		if err != nil {
			return errors.Join(err, out.Abort())
		}
		if res.Frames == 0 {
			break
		}

		if err := out.Write(buf[:res.Frames*ch]); err != nil {
			return errors.Join(err, out.Abort())
		}
		total += res.Frames
	}

	if err := out.Close(); err != nil {
		return err
	}

	window := session.Info{SampleRate: info.SampleRate, Frames: total}
	cli.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("%s: %d frames (%s) from frame %d",
		path, total, cli.FormatDuration(window.Duration()), opts.start))
	if opts.frames != 0 && total < opts.frames {
		cli.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("stream ended %d frames early", opts.frames-total))
	}

	return nil
}

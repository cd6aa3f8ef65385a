// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/mp3slice/internal/cli"
	"github.com/ik5/mp3slice/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type probeResult struct {
	info session.Info
	err  error
}

func newProbeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe PATH...",
		Short: "Print frame count, channels, sample rate and duration",
		Long:  "Probe scans every input to learn its exact length. Use - to read from standard input.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.probe(cmd, args)
		},
	}
	cmd.Flags().Int("jobs", DefaultJobs, "Number of inputs probed at once")

	return cmd
}

func (app *App) probe(cmd *cobra.Command, paths []string) error {
	results := make([]probeResult, len(paths))

	// sessions share nothing, so each input gets its own goroutine
	g := new(errgroup.Group)
	g.SetLimit(app.cfg.Jobs)

	for i, path := range paths {
		g.Go(func() error {
			results[i].info, results[i].err = app.probeOne(path)
			return results[i].err
		})
	}
	err := g.Wait()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			cli.PrintError(errOut, fmt.Sprintf("%s: %v", paths[i], res.err))
			continue
		}

		fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%s\n", paths[i],
			res.info.Frames, res.info.Channels, res.info.SampleRate,
			cli.FormatDuration(res.info.Duration()))
	}

	if err != nil {
		return fmt.Errorf("%d of %d inputs could not be probed: %w", failed, len(paths), err)
	}

	return nil
}

func (app *App) probeOne(path string) (session.Info, error) {
	src, dec, err := app.input(path)
	if err != nil {
		return session.Info{}, err
	}

	s, err := session.Open(dec, src, session.Config{Log: app.logger("probe")})
	if err != nil {
		return session.Info{}, err
	}
	defer s.Close()

	return s.Info(), nil
}

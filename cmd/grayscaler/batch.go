package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skryldev/grayscaler/core"
	"github.com/Skryldev/grayscaler/display"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE...",
		Short: "Convert many images concurrently on the worker pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.conv.Start()
			defer a.conv.Stop()

			results := make(chan core.JobResult, len(args))
			names := make(map[string]string, len(args))
			order := make([]string, 0, len(args))
			failed := 0

			for _, name := range args {
				input, err := readFile(cmd, a, name)
				if err == nil {
					var id string
					id, err = a.conv.Submit(core.Job{Ctx: cmd.Context(), Input: input, ResultCh: results})
					if err == nil {
						names[id] = name
						order = append(order, id)
						continue
					}
				}
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
			}

			// Collect everything, then print in argument order.
			done := make(map[string]core.JobResult, len(order))
			for range order {
				select {
				case res := <-results:
					done[res.JobID] = res
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}

			surface := a.surface(cmd)
			for _, id := range order {
				res := done[id]
				if res.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", names[id], res.Err)
					continue
				}
				if err := surface.Show(cmd.Context(), display.FromResult(res.Result, a.cfg.AltText)); err != nil {
					return err
				}
			}

			processed, errs := a.conv.Stats()
			a.log.Info("batch.done", zap.Int64("processed", processed), zap.Int64("errors", errs))
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(args))
			}
			return nil
		},
	}
}

func readFile(cmd *cobra.Command, a *app, name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readInput(cmd, a, f)
}

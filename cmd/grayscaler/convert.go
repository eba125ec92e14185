package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Skryldev/grayscaler/display"
	"github.com/Skryldev/grayscaler/utils"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [FILE|-]",
		Short: "Convert one image read from FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			input, err := readInput(cmd, a, r)
			if err != nil {
				return err
			}
			res, err := a.conv.Convert(cmd.Context(), input)
			if err != nil {
				return err
			}
			return a.surface(cmd).Show(cmd.Context(), display.FromResult(res, a.cfg.AltText))
		},
	}
}

// readInput reads the whole input and drops surrounding whitespace, such as
// the trailing newline of a text file.
func readInput(cmd *cobra.Command, a *app, r io.Reader) (string, error) {
	limit := a.cfg.MaxInputBytes
	if limit > 0 {
		// Leave room for whitespace; the converter enforces the real limit.
		limit += 1024
	}
	s, err := utils.ReadAllString(cmd.Context(), r, a.cfg.ChunkSize, limit)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

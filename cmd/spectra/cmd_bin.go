package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spectra/spectrum/hist"
)

func newBinCmd(a *app) *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "bin SAMPLES DST",
		Short: "Bin raw samples into a histogram with Poisson errors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if bins <= 0 {
				return fmt.Errorf("--bins must be > 0, got %d", bins)
			}
			data, err := readSamples(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
				if err != nil {
					err = errors.Join(err, os.Remove(args[1]))
				}
			}()

			if err := hist.WriteSamples(f, data, bins); err != nil {
				return err
			}
			a.logger("bin").WithField("dst", args[1]).Infof("binned %d samples into %d bins", len(data), bins)
			return nil
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 10, "number of equal-width bins")
	return cmd
}

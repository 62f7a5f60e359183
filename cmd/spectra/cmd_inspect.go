package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spectra/spectrum/hist"
)

func newInspectCmd(a *app) *cobra.Command {
	var bin int

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the bins of a histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hist.Load(args[0])
			if err != nil {
				return err
			}
			a.logger("inspect").WithField("file", args[0]).Debugf("loaded %d bins", h.Size())

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("bin") {
				if err := checkBin(h, bin); err != nil {
					return err
				}
				printBin(out, h, bin)
				return nil
			}
			fmt.Fprintf(out, "bins: %d\n", h.Size())
			for i := 0; i < h.Size(); i++ {
				printBin(out, h, i)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bin, "bin", 0, "only print this bin")
	return cmd
}

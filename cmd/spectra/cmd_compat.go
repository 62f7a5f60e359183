package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spectra/spectrum/hist"
)

func newCompatCmd(a *app) *cobra.Command {
	var sigma float64

	cmd := &cobra.Command{
		Use:   "compat A B",
		Short: "Count bins where A and B disagree by more than sigma times their error difference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sigma") {
				sigma = a.cfg.Sigma
			}
			ha, err := hist.Load(args[0])
			if err != nil {
				return err
			}
			hb, err := hist.Load(args[1])
			if err != nil {
				return err
			}
			n, err := ha.CheckCompatibility(hb, sigma)
			if err != nil {
				return err
			}
			a.logger("compat").WithField("sigma", sigma).Debugf("%s vs %s", args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "incompatible bins: %d/%d (%g standard deviations)\n", n, ha.Size(), sigma)
			return nil
		},
	}

	cmd.Flags().Float64Var(&sigma, "sigma", 0, "number of standard deviations (default from config)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spectra/spectrum/hist"
)

func newChisqCmd(a *app) *cobra.Command {
	var dof float64

	cmd := &cobra.Command{
		Use:   "chisq FILE",
		Short: "Reduced chi-square of a histogram against the configured background model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dof") {
				dof = a.cfg.DOF
			}
			h, err := hist.Load(args[0])
			if err != nil {
				return err
			}
			res, err := h.ChiSquareTest(a.cfg.Background.Model(), dof)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chi2/dof = %g (chi2 %g, dof %g, p %g)\n", res.Reduced, res.Chi2, res.DOF, res.PValue)
			return nil
		},
	}

	cmd.Flags().Float64Var(&dof, "dof", 0, "degrees of freedom (default from config)")
	return cmd
}

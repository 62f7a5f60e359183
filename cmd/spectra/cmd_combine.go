package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"spectra/spectrum/combine"
)

func newCombineCmd(a *app) *cobra.Command {
	var native bool

	cmd := &cobra.Command{
		Use:   "combine DST SRC1 SRC2 [SRC...]",
		Short: "Inverse-variance weighted average of histograms",
		Long: `Combine sources pairwise from left to right, each intermediate result
going through the text layout, and write the result to DST.
With --native all sources are averaged in one pass.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, srcs := args[0], args[1:]
			if err := combine.CombineFiles(dst, native, srcs...); err != nil {
				return err
			}
			a.logger("combine").WithFields(logrus.Fields{"dst": dst, "sources": len(srcs), "native": native}).Info("combined")
			return nil
		},
	}

	cmd.Flags().BoolVar(&native, "native", false, "average all sources in one pass")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"spectra/spectrum/combine"
	"spectra/spectrum/hist"
)

func newReportCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compare and combine the configured datasets",
		Long: `Load every dataset listed in the config, print the configured bin of each,
the pairwise compatibility at the configured sigma, the running average and
the reduced chi-square against the background model.
With --out-dir every intermediate average is written as average_<a>_<b>...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.OutOrStdout(), outDir)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "write intermediate averages to this directory")
	return cmd
}

func (a *app) report(out io.Writer, outDir string) error {
	cfg := a.cfg
	if len(cfg.Datasets) < 2 {
		return fmt.Errorf("report needs at least 2 datasets, config has %d", len(cfg.Datasets))
	}
	log := a.logger("report")

	names := make([]string, len(cfg.Datasets))
	hs := make([]*hist.Histogram, len(cfg.Datasets))
	for i, path := range cfg.Datasets {
		h, err := hist.Load(path)
		if err != nil {
			return err
		}
		if err := checkBin(h, cfg.ReportBin); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		names[i], hs[i] = datasetName(path), h
		log.WithFields(logrus.Fields{"dataset": names[i], "bins": h.Size()}).Debug("loaded")
	}

	// averages[k-1] 为前 k+1 个数据集的平均
	averages := make([]*hist.Histogram, 0, len(hs)-1)
	_, err := combine.ChainSteps(hs, func(k int, avg *hist.Histogram, raw []byte) error {
		if outDir != "" {
			path := filepath.Join(outDir, "average_"+strings.Join(names[:k+1], "_"))
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return err
			}
			log.WithField("file", path).Info("average written")
		}
		averages = append(averages, avg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("average %s: %w", strings.Join(names, " "), err)
	}

	bin := cfg.ReportBin
	fmt.Fprintf(out, "bin %d: from %g to %g\n", bin, hs[0].BinLow(bin), hs[0].BinHigh(bin))
	for i, h := range hs {
		fmt.Fprintf(out, "measurement of experiment %s in bin %d: %g +/- %g\n", names[i], bin, h.Measurement(bin), h.Error(bin))
	}
	for i := 0; i < len(hs); i++ {
		for j := i + 1; j < len(hs); j++ {
			n, err := hs[i].CheckCompatibility(hs[j], cfg.Sigma)
			if err != nil {
				return fmt.Errorf("compatibility %s %s: %w", names[i], names[j], err)
			}
			fmt.Fprintf(out, "compatibility of experiment %s and %s (%g standard deviations): %d\n", names[i], names[j], cfg.Sigma, n)
		}
	}
	fmt.Fprintf(out, "average of experiment %s and %s in bin %d: %g +/- %g\n",
		names[0], names[1], bin, averages[0].Measurement(bin), averages[0].Error(bin))

	model := cfg.Background.Model()
	first, err := hs[0].ChiSquare(model, cfg.DOF)
	if err != nil {
		return fmt.Errorf("chi-square %s: %w", names[0], err)
	}
	fmt.Fprintf(out, "chi-square test of %s: %g\n", names[0], first)

	all, err := averages[len(averages)-1].ChiSquare(model, cfg.DOF)
	if err != nil {
		return fmt.Errorf("chi-square of the combination: %w", err)
	}
	fmt.Fprintf(out, "chi-square test of the combination of all %d datasets: %g\n", len(hs), all)
	return nil
}

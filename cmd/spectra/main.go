package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"spectra/config"
	"spectra/infra/logx"
)

type app struct {
	cfgPath  string
	logLevel string
	logFile  string

	cfg      *config.Config
	log      *logrus.Logger
	closeLog func() error
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "spectra",
		Short: "Compare, combine and fit binned spectra",
		Long: `spectra works on histograms stored in the plain text layout

  N
  edge_0 ... edge_N
  value_0 ... value_{N-1}
  error_0 ... error_{N-1}`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write logs to this rotated file")

	root.AddCommand(
		newInspectCmd(a),
		newCompatCmd(a),
		newCombineCmd(a),
		newChisqCmd(a),
		newBinCmd(a),
		newReportCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	// 拷贝一份, flag 覆盖不影响全局配置
	cfg := *config.Default()
	if a.cfgPath != "" {
		if err := config.Init(a.cfgPath); err != nil {
			return err
		}
		cfg = *config.Current()
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	log, closeLog, err := logx.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg, a.log, a.closeLog = &cfg, log, closeLog
	a.log.WithFields(logrus.Fields{"config": a.cfgPath, "dof": cfg.DOF, "sigma": cfg.Sigma}).Debug("config loaded")
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

func (a *app) logger(module string) *logrus.Entry {
	return a.log.WithFields(logrus.Fields{"module": module})
}

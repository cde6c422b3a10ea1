package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pubident/internal/app"
)

var (
	home       string
	configPath string
	passphrase string
	metricsOut string

	cfg    app.Config
	logger *slog.Logger
	appCtx *app.App
	wire   *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "identctl",
		Short:         "Issue and verify server and person self-idents",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if home != "" {
				cfg.Home = home
			}
			if metricsOut != "" {
				cfg.MetricsOut = metricsOut
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			logger = app.NewLogger(cfg, cmd.ErrOrStderr())
			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			wire = w
			appCtx = app.FromWire(w)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.pubident)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the keyrings")
	root.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", "write Prometheus metrics to this file after the command")

	root.AddCommand(
		keygenCmd(),
		serverCmd(),
		personCmd(),
		vouchCmd(),
		verifyCmd(),
		peekCmd(),
		fingerprintCmd(),
	)
	err := root.Execute()
	// Written even when the command failed, so rejections are counted.
	if wire != nil {
		if werr := wire.WriteMetrics(); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

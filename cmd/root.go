package cmd

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-builder/internal/config"
	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

var (
	version    = "dev"
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "portfolio",
	Short:   "Build a portfolio from projects, skills and achievements",
	Version: version,
	Long: `portfolio runs an editing session for a personal portfolio and renders it
into one of the classic, creative or modern templates.

Everything lives in memory for the length of the session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return errors.Wrap(err, "loading config")
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
}

// newSession builds the store for one session from the configured seed.
func newSession() (*portfolio.Store, error) {
	seed, err := portfolio.LoadSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}
	opts := []portfolio.Option{portfolio.WithLogger(logger), portfolio.WithSeed(seed)}
	if cfg.DefaultTemplate != "" && (seed == nil || seed.Template == "") {
		opts = append(opts, portfolio.WithTemplate(cfg.DefaultTemplate))
	}
	return portfolio.New(opts...), nil
}

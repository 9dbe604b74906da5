package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-builder/internal/analytics"
	"github.com/Zachkp/portfolio-builder/internal/importer"
	"github.com/Zachkp/portfolio-builder/internal/render"
	"github.com/Zachkp/portfolio-builder/internal/share"
	"github.com/Zachkp/portfolio-builder/internal/web"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an editing session on the web",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.Port = servePort
		}
		gin.SetMode(cfg.GinMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := newSession()
		if err != nil {
			return err
		}
		defer store.Close()

		renderer, err := render.New()
		if err != nil {
			return err
		}

		tracker, err := analytics.Open(ctx, cfg.AnalyticsDSN, logger)
		if err != nil {
			return err
		}
		defer tracker.Close()
		go cleanupLoop(ctx, tracker, cfg.AnalyticsRetention)

		srv := web.New(web.Deps{
			Store:    store,
			Renderer: renderer,
			Importer: importer.NewSimulated(cfg.ImportDelay),
			Tracker:  tracker,
			Mailer:   share.NewSMTPMailer(cfg.SMTP(), logger),
			Logger:   logger,
			BaseURL:  cfg.BaseURL,
		})
		return srv.Run(ctx, cfg.Addr())
	},
}

// cleanupLoop drops expired visitor records at startup and then daily.
func cleanupLoop(ctx context.Context, tracker *analytics.Tracker, retention time.Duration) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := tracker.Cleanup(ctx, retention); err != nil {
			logger.Warn("visitor cleanup failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

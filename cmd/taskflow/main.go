package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kovalchuka569/taskflow/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "taskflow",
	Short:         "taskflow - project todo service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()
		cfg, err := app.LoadConfig(log)
		if err != nil {
			return err
		}
		return app.Migrate(log, cfg)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}

	log.Info("Loading configuration...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Sync()
		return err
	}

	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown failed", "error", err)
		}
		return a.Close(shutdownCtx)
	})
	return g.Wait()
}

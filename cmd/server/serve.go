package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"placement-prep/internal/app"
	"placement-prep/internal/database/migration"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the interview websocket feed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(commandContext(cmd))
	},
}

// addServeFlags registers the serve flags on cmd. The root command gets them too because it serves by default.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&migrateOnStart, "migrate-on-start", false, "apply pending migrations before serving")
}

func serve(parent context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer syncLogger(log)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateOnStart {
		if err := (migration.Runner{FS: migration.Embedded(), Logger: log}).Run(ctx, container.DB.SQLDB()); err != nil {
			_ = container.Close()
			return fmt.Errorf("migrate: %w", err)
		}
	}

	bootstrap, cleanup, err := app.Bootstrap(container)
	if err != nil {
		_ = container.Close()
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}
	wsAddr, err := app.ListenAddr(cfg.App.WSPort)
	if err != nil {
		return fmt.Errorf("invalid websocket port: %w", err)
	}
	wsServer := &http.Server{Addr: wsAddr, Handler: bootstrap.WS, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		container.Hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", addr), zap.String("env", cfg.App.Environment))
		return bootstrap.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	})
	g.Go(func() error {
		log.Info("websocket feed listening", zap.String("addr", wsAddr))
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return errors.Join(
			bootstrap.Fiber.ShutdownWithContext(shutdownCtx),
			wsServer.Shutdown(shutdownCtx),
		)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

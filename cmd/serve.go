package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"isimm-manager/db"
	"isimm-manager/handlers"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var noSeed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and the niveau pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, !noSeed)
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not add sample niveaus to an empty store")
	return cmd
}

func (a *app) openStore(ctx context.Context) (*db.RedisService, func(), error) {
	client, err := db.InitializeRedisClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("Connected to Redis", zap.String("addr", a.cfg.Redis.Addr), zap.Int("db", a.cfg.Redis.DB))
	return db.NewRedisService(client, a.logger), func() { _ = client.Close() }, nil
}

func (a *app) serve(ctx context.Context, seed bool) error {
	service, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if seed {
		if _, err := service.SeedIfEmpty(ctx); err != nil {
			// The API still works on an unseeded store
			a.logger.Warn("Could not seed niveaus", zap.Error(err))
		}
	}

	gin.SetMode(a.cfg.Server.Mode)
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           handlers.NewRouter(service, a.cfg.App.Name, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

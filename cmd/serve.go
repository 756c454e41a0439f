package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"momo-store/db"
	"momo-store/server"
	"momo-store/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	if err := db.Init(ctx, cfg.DB); err != nil {
		return err
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	if cfg.HTTP.AutoMigrate {
		if err := db.ApplyMigrations(ctx, false); err != nil {
			return err
		}
	}

	var st store.Store = store.NewPostgres(db.Pool)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, menu cache disabled")
		} else {
			st = store.NewCachedStore(st, rdb, cfg.Redis.MenuCacheTTL)
		}
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: server.New(st,
			server.WithDeliveryCharge(cfg.Checkout.DeliveryCharge),
			server.WithLogger(log.Logger),
		).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

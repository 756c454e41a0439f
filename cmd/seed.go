package cmd

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"momo-store/db"
	"momo-store/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample menu and reviews into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := db.Init(ctx, cfg.DB); err != nil {
			return err
		}
		defer db.Close()

		seeded, err := store.NewPostgres(db.Pool).Seed(ctx)
		if err != nil {
			return err
		}
		if !seeded || cfg.Redis.Addr == "" {
			return nil
		}
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()
		if err := store.InvalidateMenu(ctx, rdb); err != nil {
			log.Warn().Err(err).Msg("menu cache not invalidated")
		}
		return nil
	},
}

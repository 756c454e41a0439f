package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"momo-store/bot"
	"momo-store/client"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram storefront against API_URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Telegram.Token == "" {
			return errors.New("TOKEN not set")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api := client.New(cfg.API.BaseURL, client.WithTimeout(cfg.API.Timeout))
		b, err := bot.New(cfg, api)
		if err != nil {
			return err
		}
		log.Info().Str("api", cfg.API.BaseURL).Msg("bot starting")
		b.Start(ctx)
		return nil
	},
}

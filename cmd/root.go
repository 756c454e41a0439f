package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"momo-store/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "momo-store",
	Short: "Momo restaurant storefront: REST API and Telegram ordering bot",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		setupLogger(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, botCmd, migrateCmd, seedCmd)
}

// setupLogger configures the global zerolog logger. Unknown levels fall back
// to info.
func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

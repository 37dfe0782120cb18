package main

import (
	"github.com/diewo77/cobranzas/internal/config"
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "cobranzas",
	Short: "Local replica and aggregation service for receivables collection",
	Long: `cobranzas keeps a local mirror of the receivables data of a seller
(clients, documents, events, line items, monthly sales) and computes the
collection dashboard figures entirely from that mirror, so the app keeps
working when the remote ERP bridge is slow or unreachable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Environment variables win over .env entries.
		_ = godotenv.Load()
		cfg = config.Load()
		return logger.Setup(logger.LogConfig{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: "stderr",
		})
	},
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.DatabaseDSN)
}

func init() {
	rootCmd.AddCommand(serveCmd, syncCmd, stateCmd, clearCmd)
}

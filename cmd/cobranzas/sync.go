package main

import (
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/remote"
	"github.com/diewo77/cobranzas/internal/syncer"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	syncSellerCode string
	syncUsername   string
	syncFullName   string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local replica from the remote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncSellerCode == "" {
			return fmt.Errorf("--seller is required")
		}
		log := logger.WithComponent("sync")

		st, err := openStore()
		if err != nil {
			return err
		}
		rc := remote.NewClient(cfg.RemoteURL, remote.NoAuth{})
		sy := syncer.New(rc, st, func(p syncer.Progress) {
			fmt.Printf("[%3d%%] %s\n", p.Percentage, p.Step)
		})

		result, err := sy.Run(cmd.Context(), syncer.UserInfo{
			Username:   syncUsername,
			FullName:   syncFullName,
			SellerCode: syncSellerCode,
		})
		if err != nil {
			return err
		}
		log.Info().
			Int("clientes", result.ClientsImported).
			Int("documentos", result.DocumentsImported).
			Int("eventos", result.EventsImported).
			Msg("sync completed")
		fmt.Printf("imported %d clients, %d sellers, %d documents, %d events, %d lines, %d months\n",
			result.ClientsImported, result.SellersImported, result.DocumentsImported,
			result.EventsImported, result.LinesImported, result.MonthsImported)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncSellerCode, "seller", "", "seller code to sync data for")
	syncCmd.Flags().StringVar(&syncUsername, "user", "", "username recorded in the replica metadata")
	syncCmd.Flags().StringVar(&syncFullName, "name", "", "full name recorded in the replica metadata")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show what the local replica holds and when it was refreshed",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		counts, err := st.Counts()
		if err != nil {
			return err
		}
		if last, ok, err := st.GetMetadata("last_sync"); err != nil {
			return err
		} else if ok {
			fmt.Printf("last sync: %s\n", last)
		} else {
			fmt.Println("last sync: never")
		}
		for _, table := range []string{"clients", "sellers", "documents", "events", "document_lines", "monthly_sales"} {
			fmt.Printf("%-16s %d\n", table, counts[table])
		}
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearYes          bool
	clearKeepMetadata bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the local replica",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to wipe the local replica without --yes")
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		if err := st.ClearAll(!clearKeepMetadata); err != nil {
			return err
		}
		fmt.Println("local data cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm the wipe")
	clearCmd.Flags().BoolVar(&clearKeepMetadata, "keep-metadata", false, "keep sync metadata rows")
}

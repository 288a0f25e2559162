package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/mayor-sim/internal/persistence"
)

func newResetCmd(cfgPath *string) *cobra.Command {
	var keepHistory bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored save and month history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStores(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer st.close()

			if err := persistence.ClearGame(cmd.Context(), st.save); err != nil {
				return err
			}
			if !keepHistory {
				if err := st.history.ClearHistory(cmd.Context()); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
			}
			success.Fprintf(cmd.OutOrStdout(), "Save cleared (%s).\n", cfg.Storage.Dialect)
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepHistory, "keep-history", false, "keep the month history table")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add sample niveaus when the store is empty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			seeded, err := service.SeedIfEmpty(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d niveaus\n", seeded)
			return nil
		},
	}
}

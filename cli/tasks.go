package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"hotel-booking/app"
	"hotel-booking/config"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and the default hotel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			if err := config.SeedDefaults(db, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func NewSeedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load hotels, rooms, photos and users from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := config.LoadSeedFile(file)
			if err != nil {
				return err
			}
			ctx := ctxOf(cmd)
			cfg := config.Load()
			deps, err := app.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			sum, err := config.ApplySeed(ctx, deps.DB, deps.Bucket, sf, filepath.Dir(file))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d hotels, %d rooms, %d users, %d photos\n", sum.Hotels, sum.Rooms, sum.Users, sum.Photos)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file")
	return cmd
}

func NewExpirePendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-pending",
		Short: "Cancel stale pending reservations once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(ctxOf(cmd))
			if err != nil {
				return err
			}
			defer a.Close()
			n, err := a.Reservations.ExpireStale(ctxOf(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d reservations expired\n", n)
			return nil
		},
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cli

import (
	"context"
	"log"

	"hotel-booking/app"
	"hotel-booking/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
type RootOptions struct {
	EnvFile string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hotel-booking",
		Short: "Hotel booking API server and maintenance tasks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.EnvFile); err != nil {
				log.Printf("⚠️  %s not found or couldn't load it; continuing with environment variables", opts.EnvFile)
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file merged into the environment")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewExpirePendingCommand())
	return cmd
}

// Execute runs the root command; serve is the default when no subcommand
// is given.
func Execute(args []string) error {
	root := NewRootCommand()
	if len(args) == 0 {
		args = []string{"serve"}
	}
	root.SetArgs(args)
	return root.Execute()
}

// connect loads the configuration and opens every dependency.
func connect(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	deps, err := app.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, deps), nil
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kutbudev/lifedeck-cli/api"
	"github.com/kutbudev/lifedeck-cli/pkg/config"
	"github.com/kutbudev/lifedeck-cli/pkg/repository"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifedeckd",
		Short: "Lifedeck API server",
		Long: `lifedeckd serves the HTTP API the lifedeck CLI talks to.
It owns the PostgreSQL schema and authenticates requests by API key.`,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			router := api.NewRouter(db)
			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.Printf("lifedeckd listening on %s", addr)
			return router.Run(addr)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := repository.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			log.Println("migrations complete")
			return nil
		},
	}
}

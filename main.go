package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reseller/internal/app"
	"reseller/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	loadConfig := func() (*config.Config, error) {
		return config.Load(viper.New(), configFile)
	}

	root := &cobra.Command{
		Use:           "reseller",
		Short:         "Reseller back-end: catalog, referral checkout and order tracking",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json, toml or .env)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and seed the demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return migrate(cfg)
		},
	})

	return root
}

func serve(cfg *config.Config) error {
	server, err := app.New(cfg)
	if err != nil {
		return err
	}

	if err := server.StartEventConsumer(); err != nil {
		// The API keeps working without the consumer; events are still published.
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.Listen()
	}()

	select {
	case <-quit:
		log.Println("Shutting down server...")
	case err := <-listenErr:
		if err != nil {
			server.Close()
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	if err := server.Shutdown(); err != nil {
		return err
	}
	log.Println("Server gracefully stopped")
	return nil
}

func migrate(cfg *config.Config) error {
	if cfg.DBDriver == config.DriverMemory {
		return fmt.Errorf("nothing to migrate for DB_DRIVER %s", cfg.DBDriver)
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := app.Migrate(db); err != nil {
		return err
	}
	log.Printf("Migrated %s database", cfg.DBDriver)

	if cfg.SeedData {
		if err := app.Seed(app.NewStores(db), cfg.SellerPassword); err != nil {
			return err
		}
	}
	return nil
}

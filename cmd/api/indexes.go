package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/harentsoaR/health-record-api/internal/config"
	"github.com/harentsoaR/health-record-api/internal/db"
	"github.com/harentsoaR/health-record-api/internal/store"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes the API relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := db.Connect(cmd.Context(), cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		if err := store.NewUserStore(client.Database(cfg.MongoDatabase)).EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		log.Printf("Indexes ready in database %s", cfg.MongoDatabase)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}

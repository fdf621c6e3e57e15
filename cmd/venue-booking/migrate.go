package main

import (
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}

		if err := model.AutoMigrate(db); err != nil {
			return err
		}

		log.Info().Str("database", cfg.DBName).Msg("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

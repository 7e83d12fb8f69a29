package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thesanatorium/website/internal/database"
)

// sanatorium init-db
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot("init-db")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Initialized the database.")
		return nil
	},
}

// sanatorium seed-db
var seedDBCmd = &cobra.Command{
	Use:   "seed-db",
	Short: "Replace all bookings, products and services with sample data",
	Long: "Deletes every booking, product and service, then inserts the sample\n" +
		"catalogue of 4 services and 8 products. Existing bookings are lost.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot("seed-db")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := database.Seed(cmd.Context(), a.db)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}

		a.log.Info().
			Int64("deleted_bookings", res.DeletedBookings).
			Int64("deleted_products", res.DeletedProducts).
			Int64("deleted_services", res.DeletedServices).
			Msg("old data deleted")
		fmt.Fprintf(cmd.OutOrStdout(), "Database seeded with %d services and %d products.\n", res.Services, res.Products)
		return nil
	},
}

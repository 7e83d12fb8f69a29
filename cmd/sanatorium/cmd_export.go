package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thesanatorium/website/internal/export"
	"github.com/thesanatorium/website/models"
)

var exportOut string

// sanatorium export-bookings
var exportBookingsCmd = &cobra.Command{
	Use:   "export-bookings",
	Short: "Write all booking requests to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot("export")
		if err != nil {
			return err
		}
		defer a.Close()

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("exports/bookings_%s.xlsx", time.Now().Format("2006-01-02"))
		}

		n, err := export.SaveBookings(cmd.Context(), models.NewBookingsRepository(a.db), out)
		if err != nil {
			return err
		}
		a.log.Info().Str("file_path", out).Int("bookings", n).Msg("bookings exported")
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookings to %s\n", n, out)
		return nil
	},
}

func init() {
	exportBookingsCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default exports/bookings_<date>.xlsx)")
}

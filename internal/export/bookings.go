// Package export writes booking requests to spreadsheets for the people
// who follow them up by phone or email.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thesanatorium/website/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var headers = []interface{}{
	"ID", "Created At", "Status", "Full Name", "Email", "Phone",
	"Service", "Plan", "Requested Date", "Message",
}

type BookingLister interface {
	ListAll(ctx context.Context) ([]models.Booking, error)
}

// WriteBookings writes every booking as an xlsx workbook to w and returns
// the number of rows written.
func WriteBookings(ctx context.Context, lister BookingLister, w io.Writer) (int, error) {
	bookings, err := lister.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "J1", style)
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := []interface{}{
			b.ID,
			b.CreatedAt.Format("2006-01-02 15:04"),
			string(b.Status),
			b.FullName,
			b.Email,
			b.PhoneNumber,
			b.Service.Name,
			b.PlanType,
			b.RequestedDate.Format("2006-01-02"),
			b.Message,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("write booking %d: %w", b.ID, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "I", 20)
	_ = f.SetColWidth(sheetName, "J", "J", 50)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(bookings), nil
}

// SaveBookings writes the workbook to path, creating parent directories.
func SaveBookings(ctx context.Context, lister BookingLister, path string) (int, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := WriteBookings(ctx, lister, file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

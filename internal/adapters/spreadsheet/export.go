// Package spreadsheet renders booking rows as an XLSX workbook.
package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"roomcalendar/internal/domain"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeader = []string{
	"Date",
	"Start",
	"End",
	"Room",
	"Event",
	"Point of Contact",
	"Phone",
	"Booking ID",
	"Event ID",
}

var columnWidths = []float64{12, 8, 8, 14, 32, 24, 12, 38, 38}

// SheetName returns the sheet name used for a month, e.g. "2025-06".
func SheetName(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ExportMonth writes one row per booking, in the order given, below a frozen header row.
func ExportMonth(year int, month time.Month, rows []domain.BookingWithEventDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		phone := ""
		if r.PhoneNumber != nil {
			phone = *r.PhoneNumber
		}
		values := []any{
			r.Date.String(), r.StartTime.String(), r.EndTime.String(), r.RoomName,
			r.EventName, r.PocName, phone, r.BookingID, r.EventID,
		}
		if r.RoomName == "" {
			values[3] = r.RoomID
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

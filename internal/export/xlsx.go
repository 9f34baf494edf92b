// Package export renders report rows as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fleetdepot/depot/internal/domain"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	stockSheet = "Stock on hand"
)

var stockHeaders = []string{"Part number", "Description", "Warehouse", "Bin", "Batch", "Received at", "Qty on hand"}

// StockOnHand writes rows as a single-sheet workbook to w.
func StockOnHand(w io.Writer, rows []domain.StockOnHandRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return fmt.Errorf("f.SetSheetName -> %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("f.NewStyle -> %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return fmt.Errorf("f.NewStyle -> %w", err)
	}

	if err = f.SetSheetRow(stockSheet, "A1", &stockHeaders); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(stockHeaders), 1)
	if err = f.SetCellStyle(stockSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("f.SetCellStyle -> %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{r.PartNumber, r.Description, r.Warehouse, r.BinCode, r.BatchNumber, r.ReceivedAt, r.QtyOnHand}
		if err = f.SetSheetRow(stockSheet, cell, &values); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}
	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(6, 2)
		end, _ := excelize.CoordinatesToCellName(6, len(rows)+1)
		if err = f.SetCellStyle(stockSheet, first, end, dateStyle); err != nil {
			return fmt.Errorf("f.SetCellStyle -> %w", err)
		}
	}

	if err = f.SetColWidth(stockSheet, "A", "G", 18); err != nil {
		return fmt.Errorf("f.SetColWidth -> %w", err)
	}
	if err = f.AutoFilter(stockSheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("f.AutoFilter -> %w", err)
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("f.Write -> %w", err)
	}

	return nil
}

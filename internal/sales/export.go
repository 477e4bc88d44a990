package sales

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cobropos/m/domain"
)

const exportSheet = "Ventas"

// WriteWorkbook renders rows as an xlsx workbook with one sheet.
func WriteWorkbook(w io.Writer, rows []domain.DailySale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headers := []string{"Fecha", "Tipo", "ID", "Nombre", "Unidades", "Ingresos"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}

	for i, row := range rows {
		r := i + 2
		values := []any{row.Date, string(row.ItemKind), row.ItemID, row.ItemName, row.UnitsOut, row.RevenueGenerated.InexactFloat64()}
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, r)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

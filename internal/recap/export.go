package recap

import (
	"io"

	"github.com/xuri/excelize/v2"
)

var sheetHeader = []any{"Nom", "Mois", "Heures", "Taux horaire", "Montant"}

// WriteXLSX writes the report as a workbook with one sheet per table. Each
// displayed month is followed by its total row.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Employés"); err != nil {
		return err
	}
	if _, err := f.NewSheet("Clients"); err != nil {
		return err
	}

	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSection(f, "Employés", report.Employees, numberStyle, totalStyle); err != nil {
		return err
	}
	if err := writeSection(f, "Clients", report.Clients, numberStyle, totalStyle); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSection(f *excelize.File, sheet string, section Section, numberStyle, totalStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &sheetHeader); err != nil {
		return err
	}

	row := 2
	for _, subtotal := range section.Subtotals {
		for _, line := range section.Lines {
			if line.Month != subtotal.Month {
				continue
			}
			values := []any{line.Name, line.Month, line.Hours, line.Rate, line.Billed}
			if err := writeRow(f, sheet, row, values, numberStyle); err != nil {
				return err
			}
			row++
		}

		values := []any{"Total", subtotal.Month, subtotal.TotalHours, "", subtotal.TotalBilled}
		if err := writeRow(f, sheet, row, values, totalStyle); err != nil {
			return err
		}
		row++
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return err
	}

	from, _ := excelize.CoordinatesToCellName(3, row)
	to, _ := excelize.CoordinatesToCellName(5, row)
	return f.SetCellStyle(sheet, from, to, style)
}

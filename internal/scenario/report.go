package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Results"

func title(r Result) string {
	if r.Name == "" {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Kind)
}

// WriteText prints results as aligned label/value blocks.
func WriteText(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", title(r))
		for _, row := range r.Rows {
			fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
		}
		if r.Err != nil {
			fmt.Fprintf(tw, "error\t%s\n", r.Err)
		}
	}
	return tw.Flush()
}

// WriteXLSX saves results to a single-sheet workbook at path, one titled
// section per scenario.
func WriteXLSX(path string, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"}})
	if err != nil {
		return err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	errorStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "C00000"}})
	if err != nil {
		return err
	}

	f.SetCellValue(sheetName, "A1", "Item")
	f.SetCellValue(sheetName, "B1", "Value")
	if err := f.SetCellStyle(sheetName, "A1", "B1", headerStyle); err != nil {
		return err
	}

	row := 2
	for i, r := range results {
		if i > 0 {
			row++
		}
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheetName, cell, title(r))
		_ = f.MergeCell(sheetName, cell, fmt.Sprintf("B%d", row))
		_ = f.SetCellStyle(sheetName, cell, fmt.Sprintf("B%d", row), sectionStyle)
		row++

		for _, rr := range r.Rows {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), rr.Label)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rr.Value)
			row++
		}
		if r.Err != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "error")
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Err.Error())
			_ = f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), errorStyle)
			row++
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 40); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

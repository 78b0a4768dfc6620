package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
)

// Sheet names in workbook order.
const (
	SheetArrangements = "Arrangements"
	SheetPlacements   = "Placements"
	SheetFailures     = "Failures"
)

var (
	arrangementHeader = []any{
		"ID", "Orientation", "Main X", "Main Y", "Main Width", "Main Height",
		"Group Side", "Utility Edge", "Utility X", "Utility Y",
		"Reserve X", "Reserve Y", "Reserve Side",
	}
	placementHeader = []any{"Arrangement", "Role", "Name", "Category", "X", "Y", "Width", "Height", "Color"}
	failureHeader   = []any{"Category", "Count", "Hint"}
)

// Workbook builds the XLSX workbook for a document. The caller closes it.
func Workbook(d *Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetArrangements); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetPlacements, SheetFailures} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	steps := []func(*excelize.File, *Document, int) error{
		writeArrangements,
		writePlacements,
		writeFailures,
	}
	for _, step := range steps {
		if err := step(f, d, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX streams the workbook to w.
func WriteXLSX(w io.Writer, d *Document) error {
	f, err := Workbook(d)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, d *Document) error {
	f, err := Workbook(d)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func header(f *excelize.File, sheet string, cols []any, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeArrangements(f *excelize.File, d *Document, style int) error {
	if err := header(f, SheetArrangements, arrangementHeader, style); err != nil {
		return err
	}
	for i, a := range d.Arrangements {
		m, u := a.Main.Rect, a.Utility.Rect
		row := []any{
			a.ID, string(a.Main.Axis), m.X, m.Y, m.W, m.H,
			string(a.Secondary.Side), string(a.Utility.Edge), u.X, u.Y,
		}
		if r, ok := d.reserve(i); ok && r.Found {
			row = append(row, r.Origin.X, r.Origin.Y, r.Side)
		}
		if err := setRow(f, SheetArrangements, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePlacements(f *excelize.File, d *Document, style int) error {
	if err := header(f, SheetPlacements, placementHeader, style); err != nil {
		return err
	}
	row := 2
	for _, a := range d.Arrangements {
		for _, p := range a.Placements() {
			values := []any{
				a.ID, string(p.Role), p.Name, p.Category,
				p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H,
				scene.ColorFor(p.Name, p.Category),
			}
			if err := setRow(f, SheetPlacements, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeFailures(f *excelize.File, d *Document, style int) error {
	if err := header(f, SheetFailures, failureHeader, style); err != nil {
		return err
	}
	row := 2
	for _, cat := range layout.Failures {
		if err := setRow(f, SheetFailures, row, []any{string(cat), d.Failures[cat], cat.Hint()}); err != nil {
			return err
		}
		row++
	}
	total := []any{"total", d.Failures.Total()}
	if err := setRow(f, SheetFailures, row, total); err != nil {
		return err
	}
	return f.SetRowStyle(SheetFailures, row, row, style)
}

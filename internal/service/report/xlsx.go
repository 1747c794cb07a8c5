package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Kevrnd/car-garage/internal/model"
)

const (
	sheetName   = "Отчет о ремонте"
	moneyFormat = "#,##0.00"
	headerRow   = 5
)

var (
	headers   = []string{"Дата", "Пробег (км)", "Выполненные работы", "Стоимость работ (₽)", "Запчасти", "Стоимость запчастей (₽)"}
	colWidths = []float64{12, 15, 40, 20, 30, 20}
)

type xlsxRenderer struct{}

func NewXLSXRenderer() *xlsxRenderer { return &xlsxRenderer{} }

// Filename follows the naming of the backend export so both kinds of report sort together.
func (r *xlsxRenderer) Filename(car model.Car, rep model.Report) string {
	return fmt.Sprintf("report_%s_%s_%s_%s.xlsx",
		car.Brand, car.Model, rep.From.Format("20060102"), rep.To.Format("20060102"))
}

// Render lays the report out as a single sheet: title block, one row per repair and the
// totals underneath.
func (r *xlsxRenderer) Render(car model.Car, rep model.Report) ([]byte, error) {
	const op = "report.xlsx.Render"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := writeTitle(f, st, car, rep); err != nil {
		return nil, fmt.Errorf("%s: title: %w", op, err)
	}
	if err := writeHeader(f, st); err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	row := headerRow + 1
	for _, rr := range rep.Rows {
		values := []any{
			rr.Date.Format("02.01.2006"),
			rr.Mileage,
			rr.WorkDescription,
			rr.WorkCost.InexactFloat64(),
			rr.Parts,
			rr.PartsCost.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, cell("A", row), &values); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", op, row, err)
		}
		if err := f.SetCellStyle(sheetName, cell("A", row), cell("F", row), st.border); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, col := range []string{"D", "F"} {
			if err := f.SetCellStyle(sheetName, cell(col, row), cell(col, row), st.money); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		row++
	}

	if err := writeTotals(f, st, rep, row+1); err != nil {
		return nil, fmt.Errorf("%s: totals: %w", op, err)
	}

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

type styles struct {
	title, plain, header, border, money, boldMoney, bold int
}

func newStyles(f *excelize.File) (styles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	format := moneyFormat

	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 14}},
		{Font: &excelize.Font{Size: 11}},
		{
			Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#00BFA5"}},
			Border:    thin,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		},
		{Border: thin},
		{Border: thin, CustomNumFmt: &format},
		{Font: &excelize.Font{Bold: true}, CustomNumFmt: &format},
		{Font: &excelize.Font{Bold: true, Size: 12}},
	}

	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, err
		}
		ids[i] = id
	}

	return styles{
		title:     ids[0],
		plain:     ids[1],
		header:    ids[2],
		border:    ids[3],
		money:     ids[4],
		boldMoney: ids[5],
		bold:      ids[6],
	}, nil
}

func writeTitle(f *excelize.File, st styles, car model.Car, rep model.Report) error {
	lines := []struct {
		text  string
		style int
	}{
		{text: "Отчет о ремонте: " + car.Title(), style: st.title},
		{text: "VIN: " + car.VIN, style: st.plain},
		{text: fmt.Sprintf("Период: %s - %s", rep.From.Format("02.01.2006"), rep.To.Format("02.01.2006")), style: st.plain},
	}

	for i, l := range lines {
		row := i + 1
		if err := f.SetCellValue(sheetName, cell("A", row), l.text); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell("A", row), cell("A", row), l.style); err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, cell("A", row), cell("F", row)); err != nil {
			return err
		}
	}

	return nil
}

func writeHeader(f *excelize.File, st styles) error {
	if err := f.SetSheetRow(sheetName, cell("A", headerRow), &headers); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cell("A", headerRow), cell("F", headerRow), st.header)
}

func writeTotals(f *excelize.File, st styles, rep model.Report, row int) error {
	cells := []struct {
		ref   string
		value any
		style int
	}{
		{ref: cell("C", row), value: "ИТОГО:", style: st.bold},
		{ref: cell("D", row), value: rep.TotalWorkCost.InexactFloat64(), style: st.boldMoney},
		{ref: cell("F", row), value: rep.TotalPartsCost.InexactFloat64(), style: st.boldMoney},
		{ref: cell("C", row+1), value: "ОБЩАЯ СТОИМОСТЬ:", style: st.bold},
		{ref: cell("E", row+1), value: rep.TotalCost.InexactFloat64(), style: st.boldMoney},
	}

	for _, c := range cells {
		if err := f.SetCellValue(sheetName, c.ref, c.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, c.ref, c.ref, c.style); err != nil {
			return err
		}
	}

	if err := f.MergeCell(sheetName, cell("C", row+1), cell("D", row+1)); err != nil {
		return err
	}
	return f.MergeCell(sheetName, cell("E", row+1), cell("F", row+1))
}

func cell(col string, row int) string { return fmt.Sprintf("%s%d", col, row) }

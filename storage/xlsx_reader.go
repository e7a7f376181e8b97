package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"listings-eda/models"
)

// XLSXReader loads a worksheet from an .xlsx workbook. The first row is the
// header; every following non-blank row becomes a table row.
type XLSXReader struct {
	file  *excelize.File
	path  string
	sheet string
}

// NewXLSXReader opens the workbook at path. An empty sheet selects the first
// worksheet.
func NewXLSXReader(path, sheet string) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	return &XLSXReader{file: f, path: path, sheet: sheet}, nil
}

// Read returns the sheet as a table. Cell values are read raw so number
// formats such as currency or thousands separators do not leak into them.
func (r *XLSXReader) Read(ctx context.Context) (*models.Table, error) {
	sheet := r.sheet
	if sheet == "" {
		sheets := r.file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: %q has no worksheets", r.path)
		}
		sheet = sheets[0]
	}

	rows, err := r.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return models.NewTable(nil, nil), nil
	}

	dates := newDateCells(r.file, sheet)
	return tableFromRecords(rows[0], rows[1:], func(row, col int, raw string) models.Value {
		v := models.ParseValue(raw)
		if !v.IsNumber() {
			return v
		}
		// Records start at the second sheet row.
		if text, ok := dates.format(row+2, col+1, v.Num); ok {
			return models.Text(text)
		}
		return v
	}), nil
}

// Close releases the workbook.
func (r *XLSXReader) Close() error {
	return r.file.Close()
}

// cellParser turns the raw text of records[row][col] into a value.
type cellParser func(row, col int, raw string) models.Value

// tableFromRecords parses string records into a table, skipping rows with
// no non-blank cell. Data extending past the header gets unnamed columns.
// A nil parse uses models.ParseValue.
func tableFromRecords(header []string, records [][]string, parse cellParser) *models.Table {
	if parse == nil {
		parse = func(_, _ int, raw string) models.Value { return models.ParseValue(raw) }
	}
	width := len(header)
	rows := make([][]models.Value, 0, len(records))
	for r, rec := range records {
		if isBlank(rec) {
			continue
		}
		for i := len(rec) - 1; i >= width; i-- {
			if strings.TrimSpace(rec[i]) != "" {
				width = i + 1
				break
			}
		}
		row := make([]models.Value, len(rec))
		for i, cell := range rec {
			row[i] = parse(r, i, cell)
		}
		rows = append(rows, row)
	}
	for len(header) < width {
		header = append(header, "")
	}
	return models.NewTable(header, rows)
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// dateCells recognises cells whose number format is a date or time, so their
// serial numbers can be shown as dates instead of counted as numbers.
type dateCells struct {
	file     *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{file: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// format returns the serial as date text when the cell at (row, col), both
// 1-based, carries a date or time number format.
func (d *dateCells) format(row, col int, serial float64) (string, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	styleID, err := d.file.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(styleID) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly), true
	}
	return t.Format(time.DateTime), true
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := d.styles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := d.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltinDateFormat(style.NumFmt)
		}
	}
	d.styles[styleID] = isDate
	return isDate
}

// isBuiltinDateFormat reports whether a built-in number format ID renders a
// date or time, including the East Asian locale variants.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58,
		id >= 71 && id <= 81:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted literals, escapes and bracketed sections.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

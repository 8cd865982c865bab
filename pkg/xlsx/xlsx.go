// Package xlsx сохраняет строки RowMeta в XLSX и читает их обратно.
//
// Заголовок колонки - "name (Type)", значения пишутся в родном виде Excel:
// числа числами, даты датами, BigNumber строкой (без потери точности),
// Binary - hex-строкой.
package xlsx

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

const defaultSheet = "Sheet1"

// Встроенные форматы Excel
const (
	numFmtInteger   = 1
	numFmtNumber    = 2
	numFmtDate      = 14
	numFmtTimestamp = 22
	numFmtText      = 49
)

// Write сохраняет строки в файл XLSX
//
// Пример:
//
//	err := xlsx.Write(rm, rows, "output.xlsx", "Orders")
func Write(rm *rowmeta.RowMeta, rows [][]any, filePath, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = defaultSheet
	}
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheetName != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	styles := make(map[int]int)
	for col := 0; col < rm.Len(); col++ {
		d := rm.Descriptor(col)
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header(d)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, colName, colName, 15); err != nil {
			return err
		}

		numFmt := cellFormat(d.Type())
		if _, ok := styles[numFmt]; !ok {
			if styles[numFmt], err = f.NewStyle(&excelize.Style{NumFmt: numFmt}); err != nil {
				return fmt.Errorf("failed to create cell style: %w", err)
			}
		}
	}

	for rowIdx, row := range rows {
		if len(row) != rm.Len() {
			return fmt.Errorf("row %d has %d values, expected %d", rowIdx, len(row), rm.Len())
		}
		for col, v := range row {
			d := rm.Descriptor(col)
			value, err := cellValue(d, v)
			if err != nil {
				return fmt.Errorf("row %d: %w", rowIdx, err)
			}
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, styles[cellFormat(d.Type())]); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(filePath)
}

// Read читает лист, записанный Write. Типы колонок берутся из заголовка,
// колонки без типа читаются как String.
func Read(reg *schema.Registry, filePath, sheetName string) (*rowmeta.RowMeta, [][]any, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	// Сырые значения: даты приходят серийными числами, bool - 1/0
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	rm := rowmeta.New()
	for _, h := range rows[0] {
		name, typ := parseHeader(h)
		d, err := reg.New(typ, name, -1, -1)
		if err != nil {
			return nil, nil, err
		}
		rm.Add(d)
	}

	text, err := reg.New(schema.TypeString, "text", -1, -1)
	if err != nil {
		return nil, nil, err
	}

	out := make([][]any, 0, len(rows)-1)
	for rowIdx, cells := range rows[1:] {
		row := make([]any, rm.Len())
		for col := range row {
			if col >= len(cells) || cells[col] == "" {
				continue
			}
			if row[col], err = parseCell(rm.Descriptor(col), text, cells[col]); err != nil {
				return nil, nil, fmt.Errorf("row %d column %s: %w", rowIdx+2, rm.Descriptor(col).Name(), err)
			}
		}
		out = append(out, row)
	}
	return rm, out, nil
}

// header - "name (Type)"
func header(d *schema.Meta) string {
	return fmt.Sprintf("%s (%s)", d.Name(), d.Type())
}

// parseHeader разбирает "name (Type)"
func parseHeader(h string) (string, schema.SemanticType) {
	idx := strings.LastIndex(h, "(")
	end := strings.LastIndex(h, ")")
	if idx <= 0 || end < idx {
		return strings.TrimSpace(h), schema.TypeString
	}
	typ, err := schema.ParseSemanticType(strings.TrimSpace(h[idx+1 : end]))
	if err != nil {
		return strings.TrimSpace(h), schema.TypeString
	}
	return strings.TrimSpace(h[:idx]), typ
}

// cellValue переводит значение в то, что excelize запишет в нужном виде
func cellValue(d *schema.Meta, v any) (any, error) {
	if null, err := d.IsNull(v); err != nil || null {
		return nil, err
	}

	switch d.Type() {
	case schema.TypeInteger:
		n, _, err := d.GetInteger(v)
		return n, err
	case schema.TypeNumber:
		x, _, err := d.GetNumber(v)
		return x, err
	case schema.TypeBigNumber:
		x, _, err := d.GetBigNumber(v)
		return x.String(), err
	case schema.TypeDate, schema.TypeTimestamp:
		t, _, err := d.GetDate(v)
		return t.UTC(), err
	case schema.TypeBoolean:
		b, _, err := d.GetBoolean(v)
		return b, err
	case schema.TypeBinary:
		b, _, err := d.GetBinary(v)
		return hex.EncodeToString(b), err
	}
	s, _, err := d.GetString(v)
	return s, err
}

func parseCell(d, text *schema.Meta, s string) (any, error) {
	switch d.Type() {
	case schema.TypeInteger:
		return strconv.ParseInt(s, 10, 64)
	case schema.TypeNumber:
		return strconv.ParseFloat(s, 64)
	case schema.TypeBigNumber:
		return decimal.NewFromString(s)
	case schema.TypeDate, schema.TypeTimestamp:
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, err
		}
		return d.Convert(nil, t.Round(time.Millisecond))
	case schema.TypeBoolean:
		return strconv.ParseBool(s)
	case schema.TypeBinary:
		return hex.DecodeString(s)
	}
	return d.Convert(text, s)
}

// cellFormat - встроенный формат Excel по типу значения
func cellFormat(t schema.SemanticType) int {
	switch t {
	case schema.TypeInteger:
		return numFmtInteger
	case schema.TypeNumber:
		return numFmtNumber
	case schema.TypeDate:
		return numFmtDate
	case schema.TypeTimestamp:
		return numFmtTimestamp
	}
	return numFmtText
}

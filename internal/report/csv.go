package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gastropos/internal/analytics"
)

// ByteOrderMark makes spreadsheet tools open the file as UTF-8.
const ByteOrderMark = "\uFEFF"

const (
	Delimiter  = ';'
	StatusDone = "COMPLETADA"
)

type Column string

const (
	ColumnDate     Column = "date"
	ColumnTime     Column = "time"
	ColumnSeller   Column = "seller"
	ColumnProduct  Column = "product"
	ColumnCategory Column = "category"
	ColumnQuantity Column = "quantity"
	ColumnPrice    Column = "price"
	ColumnTotal    Column = "total"
	ColumnProfit   Column = "profit"
	ColumnStatus   Column = "status"
)

// AllColumns is the fixed output order.
var AllColumns = []Column{
	ColumnDate, ColumnTime, ColumnSeller, ColumnProduct, ColumnCategory,
	ColumnQuantity, ColumnPrice, ColumnTotal, ColumnProfit, ColumnStatus,
}

var columnHeaders = map[Column]string{
	ColumnDate:     "Fecha",
	ColumnTime:     "Hora",
	ColumnSeller:   "Vendedor",
	ColumnProduct:  "Producto",
	ColumnCategory: "Categoría",
	ColumnQuantity: "Cantidad",
	ColumnPrice:    "Precio",
	ColumnTotal:    "Total",
	ColumnProfit:   "Ganancia",
	ColumnStatus:   "Estado",
}

// ParseColumns turns a list of column names into the enabled set, always in
// AllColumns order. An empty list enables every column.
func ParseColumns(raw []string) ([]Column, error) {
	enabled := make(map[Column]bool, len(raw))
	for _, entry := range raw {
		for _, name := range strings.Split(entry, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			col := Column(name)
			if _, ok := columnHeaders[col]; !ok {
				return nil, fmt.Errorf("unknown report column %q", name)
			}
			enabled[col] = true
		}
	}
	if len(enabled) == 0 {
		return append([]Column(nil), AllColumns...), nil
	}

	cols := make([]Column, 0, len(enabled))
	for _, col := range AllColumns {
		if enabled[col] {
			cols = append(cols, col)
		}
	}
	return cols, nil
}

// WriteCSV writes the BOM, a header with the enabled columns and one record
// per row. Fields holding the delimiter, quotes or line breaks are quoted.
func WriteCSV(w io.Writer, rows []analytics.Row, cols []Column, loc *time.Location) error {
	if len(cols) == 0 {
		cols = AllColumns
	}
	if _, err := io.WriteString(w, ByteOrderMark); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = columnHeaders[col]
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(cols))
	for _, r := range rows {
		t := r.Time(loc)
		for i, col := range cols {
			record[i] = cell(col, r, t)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV renders the document in memory.
func CSV(rows []analytics.Row, cols []Column, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, cols, loc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename suggests Reporte_<AppName>_<YYYY-MM-DD>.csv.
func Filename(appName string, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '"':
			return '_'
		}
		return r
	}, strings.TrimSpace(appName))
	if name == "" {
		name = "POS"
	}
	return fmt.Sprintf("Reporte_%s_%s.csv", name, now.Format(time.DateOnly))
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// plainText folds carriage returns into \n, the only line break a CSV reader
// hands back unchanged inside a quoted field.
func plainText(s string) string {
	return lineBreaks.Replace(s)
}

func cell(col Column, r analytics.Row, t time.Time) string {
	switch col {
	case ColumnDate:
		return t.Format(time.DateOnly)
	case ColumnTime:
		return t.Format("15:04")
	case ColumnSeller:
		return plainText(r.Seller)
	case ColumnProduct:
		return plainText(r.Product)
	case ColumnCategory:
		return plainText(r.Category)
	case ColumnQuantity:
		return strconv.Itoa(r.Quantity)
	case ColumnPrice:
		return FormatMoney(r.UnitPrice)
	case ColumnTotal:
		return FormatMoney(r.Revenue)
	case ColumnProfit:
		return FormatMoney(r.Profit)
	case ColumnStatus:
		return StatusDone
	}
	return ""
}

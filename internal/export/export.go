// Package export writes contact lists to spreadsheet and YAML files and reads
// contacts back from spreadsheets.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/phonebook"
)

// SheetName is the worksheet contacts are written to.
const SheetName = "Contacts"

type Format string

const (
	XLSX Format = "xlsx"
	YAML Format = "yaml"
)

// columns are the table columns after "ID".
var columns = []contact.Field{
	contact.LastName,
	contact.FirstName,
	contact.Patronymic,
	contact.Organization,
	contact.OfficeNumber,
	contact.PersonalNumber,
}

// FormatFor picks the export format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return XLSX, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use .xlsx, .yaml or .yml)", filepath.Ext(path))
	}
}

// Header returns the column titles used by the table and the spreadsheet.
func Header() []string {
	h := []string{"ID"}
	for _, f := range columns {
		h = append(h, f.Label())
	}
	return h
}

// Row renders r in Header order.
func Row(r phonebook.Record) []string {
	row := []string{strconv.Itoa(r.ID)}
	for _, f := range columns {
		row = append(row, r.Get(f))
	}
	return row
}

// WriteXLSX saves records as a single sheet workbook at path.
func WriteXLSX(path string, records []phonebook.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	write := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			// numbers stay text so leading zeros survive
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, Header()); err != nil {
		return err
	}
	for i, r := range records {
		if err := write(i+2, Row(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// ReadXLSX loads contacts from the first sheet of the workbook at path. The
// first row must be a header written by WriteXLSX; the ID column is ignored.
func ReadXLSX(path string) ([]contact.Contact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	for i, title := range rows[0] {
		index[strings.TrimSpace(title)] = i
	}
	for _, col := range columns {
		if _, ok := index[col.Label()]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col.Label())
		}
	}

	var out []contact.Contact
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		var c contact.Contact
		for _, col := range columns {
			if i := index[col.Label()]; i < len(row) {
				c.Set(col, strings.TrimSpace(row[i]))
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// WriteYAML encodes records as a YAML sequence.
func WriteYAML(w io.Writer, records []phonebook.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

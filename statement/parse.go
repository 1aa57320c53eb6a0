/*
parse.go - Tabular source decoding

PURPOSE:

	First stage of statement ingestion: turn an uploaded payroll statement
	(xlsx or csv) into loosely-typed rows keyed by header spelling. No
	interpretation happens here; header aliasing and type coercion are
	normalize.go's job.

ROW MODEL:

	Row is a map from the sheet's own header text to the cell text. The
	header row itself is consumed, never emitted. Short rows (fewer cells
	than headers, common when trailing cells are blank) map the cells that
	exist and leave the rest absent.
*/
package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSourceUnreadable is returned when the upload cannot be decoded at
// all (corrupt file, wrong format). Fatal to the operation.
var ErrSourceUnreadable = errors.New("statement source unreadable")

// Row is one raw sheet row keyed by the sheet's own header spellings.
type Row map[string]string

// ParseSource decodes an uploaded statement into raw rows. The filename
// extension selects the decoder; anything but .xlsx/.csv is rejected as
// unreadable. Legacy binary .xls workbooks are not supported, the
// workbook decoder only speaks the OOXML format.
func ParseSource(r io.Reader, filename string) ([]Row, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return parseCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return parseWorkbook(r)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrSourceUnreadable, filename)
	}
}

func parseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return rowsFromCells(cells), nil
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cells, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return rowsFromCells(cells), nil
}

// rowsFromCells keys data rows by the first row's header text.
func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}
	headers := cells[0]

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(line) {
				row[h] = line[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

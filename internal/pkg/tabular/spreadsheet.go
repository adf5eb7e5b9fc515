package tabular

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ingestXLSX reads the active sheet of an OOXML (.xlsx) workbook.
func ingestXLSX(data []byte) (*Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Reason: "failed to read spreadsheet: " + err.Error()}
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	if sheet == "" {
		return nil, &FormatError{Reason: "spreadsheet has no sheets"}
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, &FormatError{Reason: "failed to read sheet: " + err.Error()}
	}

	return buildTable(rows)
}

// ingestXLS reads the first sheet of a legacy BIFF (.xls) workbook. Those
// files are OLE compound documents, not zip containers, so the OOXML
// reader cannot open them and the two formats take separate readers
// behind the same row extraction.
func ingestXLS(data []byte) (*Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Reason: "failed to read spreadsheet: " + err.Error()}
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, &FormatError{Reason: "spreadsheet has no sheets"}
	}

	var rows [][]string
	for i := 0; i <= sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			continue
		}
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}

	return buildTable(rows)
}

// buildTable maps raw sheet rows into the header-keyed form shared by
// both spreadsheet readers. Headers come from row 1, data from subsequent
// rows; rows whose cells are all blank are skipped. Columns a short row
// never reaches simply have no key in its mapping.
func buildTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &FormatError{Reason: "empty file"}
	}

	headerRow := rows[0]
	if isBlankRow(headerRow) {
		return nil, &FormatError{Reason: "header row not found"}
	}

	headers := make([]string, len(headerRow))
	for i, cell := range headerRow {
		key := NormalizeHeader(cell)
		if key == "" {
			// Unnamed columns still need a stable key.
			key = fmt.Sprintf("col_%d", i+1)
		}
		headers[i] = key
	}

	table := &Table{Headers: headers}
	for _, record := range rows[1:] {
		if isBlankRow(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, key := range headers {
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

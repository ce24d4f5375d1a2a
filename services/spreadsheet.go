package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ─── Spreadsheet Ingestion ────────────────────────────────────────────────────

// ParseExpenseSheet reads an uploaded expense spreadsheet (.xlsx or .csv)
// into rows. The header must contain Description and Amount columns, any
// order, case-insensitive; a missing column is a hard input error surfaced
// before any classification call. Rows with a blank description or an
// unparsable amount are skipped with a warning rather than failing the
// batch.
func ParseExpenseSheet(r io.Reader, filename string) ([]ExpenseRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseExpenseXLSX(r)
	case ".csv":
		return parseExpenseCSV(r)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q, upload .xlsx or .csv", ErrInvalidInput, filepath.Ext(filename))
	}
}

func parseExpenseXLSX(r io.Reader) ([]ExpenseRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read Excel file: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: could not read sheet %q: %v", ErrInvalidInput, sheets[0], err)
	}

	return rowsToExpenses(rows)
}

func parseExpenseCSV(r io.Reader) ([]ExpenseRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read CSV file: %v", ErrInvalidInput, err)
	}

	return rowsToExpenses(rows)
}

func rowsToExpenses(rows [][]string) ([]ExpenseRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet is empty", ErrInvalidInput)
	}

	descCol, amountCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "description":
			descCol = i
		case "amount":
			amountCol = i
		}
	}
	if descCol < 0 || amountCol < 0 {
		return nil, fmt.Errorf("%w: spreadsheet must have Description and Amount columns", ErrInvalidInput)
	}

	expenses := []ExpenseRow{}
	for i, row := range rows[1:] {
		if descCol >= len(row) || amountCol >= len(row) {
			continue
		}
		desc := strings.TrimSpace(row[descCol])
		if desc == "" {
			continue
		}

		raw := strings.TrimSpace(strings.TrimLeft(row[amountCol], "$€£ "))
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			log.Printf("⚠️  Skipping row %d: amount %q is not a number", i+2, row[amountCol])
			continue
		}

		expenses = append(expenses, ExpenseRow{Description: desc, Amount: amount})
	}

	return expenses, nil
}

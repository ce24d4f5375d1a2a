package services_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tripweaver/services"
)

func TestParseExpenseSheet_CSV(t *testing.T) {
	csv := strings.NewReader("Description,Amount\nDinner at bistro,45.50\nMetro pass,12.00\n")

	rows, err := services.ParseExpenseSheet(csv, "expenses.csv")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dinner at bistro", rows[0].Description)
	assert.Equal(t, "45.50", rows[0].Amount.StringFixed(2))
}

func TestParseExpenseSheet_CSV_ColumnsAnyOrder(t *testing.T) {
	csv := strings.NewReader("Date,amount,DESCRIPTION\n2024-12-04,19.70,Cafe\n")

	rows, err := services.ParseExpenseSheet(csv, "expenses.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cafe", rows[0].Description)
	assert.Equal(t, "19.70", rows[0].Amount.StringFixed(2))
}

func TestParseExpenseSheet_MissingColumnIsHardError(t *testing.T) {
	csv := strings.NewReader("Description,Cost\nDinner,45.50\n")

	_, err := services.ParseExpenseSheet(csv, "expenses.csv")

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestParseExpenseSheet_SkipsBadRows(t *testing.T) {
	csv := strings.NewReader("Description,Amount\nDinner,45.50\n,12.00\nTaxi,not-a-number\nHotel,$120.00\n")

	rows, err := services.ParseExpenseSheet(csv, "expenses.csv")

	require.NoError(t, err)
	// blank description and unparsable amount are skipped; currency symbol stripped
	require.Len(t, rows, 2)
	assert.Equal(t, "Dinner", rows[0].Description)
	assert.Equal(t, "Hotel", rows[1].Description)
	assert.Equal(t, "120.00", rows[1].Amount.StringFixed(2))
}

func TestParseExpenseSheet_UnsupportedExtension(t *testing.T) {
	_, err := services.ParseExpenseSheet(strings.NewReader("x"), "expenses.pdf")

	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestParseExpenseSheet_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Description", "Amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Museum tickets", 24.00}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Airport shuttle", 18.50}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := services.ParseExpenseSheet(&buf, "expenses.xlsx")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Museum tickets", rows[0].Description)
	assert.Equal(t, "18.50", rows[1].Amount.StringFixed(2))
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCSV_DetectsHeader(t *testing.T) {
	hasHeader, data, repairs := NormalizeCSV([][]string{
		{"Date", "Description", "Amount"},
		{"2025-01-01", "coffee", "-4.50"},
	})
	assert.True(t, hasHeader)
	require.Len(t, data, 1)
	assert.Empty(t, repairs)

	hasHeader, data, _ = NormalizeCSV([][]string{
		{"2025-01-01", "coffee", "-4.50"},
	})
	assert.False(t, hasHeader)
	assert.Len(t, data, 1)
}

func TestNormalizeCSV_RepairsSurplusFields(t *testing.T) {
	// An unquoted comma in the payee splits the row into four fields.
	hasHeader, data, repairs := NormalizeCSV([][]string{
		{"2025-01-01", "coffee", "-4.50"},
		{"2025-01-02", "Smith", " John", "100.00"},
	})
	assert.False(t, hasHeader)
	require.Len(t, data, 2)
	assert.Equal(t, []string{"2025-01-02", "Smith, John", "100.00"}, data[1])
	require.Len(t, repairs, 1)
	assert.Equal(t, 2, repairs[0].Row)
	assert.Equal(t, 1, repairs[0].Extra)
	assert.Equal(t, "Smith, John", repairs[0].Preview)
}

func TestNormalizeCSV_RepairsFourColumnShape(t *testing.T) {
	// Debit/credit layout keeps the last two fields as the amount region.
	_, data, repairs := NormalizeCSV([][]string{
		{"date", "description", "debit", "credit"},
		{"2025-01-02", "Acme", " Inc", "100.00", ""},
	})
	require.Len(t, data, 1)
	assert.Equal(t, []string{"2025-01-02", "Acme, Inc", "100.00", ""}, data[0])
	require.Len(t, repairs, 1)
}

func TestNormalizeCSV_FreeForm(t *testing.T) {
	hasHeader, data, repairs := NormalizeCSV([][]string{
		{"Account Type", "Account Number", "Transaction Date", "Cheque Number", "Description 1", "Description 2", "CAD$"},
		{"Chequing", "0123", "1/2/2025", "", "E-TRANSFER", "JOHN SMITH", "-50.00"},
	})
	assert.True(t, hasHeader)
	assert.Empty(t, repairs)
	require.Len(t, data, 1)
	assert.Equal(t, []string{"1/2/2025", "E-TRANSFER: JOHN SMITH", "-50.00"}, data[0])
}

func TestNormalizeCSV_FreeFormRepair(t *testing.T) {
	// A surplus field shifts the amount; it is re-anchored to the row end
	// and everything between the date and the amounts becomes description.
	_, data, repairs := NormalizeCSV([][]string{
		{"Transaction Date", "Cheque Number", "Description 1", "Description 2", "Amount"},
		{"1/2/2025", "", "PAYMENT", "SMITH", "JOHN", "-50.00"},
	})
	require.Len(t, data, 1)
	assert.Equal(t, []string{"1/2/2025", "PAYMENT: SMITH: JOHN", "-50.00"}, data[0])
	require.Len(t, repairs, 1)
	assert.Equal(t, "PAYMENT: SMITH: JOHN", repairs[0].Preview)
}

func TestNormalizeCSV_FreeFormWithoutRolesFallsThrough(t *testing.T) {
	raw := [][]string{
		{"description", "col b", "col c", "col d", "col e"},
		{"x", "y", "z", "w", "v"},
	}
	hasHeader, data, repairs := NormalizeCSV(raw)
	assert.True(t, hasHeader)
	assert.Empty(t, repairs)
	require.Len(t, data, 1)
	assert.Len(t, data[0], 5)
}

func TestApplyLayout(t *testing.T) {
	// Header names carry none of the role keywords a detector could use;
	// the caller supplies the columns instead.
	hasHeader, data := ApplyLayout([][]string{
		{"Booked", "Ref", "Counterparty", "Value"},
		{"2025-01-02", "0042", "ACME SUPPLY", "-75.00"},
		{"2025-01-03", "0043", "DEPOSIT"},
	}, Layout{Date: 0, Description: 2, Amount: 3})
	assert.True(t, hasHeader)
	require.Len(t, data, 2)
	assert.Equal(t, []string{"2025-01-02", "ACME SUPPLY", "-75.00"}, data[0])
	// Short row: missing column comes back empty and fails later as a row error.
	assert.Equal(t, []string{"2025-01-03", "DEPOSIT", ""}, data[1])
}

func TestApplyLayout_NoHeader(t *testing.T) {
	hasHeader, data := ApplyLayout([][]string{
		{"2025-01-02", "0042", "ACME SUPPLY", "-75.00"},
	}, Layout{Date: 0, Description: 2, Amount: 3})
	assert.False(t, hasHeader)
	require.Len(t, data, 1)
	assert.Equal(t, []string{"2025-01-02", "ACME SUPPLY", "-75.00"}, data[0])
}

func TestExtractRows(t *testing.T) {
	rows, rowErrs := ExtractRows(false, [][]string{
		{"2025-01-01", "coffee", "-4.50"},
		{"2025-01-02", "deposit", "1,500.00"},
	})
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(-450), rows[0].Amount)
	assert.Equal(t, int64(150000), rows[1].Amount)
	assert.Equal(t, 1, rows[0].Row)
}

func TestExtractRows_DebitCreditColumns(t *testing.T) {
	rows, rowErrs := ExtractRows(true, [][]string{
		{"2025-01-02", "deposit", "100.00", ""},
		{"2025-01-03", "withdrawal", "", "40.00"},
	})
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(10000), rows[0].Amount)
	assert.Equal(t, int64(-4000), rows[1].Amount)
	assert.Equal(t, 2, rows[0].Row)
}

func TestExtractRows_PerRowFailures(t *testing.T) {
	rows, rowErrs := ExtractRows(false, [][]string{
		{"2025-01-01", "coffee", "-4.50"},
		{"2025-01-02"},
		{"2025-01-03", "", "5.00"},
		{"2025-01-04", "junk", "not-money"},
	})
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 3)
	assert.Equal(t, "too few columns", rowErrs[0].Reason)
	assert.Equal(t, "missing description", rowErrs[1].Reason)
	assert.Contains(t, rowErrs[2].Reason, "bad amount")
}

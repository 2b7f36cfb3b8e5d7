package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/posting"
	"github.com/grid-books/grid/internal/storage/memory"
)

type books struct {
	store *memory.Store
	svc   *Service
	accts map[string]model.Account
}

func newBooks(t *testing.T) *books {
	t.Helper()
	store := memory.New()
	b := &books{store: store, svc: NewService(store, posting.NewService(store)), accts: map[string]model.Account{}}

	add := func(name string, normal model.NormalBalance) {
		a := model.Account{Name: name, Kind: model.KindPosting, Normal: normal}
		require.NoError(t, store.CreateAccount(&a))
		b.accts[name] = a
	}
	add("BANK", model.NormalDebit)
	add("REV", model.NormalCredit)
	add("EX.AUTO", model.NormalDebit)
	add("GST.IN", model.NormalDebit)
	add("GST.OUT", model.NormalCredit)
	add(SuspenseAccount, model.NormalDebit)

	require.NoError(t, store.CreateTaxCode(model.TaxCode{
		Code:             "G5",
		RatePercent:      decimal.NewFromInt(5),
		CollectedAccount: "GST.OUT",
		PaidAccount:      "GST.IN",
	}))
	require.NoError(t, store.CreateRule(&model.ImportRule{Keyword: "DEPOSIT", AccountName: "REV"}))
	require.NoError(t, store.CreateRule(&model.ImportRule{Keyword: "SHELL", AccountName: "EX.AUTO", TaxCode: "G5"}))
	return b
}

func (b *books) balance(t *testing.T, name string) int64 {
	t.Helper()
	sum, err := b.store.SumLines(b.accts[name].ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	return sum
}

const statement = `Date,Description,Amount
2025-01-10,DEPOSIT FROM CLIENT,1500.00
2025-01-11,SHELL 4521 GAS,-105.00
2025-01-12,MYSTERY VENDOR,-30.00
`

func TestImportCSV(t *testing.T) {
	b := newBooks(t)
	sum, err := b.svc.ImportCSV(strings.NewReader(statement), b.accts["BANK"].ID)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.RowsProcessed)
	assert.Equal(t, 3, sum.Posted)
	assert.Equal(t, 0, sum.Skipped)
	assert.Equal(t, 1, sum.ToSuspense)

	assert.Equal(t, int64(136500), b.balance(t, "BANK"))
	assert.Equal(t, int64(-150000), b.balance(t, "REV"))
	assert.Equal(t, int64(3000), b.balance(t, SuspenseAccount)) // money out debits suspense
}

func TestImportCSV_TaxSplit(t *testing.T) {
	b := newBooks(t)
	_, err := b.svc.ImportCSV(strings.NewReader(statement), b.accts["BANK"].ID)
	require.NoError(t, err)

	// 105.00 out at 5% tax-inclusive: 100.00 expense, 5.00 input tax.
	assert.Equal(t, int64(10000), b.balance(t, "EX.AUTO"))
	assert.Equal(t, int64(500), b.balance(t, "GST.IN"))
}

func TestImportCSV_ReimportIsIdempotent(t *testing.T) {
	b := newBooks(t)
	_, err := b.svc.ImportCSV(strings.NewReader(statement), b.accts["BANK"].ID)
	require.NoError(t, err)
	before, err := b.store.CountTransactions()
	require.NoError(t, err)

	sum, err := b.svc.ImportCSV(strings.NewReader(statement), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Posted)
	assert.Equal(t, 3, sum.Skipped)
	assert.Empty(t, sum.Errors) // duplicates skip silently

	after, err := b.store.CountTransactions()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportCSV_SkipsLockedAndZeroRows(t *testing.T) {
	b := newBooks(t)
	require.NoError(t, b.store.SetLockDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))

	in := `Date,Description,Amount
2025-01-10,DEPOSIT ON LOCK DAY,100.00
2025-01-11,DEPOSIT AFTER,200.00
2025-01-12,ZERO DAY,0.00
garbage-date,DEPOSIT,5.00
`
	sum, err := b.svc.ImportCSV(strings.NewReader(in), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Posted)
	assert.Equal(t, 3, sum.Skipped)
	require.Len(t, sum.Errors, 3)
	assert.Contains(t, sum.Errors[0].Reason, "lock date")
	assert.Contains(t, sum.Errors[1].Reason, "zero amount")
	assert.Contains(t, sum.Errors[2].Reason, "bad date")
}

func TestImportCSVLayout(t *testing.T) {
	b := newBooks(t)
	in := `Booked,Ref,Counterparty,Value
2025-01-10,0042,DEPOSIT FROM CLIENT,1500.00
`
	sum, err := b.svc.ImportCSVLayout(strings.NewReader(in), b.accts["BANK"].ID,
		Layout{Date: 0, Description: 2, Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Posted)
	assert.Equal(t, 0, sum.Skipped)
	assert.Equal(t, int64(150000), b.balance(t, "BANK"))
	assert.Equal(t, int64(-150000), b.balance(t, "REV"))
}

func TestImportCSV_RejectsTotalAccount(t *testing.T) {
	b := newBooks(t)
	tot := model.Account{Name: "TA", Kind: model.KindTotal, Normal: model.NormalDebit}
	require.NoError(t, b.store.CreateAccount(&tot))

	_, err := b.svc.ImportCSV(strings.NewReader(statement), tot.ID)
	assert.ErrorContains(t, err, "total account")
}

func TestImportCSV_EmptyFile(t *testing.T) {
	b := newBooks(t)
	_, err := b.svc.ImportCSV(strings.NewReader(""), b.accts["BANK"].ID)
	assert.Error(t, err)
}

func TestImportCSV_DayFirstDates(t *testing.T) {
	b := newBooks(t)
	b.svc.DayFirst = true
	in := `Date,Description,Amount
02/01/2025,DEPOSIT FROM CLIENT,1500.00
`
	sum, err := b.svc.ImportCSV(strings.NewReader(in), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Posted)

	// 02/01 reads as January 2nd, not February 1st.
	jan2 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	onJan2, err := b.store.SumLines(b.accts["BANK"].ID, jan2, jan2)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), onJan2)
	onFeb1, err := b.store.SumLines(b.accts["BANK"].ID, feb1, feb1)
	require.NoError(t, err)
	assert.Zero(t, onFeb1)
}

func TestImportOFX(t *testing.T) {
	b := newBooks(t)
	in := `<OFX>
<STMTTRN>
<DTPOSTED>20250110
<TRNAMT>1500.00
<FITID>F-1
<NAME>DEPOSIT FROM CLIENT
</STMTTRN>
</OFX>`
	sum, err := b.svc.ImportOFX(strings.NewReader(in), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Posted)
	assert.Equal(t, int64(150000), b.balance(t, "BANK"))

	// FITID dedup on re-import.
	sum, err = b.svc.ImportOFX(strings.NewReader(in), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Posted)
	assert.Equal(t, 1, sum.Skipped)
}

func TestImportOFX_BadAmountSkipsRecordOnly(t *testing.T) {
	b := newBooks(t)
	in := `<OFX>
<STMTTRN>
<DTPOSTED>20250110
<TRNAMT>12..34
<FITID>F-1
<NAME>BROKEN RECORD
</STMTTRN>
<STMTTRN>
<DTPOSTED>20250111
<TRNAMT>1500.00
<FITID>F-2
<NAME>DEPOSIT FROM CLIENT
</STMTTRN>
</OFX>`
	sum, err := b.svc.ImportOFX(strings.NewReader(in), b.accts["BANK"].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.RowsProcessed)
	assert.Equal(t, 1, sum.Posted)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0].Reason, "bad TRNAMT")
	assert.Equal(t, int64(150000), b.balance(t, "BANK"))
}

package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createAccount(t *testing.T, s *Store, name string, kind model.AccountKind, normal model.NormalBalance, parentID int64) model.Account {
	t.Helper()
	a := model.Account{Name: name, Kind: kind, Normal: normal, ParentID: parentID}
	require.NoError(t, s.CreateAccount(&a))
	require.NotZero(t, a.ID)
	return a
}

func TestMetaRoundTrip(t *testing.T) {
	s := openTestStore(t)

	meta, err := s.Meta()
	require.NoError(t, err)
	assert.True(t, meta.LockDate.IsZero())

	require.NoError(t, s.SetCompany("Acme Ltd", 3, 31))
	require.NoError(t, s.SetLockDate(testDay(2025, 3, 31)))

	meta, err = s.Meta()
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", meta.CompanyName)
	assert.Equal(t, 3, meta.FYEndMonth)
	assert.Equal(t, 31, meta.FYEndDay)
	assert.Equal(t, testDay(2025, 3, 31), meta.LockDate)

	// Clearing the lock maps back to the zero time.
	require.NoError(t, s.SetLockDate(time.Time{}))
	meta, err = s.Meta()
	require.NoError(t, err)
	assert.True(t, meta.LockDate.IsZero())
}

func TestAccounts(t *testing.T) {
	s := openTestStore(t)

	parent := createAccount(t, s, "TA", model.KindTotal, model.NormalDebit, 0)
	bank := createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, parent.ID)

	got, err := s.AccountByID(bank.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, got.ParentID)

	// Name lookup is case-insensitive; roots read back with a zero parent.
	got, err = s.AccountByName("bank")
	require.NoError(t, err)
	assert.Equal(t, bank.ID, got.ID)
	got, err = s.AccountByName("TA")
	require.NoError(t, err)
	assert.Zero(t, got.ParentID)

	bank.Description = "Operating account"
	bank.ParentID = 0
	require.NoError(t, s.UpdateAccount(bank))
	got, err = s.AccountByID(bank.ID)
	require.NoError(t, err)
	assert.Equal(t, "Operating account", got.Description)
	assert.Zero(t, got.ParentID)

	all, err := s.Accounts()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.AccountByID(999)
	var nerr *errs.NotFoundError
	assert.True(t, errors.As(err, &nerr))
}

func TestTransactions(t *testing.T) {
	s := openTestStore(t)
	bank := createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, 0)
	rev := createAccount(t, s, "REV", model.KindPosting, model.NormalCredit, 0)

	txn := model.Transaction{
		Date:        testDay(2025, 1, 15),
		Reference:   "INV-1",
		Description: "first sale",
		Lines: []model.Line{
			{AccountID: bank.ID, Amount: 10000, Description: "deposit"},
			{AccountID: rev.ID, Amount: -10000},
		},
	}
	require.NoError(t, s.CreateTransaction(&txn))
	require.NotZero(t, txn.ID)

	got, err := s.TransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, testDay(2025, 1, 15), got.Date)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, txn.ID, got.Lines[0].TransactionID)
	assert.Equal(t, "deposit", got.Lines[0].Description)

	// Update replaces the lines wholesale.
	got.Description = "revised"
	got.Lines = []model.Line{
		{AccountID: bank.ID, Amount: 12000},
		{AccountID: rev.ID, Amount: -12000},
	}
	require.NoError(t, s.UpdateTransaction(got))
	got, err = s.TransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Description)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, int64(12000), got.Lines[0].Amount)

	n, err := s.CountTransactions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.DeleteTransaction(txn.ID))
	_, err = s.TransactionByID(txn.ID)
	var nerr *errs.NotFoundError
	assert.True(t, errors.As(err, &nerr))

	// Lines cascade with their transaction.
	sum, err := s.SumLines(bank.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestSumLinesAndLedgerLines(t *testing.T) {
	s := openTestStore(t)
	bank := createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, 0)
	rev := createAccount(t, s, "REV", model.KindPosting, model.NormalCredit, 0)

	for i, d := range []time.Time{testDay(2025, 1, 10), testDay(2025, 1, 20), testDay(2025, 2, 5)} {
		txn := model.Transaction{
			Date:        d,
			Reference:   "r" + string(rune('1'+i)),
			Description: "sale",
			Lines: []model.Line{
				{AccountID: bank.ID, Amount: 10000},
				{AccountID: rev.ID, Amount: -10000},
			},
		}
		require.NoError(t, s.CreateTransaction(&txn))
	}

	sum, err := s.SumLines(bank.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), sum)

	sum, err = s.SumLines(bank.ID, testDay(2025, 1, 15), testDay(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), sum)

	lines, err := s.LedgerLines(bank.ID, time.Time{}, testDay(2025, 1, 31))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, testDay(2025, 1, 10), lines[0].Date)
	assert.Equal(t, []string{"REV"}, lines[0].Contra)
}

func TestDedupProbes(t *testing.T) {
	s := openTestStore(t)
	bank := createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, 0)
	rev := createAccount(t, s, "REV", model.KindPosting, model.NormalCredit, 0)

	txn := model.Transaction{
		Date:        testDay(2025, 1, 15),
		Reference:   "F-100",
		Description: "SHELL 4521 GAS",
		Lines: []model.Line{
			{AccountID: bank.ID, Amount: -4500},
			{AccountID: rev.ID, Amount: 4500},
		},
	}
	require.NoError(t, s.CreateTransaction(&txn))

	ok, err := s.HasReference("F-100")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.HasReference("F-999")
	require.NoError(t, err)
	assert.False(t, ok)

	// Similarity matches on absolute amount either way.
	ok, err = s.HasSimilar(testDay(2025, 1, 15), "SHELL 4521 GAS", 4500)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.HasSimilar(testDay(2025, 1, 15), "SHELL 4521 GAS", -4500)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.HasSimilar(testDay(2025, 1, 16), "SHELL 4521 GAS", 4500)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRulesAndTaxCodes(t *testing.T) {
	s := openTestStore(t)
	createAccount(t, s, "EX.AUTO", model.KindPosting, model.NormalDebit, 0)

	r := model.ImportRule{Keyword: "SHELL", AccountName: "EX.AUTO", TaxCode: "G5", Priority: 5, Notes: "gas"}
	require.NoError(t, s.CreateRule(&r))
	require.NotZero(t, r.ID)

	r.Priority = 9
	require.NoError(t, s.UpdateRule(r))
	all, err := s.Rules()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9, all[0].Priority)

	require.NoError(t, s.DeleteRule(r.ID))
	all, err = s.Rules()
	require.NoError(t, err)
	assert.Empty(t, all)

	tc := model.TaxCode{Code: "G5", Description: "GST 5%", RatePercent: decimal.NewFromInt(5),
		CollectedAccount: "GST.OUT", PaidAccount: "GST.IN"}
	require.NoError(t, s.CreateTaxCode(tc))
	got, err := s.TaxCodeByCode("G5")
	require.NoError(t, err)
	assert.True(t, got.RatePercent.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "GST.OUT", got.CollectedAccount)
}

func TestReports(t *testing.T) {
	s := openTestStore(t)
	bank := createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, 0)

	rep := model.Report{Name: "BS", Description: "Balance Sheet", SortOrder: 10}
	require.NoError(t, s.CreateReport(&rep, []model.ReportLine{
		{Position: 10, Kind: model.ReportLineLabel, Label: "ASSETS"},
		{Position: 20, Kind: model.ReportLineAccount, AccountID: bank.ID, Indent: 2},
		{Position: 30, Kind: model.ReportLineSeparator, SepStyle: model.SepDouble},
	}))
	require.NotZero(t, rep.ID)

	got, err := s.ReportByName("bs")
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)

	lines, err := s.ReportLines(rep.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, model.ReportLineLabel, lines[0].Kind)
	assert.Equal(t, bank.ID, lines[1].AccountID)
	assert.Equal(t, model.SepDouble, lines[2].SepStyle)

	require.NoError(t, s.SetReportDescription(rep.ID, "Statement of Financial Position"))
	got, err = s.ReportByName("BS")
	require.NoError(t, err)
	assert.Equal(t, "Statement of Financial Position", got.Description)
}

func TestCloseYear(t *testing.T) {
	s := openTestStore(t)
	ofs := createAccount(t, s, "RE.OFS", model.KindPosting, model.NormalDebit, 0)
	open := createAccount(t, s, "RE.OPEN", model.KindPosting, model.NormalCredit, 0)

	txn := model.Transaction{
		Date:        testDay(2026, 1, 1),
		Reference:   "YE-OFS",
		Description: "2025 Closing RE",
		Lines: []model.Line{
			{AccountID: ofs.ID, Amount: 110000},
			{AccountID: open.ID, Amount: -110000},
		},
	}
	require.NoError(t, s.CloseYear(&txn, testDay(2025, 12, 31)))
	require.NotZero(t, txn.ID)

	meta, err := s.Meta()
	require.NoError(t, err)
	assert.Equal(t, testDay(2025, 12, 31), meta.LockDate)

	got, err := s.TransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "YE-OFS", got.Reference)

	// Lock-only close for a year with no net income.
	require.NoError(t, s.CloseYear(nil, testDay(2026, 12, 31)))
	meta, err = s.Meta()
	require.NoError(t, err)
	assert.Equal(t, testDay(2026, 12, 31), meta.LockDate)
	n, err := s.CountTransactions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetCompany("Acme Ltd", 12, 31))
	createAccount(t, s, "BANK", model.KindPosting, model.NormalDebit, 0)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	meta, err := s.Meta()
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", meta.CompanyName)
	_, err = s.AccountByName("BANK")
	assert.NoError(t, err)
}

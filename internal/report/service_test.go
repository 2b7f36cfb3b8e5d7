package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/rollup"
	"github.com/grid-books/grid/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, rollup.NewService(store)), store
}

func seedBooks(t *testing.T, store *memory.Store) (bank, rev model.Account) {
	t.Helper()
	bank = model.Account{Name: "BANK", Description: "Operating Bank", Kind: model.KindPosting, Normal: model.NormalDebit}
	require.NoError(t, store.CreateAccount(&bank))
	rev = model.Account{Name: "REV", Kind: model.KindPosting, Normal: model.NormalCredit}
	require.NoError(t, store.CreateAccount(&rev))

	for _, m := range []time.Month{1, 2} {
		txn := model.Transaction{
			Date:      time.Date(2025, m, 15, 0, 0, 0, 0, time.UTC),
			Reference: "r" + m.String(),
			Lines: []model.Line{
				{AccountID: bank.ID, Amount: 10000},
				{AccountID: rev.ID, Amount: -10000},
			},
		}
		require.NoError(t, store.CreateTransaction(&txn))
	}
	return bank, rev
}

func seedLayout(t *testing.T, store *memory.Store, bank, rev model.Account) {
	t.Helper()
	rep := model.Report{Name: "IS", Description: "Income Statement", SortOrder: 20}
	require.NoError(t, store.CreateReport(&rep, []model.ReportLine{
		{Position: 10, Kind: model.ReportLineLabel, Label: "Revenue"},
		{Position: 20, Kind: model.ReportLineAccount, AccountID: rev.ID, Indent: 1},
		{Position: 30, Kind: model.ReportLineSeparator, SepStyle: model.SepSingle},
		{Position: 40, Kind: model.ReportLineAccount, AccountID: bank.ID, Indent: 1},
	}))
}

func month(m time.Month) Period {
	return Period{
		Label: m.String(),
		From:  time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2025, m, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	svc, store := newTestService(t)
	bank, rev := seedBooks(t, store)
	seedLayout(t, store, bank, rev)

	res, err := svc.Generate("IS", []Period{month(1), month(2)})
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)

	assert.Equal(t, model.ReportLineLabel, res.Rows[0].Kind)
	assert.Equal(t, "Revenue", res.Rows[0].Label)
	assert.Nil(t, res.Rows[0].Values)

	// Account values are display-signed, one per period.
	assert.Equal(t, []int64{10000, 10000}, res.Rows[1].Values)
	assert.Equal(t, "REV", res.Rows[1].Label) // no description, name fallback
	assert.Equal(t, 1, res.Rows[1].Indent)

	assert.Equal(t, model.ReportLineSeparator, res.Rows[2].Kind)
	assert.Equal(t, "Operating Bank", res.Rows[3].Label)
}

func TestGenerate_OpenStartPeriod(t *testing.T) {
	svc, store := newTestService(t)
	bank, rev := seedBooks(t, store)
	seedLayout(t, store, bank, rev)

	res, err := svc.Generate("IS", []Period{
		{Label: "as of Feb", To: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{20000}, res.Rows[3].Values)
}

func TestGenerate_PeriodLimits(t *testing.T) {
	svc, store := newTestService(t)
	bank, rev := seedBooks(t, store)
	seedLayout(t, store, bank, rev)

	_, err := svc.Generate("IS", nil)
	assert.Error(t, err)

	too := make([]Period, 14)
	for i := range too {
		too[i] = month(1)
	}
	_, err = svc.Generate("IS", too)
	assert.Error(t, err)
}

func TestGenerate_UnknownReport(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Generate("NOPE", []Period{month(1)})
	assert.Error(t, err)
}

func TestEditDescription(t *testing.T) {
	svc, store := newTestService(t)
	bank, rev := seedBooks(t, store)
	seedLayout(t, store, bank, rev)

	require.NoError(t, svc.EditDescription("IS", "Profit and Loss"))
	rep, err := store.ReportByName("IS")
	require.NoError(t, err)
	assert.Equal(t, "Profit and Loss", rep.Description)
}

package posting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage/memory"
)

type fixture struct {
	store   *memory.Store
	service *Service
	bank    model.Account
	rev     model.Account
	totals  model.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{store: store, service: NewService(store)}

	f.bank = model.Account{Name: "BANK", Kind: model.KindPosting, Normal: model.NormalDebit}
	require.NoError(t, store.CreateAccount(&f.bank))
	f.rev = model.Account{Name: "REV", Kind: model.KindPosting, Normal: model.NormalCredit}
	require.NoError(t, store.CreateAccount(&f.rev))
	f.totals = model.Account{Name: "TA", Kind: model.KindTotal, Normal: model.NormalDebit}
	require.NoError(t, store.CreateAccount(&f.totals))
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) lines(amount int64) []LineInput {
	return []LineInput{
		{AccountID: f.bank.ID, Amount: amount},
		{AccountID: f.rev.ID, Amount: -amount},
	}
}

func TestPost(t *testing.T) {
	f := newFixture(t)
	txn, err := f.service.Post(date(2025, 1, 15), "Invoice 12", "INV-12", f.lines(10000))
	require.NoError(t, err)
	assert.NotZero(t, txn.ID)
	assert.Equal(t, "INV-12", txn.Reference)
	assert.Zero(t, txn.Imbalance())

	got, err := f.service.Get(txn.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 2)
}

func TestPost_GeneratesReference(t *testing.T) {
	f := newFixture(t)
	txn, err := f.service.Post(date(2025, 1, 15), "cash sale", "", f.lines(500))
	require.NoError(t, err)
	assert.NotEmpty(t, txn.Reference)
}

func TestPost_RejectsImbalance(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Post(date(2025, 1, 15), "bad", "", []LineInput{
		{AccountID: f.bank.ID, Amount: 10000},
		{AccountID: f.rev.ID, Amount: -9900},
	})
	var ierr *errs.ImbalanceError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, int64(100), ierr.Diff)
}

func TestPost_RejectsTotalAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Post(date(2025, 1, 15), "bad", "", []LineInput{
		{AccountID: f.totals.ID, Amount: 100},
		{AccountID: f.rev.ID, Amount: -100},
	})
	var cerr *errs.ConstraintError
	require.True(t, errors.As(err, &cerr))
}

func TestPost_RejectsShortAndUndated(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Post(date(2025, 1, 15), "one leg", "", f.lines(100)[:1])
	assert.Error(t, err)
	_, err = f.service.Post(time.Time{}, "no date", "", f.lines(100))
	assert.Error(t, err)
}

func TestPost_RejectsLockedDate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetLockDate(date(2024, 12, 31)))

	_, err := f.service.Post(date(2024, 12, 31), "on the lock", "", f.lines(100))
	var lerr *errs.LockViolationError
	require.True(t, errors.As(err, &lerr))

	_, err = f.service.Post(date(2025, 1, 1), "after the lock", "", f.lines(100))
	assert.NoError(t, err)
}

func TestEdit_ChecksExistingDateAgainstLock(t *testing.T) {
	f := newFixture(t)
	txn, err := f.service.Post(date(2024, 6, 1), "old entry", "", f.lines(100))
	require.NoError(t, err)
	require.NoError(t, f.store.SetLockDate(date(2024, 12, 31)))

	// Even moving the entry past the lock is refused.
	err = f.service.Edit(txn.ID, date(2025, 2, 1), "moved", "", f.lines(100))
	var lerr *errs.LockViolationError
	require.True(t, errors.As(err, &lerr))

	err = f.service.Delete(txn.ID)
	require.True(t, errors.As(err, &lerr))
}

func TestEdit_KeepsReferenceWhenBlank(t *testing.T) {
	f := newFixture(t)
	txn, err := f.service.Post(date(2025, 1, 15), "original", "KEEP-1", f.lines(100))
	require.NoError(t, err)

	require.NoError(t, f.service.Edit(txn.ID, date(2025, 1, 16), "edited", "", f.lines(200)))
	got, err := f.service.Get(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "KEEP-1", got.Reference)
	assert.Equal(t, "edited", got.Description)
	assert.Equal(t, int64(200), got.Lines[0].Amount)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	txn, err := f.service.Post(date(2025, 1, 15), "gone", "", f.lines(100))
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(txn.ID))

	_, err = f.service.Get(txn.ID)
	var nerr *errs.NotFoundError
	require.True(t, errors.As(err, &nerr))
}

func TestLedger_RunningBalance(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Post(date(2025, 1, 10), "first", "", f.lines(10000))
	require.NoError(t, err)
	_, err = f.service.Post(date(2025, 1, 20), "second", "", f.lines(5000))
	require.NoError(t, err)
	_, err = f.service.Post(date(2025, 2, 5), "third", "", f.lines(2500))
	require.NoError(t, err)

	rows, err := f.service.Ledger(f.bank.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(10000), rows[0].Balance)
	assert.Equal(t, int64(15000), rows[1].Balance)
	assert.Equal(t, int64(17500), rows[2].Balance)
	assert.Equal(t, []string{"REV"}, rows[0].Contra)

	// Bounded view opens with the balance carried in from before.
	rows, err = f.service.Ledger(f.bank.ID, date(2025, 2, 1), time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(17500), rows[0].Balance)
}

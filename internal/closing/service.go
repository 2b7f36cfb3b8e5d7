// Package closing owns the period lock and the year-end rollover.
package closing

import (
	"fmt"
	"time"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/rollup"
	"github.com/grid-books/grid/internal/storage"
)

// Fixed account names the rollover entry posts between. NetIncomeAccount
// is the income statement's bottom-line total; the other two are posting
// accounts inside retained earnings.
const (
	NetIncomeAccount = "NI"
	OffsetAccount    = "RE.OFS"
	OpeningAccount   = "RE.OPEN"
)

// Service controls the lock date and year-end rollover.
type Service struct {
	store  storage.Store
	rollup *rollup.Service
}

// NewService creates a Service backed by store and the rollup engine.
func NewService(store storage.Store, rollup *rollup.Service) *Service {
	return &Service{store: store, rollup: rollup}
}

// LockDate returns the current lock date; zero means never locked.
func (s *Service) LockDate() (time.Time, error) {
	meta, err := s.store.Meta()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading meta: %w", err)
	}
	return meta.LockDate, nil
}

// SetLockDate overwrites the lock date without validation. Moving it
// backward re-opens periods; this is the documented manual override, not
// part of normal rollover.
func (s *Service) SetLockDate(d time.Time) error {
	return s.store.SetLockDate(d)
}

// Result describes a completed rollover.
type Result struct {
	NetIncome   int64 // raw signed cents; negative is a profit on a credit-normal total
	Transaction *model.Transaction
	LockDate    time.Time
}

// YearEnd closes the fiscal year ending at asOf: it computes net income
// over that year, posts the offsetting entry between RE.OFS and RE.OPEN
// dated the first day of the next year, and advances the lock to asOf.
// Entry and lock move in one atomic unit. Re-running for a closed year
// fails because the lock already sits at or past asOf.
func (s *Service) YearEnd(asOf time.Time) (Result, error) {
	if asOf.IsZero() {
		return Result{}, &errs.ValidationError{Field: "date", Msg: "year-end date is required"}
	}
	meta, err := s.store.Meta()
	if err != nil {
		return Result{}, fmt.Errorf("reading meta: %w", err)
	}
	if !meta.LockDate.IsZero() && !asOf.After(meta.LockDate) {
		return Result{}, &errs.LockViolationError{Date: asOf, Lock: meta.LockDate}
	}

	ni, err := s.store.AccountByName(NetIncomeAccount)
	if err != nil {
		return Result{}, err
	}
	fyStart := asOf.AddDate(-1, 0, 1)
	netIncome, err := s.rollup.Balance(ni.ID, fyStart, asOf)
	if err != nil {
		return Result{}, err
	}

	if netIncome == 0 {
		if err := s.store.CloseYear(nil, asOf); err != nil {
			return Result{}, fmt.Errorf("advancing lock date: %w", err)
		}
		return Result{LockDate: asOf}, nil
	}

	ofs, err := s.offsetAccount()
	if err != nil {
		return Result{}, err
	}
	open, err := s.store.AccountByName(OpeningAccount)
	if err != nil {
		return Result{}, err
	}

	desc := fmt.Sprintf("%d Closing RE", asOf.Year())
	t := model.Transaction{
		Date:        asOf.AddDate(0, 0, 1),
		Reference:   "YE-OFS",
		Description: desc,
		Lines: []model.Line{
			{AccountID: ofs.ID, Amount: -netIncome, Description: desc},
			{AccountID: open.ID, Amount: netIncome, Description: desc},
		},
	}
	if err := s.store.CloseYear(&t, asOf); err != nil {
		return Result{}, fmt.Errorf("closing year: %w", err)
	}
	return Result{NetIncome: netIncome, Transaction: &t, LockDate: asOf}, nil
}

// offsetAccount fetches RE.OFS, creating it on first rollover for books
// initialized before it existed.
func (s *Service) offsetAccount() (model.Account, error) {
	ofs, err := s.store.AccountByName(OffsetAccount)
	if err == nil {
		return ofs, nil
	}
	ofs = model.Account{
		Name:        OffsetAccount,
		Description: "Annual Opening RE Offset",
		Kind:        model.KindPosting,
		Normal:      model.NormalDebit,
	}
	if re, err := s.store.AccountByName("RE"); err == nil {
		ofs.ParentID = re.ID
	}
	if err := s.store.CreateAccount(&ofs); err != nil {
		return model.Account{}, fmt.Errorf("creating %s: %w", OffsetAccount, err)
	}
	return ofs, nil
}

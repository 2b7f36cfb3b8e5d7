// Package rollup aggregates posting-account balances through the
// rolls-up-to forest and produces the trial balance.
package rollup

import (
	"fmt"
	"time"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// Service computes balances over a store.
type Service struct {
	store storage.Store
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Balance returns the raw signed balance of an account over [from, to],
// both bounds optional. Posting accounts sum their journal lines; total
// accounts sum their children recursively.
func (s *Service) Balance(accountID int64, from, to time.Time) (int64, error) {
	a, err := s.store.AccountByID(accountID)
	if err != nil {
		return 0, err
	}
	if a.Kind == model.KindPosting {
		return s.store.SumLines(accountID, from, to)
	}
	children, err := s.childIndex()
	if err != nil {
		return 0, err
	}
	return s.totalBalance(accountID, from, to, children)
}

// DisplayBalance is Balance multiplied by the account's normal-balance
// sign, so increasing balances read positive regardless of side.
func (s *Service) DisplayBalance(a model.Account, from, to time.Time) (int64, error) {
	raw, err := s.Balance(a.ID, from, to)
	if err != nil {
		return 0, err
	}
	return raw * a.Sign(), nil
}

func (s *Service) totalBalance(accountID int64, from, to time.Time, children map[int64][]model.Account) (int64, error) {
	var sum int64
	for _, c := range children[accountID] {
		if c.Kind == model.KindPosting {
			b, err := s.store.SumLines(c.ID, from, to)
			if err != nil {
				return 0, err
			}
			sum += b
			continue
		}
		b, err := s.totalBalance(c.ID, from, to, children)
		if err != nil {
			return 0, err
		}
		sum += b
	}
	return sum, nil
}

func (s *Service) childIndex() (map[int64][]model.Account, error) {
	all, err := s.store.Accounts()
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	children := make(map[int64][]model.Account)
	for _, a := range all {
		if a.ParentID != 0 {
			children[a.ParentID] = append(children[a.ParentID], a)
		}
	}
	return children, nil
}

// TrialRow is one trial balance line: a posting account's raw balance
// split into display columns.
type TrialRow struct {
	Account model.Account
	Debit   int64
	Credit  int64
}

// TrialBalance lists every posting account with a non-zero balance as of
// asOf, raw debit balances in the debit column and raw credit balances in
// the credit column, with totals.
type TrialBalance struct {
	AsOf        time.Time
	Rows        []TrialRow
	TotalDebit  int64
	TotalCredit int64
}

// Balanced reports whether the two columns agree. Committed transactions
// always balance, so a false here means the store is corrupt.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit == tb.TotalCredit
}

// TrialBalance computes the trial balance as of asOf.
func (s *Service) TrialBalance(asOf time.Time) (TrialBalance, error) {
	all, err := s.store.Accounts()
	if err != nil {
		return TrialBalance{}, fmt.Errorf("listing accounts: %w", err)
	}
	tb := TrialBalance{AsOf: asOf}
	for _, a := range all {
		if a.Kind != model.KindPosting {
			continue
		}
		raw, err := s.store.SumLines(a.ID, time.Time{}, asOf)
		if err != nil {
			return TrialBalance{}, err
		}
		if raw == 0 {
			continue
		}
		row := TrialRow{Account: a}
		if raw > 0 {
			row.Debit = raw
			tb.TotalDebit += raw
		} else {
			row.Credit = -raw
			tb.TotalCredit += -raw
		}
		tb.Rows = append(tb.Rows, row)
	}
	if !tb.Balanced() {
		return tb, &errs.ConstraintError{Msg: fmt.Sprintf(
			"trial balance out of balance: debits %d, credits %d", tb.TotalDebit, tb.TotalCredit)}
	}
	return tb, nil
}

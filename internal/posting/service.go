// Package posting creates, edits and deletes balanced transactions,
// enforcing the posting-account-only rule and the period lock.
package posting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// Service is the posting engine.
type Service struct {
	store storage.Store
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// LineInput is one journal line as supplied by a caller. Amount is signed
// cents: positive debit, negative credit.
type LineInput struct {
	AccountID   int64
	Amount      int64
	Description string
	TaxCode     string
}

// Post validates and persists a new transaction, returning it with
// assigned ids. A blank reference is replaced with a generated one.
func (s *Service) Post(date time.Time, description, reference string, lines []LineInput) (model.Transaction, error) {
	if err := s.validate(date, lines); err != nil {
		return model.Transaction{}, err
	}
	if reference == "" {
		reference = newReference()
	}
	t := model.Transaction{
		Date:        date,
		Reference:   reference,
		Description: description,
		Lines:       toLines(lines),
	}
	if err := s.store.CreateTransaction(&t); err != nil {
		return model.Transaction{}, fmt.Errorf("posting transaction: %w", err)
	}
	return t, nil
}

// Edit replaces a transaction's header and lines wholesale, under the same
// validation as Post. The existing transaction's date is checked against
// the lock before anything else; a locked entry cannot be touched even to
// move it forward.
func (s *Service) Edit(id int64, date time.Time, description, reference string, lines []LineInput) error {
	old, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.checkLock(old.Date); err != nil {
		return err
	}
	if err := s.validate(date, lines); err != nil {
		return err
	}
	if reference == "" {
		reference = old.Reference
	}
	t := model.Transaction{
		ID:          id,
		Date:        date,
		Reference:   reference,
		Description: description,
		Lines:       toLines(lines),
	}
	if err := s.store.UpdateTransaction(t); err != nil {
		return fmt.Errorf("editing transaction %d: %w", id, err)
	}
	return nil
}

// Delete removes a transaction and its lines. Locked entries are
// immutable.
func (s *Service) Delete(id int64) error {
	old, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.checkLock(old.Date); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(id); err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	return nil
}

// Get fetches one transaction with its lines.
func (s *Service) Get(id int64) (model.Transaction, error) {
	return s.store.TransactionByID(id)
}

// LedgerRow is one line of an account's ledger view with the running
// balance after the line.
type LedgerRow struct {
	storage.LedgerLine
	Balance int64
}

// Ledger returns the account's activity in date order with a running
// balance. The balance starts from the account's total before from, so a
// bounded view still shows true balances.
func (s *Service) Ledger(accountID int64, from, to time.Time) ([]LedgerRow, error) {
	var opening int64
	if !from.IsZero() {
		var err error
		opening, err = s.store.SumLines(accountID, time.Time{}, from.AddDate(0, 0, -1))
		if err != nil {
			return nil, fmt.Errorf("computing opening balance: %w", err)
		}
	}
	lines, err := s.store.LedgerLines(accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	rows := make([]LedgerRow, len(lines))
	running := opening
	for i, l := range lines {
		running += l.Amount
		rows[i] = LedgerRow{LedgerLine: l, Balance: running}
	}
	return rows, nil
}

// validate applies the posting rules in order: shape, account kinds,
// balance, lock.
func (s *Service) validate(date time.Time, lines []LineInput) error {
	if date.IsZero() {
		return &errs.ValidationError{Field: "date", Msg: "transaction date is required"}
	}
	if len(lines) < 2 {
		return &errs.ValidationError{Field: "lines", Msg: "a transaction needs at least two lines"}
	}
	var sum int64
	for _, l := range lines {
		a, err := s.store.AccountByID(l.AccountID)
		if err != nil {
			return err
		}
		if a.Kind != model.KindPosting {
			return &errs.ConstraintError{Msg: fmt.Sprintf("cannot post to total account %s", a.Name)}
		}
		sum += l.Amount
	}
	if sum != 0 {
		return &errs.ImbalanceError{Diff: sum}
	}
	return s.checkLock(date)
}

func (s *Service) checkLock(date time.Time) error {
	meta, err := s.store.Meta()
	if err != nil {
		return fmt.Errorf("reading lock date: %w", err)
	}
	if !meta.LockDate.IsZero() && !date.After(meta.LockDate) {
		return &errs.LockViolationError{Date: date, Lock: meta.LockDate}
	}
	return nil
}

func toLines(in []LineInput) []model.Line {
	out := make([]model.Line, len(in))
	for i, l := range in {
		out[i] = model.Line{
			AccountID:   l.AccountID,
			Amount:      l.Amount,
			Description: l.Description,
			TaxCode:     l.TaxCode,
		}
	}
	return out
}

// newReference makes a short unique reference for entries posted without
// one.
func newReference() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

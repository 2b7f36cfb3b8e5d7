// Package memory is an in-memory storage.Store used by tests. It mirrors
// the sqlite store's semantics, including atomic line replacement and the
// dedup probes, without touching disk.
package memory

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

type Store struct {
	mu sync.Mutex

	meta storage.Meta

	accounts  map[int64]model.Account
	txns      map[int64]model.Transaction
	rules     map[int64]model.ImportRule
	taxCodes  map[string]model.TaxCode
	reports   map[int64]model.Report
	repLines  map[int64][]model.ReportLine
	nextAcct  int64
	nextTxn   int64
	nextLine  int64
	nextRule  int64
	nextRep   int64
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		meta:     storage.Meta{FYEndMonth: 12, FYEndDay: 31},
		accounts: make(map[int64]model.Account),
		txns:     make(map[int64]model.Transaction),
		rules:    make(map[int64]model.ImportRule),
		taxCodes: make(map[string]model.TaxCode),
		reports:  make(map[int64]model.Report),
		repLines: make(map[int64][]model.ReportLine),
	}
}

func (s *Store) Close() error { return nil }

// meta

func (s *Store) Meta() (storage.Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta, nil
}

func (s *Store) SetCompany(name string, fyEndMonth, fyEndDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.CompanyName = name
	s.meta.FYEndMonth = fyEndMonth
	s.meta.FYEndDay = fyEndDay
	return nil
}

func (s *Store) SetLockDate(d time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.LockDate = d
	return nil
}

// accounts

func (s *Store) CreateAccount(a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAcct++
	a.ID = s.nextAcct
	s.accounts[a.ID] = *a
	return nil
}

func (s *Store) UpdateAccount(a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return &errs.NotFoundError{Entity: "account", Key: strconv.FormatInt(a.ID, 10)}
	}
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) AccountByID(id int64) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return model.Account{}, &errs.NotFoundError{Entity: "account", Key: strconv.FormatInt(id, 10)}
	}
	return a, nil
}

func (s *Store) AccountByName(name string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return model.Account{}, &errs.NotFoundError{Entity: "account", Key: name}
}

func (s *Store) Accounts() ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) AccountHasLines(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		for _, l := range t.Lines {
			if l.AccountID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

// transactions

func (s *Store) CreateTransaction(t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertTxn(t)
	return nil
}

func (s *Store) insertTxn(t *model.Transaction) {
	s.nextTxn++
	t.ID = s.nextTxn
	for i := range t.Lines {
		s.nextLine++
		t.Lines[i].ID = s.nextLine
		t.Lines[i].TransactionID = t.ID
	}
	s.txns[t.ID] = cloneTxn(*t)
}

func (s *Store) TransactionByID(id int64) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok {
		return model.Transaction{}, &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(id, 10)}
	}
	return cloneTxn(t), nil
}

func (s *Store) UpdateTransaction(t model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[t.ID]; !ok {
		return &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(t.ID, 10)}
	}
	for i := range t.Lines {
		s.nextLine++
		t.Lines[i].ID = s.nextLine
		t.Lines[i].TransactionID = t.ID
	}
	s.txns[t.ID] = cloneTxn(t)
	return nil
}

func (s *Store) DeleteTransaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[id]; !ok {
		return &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(id, 10)}
	}
	delete(s.txns, id)
	return nil
}

func (s *Store) CountTransactions() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.txns)), nil
}

func (s *Store) SumLines(accountID int64, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, t := range s.txns {
		if !inRange(t.Date, from, to) {
			continue
		}
		for _, l := range t.Lines {
			if l.AccountID == accountID {
				sum += l.Amount
			}
		}
	}
	return sum, nil
}

func (s *Store) LedgerLines(accountID int64, from, to time.Time) ([]storage.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.LedgerLine
	for _, t := range s.txns {
		if !inRange(t.Date, from, to) {
			continue
		}
		for _, l := range t.Lines {
			if l.AccountID != accountID {
				continue
			}
			var contra []string
			for _, o := range t.Lines {
				if o.AccountID != accountID {
					if a, ok := s.accounts[o.AccountID]; ok {
						contra = append(contra, a.Name)
					}
				}
			}
			out = append(out, storage.LedgerLine{
				TransactionID: t.ID,
				Date:          t.Date,
				Reference:     t.Reference,
				Description:   t.Description,
				LineDesc:      l.Description,
				Amount:        l.Amount,
				Contra:        contra,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	return out, nil
}

func (s *Store) HasReference(ref string) (bool, error) {
	if ref == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		if t.Reference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HasSimilar(date time.Time, description string, amount int64) (bool, error) {
	if amount < 0 {
		amount = -amount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		if !t.Date.Equal(date) || t.Description != description {
			continue
		}
		for _, l := range t.Lines {
			a := l.Amount
			if a < 0 {
				a = -a
			}
			if a == amount {
				return true, nil
			}
		}
	}
	return false, nil
}

// rules

func (s *Store) CreateRule(r *model.ImportRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRule++
	r.ID = s.nextRule
	s.rules[r.ID] = *r
	return nil
}

func (s *Store) UpdateRule(r model.ImportRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[r.ID]; !ok {
		return &errs.NotFoundError{Entity: "rule", Key: strconv.FormatInt(r.ID, 10)}
	}
	s.rules[r.ID] = r
	return nil
}

func (s *Store) DeleteRule(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return &errs.NotFoundError{Entity: "rule", Key: strconv.FormatInt(id, 10)}
	}
	delete(s.rules, id)
	return nil
}

func (s *Store) Rules() ([]model.ImportRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ImportRule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// tax codes

func (s *Store) CreateTaxCode(tc model.TaxCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxCodes[tc.Code] = tc
	return nil
}

func (s *Store) TaxCodeByCode(code string) (model.TaxCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tc, ok := s.taxCodes[code]
	if !ok {
		return model.TaxCode{}, &errs.NotFoundError{Entity: "tax code", Key: code}
	}
	return tc, nil
}

func (s *Store) TaxCodes() ([]model.TaxCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TaxCode, 0, len(s.taxCodes))
	for _, tc := range s.taxCodes {
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// reports

func (s *Store) CreateReport(r *model.Report, lines []model.ReportLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRep++
	r.ID = s.nextRep
	s.reports[r.ID] = *r
	stored := make([]model.ReportLine, len(lines))
	copy(stored, lines)
	for i := range stored {
		stored[i].ReportID = r.ID
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Position < stored[j].Position })
	s.repLines[r.ID] = stored
	return nil
}

func (s *Store) ReportByName(name string) (model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return model.Report{}, &errs.NotFoundError{Entity: "report", Key: name}
}

func (s *Store) Reports() ([]model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) SetReportDescription(id int64, desc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return &errs.NotFoundError{Entity: "report", Key: strconv.FormatInt(id, 10)}
	}
	r.Description = desc
	s.reports[id] = r
	return nil
}

func (s *Store) ReportLines(reportID int64) ([]model.ReportLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.repLines[reportID]
	out := make([]model.ReportLine, len(lines))
	copy(out, lines)
	return out, nil
}

// year end

func (s *Store) CloseYear(t *model.Transaction, lockDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != nil {
		s.insertTxn(t)
	}
	s.meta.LockDate = lockDate
	return nil
}

func cloneTxn(t model.Transaction) model.Transaction {
	lines := make([]model.Line, len(t.Lines))
	copy(lines, t.Lines)
	t.Lines = lines
	return t
}

func inRange(d, from, to time.Time) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

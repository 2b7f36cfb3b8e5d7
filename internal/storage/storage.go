// Package storage defines the persistence surface of the engine. The sqlite
// subpackage is the production store; memory backs tests.
package storage

import (
	"time"

	"github.com/grid-books/grid/internal/model"
)

// Meta is the single-row ledger metadata. A zero LockDate means the books
// have never been locked.
type Meta struct {
	CompanyName string
	FYEndMonth  int
	FYEndDay    int
	LockDate    time.Time
}

// LedgerLine is one row of an account's ledger view: the line joined with
// its transaction header and the names of the other accounts on the entry.
type LedgerLine struct {
	TransactionID int64
	Date          time.Time
	Reference     string
	Description   string
	LineDesc      string
	Amount        int64
	Contra        []string
}

// Store is the persistence contract. Every write method is one atomic
// commit unit; missing rows come back as *errs.NotFoundError.
type Store interface {
	// meta
	Meta() (Meta, error)
	SetCompany(name string, fyEndMonth, fyEndDay int) error
	SetLockDate(d time.Time) error

	// chart of accounts
	CreateAccount(a *model.Account) error
	UpdateAccount(a model.Account) error
	AccountByID(id int64) (model.Account, error)
	AccountByName(name string) (model.Account, error)
	Accounts() ([]model.Account, error)
	AccountHasLines(id int64) (bool, error)

	// transactions
	CreateTransaction(t *model.Transaction) error
	TransactionByID(id int64) (model.Transaction, error)
	UpdateTransaction(t model.Transaction) error
	DeleteTransaction(id int64) error
	CountTransactions() (int64, error)
	SumLines(accountID int64, from, to time.Time) (int64, error)
	LedgerLines(accountID int64, from, to time.Time) ([]LedgerLine, error)
	HasReference(ref string) (bool, error)
	HasSimilar(date time.Time, description string, amount int64) (bool, error)

	// import rules
	CreateRule(r *model.ImportRule) error
	UpdateRule(r model.ImportRule) error
	DeleteRule(id int64) error
	Rules() ([]model.ImportRule, error)

	// tax codes
	CreateTaxCode(tc model.TaxCode) error
	TaxCodeByCode(code string) (model.TaxCode, error)
	TaxCodes() ([]model.TaxCode, error)

	// reports
	CreateReport(r *model.Report, lines []model.ReportLine) error
	ReportByName(name string) (model.Report, error)
	Reports() ([]model.Report, error)
	SetReportDescription(id int64, desc string) error
	ReportLines(reportID int64) ([]model.ReportLine, error)

	// CloseYear persists the closing transaction and advances the lock date
	// as a single atomic unit.
	CloseYear(t *model.Transaction, lockDate time.Time) error

	Close() error
}

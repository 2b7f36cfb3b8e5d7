// Package engine bundles one open set of books with its services. An
// Engine is an explicit session value: every caller goes through one
// instead of a process-global notion of the currently open books.
package engine

import (
	"fmt"
	"time"

	"github.com/grid-books/grid/internal/accounts"
	"github.com/grid-books/grid/internal/auditlog"
	"github.com/grid-books/grid/internal/closing"
	"github.com/grid-books/grid/internal/importer"
	"github.com/grid-books/grid/internal/posting"
	"github.com/grid-books/grid/internal/report"
	"github.com/grid-books/grid/internal/rollup"
	"github.com/grid-books/grid/internal/rules"
	"github.com/grid-books/grid/internal/storage"
	"github.com/grid-books/grid/internal/storage/sqlite"
)

// Engine is one open ledger and the services over it.
type Engine struct {
	Store    storage.Store
	Accounts *accounts.Service
	Posting  *posting.Service
	Rollup   *rollup.Service
	Reports  *report.Service
	Rules    *rules.Service
	Importer *importer.Service
	Closing  *closing.Service

	path string
}

// New wraps an already-open store. The caller keeps ownership of non-file
// stores; Close is still safe to call.
func New(store storage.Store) *Engine {
	e := &Engine{Store: store}
	e.Accounts = accounts.NewService(store)
	e.Posting = posting.NewService(store)
	e.Rollup = rollup.NewService(store)
	e.Reports = report.NewService(store, e.Rollup)
	e.Rules = rules.NewService(store)
	e.Importer = importer.NewService(store, e.Posting)
	e.Closing = closing.NewService(store, e.Rollup)
	return e
}

// Open opens (or creates) the books file at path.
func Open(path string) (*Engine, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	e := New(store)
	e.path = path
	return e, nil
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.Store.Close()
}

// Path returns the books file path, empty for in-memory stores.
func (e *Engine) Path() string {
	return e.path
}

// Audit appends one entry to the audit log beside the books file. It is a
// no-op for stores without a file.
func (e *Engine) Audit(action, details, txnID string) error {
	if e.path == "" {
		return nil
	}
	return auditlog.Append(e.path, []auditlog.Entry{{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
		TxnID:     txnID,
	}})
}

// Info summarizes the open books.
type Info struct {
	CompanyName   string
	FiscalYearEnd string // MM-DD
	LockDate      time.Time
	Accounts      int
	Transactions  int64
}

// Info reads company metadata and entity counts.
func (e *Engine) Info() (Info, error) {
	meta, err := e.Store.Meta()
	if err != nil {
		return Info{}, fmt.Errorf("reading meta: %w", err)
	}
	accts, err := e.Store.Accounts()
	if err != nil {
		return Info{}, err
	}
	txns, err := e.Store.CountTransactions()
	if err != nil {
		return Info{}, err
	}
	return Info{
		CompanyName:   meta.CompanyName,
		FiscalYearEnd: fmt.Sprintf("%02d-%02d", meta.FYEndMonth, meta.FYEndDay),
		LockDate:      meta.LockDate,
		Accounts:      len(accts),
		Transactions:  txns,
	}, nil
}

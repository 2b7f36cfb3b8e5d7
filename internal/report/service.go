// Package report materializes named report structures into tables of
// display-signed balances, one column per comparative period.
package report

import (
	"fmt"
	"time"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/rollup"
	"github.com/grid-books/grid/internal/storage"
)

// maxPeriods caps the side-by-side comparative columns.
const maxPeriods = 13

// Service generates reports from stored layouts and rollup balances.
type Service struct {
	store  storage.Store
	rollup *rollup.Service
}

// NewService creates a Service backed by store and the rollup engine.
func NewService(store storage.Store, rollup *rollup.Service) *Service {
	return &Service{store: store, rollup: rollup}
}

// Period is one value column. A zero From leaves the range open at the
// start, which is how balance sheet columns are built.
type Period struct {
	Label string
	From  time.Time
	To    time.Time
}

// Row is one rendered report line. Values holds one display-signed amount
// per period for account rows and is nil for labels and separators.
type Row struct {
	Kind     model.ReportLineKind
	Label    string
	Account  model.Account
	Indent   int
	SepStyle model.SepStyle
	Values   []int64
}

// Result is a generated report.
type Result struct {
	Report  model.Report
	Periods []Period
	Rows    []Row
}

// Generate renders the named report across the given periods, walking the
// stored layout in position order and computing each account line's rollup
// balance per period.
func (s *Service) Generate(name string, periods []Period) (Result, error) {
	if len(periods) == 0 {
		return Result{}, &errs.ValidationError{Field: "periods", Msg: "at least one period is required"}
	}
	if len(periods) > maxPeriods {
		return Result{}, &errs.ValidationError{Field: "periods",
			Msg: fmt.Sprintf("at most %d comparative periods are supported", maxPeriods)}
	}

	rep, err := s.store.ReportByName(name)
	if err != nil {
		return Result{}, err
	}
	lines, err := s.store.ReportLines(rep.ID)
	if err != nil {
		return Result{}, err
	}

	res := Result{Report: rep, Periods: periods}
	for _, l := range lines {
		row := Row{Kind: l.Kind, Label: l.Label, Indent: l.Indent, SepStyle: l.SepStyle}
		if l.Kind == model.ReportLineAccount {
			a, err := s.store.AccountByID(l.AccountID)
			if err != nil {
				return Result{}, err
			}
			row.Account = a
			if row.Label == "" {
				row.Label = a.Description
				if row.Label == "" {
					row.Label = a.Name
				}
			}
			row.Values = make([]int64, len(periods))
			for i, p := range periods {
				v, err := s.rollup.DisplayBalance(a, p.From, p.To)
				if err != nil {
					return Result{}, err
				}
				row.Values[i] = v
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// List returns every stored report in sort order.
func (s *Service) List() ([]model.Report, error) {
	return s.store.Reports()
}

// EditDescription updates a report's description, the only mutation report
// headers support.
func (s *Service) EditDescription(name, desc string) error {
	rep, err := s.store.ReportByName(name)
	if err != nil {
		return err
	}
	return s.store.SetReportDescription(rep.ID, desc)
}

// Package importer normalizes heterogeneous bank files into candidate
// rows, deduplicates them against the ledger, classifies them through the
// rule set and posts the survivors. Per-row failures never abort a batch;
// only an unreadable file is a hard error.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/grid-books/grid/internal/dates"
	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/posting"
	"github.com/grid-books/grid/internal/rules"
	"github.com/grid-books/grid/internal/storage"
)

// SuspenseAccount receives rows no rule could classify.
const SuspenseAccount = "EX.SUSP"

// RowError is one skipped row with its reason.
type RowError struct {
	Row    int
	Reason string
}

// Summary is the outcome of one import batch.
type Summary struct {
	RowsProcessed int
	Posted        int
	Skipped       int
	ToSuspense    int
	Repairs       []Repair
	Errors        []RowError
}

// Service drives bank file imports. DayFirst switches ambiguous slashed
// dates to day/month/year reading for exports from those locales.
type Service struct {
	store    storage.Store
	posting  *posting.Service
	DayFirst bool
}

// NewService creates a Service posting through the given engine.
func NewService(store storage.Store, posting *posting.Service) *Service {
	return &Service{store: store, posting: posting}
}

// ImportCSV reads a bank CSV and posts its rows against the bank account.
// The file shape and column roles are detected from the header.
func (s *Service) ImportCSV(r io.Reader, bankAccountID int64) (Summary, error) {
	raw, err := readCSV(r)
	if err != nil {
		return Summary{}, err
	}
	hasHeader, data, repairs := NormalizeCSV(raw)
	return s.postCSV(hasHeader, data, repairs, bankAccountID)
}

// ImportCSVLayout imports a bank CSV using an explicit column layout,
// skipping header role detection.
func (s *Service) ImportCSVLayout(r io.Reader, bankAccountID int64, l Layout) (Summary, error) {
	raw, err := readCSV(r)
	if err != nil {
		return Summary{}, err
	}
	hasHeader, data := ApplyLayout(raw, l)
	return s.postCSV(hasHeader, data, nil, bankAccountID)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	raw, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}
	if len(raw[0]) > 0 {
		raw[0][0] = strings.TrimPrefix(raw[0][0], "\ufeff")
	}
	return raw, nil
}

func (s *Service) postCSV(hasHeader bool, data [][]string, repairs []Repair, bankAccountID int64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, fmt.Errorf("no data rows in CSV file")
	}
	rows, rowErrs := ExtractRows(hasHeader, data)
	sum, err := s.importRows(rows, bankAccountID)
	if err != nil {
		return Summary{}, err
	}
	sum.RowsProcessed = len(data)
	sum.Skipped += len(rowErrs)
	sum.Errors = append(rowErrs, sum.Errors...)
	sum.Repairs = repairs
	return sum, nil
}

// ImportOFX reads an OFX/QBO statement and posts its records against the
// bank account. Records the parser could not use are counted as skips.
func (s *Service) ImportOFX(r io.Reader, bankAccountID int64) (Summary, error) {
	rows, rowErrs, err := ParseOFX(r)
	if err != nil {
		return Summary{}, err
	}
	sum, err := s.importRows(rows, bankAccountID)
	if err != nil {
		return Summary{}, err
	}
	sum.RowsProcessed = len(rows) + len(rowErrs)
	sum.Skipped += len(rowErrs)
	sum.Errors = append(rowErrs, sum.Errors...)
	return sum, nil
}

// importRows is the shared posting loop: dedup, classify, tax split, post.
// Each row resolves to posted, skipped or suspense; the accumulator is the
// batch result.
func (s *Service) importRows(bankRows []model.BankRow, bankAccountID int64) (Summary, error) {
	bank, err := s.store.AccountByID(bankAccountID)
	if err != nil {
		return Summary{}, err
	}
	if bank.Kind != model.KindPosting {
		return Summary{}, &errs.ConstraintError{Msg: fmt.Sprintf("cannot import into total account %s", bank.Name)}
	}
	ruleSet, err := s.store.Rules()
	if err != nil {
		return Summary{}, fmt.Errorf("loading rules: %w", err)
	}
	meta, err := s.store.Meta()
	if err != nil {
		return Summary{}, fmt.Errorf("reading meta: %w", err)
	}

	var sum Summary
	for _, row := range bankRows {
		date, err := s.normalizeDate(row.Date)
		if err != nil {
			sum.skip(row.Row, fmt.Sprintf("bad date %q", row.Date))
			continue
		}
		if !meta.LockDate.IsZero() && !date.After(meta.LockDate) {
			sum.skip(row.Row, fmt.Sprintf("before lock date %s", meta.LockDate.Format("2006-01-02")))
			continue
		}
		if row.Amount == 0 {
			sum.skip(row.Row, "zero amount")
			continue
		}

		dup, err := s.isDuplicate(row, date)
		if err != nil {
			return Summary{}, err
		}
		if dup {
			sum.Skipped++
			continue
		}

		targetName := SuspenseAccount
		taxCode := ""
		if rule, ok := rules.Classify(row.Description, ruleSet); ok {
			targetName = rule.AccountName
			taxCode = rule.TaxCode
		}
		target, err := s.store.AccountByName(targetName)
		if err != nil {
			sum.skip(row.Row, fmt.Sprintf("account %q not found", targetName))
			continue
		}

		lines, err := s.buildLines(row, bankAccountID, target.ID, taxCode)
		if err != nil {
			sum.skip(row.Row, err.Error())
			continue
		}
		if _, err := s.posting.Post(date, row.Description, row.Reference, lines); err != nil {
			sum.skip(row.Row, err.Error())
			continue
		}
		sum.Posted++
		if targetName == SuspenseAccount {
			sum.ToSuspense++
		}
	}
	return sum, nil
}

// buildLines constructs the journal lines for one bank row: bank side at
// the bank amount, counter side at its negation, split into net and tax
// when the matched rule carries a tax code.
func (s *Service) buildLines(row model.BankRow, bankID, targetID int64, taxCode string) ([]posting.LineInput, error) {
	counter := -row.Amount

	simple := func() []posting.LineInput {
		// Debit line first, matching hand-posted entries.
		if row.Amount > 0 {
			return []posting.LineInput{
				{AccountID: bankID, Amount: row.Amount, Description: row.Description},
				{AccountID: targetID, Amount: counter, Description: row.Description},
			}
		}
		return []posting.LineInput{
			{AccountID: targetID, Amount: counter, Description: row.Description},
			{AccountID: bankID, Amount: row.Amount, Description: row.Description},
		}
	}

	if taxCode == "" {
		return simple(), nil
	}
	tc, err := s.store.TaxCodeByCode(taxCode)
	if err != nil || tc.RatePercent.IsZero() {
		return simple(), nil
	}
	taxAcct, err := s.store.AccountByName(rules.TaxAccount(tc, counter))
	if err != nil {
		return simple(), nil
	}

	net, tax := rules.Split(counter, tc.RatePercent)
	taxDesc := fmt.Sprintf("%s on %s", tc.Code, truncate(row.Description, 30))
	if counter > 0 {
		return []posting.LineInput{
			{AccountID: targetID, Amount: net, Description: row.Description, TaxCode: tc.Code},
			{AccountID: taxAcct.ID, Amount: tax, Description: taxDesc, TaxCode: tc.Code},
			{AccountID: bankID, Amount: row.Amount, Description: row.Description},
		}, nil
	}
	return []posting.LineInput{
		{AccountID: bankID, Amount: row.Amount, Description: row.Description},
		{AccountID: targetID, Amount: net, Description: row.Description, TaxCode: tc.Code},
		{AccountID: taxAcct.ID, Amount: tax, Description: taxDesc, TaxCode: tc.Code},
	}, nil
}

func (s *Service) normalizeDate(v string) (time.Time, error) {
	if s.DayFirst {
		return dates.NormalizeDayFirst(v)
	}
	return dates.Normalize(v)
}

// isDuplicate applies the two dedup probes: the external reference when
// the row has one, otherwise the (date, description, amount) triple.
func (s *Service) isDuplicate(row model.BankRow, date time.Time) (bool, error) {
	if row.Reference != "" {
		return s.store.HasReference(row.Reference)
	}
	return s.store.HasSimilar(date, row.Description, row.Amount)
}

func (sum *Summary) skip(row int, reason string) {
	sum.Skipped++
	sum.Errors = append(sum.Errors, RowError{Row: row, Reason: reason})
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

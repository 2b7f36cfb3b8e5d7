package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/shopspring/decimal"
)

// CreateRule inserts r and fills in its assigned id.
func (s *Store) CreateRule(r *model.ImportRule) error {
	res, err := s.db.Exec(
		`INSERT INTO import_rules (keyword, account_name, tax_code, priority, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Keyword, r.AccountName, r.TaxCode, r.Priority, r.Notes)
	if err != nil {
		return fmt.Errorf("failed to create rule %q: %w", r.Keyword, err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

// UpdateRule rewrites every column of the rule row.
func (s *Store) UpdateRule(r model.ImportRule) error {
	res, err := s.db.Exec(
		`UPDATE import_rules SET keyword = ?, account_name = ?, tax_code = ?, priority = ?, notes = ?
		 WHERE id = ?`,
		r.Keyword, r.AccountName, r.TaxCode, r.Priority, r.Notes, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update rule %d: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errs.NotFoundError{Entity: "rule", Key: strconv.FormatInt(r.ID, 10)}
	}
	return nil
}

// DeleteRule removes one rule.
func (s *Store) DeleteRule(id int64) error {
	res, err := s.db.Exec(`DELETE FROM import_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errs.NotFoundError{Entity: "rule", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Rules returns every import rule in id order.
func (s *Store) Rules() ([]model.ImportRule, error) {
	rows, err := s.db.Query(
		`SELECT id, keyword, account_name, tax_code, priority, notes FROM import_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var out []model.ImportRule
	for rows.Next() {
		var r model.ImportRule
		if err := rows.Scan(&r.ID, &r.Keyword, &r.AccountName, &r.TaxCode, &r.Priority, &r.Notes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateTaxCode inserts one tax code. The rate is stored as decimal text to
// keep it exact.
func (s *Store) CreateTaxCode(tc model.TaxCode) error {
	_, err := s.db.Exec(
		`INSERT INTO tax_codes (code, description, rate_percent, collected_account, paid_account)
		 VALUES (?, ?, ?, ?, ?)`,
		tc.Code, tc.Description, tc.RatePercent.String(), tc.CollectedAccount, tc.PaidAccount)
	if err != nil {
		return fmt.Errorf("failed to create tax code %s: %w", tc.Code, err)
	}
	return nil
}

// TaxCodeByCode fetches one tax code.
func (s *Store) TaxCodeByCode(code string) (model.TaxCode, error) {
	var tc model.TaxCode
	var rate string
	err := s.db.QueryRow(
		`SELECT code, description, rate_percent, collected_account, paid_account
		 FROM tax_codes WHERE code = ?`, code,
	).Scan(&tc.Code, &tc.Description, &rate, &tc.CollectedAccount, &tc.PaidAccount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaxCode{}, &errs.NotFoundError{Entity: "tax code", Key: code}
	}
	if err != nil {
		return model.TaxCode{}, fmt.Errorf("failed to read tax code %s: %w", code, err)
	}
	if tc.RatePercent, err = decimal.NewFromString(rate); err != nil {
		return model.TaxCode{}, fmt.Errorf("corrupt rate on tax code %s: %w", code, err)
	}
	return tc, nil
}

// TaxCodes returns every tax code in code order.
func (s *Store) TaxCodes() ([]model.TaxCode, error) {
	rows, err := s.db.Query(
		`SELECT code, description, rate_percent, collected_account, paid_account
		 FROM tax_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax codes: %w", err)
	}
	defer rows.Close()

	var out []model.TaxCode
	for rows.Next() {
		var tc model.TaxCode
		var rate string
		if err := rows.Scan(&tc.Code, &tc.Description, &rate, &tc.CollectedAccount, &tc.PaidAccount); err != nil {
			return nil, err
		}
		if tc.RatePercent, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("corrupt rate on tax code %s: %w", tc.Code, err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
)

// CreateAccount inserts a and fills in its assigned id.
func (s *Store) CreateAccount(a *model.Account) error {
	res, err := s.db.Exec(
		`INSERT INTO accounts (name, description, number, kind, normal, parent_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, a.Description, a.Number, string(a.Kind), string(a.Normal), nullableID(a.ParentID))
	if err != nil {
		return fmt.Errorf("failed to create account %s: %w", a.Name, err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

// UpdateAccount rewrites every mutable column of the account row.
func (s *Store) UpdateAccount(a model.Account) error {
	res, err := s.db.Exec(
		`UPDATE accounts SET name = ?, description = ?, number = ?, kind = ?, normal = ?, parent_id = ?
		 WHERE id = ?`,
		a.Name, a.Description, a.Number, string(a.Kind), string(a.Normal), nullableID(a.ParentID), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", a.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errs.NotFoundError{Entity: "account", Key: strconv.FormatInt(a.ID, 10)}
	}
	return nil
}

// AccountByID fetches one account row.
func (s *Store) AccountByID(id int64) (model.Account, error) {
	return s.scanAccount(
		s.db.QueryRow(accountCols+` WHERE id = ?`, id),
		strconv.FormatInt(id, 10))
}

// AccountByName fetches by exact name; the name column collates
// case-insensitively.
func (s *Store) AccountByName(name string) (model.Account, error) {
	return s.scanAccount(
		s.db.QueryRow(accountCols+` WHERE name = ?`, name),
		name)
}

// Accounts returns the full chart ordered by name.
func (s *Store) Accounts() ([]model.Account, error) {
	rows, err := s.db.Query(accountCols + ` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		var parent sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Number, &a.Kind, &a.Normal, &parent); err != nil {
			return nil, err
		}
		a.ParentID = parent.Int64
		out = append(out, a)
	}
	return out, rows.Err()
}

// AccountHasLines reports whether any journal line references the account.
func (s *Store) AccountHasLines(id int64) (bool, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(1) FROM journal_lines WHERE account_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count lines for account %d: %w", id, err)
	}
	return n > 0, nil
}

const accountCols = `SELECT id, name, description, number, kind, normal, parent_id FROM accounts`

func (s *Store) scanAccount(row *sql.Row, key string) (model.Account, error) {
	var a model.Account
	var parent sql.NullInt64
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Number, &a.Kind, &a.Normal, &parent)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, &errs.NotFoundError{Entity: "account", Key: key}
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to read account %s: %w", key, err)
	}
	a.ParentID = parent.Int64
	return a, nil
}

// nullableID maps the zero id to SQL NULL so foreign keys stay honest.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

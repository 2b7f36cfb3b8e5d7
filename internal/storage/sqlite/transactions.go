package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// CreateTransaction inserts the header and its lines in one commit and
// fills in the assigned ids.
func (s *Store) CreateTransaction(t *model.Transaction) error {
	return s.transact(func(tx *sql.Tx) error {
		return insertTransaction(tx, t)
	})
}

func insertTransaction(tx *sql.Tx, t *model.Transaction) error {
	res, err := tx.Exec(
		`INSERT INTO transactions (date, reference, description) VALUES (?, ?, ?)`,
		dayText(t.Date), t.Reference, t.Description)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	for i := range t.Lines {
		l := &t.Lines[i]
		l.TransactionID = t.ID
		res, err := tx.Exec(
			`INSERT INTO journal_lines (transaction_id, account_id, amount, description, tax_code)
			 VALUES (?, ?, ?, ?, ?)`,
			l.TransactionID, l.AccountID, l.Amount, l.Description, l.TaxCode)
		if err != nil {
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
		if l.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// TransactionByID fetches a transaction with its lines in line-id order.
func (s *Store) TransactionByID(id int64) (model.Transaction, error) {
	var t model.Transaction
	var date string
	err := s.db.QueryRow(
		`SELECT id, date, reference, description FROM transactions WHERE id = ?`, id,
	).Scan(&t.ID, &date, &t.Reference, &t.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to read transaction %d: %w", id, err)
	}
	if t.Date, err = parseDay(date); err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt date on transaction %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT id, transaction_id, account_id, amount, description, tax_code
		 FROM journal_lines WHERE transaction_id = ? ORDER BY id`, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to read lines for transaction %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var l model.Line
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.AccountID, &l.Amount, &l.Description, &l.TaxCode); err != nil {
			return model.Transaction{}, err
		}
		t.Lines = append(t.Lines, l)
	}
	return t, rows.Err()
}

// UpdateTransaction rewrites the header and replaces every line atomically.
func (s *Store) UpdateTransaction(t model.Transaction) error {
	return s.transact(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE transactions SET date = ?, reference = ?, description = ? WHERE id = ?`,
			dayText(t.Date), t.Reference, t.Description, t.ID)
		if err != nil {
			return fmt.Errorf("failed to update transaction %d: %w", t.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(t.ID, 10)}
		}
		if _, err := tx.Exec(`DELETE FROM journal_lines WHERE transaction_id = ?`, t.ID); err != nil {
			return fmt.Errorf("failed to clear lines for transaction %d: %w", t.ID, err)
		}
		for _, l := range t.Lines {
			if _, err := tx.Exec(
				`INSERT INTO journal_lines (transaction_id, account_id, amount, description, tax_code)
				 VALUES (?, ?, ?, ?, ?)`,
				t.ID, l.AccountID, l.Amount, l.Description, l.TaxCode); err != nil {
				return fmt.Errorf("failed to insert journal line: %w", err)
			}
		}
		return nil
	})
}

// DeleteTransaction removes the header; lines cascade.
func (s *Store) DeleteTransaction(id int64) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errs.NotFoundError{Entity: "transaction", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

// CountTransactions returns the number of transactions in the ledger.
func (s *Store) CountTransactions() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(1) FROM transactions`).Scan(&n)
	return n, err
}

// SumLines totals the signed line amounts for one account over a date
// range. Zero bounds leave that side of the range open.
func (s *Store) SumLines(accountID int64, from, to time.Time) (int64, error) {
	q := `SELECT COALESCE(SUM(l.amount), 0)
	      FROM journal_lines l JOIN transactions t ON t.id = l.transaction_id
	      WHERE l.account_id = ?`
	args := []any{accountID}
	if !from.IsZero() {
		q += ` AND t.date >= ?`
		args = append(args, dayText(from))
	}
	if !to.IsZero() {
		q += ` AND t.date <= ?`
		args = append(args, dayText(to))
	}
	var sum int64
	if err := s.db.QueryRow(q, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum lines for account %d: %w", accountID, err)
	}
	return sum, nil
}

// LedgerLines returns the account's lines in date then id order, each
// annotated with the other account names on its transaction.
func (s *Store) LedgerLines(accountID int64, from, to time.Time) ([]storage.LedgerLine, error) {
	q := `SELECT t.id, t.date, t.reference, t.description, l.description, l.amount,
	             COALESCE((SELECT GROUP_CONCAT(a.name)
	                       FROM journal_lines o JOIN accounts a ON a.id = o.account_id
	                       WHERE o.transaction_id = t.id AND o.account_id != l.account_id), '')
	      FROM journal_lines l JOIN transactions t ON t.id = l.transaction_id
	      WHERE l.account_id = ?`
	args := []any{accountID}
	if !from.IsZero() {
		q += ` AND t.date >= ?`
		args = append(args, dayText(from))
	}
	if !to.IsZero() {
		q += ` AND t.date <= ?`
		args = append(args, dayText(to))
	}
	q += ` ORDER BY t.date, t.id, l.id`

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var out []storage.LedgerLine
	for rows.Next() {
		var ll storage.LedgerLine
		var date, contra string
		if err := rows.Scan(&ll.TransactionID, &date, &ll.Reference, &ll.Description, &ll.LineDesc, &ll.Amount, &contra); err != nil {
			return nil, err
		}
		if ll.Date, err = parseDay(date); err != nil {
			return nil, err
		}
		if contra != "" {
			ll.Contra = strings.Split(contra, ",")
		}
		out = append(out, ll)
	}
	return out, rows.Err()
}

// HasReference reports whether any transaction carries the reference.
func (s *Store) HasReference(ref string) (bool, error) {
	if ref == "" {
		return false, nil
	}
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(1) FROM transactions WHERE reference = ?`, ref).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to probe reference %q: %w", ref, err)
	}
	return n > 0, nil
}

// HasSimilar reports whether a transaction with the same date and
// description carries a line of the same magnitude. This is the fallback
// dedup probe for bank rows without a stable reference.
func (s *Store) HasSimilar(date time.Time, description string, amount int64) (bool, error) {
	if amount < 0 {
		amount = -amount
	}
	var n int64
	err := s.db.QueryRow(
		`SELECT COUNT(1)
		 FROM transactions t JOIN journal_lines l ON l.transaction_id = t.id
		 WHERE t.date = ? AND t.description = ? AND ABS(l.amount) = ?`,
		dayText(date), description, amount).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to probe for duplicate row: %w", err)
	}
	return n > 0, nil
}

// CloseYear writes the closing transaction (when present) and advances the
// lock date in one commit. A nil transaction advances the lock alone.
func (s *Store) CloseYear(t *model.Transaction, lockDate time.Time) error {
	return s.transact(func(tx *sql.Tx) error {
		if t != nil {
			if err := insertTransaction(tx, t); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(`UPDATE meta SET lock_date = ? WHERE id = 1`, dayText(lockDate)); err != nil {
			return fmt.Errorf("failed to advance lock date: %w", err)
		}
		return nil
	})
}

package sqlite

import (
	"fmt"
	"time"

	"github.com/grid-books/grid/internal/storage"
)

// Meta reads the single-row ledger metadata.
func (s *Store) Meta() (storage.Meta, error) {
	var m storage.Meta
	var lock string
	err := s.db.QueryRow(
		`SELECT company_name, fy_end_month, fy_end_day, lock_date FROM meta WHERE id = 1`,
	).Scan(&m.CompanyName, &m.FYEndMonth, &m.FYEndDay, &lock)
	if err != nil {
		return storage.Meta{}, fmt.Errorf("failed to read meta: %w", err)
	}
	m.LockDate, err = parseDay(lock)
	if err != nil {
		return storage.Meta{}, fmt.Errorf("corrupt lock date %q: %w", lock, err)
	}
	return m, nil
}

// SetCompany sets the company name and fiscal year end.
func (s *Store) SetCompany(name string, fyEndMonth, fyEndDay int) error {
	_, err := s.db.Exec(
		`UPDATE meta SET company_name = ?, fy_end_month = ?, fy_end_day = ? WHERE id = 1`,
		name, fyEndMonth, fyEndDay)
	if err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}

// SetLockDate overwrites the lock date. A zero time clears the lock.
func (s *Store) SetLockDate(d time.Time) error {
	_, err := s.db.Exec(`UPDATE meta SET lock_date = ? WHERE id = 1`, dayText(d))
	if err != nil {
		return fmt.Errorf("failed to set lock date: %w", err)
	}
	return nil
}

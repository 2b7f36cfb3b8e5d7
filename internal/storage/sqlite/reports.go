package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
)

// CreateReport inserts the report and its layout lines in one commit.
func (s *Store) CreateReport(r *model.Report, lines []model.ReportLine) error {
	return s.transact(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO reports (name, description, sort_order) VALUES (?, ?, ?)`,
			r.Name, r.Description, r.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to create report %s: %w", r.Name, err)
		}
		if r.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := tx.Exec(
				`INSERT INTO report_lines (report_id, position, kind, label, account_id, indent, sep_style)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.ID, l.Position, string(l.Kind), l.Label, nullableID(l.AccountID), l.Indent, string(l.SepStyle)); err != nil {
				return fmt.Errorf("failed to insert report line: %w", err)
			}
		}
		return nil
	})
}

// ReportByName fetches one report header.
func (s *Store) ReportByName(name string) (model.Report, error) {
	var r model.Report
	err := s.db.QueryRow(
		`SELECT id, name, description, sort_order FROM reports WHERE name = ?`, name,
	).Scan(&r.ID, &r.Name, &r.Description, &r.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Report{}, &errs.NotFoundError{Entity: "report", Key: name}
	}
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to read report %s: %w", name, err)
	}
	return r, nil
}

// Reports returns every report in sort order.
func (s *Store) Reports() ([]model.Report, error) {
	rows, err := s.db.Query(`SELECT id, name, description, sort_order FROM reports ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []model.Report
	for rows.Next() {
		var r model.Report
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetReportDescription is the only header mutation reports support.
func (s *Store) SetReportDescription(id int64, desc string) error {
	res, err := s.db.Exec(`UPDATE reports SET description = ? WHERE id = ?`, desc, id)
	if err != nil {
		return fmt.Errorf("failed to update report %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errs.NotFoundError{Entity: "report", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

// ReportLines returns the report's layout in position order.
func (s *Store) ReportLines(reportID int64) ([]model.ReportLine, error) {
	rows, err := s.db.Query(
		`SELECT id, report_id, position, kind, label, account_id, indent, sep_style
		 FROM report_lines WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to read lines for report %d: %w", reportID, err)
	}
	defer rows.Close()

	var out []model.ReportLine
	for rows.Next() {
		var l model.ReportLine
		var account sql.NullInt64
		if err := rows.Scan(&l.ID, &l.ReportID, &l.Position, &l.Kind, &l.Label, &account, &l.Indent, &l.SepStyle); err != nil {
			return nil, err
		}
		l.AccountID = account.Int64
		out = append(out, l)
	}
	return out, rows.Err()
}

package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
)

const (
	numFields = 6
	colName   = 0
	colNumber = 1
	colKind   = 2
	colNormal = 3
	colParent = 4
	colDesc   = 5
)

// chartRow is one export row: account joined with its parent's name.
type chartRow struct {
	Name        string
	Number      string
	Kind        string
	Normal      string
	Parent      string
	Description string
}

// WriteChart exports the chart of accounts as CSV, parents referenced by
// name so the file stands alone.
func (s *Service) WriteChart(w io.Writer) error {
	all, err := s.store.Accounts()
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	byID := make(map[int64]string, len(all))
	for _, a := range all {
		byID[a.ID] = a.Name
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "number", "kind", "normal", "rolls_up_to", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range all {
		row := make([]string, numFields)
		row[colName] = a.Name
		row[colNumber] = a.Number
		row[colKind] = string(a.Kind)
		row[colNormal] = string(a.Normal)
		if a.ParentID != 0 {
			row[colParent] = byID[a.ParentID]
		}
		row[colDesc] = a.Description
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

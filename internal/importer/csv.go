package importer

import (
	"fmt"
	"strings"

	"github.com/grid-books/grid/internal/amount"
	"github.com/grid-books/grid/internal/dates"
	"github.com/grid-books/grid/internal/model"
)

// Repair records one row whose surplus fields (unquoted commas inside free
// text) were merged back into the description.
type Repair struct {
	Row     int
	Extra   int
	Preview string
}

// descKeywords mark a free-form export column as part of the description.
var descKeywords = []string{"description", "desc", "memo", "payee", "detail", "narrative"}

// headerKeywords are the tokens whose presence in the first row marks it as
// a header.
var headerKeywords = []string{"date", "description", "amount", "debit", "credit"}

// Layout is an explicit column mapping for callers who already know the
// file's shape. It bypasses header role detection entirely; indexes are
// zero-based and the amount column carries a signed value.
type Layout struct {
	Date        int
	Description int
	Amount      int
}

// ApplyLayout cuts raw rows down to [date, description, amount] using
// fixed column indexes. A header row is still dropped; since layout files
// often name their columns without the usual keywords, a first row whose
// date cell does not parse also counts as a header. Columns past the end
// of a short row come back empty.
func ApplyLayout(raw [][]string, l Layout) (hasHeader bool, data [][]string) {
	if len(raw) == 0 {
		return false, nil
	}
	if detectHeader(raw[0]) {
		hasHeader = true
	} else if len(raw) > 1 {
		if _, err := dates.Normalize(pick(raw[0], l.Date)); err != nil {
			hasHeader = true
		}
	}
	start := 0
	if hasHeader {
		start = 1
	}
	data = make([][]string, 0, len(raw)-start)
	for _, row := range raw[start:] {
		data = append(data, []string{pick(row, l.Date), pick(row, l.Description), pick(row, l.Amount)})
	}
	return hasHeader, data
}

func pick(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func detectHeader(first []string) bool {
	parts := make([]string, len(first))
	for i, h := range first {
		parts[i] = strings.ToLower(strings.TrimSpace(h))
	}
	joined := strings.Join(parts, " ")
	for _, kw := range headerKeywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// NormalizeCSV detects the file shape and reduces it to rows the import
// loop can consume.
//
// Three shapes are handled: the native 3 and 4 column layouts, which pass
// through with surplus-field repair only, and 5+ column free-form bank
// exports, which are cut down to [date, description, amount] using column
// roles detected from the header. A free-form file whose header yields no
// date or amount column falls back to positional parsing untouched.
func NormalizeCSV(raw [][]string) (hasHeader bool, data [][]string, repairs []Repair) {
	if len(raw) == 0 {
		return false, nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	hasHeader = detectHeader(raw[0])

	start := 0
	if hasHeader {
		start = 1
	}
	data = make([][]string, 0, len(raw)-start)
	for _, r := range raw[start:] {
		row := make([]string, len(r))
		copy(row, r)
		data = append(data, row)
	}
	expected := len(raw[0])

	if hasHeader && expected > 4 {
		return normalizeFreeForm(header, data, start, expected)
	}

	// Native shape: repair rows with surplus fields, keep columns intact.
	amtCount := expected - 2 // 1 for 3-col, 2 for 4-col
	for i, row := range data {
		if len(row) <= expected {
			continue
		}
		extra := len(row) - expected
		descFields := row[1 : len(row)-amtCount]
		parts := make([]string, len(descFields))
		for j, f := range descFields {
			parts[j] = strings.TrimSpace(f)
		}
		merged := strings.Join(parts, ", ")
		repaired := append([]string{row[0], merged}, row[len(row)-amtCount:]...)
		data[i] = repaired
		repairs = append(repairs, Repair{Row: i + start + 1, Extra: extra, Preview: preview(merged)})
	}
	return hasHeader, data, repairs
}

// normalizeFreeForm maps a multi-column bank export down to three columns
// using header-detected roles. Rows with surplus fields are repaired by
// anchoring the amount region to the end of the row and folding everything
// between the date and the amounts into the description.
func normalizeFreeForm(header []string, data [][]string, start, expected int) (bool, [][]string, []Repair) {
	dateCol := -1
	var amtCols, descCols []int
	for i, h := range header {
		switch {
		case strings.Contains(h, "date") && dateCol < 0:
			dateCol = i
		case strings.Contains(h, "$") || h == "amount" || h == "debit" || h == "credit":
			amtCols = append(amtCols, i)
		case containsAny(h, descKeywords):
			descCols = append(descCols, i)
		}
	}
	if dateCol < 0 || len(amtCols) == 0 {
		return true, data, nil
	}

	var repairs []Repair
	normalized := make([][]string, 0, len(data))
	for idx, row := range data {
		n := len(row)
		rowNum := idx + start + 1

		dateVal := ""
		if dateCol < n {
			dateVal = strings.TrimSpace(row[dateCol])
		}

		var desc, amt string
		if n > expected {
			amtStart := n - len(amtCols)
			var parts []string
			for i := dateCol + 1; i < amtStart; i++ {
				if v := strings.TrimSpace(row[i]); v != "" {
					parts = append(parts, v)
				}
			}
			desc = strings.Join(parts, ": ")
			for _, v := range row[amtStart:] {
				if v = strings.TrimSpace(v); v != "" {
					amt = v
					break
				}
			}
			repairs = append(repairs, Repair{Row: rowNum, Extra: n - expected, Preview: preview(desc)})
		} else {
			var parts []string
			for _, c := range descCols {
				if c < n {
					if v := strings.TrimSpace(row[c]); v != "" {
						parts = append(parts, v)
					}
				}
			}
			desc = strings.Join(parts, ": ")
			for _, c := range amtCols {
				if c < n {
					if v := strings.TrimSpace(row[c]); v != "" {
						amt = v
						break
					}
				}
			}
		}
		normalized = append(normalized, []string{dateVal, desc, amt})
	}
	return true, normalized, repairs
}

// ExtractRows converts normalized CSV rows into bank rows, recording
// per-row parse failures instead of aborting.
func ExtractRows(hasHeader bool, data [][]string) ([]model.BankRow, []RowError) {
	start := 1
	if hasHeader {
		start = 2
	}

	var rows []model.BankRow
	var rowErrs []RowError
	for i, row := range data {
		rowNum := i + start
		if len(row) < 3 {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Reason: "too few columns"})
			continue
		}
		date := strings.TrimSpace(row[0])
		desc := strings.TrimSpace(row[1])
		if desc == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Reason: "missing description"})
			continue
		}

		var cents int64
		if len(row) >= 4 && (strings.TrimSpace(row[2]) != "" || strings.TrimSpace(row[3]) != "") {
			dr, err1 := amount.ParseCents(row[2])
			cr, err2 := amount.ParseCents(row[3])
			if err1 != nil || err2 != nil {
				rowErrs = append(rowErrs, RowError{Row: rowNum,
					Reason: fmt.Sprintf("bad amount %q/%q", strings.TrimSpace(row[2]), strings.TrimSpace(row[3]))})
				continue
			}
			cents = dr - cr
		} else {
			var err error
			cents, err = amount.ParseCents(row[2])
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: rowNum,
					Reason: fmt.Sprintf("bad amount %q", strings.TrimSpace(row[2]))})
				continue
			}
		}

		rows = append(rows, model.BankRow{
			Row:         rowNum,
			Date:        date,
			Description: desc,
			Amount:      cents,
		})
	}
	return rows, rowErrs
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func preview(s string) string {
	if len(s) > 50 {
		return s[:50]
	}
	return s
}

package importer

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/grid-books/grid/internal/amount"
	"github.com/grid-books/grid/internal/model"
)

// tagValue matches one SGML-style <TAG>value pair. OFX and QBO exports
// rarely close their leaf tags, so the value runs to the next tag or end
// of line.
var tagValue = regexp.MustCompile(`<([A-Za-z0-9_.]+)>([^<\r\n]*)`)

// ParseOFX reads an OFX or QBO statement and returns its STMTTRN records
// as bank rows. The scan is tolerant: it keys off STMTTRN blocks directly
// rather than requiring well-formed XML, which real bank exports are not.
// A record whose amount fails to parse becomes a skipped-row entry; only a
// file with no usable content at all is a hard error.
func ParseOFX(r io.Reader) ([]model.BankRow, []RowError, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading OFX file: %w", err)
	}
	content := string(b)
	upper := strings.ToUpper(content)

	start := strings.Index(upper, "<OFX>")
	if start < 0 {
		return nil, nil, fmt.Errorf("not a valid OFX file: no <OFX> tag found")
	}
	content = content[start:]
	upper = upper[start:]

	var rows []model.BankRow
	var rowErrs []RowError
	for n := 1; ; n++ {
		open := strings.Index(upper, "<STMTTRN>")
		if open < 0 {
			break
		}
		content = content[open+len("<STMTTRN>"):]
		upper = upper[open+len("<STMTTRN>"):]

		end := strings.Index(upper, "</STMTTRN>")
		next := strings.Index(upper, "<STMTTRN>")
		if end < 0 || (next >= 0 && next < end) {
			end = next
		}
		block := content
		if end >= 0 {
			block = content[:end]
		}

		row, ok, reason := parseStmtTrn(block, n)
		switch {
		case ok:
			rows = append(rows, row)
		case reason != "":
			rowErrs = append(rowErrs, RowError{Row: n, Reason: reason})
		}
	}

	if len(rows) == 0 && len(rowErrs) == 0 {
		return nil, nil, fmt.Errorf("no transactions found in OFX file")
	}
	return rows, rowErrs, nil
}

// parseStmtTrn extracts one record. Records without a date, amount or any
// description text are dropped rather than failing the file; a record with
// an unparseable amount comes back with a skip reason.
func parseStmtTrn(block string, n int) (model.BankRow, bool, string) {
	var date, name, memo, fitid, amt string
	for _, m := range tagValue.FindAllStringSubmatch(block, -1) {
		val := strings.TrimSpace(m[2])
		switch strings.ToUpper(m[1]) {
		case "DTPOSTED":
			date = val
		case "TRNAMT":
			amt = val
		case "NAME":
			name = val
		case "MEMO":
			memo = val
		case "FITID":
			fitid = val
		}
	}
	if date == "" || amt == "" {
		return model.BankRow{}, false, ""
	}

	desc := name
	if memo != "" && !strings.EqualFold(memo, name) {
		if name != "" {
			desc = name + " - " + memo
		} else {
			desc = memo
		}
	}
	if desc == "" {
		return model.BankRow{}, false, ""
	}

	cents, err := amount.ParseCents(amt)
	if err != nil {
		return model.BankRow{}, false, fmt.Sprintf("bad TRNAMT %q", amt)
	}
	return model.BankRow{
		Row:         n,
		Date:        date,
		Description: desc,
		Amount:      cents,
		Reference:   fitid,
	}, true, ""
}

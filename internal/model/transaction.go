package model

import "time"

// Transaction groups at least two journal lines whose signed amounts sum to
// exactly zero.
type Transaction struct {
	ID          int64
	Date        time.Time
	Reference   string
	Description string
	Lines       []Line
}

// Line is one side of a double entry. Amount is signed integer cents:
// positive = debit, negative = credit.
type Line struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	Amount        int64
	Description   string
	TaxCode       string
}

// Imbalance returns the sum of the signed line amounts. Zero means the
// transaction balances.
func (t Transaction) Imbalance() int64 {
	var sum int64
	for _, l := range t.Lines {
		sum += l.Amount
	}
	return sum
}

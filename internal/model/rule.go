package model

import "github.com/shopspring/decimal"

// ImportRule maps a bank description keyword to a target account and an
// optional tax code. Matching is a case-insensitive substring test; the
// highest priority wins, ties broken by lowest id (oldest rule).
type ImportRule struct {
	ID          int64
	Keyword     string
	AccountName string
	TaxCode     string
	Priority    int
	Notes       string
}

// TaxCode describes a tax-inclusive rate and the accounts that receive the
// tax portion of a split, by direction of the gross amount.
type TaxCode struct {
	Code             string
	Description      string
	RatePercent      decimal.Decimal
	CollectedAccount string // tax on money coming in
	PaidAccount      string // tax on money going out
}

package model

// AccountKind separates accounts that take postings from aggregation-only
// total accounts.
type AccountKind string

const (
	KindPosting AccountKind = "posting"
	KindTotal   AccountKind = "total"
)

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "D"
	NormalCredit NormalBalance = "C"
)

// Account is a row in the chart of accounts. ParentID links the account to
// the total account its balance rolls up into (0 = top level). Only total
// accounts may be parents, and the parent graph is a forest.
type Account struct {
	ID          int64
	Name        string
	Description string
	Number      string
	Kind        AccountKind
	Normal      NormalBalance
	ParentID    int64
}

// Sign returns +1 for debit-normal accounts and -1 for credit-normal ones.
// Multiplying a raw balance by Sign yields the display balance.
func (a Account) Sign() int64 {
	if a.Normal == NormalCredit {
		return -1
	}
	return 1
}

package model

// BankRow is one normalized candidate row from a bank file, ready for
// classification and posting. Amount is signed cents from the bank's
// perspective: positive deposits, negative payments.
type BankRow struct {
	Row         int // 1-based position in the source file
	Date        string
	Description string
	Amount      int64
	Reference   string // stable external key such as an OFX FITID
}

// Package setup creates starter books: a default chart of accounts wired
// into the rollup forest, BS and IS report structures, common import rules
// and Canadian tax codes.
package setup

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

type acctDef struct {
	name   string
	normal model.NormalBalance
	desc   string
	kind   model.AccountKind
	parent string
}

// chart is ordered so every parent precedes its children. The rollup
// forest stays within the depth bound: the longest chain is a posting
// account -> section total -> NI -> RE -> EQ -> TL.
var chart = []acctDef{
	// balance sheet: assets
	{"TA", "D", "TOTAL ASSETS", "total", ""},
	{"CA", "D", "Total Current Assets", "total", "TA"},
	{"TOTBANK", "D", "Total Bank Accounts", "total", "CA"},
	{"CASH", "D", "Petty Cash", "posting", "TOTBANK"},
	{"BANK.CHQ", "D", "Bank - Chequing", "posting", "TOTBANK"},
	{"BANK.SAV", "D", "Bank - Savings", "posting", "TOTBANK"},
	{"AR.TOT", "D", "Total AR", "total", "CA"},
	{"AR", "D", "Accounts Receivable", "posting", "AR.TOT"},
	{"PREPAIDS", "D", "Prepaid Expenses", "posting", "CA"},
	{"DEP", "D", "Deposits", "posting", "CA"},
	{"NETFA", "D", "Net Capital Assets", "total", "TA"},
	{"TOTFA", "D", "Total Capital Assets", "total", "NETFA"},
	{"EQUIP", "D", "Equipment", "posting", "TOTFA"},
	{"FURN", "D", "Furniture", "posting", "TOTFA"},
	{"COMP", "D", "Computer Equipment", "posting", "TOTFA"},
	{"TOTDEP", "C", "Total Accum Amortization", "total", "NETFA"},
	{"EQUIP.DEP", "C", "Accum Amort - Equipment", "posting", "TOTDEP"},
	{"FURN.DEP", "C", "Accum Amort - Furniture", "posting", "TOTDEP"},
	{"COMP.DEP", "C", "Accum Amort - Computer", "posting", "TOTDEP"},

	// balance sheet: liabilities and equity
	{"TL", "C", "TOTAL LIABILITIES & EQUITY", "total", ""},
	{"CL", "C", "Total Current Liabilities", "total", "TL"},
	{"AP", "C", "Accounts Payable", "posting", "CL"},
	{"AP.CC", "C", "Credit Card Payable", "posting", "CL"},
	{"TOTGST", "C", "Total GST", "total", "CL"},
	{"GST.OUT", "C", "GST Collected", "posting", "TOTGST"},
	{"GST.IN", "D", "GST Paid (ITCs)", "posting", "TOTGST"},
	{"GST.REMIT", "C", "GST Remittance", "posting", "TOTGST"},
	{"GST.PAY", "C", "GST Payable", "posting", "TOTGST"},
	{"TOT.TAX", "C", "Total Tax Payable", "total", "CL"},
	{"FEDTAX", "C", "Federal Tax Payable", "posting", "TOT.TAX"},
	{"PROTAX", "C", "Provincial Tax Payable", "posting", "TOT.TAX"},
	{"LTL", "C", "Total Long-Term Liabilities", "total", "TL"},
	{"LOAN", "C", "Bank Loan", "posting", "LTL"},
	{"SH.LOAN", "C", "Shareholder Loan", "posting", "LTL"},
	{"EQ", "C", "Total Equity", "total", "TL"},
	{"CAPITAL", "C", "Share Capital", "posting", "EQ"},
	{"RE", "C", "Retained Earnings", "total", "EQ"},
	{"RE.OPEN", "C", "Retained Earnings - Open", "posting", "RE"},
	{"RE.OFS", "D", "Annual Opening RE Offset", "posting", "RE"},
	{"DIVPAID", "C", "Dividends Paid", "posting", "RE"},

	// income statement, rolling into retained earnings through NI
	{"NI", "C", "Net Income for Year", "total", "RE"},
	{"TOTREV", "C", "Total Revenue", "total", "NI"},
	{"REV", "C", "Revenue - Sales", "posting", "TOTREV"},
	{"REV.SVC", "C", "Revenue - Services", "posting", "TOTREV"},
	{"TOTCS", "D", "Total Cost of Sales", "total", "NI"},
	{"CS.MAT", "D", "Cost of Sales - Materials", "posting", "TOTCS"},
	{"CS.SUB", "D", "Cost of Sales - Subcontractors", "posting", "TOTCS"},
	{"CS.SHIP", "D", "Cost of Sales - Shipping", "posting", "TOTCS"},
	{"TOTEX", "D", "Total Operating Expenses", "total", "NI"},
	{"EX.SAL", "D", "Salaries & Wages", "posting", "TOTEX"},
	{"EX.RENT", "D", "Rent", "posting", "TOTEX"},
	{"EX.OFFICE", "D", "Office & General", "posting", "TOTEX"},
	{"EX.COMP", "D", "Computer & IT", "posting", "TOTEX"},
	{"EX.ADV", "D", "Advertising", "posting", "TOTEX"},
	{"EX.INS", "D", "Insurance", "posting", "TOTEX"},
	{"EX.PHONE", "D", "Telephone", "posting", "TOTEX"},
	{"EX.TRAVEL", "D", "Travel", "posting", "TOTEX"},
	{"EX.MEALS", "D", "Meals & Entertainment", "posting", "TOTEX"},
	{"EX.AUTO", "D", "Vehicle", "posting", "TOTEX"},
	{"EX.POST", "D", "Postage & Courier", "posting", "TOTEX"},
	{"EX.FEES", "D", "Professional Fees", "posting", "TOTEX"},
	{"EX.SC", "D", "Service Charges", "posting", "TOTEX"},
	{"EX.AMORT", "D", "Amortization", "posting", "TOTEX"},
	{"EX.SUSP", "D", "Suspense", "posting", "TOTEX"},
	{"EX.LIFE", "D", "Life Insurance", "posting", "TOTEX"},
	{"EX.LTINT", "D", "Interest on LT Debt", "posting", "TOTEX"},
	{"EX.INTAX", "D", "Income Tax Expense", "posting", "TOTEX"},
}

// CreateStarterBooks populates an empty store with the default template.
func CreateStarterBooks(store storage.Store, companyName string, fyEndMonth, fyEndDay int) error {
	if err := store.SetCompany(companyName, fyEndMonth, fyEndDay); err != nil {
		return fmt.Errorf("setting company meta: %w", err)
	}

	ids := make(map[string]int64, len(chart))
	for _, d := range chart {
		a := model.Account{
			Name:        d.name,
			Description: d.desc,
			Kind:        d.kind,
			Normal:      d.normal,
			ParentID:    ids[d.parent],
		}
		if err := store.CreateAccount(&a); err != nil {
			return fmt.Errorf("creating account %s: %w", d.name, err)
		}
		ids[d.name] = a.ID
	}

	if err := createReports(store, ids); err != nil {
		return err
	}
	if err := createTaxCodes(store); err != nil {
		return err
	}
	return createRules(store)
}

func createTaxCodes(store storage.Store) error {
	codes := []model.TaxCode{
		{Code: "G5", Description: "GST 5%", RatePercent: decimal.NewFromInt(5), CollectedAccount: "GST.OUT", PaidAccount: "GST.IN"},
		{Code: "H13", Description: "HST 13% (Ontario)", RatePercent: decimal.NewFromInt(13), CollectedAccount: "GST.OUT", PaidAccount: "GST.IN"},
		{Code: "H15", Description: "HST 15% (Atlantic)", RatePercent: decimal.NewFromInt(15), CollectedAccount: "GST.OUT", PaidAccount: "GST.IN"},
		{Code: "E", Description: "Exempt (no tax)", RatePercent: decimal.Zero},
	}
	for _, tc := range codes {
		if err := store.CreateTaxCode(tc); err != nil {
			return fmt.Errorf("creating tax code %s: %w", tc.Code, err)
		}
	}
	return nil
}

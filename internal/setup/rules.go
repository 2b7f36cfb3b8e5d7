package setup

import (
	"fmt"

	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

type ruleDef struct {
	keyword  string
	account  string
	tax      string
	priority int
	notes    string
}

// defaultRules covers the common run of small-business Canadian bank
// activity, 5% GST on the usual vendors.
var defaultRules = []ruleDef{
	// revenue and deposits
	{"E-TRANSFER DEPOSIT", "REV.SVC", "E", 15, "Client deposits"},
	{"DEPOSIT", "REV.SVC", "E", 3, "Generic deposits"},
	{"PAYMENT RECEIVED", "REV.SVC", "E", 15, ""},
	{"TRANSFER IN", "BANK.SAV", "E", 12, "Inter-bank transfer"},
	{"TRANSFER OUT", "BANK.SAV", "E", 12, "Inter-bank transfer"},
	{"TFR FROM SAV", "BANK.SAV", "E", 12, "Inter-bank transfer"},
	{"TFR TO SAV", "BANK.SAV", "E", 12, "Inter-bank transfer"},
	// advertising
	{"FACEBOOK", "EX.ADV", "G5", 5, ""},
	{"GOOGLE ADS", "EX.ADV", "G5", 10, ""},
	{"META", "EX.ADV", "G5", 5, ""},
	// banking
	{"BANK FEE", "EX.SC", "E", 10, ""},
	{"INTEREST CHARGE", "EX.SC", "E", 10, ""},
	{"MONTHLY FEE", "EX.SC", "E", 10, ""},
	{"NSF", "EX.SC", "E", 10, ""},
	{"OVERDRAFT", "EX.SC", "E", 10, ""},
	{"SERVICE CHARGE", "EX.SC", "E", 10, ""},
	// insurance
	{"INSURANCE", "EX.INS", "E", 5, ""},
	{"INTACT", "EX.INS", "E", 10, ""},
	{"WAWANESA", "EX.INS", "E", 10, ""},
	// loans
	{"LOAN ADVANCE", "LOAN", "E", 15, "Bank loan advance"},
	{"LOAN PAYMENT", "LOAN", "E", 15, "Bank loan payment"},
	{"SH ADVANCE", "SH.LOAN", "E", 15, "Shareholder advance"},
	{"SH DRAW", "SH.LOAN", "E", 15, "Shareholder draw"},
	// meals
	{"DOORDASH", "EX.MEALS", "G5", 5, ""},
	{"MCDONALD", "EX.MEALS", "G5", 5, ""},
	{"SKIP THE", "EX.MEALS", "G5", 5, ""},
	{"STARBUCKS", "EX.MEALS", "G5", 5, ""},
	{"TIM HORTON", "EX.MEALS", "G5", 5, ""},
	{"UBER EATS", "EX.MEALS", "G5", 5, ""},
	// office and supplies
	{"AMAZON", "EX.OFFICE", "G5", 10, ""},
	{"COSTCO", "EX.OFFICE", "G5", 5, ""},
	{"DOLLARAMA", "EX.OFFICE", "G5", 5, ""},
	{"OFFICE DEPOT", "EX.OFFICE", "G5", 10, ""},
	{"STAPLES", "EX.OFFICE", "G5", 10, ""},
	{"WALMART", "EX.OFFICE", "G5", 5, ""},
	// payroll and remittances
	{"CRA", "FEDTAX", "E", 5, "May be payroll remit or tax"},
	{"PAYROLL", "EX.SAL", "E", 5, ""},
	// professional fees
	{"LEGAL", "EX.FEES", "G5", 5, ""},
	// rent
	{"RENT", "EX.RENT", "E", 5, ""},
	// shipping
	{"CANADA POST", "EX.POST", "G5", 10, ""},
	{"FEDEX", "EX.POST", "G5", 10, ""},
	{"PUROLATOR", "EX.POST", "G5", 10, ""},
	{"UPS", "EX.POST", "G5", 10, ""},
	// technology
	{"ADOBE", "EX.COMP", "G5", 10, ""},
	{"APPLE", "EX.COMP", "G5", 5, ""},
	{"DROPBOX", "EX.COMP", "G5", 10, ""},
	{"GOOGLE", "EX.COMP", "G5", 10, ""},
	{"INTUIT", "EX.COMP", "G5", 10, ""},
	{"MICROSOFT", "EX.COMP", "G5", 10, ""},
	{"ZOOM", "EX.COMP", "G5", 10, ""},
	// telephone
	{"BELL", "EX.PHONE", "G5", 10, ""},
	{"FIDO", "EX.PHONE", "G5", 10, ""},
	{"ROGERS", "EX.PHONE", "G5", 10, ""},
	{"SHAW", "EX.PHONE", "G5", 10, ""},
	{"TELUS", "EX.PHONE", "G5", 10, ""},
	// travel
	{"AIR CANADA", "EX.TRAVEL", "E", 10, ""},
	{"AIRBNB", "EX.TRAVEL", "G5", 5, ""},
	{"HOTEL", "EX.TRAVEL", "G5", 5, ""},
	{"WESTJET", "EX.TRAVEL", "E", 10, ""},
	// utilities
	{"ENBRIDGE", "EX.OFFICE", "G5", 10, "Natural gas"},
	{"HYDRO", "EX.OFFICE", "G5", 10, "Hydro / electric"},
	// vehicle and fuel
	{"CANADIAN TIRE", "EX.AUTO", "G5", 5, ""},
	{"ESSO", "EX.AUTO", "G5", 10, ""},
	{"PARKING", "EX.AUTO", "E", 5, ""},
	{"PETRO", "EX.AUTO", "G5", 10, ""},
	{"PIONEER", "EX.AUTO", "G5", 10, ""},
	{"SHELL", "EX.AUTO", "G5", 10, ""},
	{"ULTRAMAR", "EX.AUTO", "G5", 10, ""},
}

func createRules(store storage.Store) error {
	for _, d := range defaultRules {
		r := model.ImportRule{
			Keyword:     d.keyword,
			AccountName: d.account,
			TaxCode:     d.tax,
			Priority:    d.priority,
			Notes:       d.notes,
		}
		if err := store.CreateRule(&r); err != nil {
			return fmt.Errorf("creating rule %q: %w", d.keyword, err)
		}
	}
	return nil
}

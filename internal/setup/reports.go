package setup

import (
	"fmt"

	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// layoutBuilder accumulates report lines with auto-incrementing positions.
type layoutBuilder struct {
	ids   map[string]int64
	lines []model.ReportLine
	pos   int
}

func (b *layoutBuilder) add(l model.ReportLine) {
	b.pos += 10
	l.Position = b.pos
	b.lines = append(b.lines, l)
}

func (b *layoutBuilder) label(text string) {
	b.add(model.ReportLine{Kind: model.ReportLineLabel, Label: text})
}

func (b *layoutBuilder) blank() {
	b.label("")
}

func (b *layoutBuilder) account(name string, indent int) {
	b.add(model.ReportLine{Kind: model.ReportLineAccount, AccountID: b.ids[name], Indent: indent})
}

func (b *layoutBuilder) total(label, name string, indent int) {
	b.add(model.ReportLine{Kind: model.ReportLineAccount, Label: label, AccountID: b.ids[name], Indent: indent})
}

func (b *layoutBuilder) sep(style model.SepStyle) {
	b.add(model.ReportLine{Kind: model.ReportLineSeparator, SepStyle: style})
}

func createReports(store storage.Store, ids map[string]int64) error {
	bs := &layoutBuilder{ids: ids}
	bs.label("CURRENT ASSETS")
	bs.label("Bank Accounts:")
	bs.account("CASH", 2)
	bs.account("BANK.CHQ", 2)
	bs.account("BANK.SAV", 2)
	bs.sep(model.SepSingle)
	bs.total("", "TOTBANK", 3)
	bs.blank()
	bs.label("Accounts Receivable:")
	bs.account("AR", 2)
	bs.sep(model.SepSingle)
	bs.total("", "AR.TOT", 3)
	bs.blank()
	bs.label("Other Current Assets:")
	bs.account("PREPAIDS", 2)
	bs.account("DEP", 2)
	bs.sep(model.SepSingle)
	bs.total("Total Current Assets", "CA", 3)
	bs.sep(model.SepSingle)
	bs.blank()
	bs.label("Capital Assets")
	bs.account("EQUIP", 2)
	bs.account("FURN", 2)
	bs.account("COMP", 2)
	bs.sep(model.SepSingle)
	bs.total("", "TOTFA", 3)
	bs.blank()
	bs.label("Accumulated Amortization")
	bs.account("EQUIP.DEP", 2)
	bs.account("FURN.DEP", 2)
	bs.account("COMP.DEP", 2)
	bs.sep(model.SepSingle)
	bs.total("", "TOTDEP", 3)
	bs.sep(model.SepSingle)
	bs.total("Net Capital Assets", "NETFA", 3)
	bs.sep(model.SepSingle)
	bs.blank()
	bs.total("TOTAL ASSETS", "TA", 0)
	bs.sep(model.SepDouble)
	bs.blank()
	bs.label("CURRENT LIABILITIES")
	bs.account("AP", 2)
	bs.account("AP.CC", 2)
	bs.blank()
	bs.label("GST:")
	bs.account("GST.OUT", 2)
	bs.account("GST.IN", 2)
	bs.account("GST.REMIT", 2)
	bs.account("GST.PAY", 2)
	bs.sep(model.SepSingle)
	bs.total("", "TOTGST", 3)
	bs.blank()
	bs.account("FEDTAX", 2)
	bs.account("PROTAX", 2)
	bs.sep(model.SepSingle)
	bs.total("", "TOT.TAX", 3)
	bs.sep(model.SepSingle)
	bs.total("Total Current Liabilities", "CL", 3)
	bs.sep(model.SepSingle)
	bs.blank()
	bs.label("Long-Term Liabilities")
	bs.account("LOAN", 2)
	bs.account("SH.LOAN", 2)
	bs.sep(model.SepSingle)
	bs.total("Total Long-Term Liabilities", "LTL", 3)
	bs.sep(model.SepSingle)
	bs.blank()
	bs.label("Equity")
	bs.account("CAPITAL", 2)
	bs.total("", "RE", 2)
	bs.sep(model.SepSingle)
	bs.total("Total Equity", "EQ", 3)
	bs.sep(model.SepSingle)
	bs.blank()
	bs.total("TOTAL LIABILITIES & EQUITY", "TL", 0)
	bs.sep(model.SepDouble)

	is := &layoutBuilder{ids: ids}
	is.label("REVENUE")
	is.account("REV", 2)
	is.account("REV.SVC", 2)
	is.sep(model.SepSingle)
	is.total("Total Revenue", "TOTREV", 3)
	is.blank()
	is.label("COST OF SALES")
	is.account("CS.MAT", 2)
	is.account("CS.SUB", 2)
	is.account("CS.SHIP", 2)
	is.sep(model.SepSingle)
	is.total("Total Cost of Sales", "TOTCS", 3)
	is.sep(model.SepSingle)
	is.blank()
	is.label("EXPENSES")
	is.account("EX.SAL", 2)
	is.account("EX.RENT", 2)
	is.account("EX.OFFICE", 2)
	is.account("EX.COMP", 2)
	is.account("EX.ADV", 2)
	is.account("EX.INS", 2)
	is.account("EX.PHONE", 2)
	is.account("EX.TRAVEL", 2)
	is.account("EX.MEALS", 2)
	is.account("EX.AUTO", 2)
	is.account("EX.POST", 2)
	is.account("EX.FEES", 2)
	is.account("EX.SC", 2)
	is.account("EX.AMORT", 2)
	is.account("EX.SUSP", 2)
	is.account("EX.LIFE", 2)
	is.account("EX.LTINT", 2)
	is.account("EX.INTAX", 2)
	is.sep(model.SepSingle)
	is.total("Total Operating Expenses", "TOTEX", 3)
	is.sep(model.SepSingle)
	is.blank()
	is.total("Net Income (Loss)", "NI", 3)
	is.sep(model.SepDouble)
	is.blank()
	is.total("Retained Earnings - Open", "RE.OPEN", 2)
	is.total("Dividends Paid", "DIVPAID", 2)
	is.sep(model.SepSingle)
	is.total("Retained Earnings - Close", "RE", 3)
	is.sep(model.SepDouble)

	ofs := &layoutBuilder{ids: ids}
	ofs.label("RETAINED EARNINGS OFFSET")
	ofs.blank()
	ofs.total("Retained Earnings - Open", "RE.OPEN", 1)
	ofs.total("Annual Opening RE Offset", "RE.OFS", 1)
	ofs.blank()
	ofs.sep(model.SepDouble)

	for _, r := range []struct {
		name, desc string
		sort       int
		lines      []model.ReportLine
	}{
		{"BS", "Balance Sheet", 10, bs.lines},
		{"IS", "Income Statement", 20, is.lines},
		{"RE.OFS", "Retained Earnings Offset", 30, ofs.lines},
	} {
		rep := model.Report{Name: r.name, Description: r.desc, SortOrder: r.sort}
		if err := store.CreateReport(&rep, r.lines); err != nil {
			return fmt.Errorf("creating report %s: %w", r.name, err)
		}
	}
	return nil
}

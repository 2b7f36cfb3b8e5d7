package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/importer"
)

func newImportCSVCommand(booksPath *string) *cobra.Command {
	var dateCol, descCol, amountCol int
	var dayFirst bool
	cmd := &cobra.Command{
		Use:   "importcsv <file> <bank_account>",
		Short: "Import a bank CSV, classifying rows through the rule set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var layout *importer.Layout
			if dateCol > 0 || descCol > 0 || amountCol > 0 {
				if dateCol < 1 || descCol < 1 || amountCol < 1 {
					return fmt.Errorf("--date-col, --desc-col and --amount-col must be given together")
				}
				layout = &importer.Layout{Date: dateCol - 1, Description: descCol - 1, Amount: amountCol - 1}
			}
			return runImport(booksPath, args[0], args[1], false, layout, dayFirst)
		},
	}
	cmd.Flags().IntVar(&dateCol, "date-col", 0, "date column (1-based), bypasses header detection")
	cmd.Flags().IntVar(&descCol, "desc-col", 0, "description column (1-based)")
	cmd.Flags().IntVar(&amountCol, "amount-col", 0, "signed amount column (1-based)")
	cmd.Flags().BoolVar(&dayFirst, "day-first", false, "read ambiguous dates as day/month/year")
	return cmd
}

func newImportOFXCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "importofx <file> <bank_account>",
		Short: "Import an OFX/QBO statement, classifying records through the rule set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(booksPath, args[0], args[1], true, nil, false)
		},
	}
}

func runImport(booksPath *string, file, account string, ofx bool, layout *importer.Layout, dayFirst bool) error {
	eng, err := openBooks(booksPath)
	if err != nil {
		return err
	}
	defer eng.Close()
	eng.Importer.DayFirst = dayFirst

	bank, err := eng.Accounts.Resolve(account)
	if err != nil {
		return err
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	var sum importer.Summary
	switch {
	case ofx:
		sum, err = eng.Importer.ImportOFX(f, bank.ID)
	case layout != nil:
		sum, err = eng.Importer.ImportCSVLayout(f, bank.ID, *layout)
	default:
		sum, err = eng.Importer.ImportCSV(f, bank.ID)
	}
	if err != nil {
		return err
	}
	_ = eng.Audit("import", fmt.Sprintf("%s into %s: %d posted", file, bank.Name, sum.Posted), "")

	printSummary(sum)
	return nil
}

func printSummary(sum importer.Summary) {
	fmt.Printf("Processed %d rows: %d posted, %d skipped\n",
		sum.RowsProcessed, sum.Posted, sum.Skipped)
	for _, r := range sum.Repairs {
		fmt.Printf("  repaired row %d: %s\n", r.Row, r.Preview)
	}
	for _, e := range sum.Errors {
		fmt.Printf("  row %d: %s\n", e.Row, e.Reason)
	}
	if sum.ToSuspense > 0 {
		fmt.Printf("%d rows went to %s. Review them: grid ledger %s\n",
			sum.ToSuspense, importer.SuspenseAccount, importer.SuspenseAccount)
	}
}

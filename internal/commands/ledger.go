package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/amount"
	"github.com/grid-books/grid/internal/dates"
)

func newLedgerCommand(booksPath *string) *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "ledger <account>",
		Short: "Show an account's activity with a running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			a, err := eng.Accounts.Resolve(args[0])
			if err != nil {
				return err
			}
			from, err := optionalDate(fromStr)
			if err != nil {
				return err
			}
			to, err := optionalDate(toStr)
			if err != nil {
				return err
			}

			rows, err := eng.Posting.Ledger(a.ID, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("Ledger: %s (%s)\n", a.Name, a.Description)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DATE\tREF\tDESCRIPTION\tWITH\tAMOUNT\tBALANCE\t")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
					r.Date.Format(dates.Day), r.Reference, r.Description,
					strings.Join(r.Contra, ","), amount.Format(r.Amount), amount.Format(r.Balance))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date")
	cmd.Flags().StringVar(&toStr, "to", "", "end date")
	return cmd
}

func newTrialBalanceCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tb [asof]",
		Short: "Show the trial balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			asOf := time.Now().UTC().Truncate(24 * time.Hour)
			if len(args) > 0 {
				if asOf, err = dates.Normalize(args[0]); err != nil {
					return err
				}
			}

			tb, err := eng.Rollup.TrialBalance(asOf)
			if err != nil {
				return err
			}

			fmt.Printf("Trial Balance as of %s\n", asOf.Format(dates.Day))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "ACCOUNT\tDEBIT\tCREDIT\t")
			for _, r := range tb.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t\n",
					r.Account.Name, amount.Format(r.Debit), amount.Format(r.Credit))
			}
			fmt.Fprintf(w, "TOTAL\t%s\t%s\t\n",
				amount.Format(tb.TotalDebit), amount.Format(tb.TotalCredit))
			return w.Flush()
		},
	}
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dates.Normalize(s)
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/amount"
	"github.com/grid-books/grid/internal/dates"
)

func newLockCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lock [date]",
		Short: "Show or set the lock date",
		Long: `Show or set the lock date. Transactions dated on or before the lock
date cannot be posted, edited or deleted. Setting the date directly is a
manual override; the year-end rollover advances it as part of closing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			if len(args) == 0 {
				lock, err := eng.Closing.LockDate()
				if err != nil {
					return err
				}
				if lock.IsZero() {
					fmt.Println("No lock date set")
				} else {
					fmt.Printf("Locked through %s\n", lock.Format(dates.Day))
				}
				return nil
			}

			d, err := dates.Normalize(args[0])
			if err != nil {
				return err
			}
			if err := eng.Closing.SetLockDate(d); err != nil {
				return err
			}
			_ = eng.Audit("lock", d.Format(dates.Day), "")
			fmt.Printf("Locked through %s\n", d.Format(dates.Day))
			return nil
		},
	}
}

func newYearEndCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ye <date>",
		Short: "Close the fiscal year ending on the given date",
		Long: `Close the fiscal year ending on the given date: post the retained
earnings offset entry dated the next day and advance the lock date, as
one atomic unit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			asOf, err := dates.Normalize(args[0])
			if err != nil {
				return err
			}
			res, err := eng.Closing.YearEnd(asOf)
			if err != nil {
				return err
			}

			if res.Transaction == nil {
				fmt.Printf("Net income is zero; no entry posted. Locked through %s\n",
					res.LockDate.Format(dates.Day))
				_ = eng.Audit("yearend", asOf.Format(dates.Day), "")
				return nil
			}
			_ = eng.Audit("yearend", asOf.Format(dates.Day), strconv.FormatInt(res.Transaction.ID, 10))
			fmt.Printf("Posted #%d (%s) for net income %s. Locked through %s\n",
				res.Transaction.ID, res.Transaction.Reference,
				amount.Format(-res.NetIncome), res.LockDate.Format(dates.Day))
			return nil
		},
	}
}

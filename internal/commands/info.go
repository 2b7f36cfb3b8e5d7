package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/dates"
)

func newInfoCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show company and books details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			info, err := eng.Info()
			if err != nil {
				return err
			}
			lock := "none"
			if !info.LockDate.IsZero() {
				lock = info.LockDate.Format(dates.Day)
			}
			fmt.Printf("Company:         %s\n", info.CompanyName)
			fmt.Printf("Books:           %s\n", eng.Path())
			fmt.Printf("Fiscal year end: %s\n", info.FiscalYearEnd)
			fmt.Printf("Lock date:       %s\n", lock)
			fmt.Printf("Accounts:        %d\n", info.Accounts)
			fmt.Printf("Transactions:    %d\n", info.Transactions)
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/amount"
	"github.com/grid-books/grid/internal/dates"
	"github.com/grid-books/grid/internal/posting"
)

func newPostCommand(booksPath *string) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "post <date> <description> <amount> <debit_account> <credit_account>",
		Short: "Post a two-line transaction",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			date, err := dates.Normalize(args[0])
			if err != nil {
				return err
			}
			cents, err := amount.ParseCents(args[2])
			if err != nil {
				return err
			}
			dr, err := eng.Accounts.Resolve(args[3])
			if err != nil {
				return err
			}
			cr, err := eng.Accounts.Resolve(args[4])
			if err != nil {
				return err
			}

			t, err := eng.Posting.Post(date, args[1], ref, []posting.LineInput{
				{AccountID: dr.ID, Amount: cents},
				{AccountID: cr.ID, Amount: -cents},
			})
			if err != nil {
				return err
			}
			_ = eng.Audit("post", args[1], strconv.FormatInt(t.ID, 10))
			fmt.Printf("Posted #%d: %s  Dr %s / Cr %s  %s\n",
				t.ID, t.Date.Format(dates.Day), dr.Name, cr.Name, amount.Format(cents))
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "external reference (auto-generated if blank)")
	return cmd
}

func newEditCommand(booksPath *string) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "edit <txn_id> <date> <description> <amount> <debit_account> <credit_account>",
		Short: "Replace a transaction's date, description and lines",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			date, err := dates.Normalize(args[1])
			if err != nil {
				return err
			}
			cents, err := amount.ParseCents(args[3])
			if err != nil {
				return err
			}
			dr, err := eng.Accounts.Resolve(args[4])
			if err != nil {
				return err
			}
			cr, err := eng.Accounts.Resolve(args[5])
			if err != nil {
				return err
			}

			if err := eng.Posting.Edit(id, date, args[2], ref, []posting.LineInput{
				{AccountID: dr.ID, Amount: cents},
				{AccountID: cr.ID, Amount: -cents},
			}); err != nil {
				return err
			}
			_ = eng.Audit("edit", args[2], args[0])
			fmt.Printf("Updated #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "external reference (kept if blank)")
	return cmd
}

func newDeleteCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <txn_id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			if err := eng.Posting.Delete(id); err != nil {
				return err
			}
			_ = eng.Audit("delete", "", args[0])
			fmt.Printf("Deleted #%d\n", id)
			return nil
		},
	}
}

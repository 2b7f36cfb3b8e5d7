package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/model"
)

func newRulesCommand(booksPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List or manage the import classification rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			all, err := eng.Rules.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKEYWORD\tACCOUNT\tTAX\tPRIORITY\tNOTES")
			for _, r := range all {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Keyword, r.AccountName, r.TaxCode, r.Priority, r.Notes)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(
		newRulesAddCommand(booksPath),
		newRulesEditCommand(booksPath),
		newRulesDelCommand(booksPath),
	)
	return cmd
}

func newRulesAddCommand(booksPath *string) *cobra.Command {
	var taxCode, notes string
	var priority int

	cmd := &cobra.Command{
		Use:   "add <keyword> <account>",
		Short: "Add a classification rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			target, err := eng.Accounts.Resolve(args[1])
			if err != nil {
				return err
			}
			r, err := eng.Rules.Add(model.ImportRule{
				Keyword:     args[0],
				AccountName: target.Name,
				TaxCode:     taxCode,
				Priority:    priority,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added rule #%d: %q -> %s\n", r.ID, r.Keyword, r.AccountName)
			return nil
		},
	}

	cmd.Flags().StringVar(&taxCode, "tax", "", "tax code to split on matched rows")
	cmd.Flags().IntVar(&priority, "priority", 0, "match priority (higher wins)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newRulesEditCommand(booksPath *string) *cobra.Command {
	var keyword, account, taxCode, notes string
	var priority int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a classification rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
			}
			all, err := eng.Rules.List()
			if err != nil {
				return err
			}
			var rule model.ImportRule
			found := false
			for _, r := range all {
				if r.ID == id {
					rule, found = r, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no rule with id %d", id)
			}

			if cmd.Flags().Changed("keyword") {
				rule.Keyword = keyword
			}
			if cmd.Flags().Changed("account") {
				target, err := eng.Accounts.Resolve(account)
				if err != nil {
					return err
				}
				rule.AccountName = target.Name
			}
			if cmd.Flags().Changed("tax") {
				rule.TaxCode = taxCode
			}
			if cmd.Flags().Changed("priority") {
				rule.Priority = priority
			}
			if cmd.Flags().Changed("notes") {
				rule.Notes = notes
			}
			if err := eng.Rules.Update(rule); err != nil {
				return err
			}
			fmt.Printf("Updated rule #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "substring to match in descriptions")
	cmd.Flags().StringVar(&account, "account", "", "target account")
	cmd.Flags().StringVar(&taxCode, "tax", "", "tax code (empty to clear)")
	cmd.Flags().IntVar(&priority, "priority", 0, "match priority (higher wins)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newRulesDelCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "del <id>",
		Short: "Delete a classification rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
			}
			if err := eng.Rules.Delete(id); err != nil {
				return err
			}
			fmt.Printf("Deleted rule #%d\n", id)
			return nil
		},
	}
}

func newTaxCodesCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "taxcodes",
		Short: "List the tax codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			codes, err := eng.Store.TaxCodes()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tRATE\tCOLLECTED\tPAID\tDESCRIPTION")
			for _, tc := range codes {
				fmt.Fprintf(w, "%s\t%s%%\t%s\t%s\t%s\n",
					tc.Code, tc.RatePercent.String(), tc.CollectedAccount, tc.PaidAccount, tc.Description)
			}
			return w.Flush()
		},
	}
}

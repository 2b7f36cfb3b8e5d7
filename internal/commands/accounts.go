package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/model"
)

func newAccountsCommand(booksPath *string) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			if asCSV {
				return eng.Accounts.WriteChart(os.Stdout)
			}

			all, err := eng.Accounts.List()
			if err != nil {
				return err
			}
			byID := make(map[int64]string, len(all))
			for _, a := range all {
				byID[a.ID] = a.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tNORMAL\tROLLS UP TO\tDESCRIPTION")
			for _, a := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					a.Name, a.Kind, a.Normal, byID[a.ParentID], a.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "export as CSV")
	return cmd
}

func newAddAccountCommand(booksPath *string) *cobra.Command {
	var kind, parent, number, desc string

	cmd := &cobra.Command{
		Use:   "addaccount <name> <D|C>",
		Short: "Add an account to the chart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			a := model.Account{
				Name:        args[0],
				Normal:      model.NormalBalance(strings.ToUpper(args[1])),
				Kind:        model.AccountKind(kind),
				Number:      number,
				Description: desc,
			}
			if parent != "" {
				p, err := eng.Accounts.Resolve(parent)
				if err != nil {
					return err
				}
				a.ParentID = p.ID
			}
			created, err := eng.Accounts.Create(a)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s account %s (#%d)\n", created.Kind, created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "posting", "account kind (posting or total)")
	cmd.Flags().StringVar(&parent, "rolls-up-to", "", "total account this account rolls up to")
	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&desc, "desc", "", "display description")
	return cmd
}

func newEditAccountCommand(booksPath *string) *cobra.Command {
	var parent, number, desc string

	cmd := &cobra.Command{
		Use:   "editaccount <name>",
		Short: "Edit an account's description, number or rollup parent",
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
			if cmd.Flags().Changed("desc") {
				a.Description = desc
			}
			if cmd.Flags().Changed("number") {
				a.Number = number
			}
			if cmd.Flags().Changed("rolls-up-to") {
				if parent == "" {
					a.ParentID = 0
				} else {
					p, err := eng.Accounts.Resolve(parent)
					if err != nil {
						return err
					}
					a.ParentID = p.ID
				}
			}
			if err := eng.Accounts.Update(a); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", a.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "display description")
	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&parent, "rolls-up-to", "", "total account this account rolls up to (empty to clear)")
	return cmd
}

func newFindCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Find accounts by partial name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			matches, err := eng.Accounts.Find(args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Printf("No accounts match %q\n", args[0])
				return nil
			}
			for _, a := range matches {
				fmt.Printf("%-12s %-8s %s\n", a.Name, a.Kind, a.Description)
			}
			return nil
		},
	}
}

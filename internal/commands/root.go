// Package commands wires the CLI. Every command is a thin wrapper over an
// engine session; parsing and printing live here, the rules live in the
// engine packages.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/buildinfo"
	"github.com/grid-books/grid/internal/config"
	"github.com/grid-books/grid/internal/engine"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var booksPath string

	rootCmd := &cobra.Command{
		Use:     "grid",
		Short:   "Double-entry bookkeeping with rule-based bank imports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&booksPath, "books", "", "path to the books file (default from grid.yaml, else books.db)")

	rootCmd.AddCommand(
		newInitCommand(),
		newInfoCommand(&booksPath),
		newAccountsCommand(&booksPath),
		newAddAccountCommand(&booksPath),
		newEditAccountCommand(&booksPath),
		newFindCommand(&booksPath),
		newPostCommand(&booksPath),
		newEditCommand(&booksPath),
		newDeleteCommand(&booksPath),
		newLedgerCommand(&booksPath),
		newTrialBalanceCommand(&booksPath),
		newReportCommand(&booksPath),
		newReportsCommand(&booksPath),
		newEditReportCommand(&booksPath),
		newRulesCommand(&booksPath),
		newTaxCodesCommand(&booksPath),
		newImportCSVCommand(&booksPath),
		newImportOFXCommand(&booksPath),
		newLockCommand(&booksPath),
		newYearEndCommand(&booksPath),
	)

	return rootCmd
}

// openBooks resolves the books path (flag, grid.yaml, default) and opens an
// engine session on it.
func openBooks(booksPath *string) (*engine.Engine, error) {
	path := *booksPath
	if path == "" {
		if cfg, err := config.Load("grid.yaml"); err == nil && cfg.Books.Path != "" {
			path = cfg.Books.Path
		} else {
			path = "books.db"
		}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no books at %s (run 'grid init' first)", path)
	}
	return engine.Open(path)
}

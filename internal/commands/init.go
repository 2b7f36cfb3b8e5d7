package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grid-books/grid/internal/config"
	"github.com/grid-books/grid/internal/engine"
	"github.com/grid-books/grid/internal/setup"
)

func newInitCommand() *cobra.Command {
	var name string
	var yearEnd string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create new books with the starter chart, reports and rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, name, yearEnd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&yearEnd, "year-end", "12-31", "fiscal year end (MM-DD)")

	return cmd
}

func runInit(dir, name, yearEnd string) error {
	month, day, err := parseYearEnd(yearEnd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	booksPath := filepath.Join(dir, "books.db")
	if _, err := os.Stat(booksPath); err == nil {
		return fmt.Errorf("books already exist at %s", booksPath)
	}

	eng, err := engine.Open(booksPath)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := setup.CreateStarterBooks(eng.Store, name, month, day); err != nil {
		return fmt.Errorf("creating starter books: %w", err)
	}

	cfg := config.Default(name, booksPath)
	cfg.Fiscal.YearEnd = yearEnd
	if err := config.Save(filepath.Join(dir, "grid.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s\n", name, booksPath)
	return nil
}

func parseYearEnd(s string) (month, day int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) == 2 {
		m, err1 := strconv.Atoi(parts[0])
		d, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && m >= 1 && m <= 12 && d >= 1 && d <= 31 {
			return m, d, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid fiscal year end %q (want MM-DD, e.g. 12-31)", s)
}

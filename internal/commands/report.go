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
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/report"
)

func newReportCommand(booksPath *string) *cobra.Command {
	var fromStr, toStr string
	var months int
	var cumulative bool

	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Generate a report, optionally with monthly comparative columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			to := time.Now().UTC().Truncate(24 * time.Hour)
			if toStr != "" {
				if to, err = dates.Normalize(toStr); err != nil {
					return err
				}
			}
			from, err := optionalDate(fromStr)
			if err != nil {
				return err
			}

			periods := buildPeriods(from, to, months, cumulative)
			res, err := eng.Reports.Generate(args[0], periods)
			if err != nil {
				return err
			}
			printReport(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (single column)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (default today)")
	cmd.Flags().IntVar(&months, "months", 0, "number of monthly comparative columns (max 13)")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "each monthly column runs from the beginning of the books")
	return cmd
}

// buildPeriods maps the flag combinations to value columns: one bounded
// column by default, or a trailing run of month columns ending at to.
func buildPeriods(from, to time.Time, months int, cumulative bool) []report.Period {
	if months <= 0 {
		label := to.Format(dates.Day)
		return []report.Period{{Label: label, From: from, To: to}}
	}
	periods := make([]report.Period, 0, months)
	end := to
	for i := 0; i < months; i++ {
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		p := report.Period{Label: end.Format("Jan 2006"), From: start, To: end}
		if cumulative {
			p.From = time.Time{}
		}
		periods = append(periods, p)
		end = start.AddDate(0, 0, -1)
	}
	// Oldest column first.
	for i, j := 0, len(periods)-1; i < j; i, j = i+1, j-1 {
		periods[i], periods[j] = periods[j], periods[i]
	}
	return periods
}

func printReport(res report.Result) {
	title := res.Report.Description
	if title == "" {
		title = res.Report.Name
	}
	fmt.Println(title)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	if len(res.Periods) > 1 {
		cols := make([]string, len(res.Periods))
		for i, p := range res.Periods {
			cols[i] = p.Label
		}
		fmt.Fprintf(w, "\t%s\t\n", strings.Join(cols, "\t"))
	}
	for _, row := range res.Rows {
		switch row.Kind {
		case model.ReportLineSeparator:
			fmt.Fprintln(w, sepText(row.SepStyle, len(res.Periods)))
		case model.ReportLineLabel:
			fmt.Fprintf(w, "%s\t%s\t\n", row.Label, strings.Repeat("\t", len(res.Periods)-1))
		case model.ReportLineAccount:
			vals := make([]string, len(row.Values))
			for i, v := range row.Values {
				vals[i] = amount.Format(v)
			}
			fmt.Fprintf(w, "%s%s\t%s\t\n",
				strings.Repeat("  ", row.Indent), row.Label, strings.Join(vals, "\t"))
		}
	}
	w.Flush()
}

func sepText(style model.SepStyle, cols int) string {
	line := ""
	switch style {
	case model.SepSingle:
		line = strings.Repeat("-", 12)
	case model.SepDouble:
		line = strings.Repeat("=", 12)
	}
	return "\t" + strings.Repeat(line+"\t", cols)
}

func newReportsCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the stored reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			all, err := eng.Reports.List()
			if err != nil {
				return err
			}
			for _, r := range all {
				fmt.Printf("%-10s %s\n", r.Name, r.Description)
			}
			return nil
		},
	}
}

func newEditReportCommand(booksPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "editreport <name> <description>",
		Short: "Change a report's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openBooks(booksPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			if err := eng.Reports.EditDescription(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}
}

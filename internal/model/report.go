package model

// ReportLineKind distinguishes balance-carrying report lines from layout
// lines.
type ReportLineKind string

const (
	ReportLineAccount   ReportLineKind = "account"
	ReportLineLabel     ReportLineKind = "label"
	ReportLineSeparator ReportLineKind = "separator"
)

// SepStyle controls how a separator line renders.
type SepStyle string

const (
	SepSingle SepStyle = "single"
	SepDouble SepStyle = "double"
	SepBlank  SepStyle = "blank"
)

// Report is a named presentation structure (BS, IS, ...). Only the
// description is mutable after creation.
type Report struct {
	ID          int64
	Name        string
	Description string
	SortOrder   int
}

// ReportLine is one row of a report's layout. Account lines reference a
// posting or total account whose rollup balance fills the value columns.
type ReportLine struct {
	ID        int64
	ReportID  int64
	Position  int
	Kind      ReportLineKind
	Label     string
	AccountID int64
	Indent    int
	SepStyle  SepStyle
}

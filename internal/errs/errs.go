// Package errs defines the error taxonomy shared by every engine service.
// Callers dispatch with errors.As; none of these types wrap another error.
package errs

import (
	"fmt"
	"strings"
	"time"
)

// NotFoundError reports an unknown account, transaction, rule, report or
// tax code.
type NotFoundError struct {
	Entity string // "account", "transaction", ...
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// AmbiguousMatchError carries every account matching a partial name.
type AmbiguousMatchError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous account %q: matches %s", e.Query, strings.Join(e.Candidates, ", "))
}

// ImbalanceError reports a non-zero signed line sum, in cents. A positive
// Diff means excess debits, negative means excess credits.
type ImbalanceError struct {
	Diff int64
}

func (e *ImbalanceError) Error() string {
	side := "debits"
	d := e.Diff
	if d < 0 {
		side = "credits"
		d = -d
	}
	return fmt.Sprintf("transaction does not balance: %d.%02d excess %s", d/100, d%100, side)
}

// ConstraintError reports a structural violation: posting to a total
// account, or a rollup parent link that would form a cycle.
type ConstraintError struct {
	Msg string
}

func (e *ConstraintError) Error() string { return e.Msg }

// LockViolationError reports an operation touching a date at or before the
// lock date.
type LockViolationError struct {
	Date time.Time
	Lock time.Time
}

func (e *LockViolationError) Error() string {
	return fmt.Sprintf("date %s is on or before the lock date (%s)",
		e.Date.Format("2006-01-02"), e.Lock.Format("2006-01-02"))
}

// ValidationError reports malformed caller input: a bad date, amount or
// field value.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

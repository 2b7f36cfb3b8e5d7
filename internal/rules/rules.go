// Package rules maps bank descriptions to accounts via prioritized keyword
// rules and splits tax-inclusive amounts into net and tax portions.
package rules

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grid-books/grid/internal/model"
)

// Classify picks the winning rule for a description: every rule whose
// keyword is a case-insensitive substring is a candidate, the highest
// priority wins, and equal priorities fall back to the lowest id so the
// oldest rule is stable. The second return is false when nothing matches.
func Classify(description string, rules []model.ImportRule) (model.ImportRule, bool) {
	desc := strings.ToLower(description)
	var candidates []model.ImportRule
	for _, r := range rules {
		if r.Keyword != "" && strings.Contains(desc, strings.ToLower(r.Keyword)) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return model.ImportRule{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

var oneHundred = decimal.NewFromInt(100)

// Split decomposes a tax-inclusive gross amount into net and tax cents
// such that net + tax == gross exactly. The tax portion is
// round(|gross| * rate / (100 + rate)); any rounding remainder stays on
// the net side. Signs follow the gross amount.
func Split(gross int64, ratePercent decimal.Decimal) (net, tax int64) {
	if ratePercent.IsZero() {
		return gross, 0
	}
	abs := gross
	neg := abs < 0
	if neg {
		abs = -abs
	}
	t := decimal.NewFromInt(abs).
		Mul(ratePercent).
		Div(ratePercent.Add(oneHundred)).
		Round(0).
		IntPart()
	n := abs - t
	if neg {
		return -n, -t
	}
	return n, t
}

// TaxAccount selects the account the tax portion posts to: debits (money
// going out) carry paid tax, credits carry collected tax.
func TaxAccount(tc model.TaxCode, gross int64) string {
	if gross < 0 {
		return tc.CollectedAccount
	}
	return tc.PaidAccount
}

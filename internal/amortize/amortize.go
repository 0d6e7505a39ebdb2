// Package amortize computes repayment terms for a loan offer. It is pure:
// no state, no storage, callable speculatively while a form is still being
// filled in (degenerate inputs yield a zero Result rather than an error).
package amortize

import (
	"math"
	"time"

	"peerlend-backend/internal/domain/loan"
)

type Input struct {
	Principal         float64
	AnnualRatePercent float64
	TermValue         int
	TermUnit          loan.TermUnit
	Cadence           loan.Cadence
}

type Result struct {
	TotalAmount       float64
	InstallmentAmount float64
	TotalInterest     float64
}

// Months converts a term to its month-equivalent duration: days/30,
// weeks*7/30, months as-is.
func Months(termValue int, unit loan.TermUnit) float64 {
	v := float64(termValue)
	switch unit {
	case loan.TermDays:
		return v / 30
	case loan.TermWeeks:
		return v * 7 / 30
	case loan.TermMonths:
		return v
	}
	return 0
}

// MonthsUntil is the month-equivalent of the exact calendar distance to a
// target date, for offers expressed as "due by <date>" rather than a count.
func MonthsUntil(from, target time.Time) float64 {
	return target.Sub(from).Hours() / 24 / 30
}

// PeriodsFor is the number of cadence periods implied by a month-equivalent
// term: weekly months*52/12, biweekly months*26/12, monthly direct.
// A "none" cadence has no periods; the full amount is due at the due date.
func PeriodsFor(months float64, cadence loan.Cadence) float64 {
	switch cadence {
	case loan.CadenceWeekly:
		return months * 52 / 12
	case loan.CadenceBiweekly:
		return months * 26 / 12
	case loan.CadenceMonthly:
		return months
	}
	return 0
}

// Compute applies simple (non-compounding) interest:
//
//	total = principal * (1 + rate/100 * months/12)
//
// and divides the total over the cadence periods. Monetary outputs are
// rounded to cents.
func Compute(in Input) Result {
	months := Months(in.TermValue, in.TermUnit)
	return computeMonths(in.Principal, in.AnnualRatePercent, months, in.Cadence)
}

// ComputeToDate is Compute for a term expressed as a target due date.
func ComputeToDate(principal, annualRatePercent float64, from, target time.Time, cadence loan.Cadence) Result {
	return computeMonths(principal, annualRatePercent, MonthsUntil(from, target), cadence)
}

func computeMonths(principal, ratePercent, months float64, cadence loan.Cadence) Result {
	if principal <= 0 || months <= 0 {
		return Result{}
	}
	total := principal * (1 + (ratePercent/100)*(months/12))
	var installment float64
	if periods := PeriodsFor(months, cadence); periods > 0 {
		installment = total / periods
	}
	return Result{
		TotalAmount:       roundCents(total),
		InstallmentAmount: roundCents(installment),
		TotalInterest:     roundCents(total - principal),
	}
}

// DueDate is the calendar end of the term starting at from.
func DueDate(from time.Time, termValue int, unit loan.TermUnit) time.Time {
	switch unit {
	case loan.TermDays:
		return from.AddDate(0, 0, termValue)
	case loan.TermWeeks:
		return from.AddDate(0, 0, 7*termValue)
	case loan.TermMonths:
		return from.AddDate(0, termValue, 0)
	}
	return from
}

// NextDue steps a due date forward by one cadence period. For a "none"
// cadence there is no stepping; callers use the loan's final due date.
func NextDue(from time.Time, cadence loan.Cadence) time.Time {
	switch cadence {
	case loan.CadenceWeekly:
		return from.AddDate(0, 0, 7)
	case loan.CadenceBiweekly:
		return from.AddDate(0, 0, 14)
	case loan.CadenceMonthly:
		return from.AddDate(0, 1, 0)
	}
	return from
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

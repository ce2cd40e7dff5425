// Package analysis computes the read-only aggregations over a cleaned loan
// dataset: frequency counts, row-normalized cross-tabulations, grouped
// numeric summaries and the figures consumed by the report.
//
// Undefined statistics (an empty group, a zero denominator) are NaN and
// never an error. Rounding happens only when a value is displayed.
package analysis

import (
	"database/sql"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Derived column names.
const (
	ColTotalIncome        = "TotalIncome"
	ColLoanAmountCategory = "LoanAmount_Category"
	ColCreditStatus       = "Credit_Status"
)

// LoanAmount_Category labels, in bucket order.
const (
	BucketLow      = "Low (<=100)"
	BucketMedium   = "Medium (101-200)"
	BucketHigh     = "High (201-300)"
	BucketVeryHigh = "Very High (>300)"
)

// Buckets lists the LoanAmount_Category labels in ascending order.
var Buckets = []string{BucketLow, BucketMedium, BucketHigh, BucketVeryHigh}

// Credit_Status labels.
const (
	GoodCredit = "Good Credit"
	BadCredit  = "Bad Credit"
)

// Observation is a loan application with its derived attributes.
type Observation struct {
	core.LoanApplication

	// TotalIncome is ApplicantIncome + CoapplicantIncome, null when either is.
	TotalIncome sql.NullFloat64

	// LoanAmountCategory buckets LoanAmount on (0,100], (100,200],
	// (200,300], (300,inf). Null for a missing or non-positive amount.
	LoanAmountCategory sql.NullString

	// CreditStatus maps Credit_History 1 and 0 to a label; null otherwise.
	CreditStatus sql.NullString
}

// Observe derives the analysis attributes for every application.
// apps is not modified.
func Observe(apps []core.LoanApplication) []Observation {
	obs := make([]Observation, len(apps))
	for i, app := range apps {
		obs[i] = Observation{
			LoanApplication:    app,
			TotalIncome:        totalIncome(app),
			LoanAmountCategory: LoanAmountCategory(app.LoanAmount),
			CreditStatus:       CreditStatus(app.CreditHistory),
		}
	}
	return obs
}

func totalIncome(app core.LoanApplication) sql.NullFloat64 {
	if !app.ApplicantIncome.Valid || !app.CoapplicantIncome.Valid {
		return sql.NullFloat64{}
	}
	return core.Number(app.ApplicantIncome.Float64 + app.CoapplicantIncome.Float64)
}

// LoanAmountCategory returns the bucket label for amount. Bounds are
// closed on the upper side: 100 is Low, 200 is Medium.
func LoanAmountCategory(amount sql.NullFloat64) sql.NullString {
	if !amount.Valid {
		return sql.NullString{}
	}
	v := amount.Float64
	switch {
	case v <= 0 || v != v:
		return sql.NullString{}
	case v <= 100:
		return core.Text(BucketLow)
	case v <= 200:
		return core.Text(BucketMedium)
	case v <= 300:
		return core.Text(BucketHigh)
	default:
		return core.Text(BucketVeryHigh)
	}
}

// CreditStatus returns the Credit_Status label for a Credit_History value.
func CreditStatus(history sql.NullFloat64) sql.NullString {
	if !history.Valid {
		return sql.NullString{}
	}
	switch history.Float64 {
	case 1:
		return core.Text(GoodCredit)
	case 0:
		return core.Text(BadCredit)
	default:
		return sql.NullString{}
	}
}

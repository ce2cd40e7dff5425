// Package cleaning applies the fixed imputation rules shared by the
// analyzer and the loader.
package cleaning

import (
	"errors"

	"github.com/leapstack-labs/loanlens/internal/stats"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Imputed defaults.
const (
	DefaultSelfEmployed   = "No"
	DefaultLoanAmountTerm = 360
	DefaultCreditHistory  = 1
	DefaultGender         = "Male"
	DefaultDependents     = "0"
)

// ErrNoLoanAmount is returned when LoanAmount needs imputation but the
// dataset has no observed LoanAmount to take the median of.
var ErrNoLoanAmount = errors.New("cannot impute LoanAmount: no observed values")

// Apply returns a copy of apps with every imputation rule applied.
// The LoanAmount median is taken over the observed values of apps before
// any substitution. apps itself is not modified.
func Apply(apps []core.LoanApplication) ([]core.LoanApplication, error) {
	out := make([]core.LoanApplication, len(apps))
	copy(out, apps)

	median, err := loanAmountMedian(apps)
	if err != nil {
		return nil, err
	}

	for i := range out {
		app := &out[i]
		if !app.SelfEmployed.Valid {
			app.SelfEmployed = core.Text(DefaultSelfEmployed)
		}
		if !app.LoanAmount.Valid {
			app.LoanAmount = core.Number(median)
		}
		if !app.LoanAmountTerm.Valid {
			app.LoanAmountTerm = core.Number(DefaultLoanAmountTerm)
		}
		if !app.CreditHistory.Valid {
			app.CreditHistory = core.Number(DefaultCreditHistory)
		}
		if !app.Gender.Valid {
			app.Gender = core.Text(DefaultGender)
		}
		if !app.Dependents.Valid {
			app.Dependents = core.Text(DefaultDependents)
		}
	}

	return out, nil
}

// loanAmountMedian returns the median of the observed LoanAmount values.
// It only fails when a missing value would need it.
func loanAmountMedian(apps []core.LoanApplication) (float64, error) {
	observed := make([]float64, 0, len(apps))
	missing := false
	for _, app := range apps {
		if app.LoanAmount.Valid {
			observed = append(observed, app.LoanAmount.Float64)
		} else {
			missing = true
		}
	}
	if !missing {
		return 0, nil
	}
	if len(observed) == 0 {
		return 0, ErrNoLoanAmount
	}
	return stats.Median(observed), nil
}

// MissingImputed reports how many nulls remain in the imputed columns.
// It is zero for any output of Apply.
func MissingImputed(apps []core.LoanApplication) int {
	n := 0
	for _, app := range apps {
		for _, valid := range []bool{
			app.SelfEmployed.Valid,
			app.LoanAmount.Valid,
			app.LoanAmountTerm.Valid,
			app.CreditHistory.Valid,
			app.Gender.Valid,
			app.Dependents.Valid,
		} {
			if !valid {
				n++
			}
		}
	}
	return n
}

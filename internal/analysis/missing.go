package analysis

import (
	"database/sql"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// MissingValue counts the nulls of one column.
type MissingValue struct {
	Column  string
	Count   int
	Percent float64
}

// MissingValues returns the null count and percentage of every column
// with at least one null, in file column order.
func MissingValues(apps []core.LoanApplication) []MissingValue {
	if len(apps) == 0 {
		return nil
	}

	counts := make(map[string]int, len(core.Columns))
	for _, app := range apps {
		for col, valid := range validity(app) {
			if !valid {
				counts[col]++
			}
		}
	}

	var missing []MissingValue
	for _, col := range core.Columns {
		n := counts[col]
		if n == 0 {
			continue
		}
		missing = append(missing, MissingValue{
			Column:  col,
			Count:   n,
			Percent: float64(n) / float64(len(apps)) * 100,
		})
	}
	return missing
}

func validity(app core.LoanApplication) map[string]bool {
	text := func(s sql.NullString) bool { return s.Valid }
	num := func(v sql.NullFloat64) bool { return v.Valid }
	return map[string]bool{
		core.ColLoanID:            text(app.LoanID),
		core.ColGender:            text(app.Gender),
		core.ColMarried:           text(app.Married),
		core.ColDependents:        text(app.Dependents),
		core.ColEducation:         text(app.Education),
		core.ColSelfEmployed:      text(app.SelfEmployed),
		core.ColApplicantIncome:   num(app.ApplicantIncome),
		core.ColCoapplicantIncome: num(app.CoapplicantIncome),
		core.ColLoanAmount:        num(app.LoanAmount),
		core.ColLoanAmountTerm:    num(app.LoanAmountTerm),
		core.ColCreditHistory:     num(app.CreditHistory),
		core.ColPropertyArea:      text(app.PropertyArea),
		core.ColLoanStatus:        text(app.LoanStatus),
	}
}

package analysis

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// UnknownColumnError is returned when an aggregation names a column that
// has no value of the requested kind.
type UnknownColumnError struct {
	Column string
	Kind   string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown %s column: %s", e.Kind, e.Column)
}

type categoryFunc func(Observation) sql.NullString

type numericFunc func(Observation) sql.NullFloat64

// categoryOf returns the accessor used to group rows by column.
// Numeric Credit_History groups by its formatted value ("1", "0").
func categoryOf(column string) (categoryFunc, error) {
	switch column {
	case core.ColLoanID:
		return func(o Observation) sql.NullString { return o.LoanID }, nil
	case core.ColGender:
		return func(o Observation) sql.NullString { return o.Gender }, nil
	case core.ColMarried:
		return func(o Observation) sql.NullString { return o.Married }, nil
	case core.ColDependents:
		return func(o Observation) sql.NullString { return o.Dependents }, nil
	case core.ColEducation:
		return func(o Observation) sql.NullString { return o.Education }, nil
	case core.ColSelfEmployed:
		return func(o Observation) sql.NullString { return o.SelfEmployed }, nil
	case core.ColPropertyArea:
		return func(o Observation) sql.NullString { return o.PropertyArea }, nil
	case core.ColLoanStatus:
		return func(o Observation) sql.NullString { return o.LoanStatus }, nil
	case core.ColCreditHistory:
		return func(o Observation) sql.NullString { return formatNumber(o.CreditHistory) }, nil
	case core.ColLoanAmountTerm:
		return func(o Observation) sql.NullString { return formatNumber(o.LoanAmountTerm) }, nil
	case ColLoanAmountCategory:
		return func(o Observation) sql.NullString { return o.LoanAmountCategory }, nil
	case ColCreditStatus:
		return func(o Observation) sql.NullString { return o.CreditStatus }, nil
	}
	return nil, &UnknownColumnError{Column: column, Kind: "categorical"}
}

// numericOf returns the accessor for a numeric column.
func numericOf(column string) (numericFunc, error) {
	switch column {
	case core.ColApplicantIncome:
		return func(o Observation) sql.NullFloat64 { return o.ApplicantIncome }, nil
	case core.ColCoapplicantIncome:
		return func(o Observation) sql.NullFloat64 { return o.CoapplicantIncome }, nil
	case core.ColLoanAmount:
		return func(o Observation) sql.NullFloat64 { return o.LoanAmount }, nil
	case core.ColLoanAmountTerm:
		return func(o Observation) sql.NullFloat64 { return o.LoanAmountTerm }, nil
	case core.ColCreditHistory:
		return func(o Observation) sql.NullFloat64 { return o.CreditHistory }, nil
	case ColTotalIncome:
		return func(o Observation) sql.NullFloat64 { return o.TotalIncome }, nil
	}
	return nil, &UnknownColumnError{Column: column, Kind: "numeric"}
}

func formatNumber(v sql.NullFloat64) sql.NullString {
	if !v.Valid {
		return sql.NullString{}
	}
	return core.Text(strconv.FormatFloat(v.Float64, 'f', -1, 64))
}

// Values returns the non-null values of a numeric column.
func Values(obs []Observation, column string) ([]float64, error) {
	get, err := numericOf(column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(obs))
	for _, o := range obs {
		if v := get(o); v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values, nil
}

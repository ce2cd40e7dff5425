package core

import "database/sql"

// LoanTable is the relational table the loader replaces.
const LoanTable = "loan_applications"

// Column names as they appear in the CSV header and in LoanTable.
const (
	ColLoanID            = "Loan_ID"
	ColGender            = "Gender"
	ColMarried           = "Married"
	ColDependents        = "Dependents"
	ColEducation         = "Education"
	ColSelfEmployed      = "Self_Employed"
	ColApplicantIncome   = "ApplicantIncome"
	ColCoapplicantIncome = "CoapplicantIncome"
	ColLoanAmount        = "LoanAmount"
	ColLoanAmountTerm    = "Loan_Amount_Term"
	ColCreditHistory     = "Credit_History"
	ColPropertyArea      = "Property_Area"
	ColLoanStatus        = "Loan_Status"
)

// Columns lists the dataset columns in file order.
var Columns = []string{
	ColLoanID,
	ColGender,
	ColMarried,
	ColDependents,
	ColEducation,
	ColSelfEmployed,
	ColApplicantIncome,
	ColCoapplicantIncome,
	ColLoanAmount,
	ColLoanAmountTerm,
	ColCreditHistory,
	ColPropertyArea,
	ColLoanStatus,
}

// Loan_Status values.
const (
	StatusApproved = "Y"
	StatusRejected = "N"
)

// LoanApplication is one row of the loan dataset.
// A field is null when the source cell was missing.
type LoanApplication struct {
	LoanID       sql.NullString
	Gender       sql.NullString
	Married      sql.NullString
	Dependents   sql.NullString
	Education    sql.NullString
	SelfEmployed sql.NullString
	PropertyArea sql.NullString
	LoanStatus   sql.NullString

	ApplicantIncome   sql.NullFloat64
	CoapplicantIncome sql.NullFloat64
	LoanAmount        sql.NullFloat64
	LoanAmountTerm    sql.NullFloat64
	CreditHistory     sql.NullFloat64
}

// Text returns a valid NullString holding s.
func Text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// Number returns a valid NullFloat64 holding v.
func Number(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// IsApproved reports whether the application has Loan_Status "Y".
func (l LoanApplication) IsApproved() bool {
	return l.LoanStatus.Valid && l.LoanStatus.String == StatusApproved
}

// IsRejected reports whether the application has Loan_Status "N".
func (l LoanApplication) IsRejected() bool {
	return l.LoanStatus.Valid && l.LoanStatus.String == StatusRejected
}

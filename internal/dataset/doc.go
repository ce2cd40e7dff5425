// Package dataset decodes the loan-application CSV into typed records.
//
// The header is validated once: every column in core.Columns must be
// present, in any order, and extra columns are ignored. Cells are then
// decoded field by field into core.LoanApplication values. Two decoding
// profiles exist:
//
//   - AnalyzeOptions: only the standard NA tokens (empty cell, "NA",
//     "NaN", "null", ...) are missing. A numeric cell that does not parse
//     is a fatal *ValueError.
//   - LoadOptions: additionally treats a single space as missing, and
//     coerces LoanAmount, Loan_Amount_Term and Credit_History leniently:
//     a cell that does not parse becomes null.
package dataset

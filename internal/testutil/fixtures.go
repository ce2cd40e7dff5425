package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LoanHeader is the header row of the loan dataset.
const LoanHeader = "Loan_ID,Gender,Married,Dependents,Education,Self_Employed," +
	"ApplicantIncome,CoapplicantIncome,LoanAmount,Loan_Amount_Term,Credit_History," +
	"Property_Area,Loan_Status"

// SampleLoans is a small dataset with a mix of outcomes and missing cells.
var SampleLoans = []string{
	"LP001002,Male,No,0,Graduate,No,5849,0,,360,1,Urban,Y",
	"LP001003,Male,Yes,1,Graduate,No,4583,1508,128,360,1,Rural,N",
	"LP001005,Male,Yes,0,Graduate,Yes,3000,0,66,360,1,Urban,Y",
	"LP001006,Male,Yes,0,Not Graduate,No,2583,2358,120,360,1,Urban,Y",
	"LP001008,Male,No,0,Graduate,No,6000,0,141,360,1,Urban,Y",
	"LP001011,,Yes,2,Graduate,,5417,4196,267,360,1,Urban,Y",
	"LP001013,Female,Yes,0,Not Graduate,No,2333,1516,95,,0,Urban,N",
	"LP001014,Female,Yes,3+,Graduate,No,3036,2504,158,360,0,Semiurban,N",
}

// WriteLoanCSV writes a loan dataset with the given rows below the standard
// header into a temporary directory and returns its path.
func WriteLoanCSV(t testing.TB, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loan_data_set.csv")
	content := LoanHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

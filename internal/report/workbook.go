package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/internal/stats"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Sheet names written by WriteWorkbook besides one sheet per cross-tab.
const (
	SheetSummary    = "Summary"
	SheetMissing    = "Missing"
	SheetDescribe   = "Describe"
	SheetIncome     = "Income"
	SheetLoanAmount = "LoanAmount"
)

// WriteWorkbook exports the figures, the missing-value summary, every
// grouped summary and every cross-tab of res to an .xlsx file at path.
// Cross-tab cells hold percentages rounded to two decimals.
func WriteWorkbook(path string, missing []analysis.MissingValue, res *analysis.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	w := &workbook{f: f}
	w.summary(res.Figures)
	w.missing(missing)
	w.describe(res.Descriptions)
	w.grouped(SheetIncome, res.Income)
	w.grouped(SheetLoanAmount, []analysis.ColumnSummary{res.LoanAmount})
	for _, ct := range crossTabs(res) {
		w.crossTab(ct)
	}
	if w.err != nil {
		return fmt.Errorf("failed to build workbook: %w", w.err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// crossTabs lists the cross-tabs of res in report order.
func crossTabs(res *analysis.Result) []*analysis.CrossTab {
	tabs := append([]*analysis.CrossTab{}, res.Demographics...)
	return append(tabs,
		res.SelfEmployed,
		res.LoanAmountCategory,
		res.CreditStatus,
		res.CreditHistory,
		res.PropertyArea,
	)
}

// workbook appends rows sheet by sheet, keeping the first error.
type workbook struct {
	f   *excelize.File
	err error
}

func (w *workbook) sheet(name string) {
	if w.err != nil {
		return
	}
	if idx, _ := w.f.GetSheetIndex(name); idx >= 0 {
		return
	}
	_, w.err = w.f.NewSheet(name)
}

func (w *workbook) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

// round keeps two decimals. An undefined value becomes 0.
func round(v float64) float64 {
	return math.Round(stats.OrZero(v)*100) / 100
}

func (w *workbook) summary(f analysis.Figures) {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Applications", f.Total},
		{"Approved Loans", f.Approved},
		{"Rejected Loans", f.Rejected},
		{"Approval Rate (%)", round(f.ApprovalRate)},
		{"Male Approval Rate (%)", round(f.MaleApproval)},
		{"Female Approval Rate (%)", round(f.FemaleApproval)},
		{"Graduate Approval Rate (%)", round(f.GraduateApproval)},
		{"Not Graduate Approval Rate (%)", round(f.NotGraduateApproval)},
		{"Good Credit Approval Rate (%)", round(f.GoodCreditApproval)},
		{"Bad Credit Approval Rate (%)", round(f.BadCreditApproval)},
		{"Approved Avg Loan Amount", round(f.ApprovedLoanAmount)},
		{"Rejected Avg Loan Amount", round(f.RejectedLoanAmount)},
		{"Approved Avg Total Income", round(f.ApprovedTotalIncome)},
		{"Rejected Avg Total Income", round(f.RejectedTotalIncome)},
	}
	for i, r := range rows {
		w.row(SheetSummary, i+1, r...)
	}
}

func (w *workbook) missing(missing []analysis.MissingValue) {
	w.sheet(SheetMissing)
	w.row(SheetMissing, 1, "Column", "Missing Count", "Percentage")
	for i, m := range missing {
		w.row(SheetMissing, i+2, m.Column, m.Count, round(m.Percent))
	}
}

func (w *workbook) describe(descs []analysis.Description) {
	w.sheet(SheetDescribe)
	w.row(SheetDescribe, 1, "Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for i, d := range descs {
		w.row(SheetDescribe, i+2, d.Column, d.Count,
			round(d.Mean), round(d.Std), round(d.Min),
			round(d.Q25), round(d.Q50), round(d.Q75), round(d.Max))
	}
}

func (w *workbook) grouped(sheet string, summaries []analysis.ColumnSummary) {
	w.sheet(sheet)
	w.row(sheet, 1, "Column", core.ColLoanStatus, "count", "mean", "median", "min", "max")
	n := 2
	for _, s := range summaries {
		for _, g := range s.Groups {
			w.row(sheet, n, s.Column, g.Status, g.Count,
				round(g.Mean), round(g.Median), round(g.Min), round(g.Max))
			n++
		}
	}
}

func (w *workbook) crossTab(ct *analysis.CrossTab) {
	w.sheet(ct.Column)
	header := []any{ct.Column}
	for _, s := range ct.Statuses {
		header = append(header, s)
	}
	w.row(ct.Column, 1, header...)
	for i, values := range ct.Normalized() {
		row := []any{ct.Rows[i]}
		for _, v := range values {
			row = append(row, round(v))
		}
		w.row(ct.Column, i+2, row...)
	}
}

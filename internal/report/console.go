package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

const rule = 50

// Console prints analysis sections as tables.
type Console struct {
	w       io.Writer
	style   table.Style
	heading *lipgloss.Style
}

// NewConsole returns a Console writing to w. Headings are highlighted when
// w is a terminal.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w, style: TableStyle(w)}
	if IsTerminal(w) {
		heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		c.heading = &heading
	}
	return c
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TableStyle returns box-drawing table borders when w is a terminal and
// plain ASCII otherwise.
func TableStyle(w io.Writer) table.Style {
	if IsTerminal(w) {
		return table.StyleLight
	}
	return table.StyleDefault
}

// Banner prints a title between two rules.
func (c *Console) Banner(title string) {
	_, _ = fmt.Fprintln(c.w, strings.Repeat("=", rule))
	if c.heading != nil {
		title = c.heading.Render(title)
	}
	_, _ = fmt.Fprintln(c.w, title)
	_, _ = fmt.Fprintln(c.w, strings.Repeat("=", rule))
}

// Section prints a section heading preceded by a blank line.
func (c *Console) Section(title string) {
	_, _ = fmt.Fprintln(c.w)
	c.Banner(title)
}

// Printf prints a formatted line.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.w)
	t.SetStyle(c.style)
	t.AppendHeader(header)
	return t
}

// Missing prints the per-column null counts found before cleaning.
func (c *Console) Missing(missing []analysis.MissingValue) {
	c.Printf("\nMissing Values:")
	if len(missing) == 0 {
		c.Printf("(none)")
		return
	}
	t := c.newTable(table.Row{"Column", "Missing Count", "Percentage"})
	for _, m := range missing {
		t.AppendRow(table.Row{m.Column, m.Count, fixed(m.Percent)})
	}
	t.Render()
}

// Analysis prints every section of res in the order it was computed.
func (c *Console) Analysis(res *analysis.Result) {
	c.basic(res)

	c.Section("DEMOGRAPHIC ANALYSIS")
	titles := map[string]string{
		core.ColGender:     "Loan Approval by Gender",
		core.ColEducation:  "Loan Approval by Education",
		core.ColMarried:    "Loan Approval by Marital Status",
		core.ColDependents: "Loan Approval by Dependents",
	}
	for i, ct := range res.Demographics {
		c.Printf("\n%d. %s:", i+1, titles[ct.Column])
		c.CrossTab(ct)
	}

	c.Section("INCOME ANALYSIS")
	c.Printf("\nIncome Statistics by Loan Status:")
	c.income(res.Income)
	c.Printf("\nLoan Approval by Self Employment:")
	c.CrossTab(res.SelfEmployed)

	c.Section("LOAN AMOUNT ANALYSIS")
	c.Printf("\nLoan Amount Statistics by Loan Status:")
	c.loanAmount(res.LoanAmount)
	c.Printf("\nLoan Approval by Loan Amount Category:")
	c.CrossTab(res.LoanAmountCategory)

	c.Section("CREDIT HISTORY ANALYSIS")
	c.Printf("\nLoan Approval by Credit History:")
	c.CrossTab(res.CreditStatus)

	c.Section("PROPERTY AREA ANALYSIS")
	c.Printf("\nLoan Approval by Property Area:")
	c.CrossTab(res.PropertyArea)
}

func (c *Console) basic(res *analysis.Result) {
	c.Section("BASIC STATISTICS")
	c.Printf("\nTotal Applications: %d", res.Figures.Total)

	c.Printf("\nLoan Status Distribution:")
	t := c.newTable(table.Row{core.ColLoanStatus, "Count"})
	for _, vc := range res.StatusCounts {
		t.AppendRow(table.Row{vc.Value, vc.Count})
	}
	t.Render()
	c.Printf("\nApproval Rate: %s%%", fixed(res.Figures.ApprovalRate))

	c.Printf("\n\nNumerical Statistics:")
	c.describe(res.Descriptions)
}

func (c *Console) describe(descs []analysis.Description) {
	header := table.Row{""}
	for _, d := range descs {
		header = append(header, d.Column)
	}
	t := c.newTable(header)

	rows := []struct {
		label string
		value func(analysis.Description) any
	}{
		{"count", func(d analysis.Description) any { return d.Count }},
		{"mean", func(d analysis.Description) any { return fixed(d.Mean) }},
		{"std", func(d analysis.Description) any { return fixed(d.Std) }},
		{"min", func(d analysis.Description) any { return fixed(d.Min) }},
		{"25%", func(d analysis.Description) any { return fixed(d.Q25) }},
		{"50%", func(d analysis.Description) any { return fixed(d.Q50) }},
		{"75%", func(d analysis.Description) any { return fixed(d.Q75) }},
		{"max", func(d analysis.Description) any { return fixed(d.Max) }},
	}
	for _, r := range rows {
		row := table.Row{r.label}
		for _, d := range descs {
			row = append(row, r.value(d))
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs(numericColumns(len(descs)))
	t.Render()
}

// CrossTab prints the row-normalized percentage table of ct.
func (c *Console) CrossTab(ct *analysis.CrossTab) {
	header := table.Row{ct.Column}
	for _, s := range ct.Statuses {
		header = append(header, s)
	}
	t := c.newTable(header)
	for i, values := range ct.Normalized() {
		row := table.Row{ct.Rows[i]}
		for _, v := range values {
			row = append(row, fixed(v))
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs(numericColumns(len(ct.Statuses)))
	t.Render()
}

func (c *Console) income(summaries []analysis.ColumnSummary) {
	header := table.Row{core.ColLoanStatus}
	for _, s := range summaries {
		header = append(header, s.Column+" mean", s.Column+" median")
	}
	t := c.newTable(header)
	for _, status := range statusesOf(summaries) {
		row := table.Row{status}
		for _, s := range summaries {
			g, ok := s.Group(status)
			if !ok {
				row = append(row, fixed(0), fixed(0))
				continue
			}
			row = append(row, fixed(g.Mean), fixed(g.Median))
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs(numericColumns(2 * len(summaries)))
	t.Render()
}

func (c *Console) loanAmount(s analysis.ColumnSummary) {
	t := c.newTable(table.Row{core.ColLoanStatus, "mean", "median", "min", "max"})
	for _, g := range s.Groups {
		t.AppendRow(table.Row{g.Status, fixed(g.Mean), fixed(g.Median), fixed(g.Min), fixed(g.Max)})
	}
	t.SetColumnConfigs(numericColumns(4))
	t.Render()
}

// Report prints the text report for f.
func (c *Console) Report(f analysis.Figures) error {
	return Render(c.w, f)
}

func statusesOf(summaries []analysis.ColumnSummary) []string {
	seen := make(map[string]bool)
	var statuses []string
	for _, s := range summaries {
		for _, g := range s.Groups {
			if !seen[g.Status] {
				seen[g.Status] = true
				statuses = append(statuses, g.Status)
			}
		}
	}
	return statuses
}

// numericColumns right-aligns the n value columns following the label column.
func numericColumns(n int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, n)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 2, Align: text.AlignRight}
	}
	return configs
}

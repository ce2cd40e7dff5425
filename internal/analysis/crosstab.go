package analysis

import (
	"math"
	"sort"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// CrossTab counts rows by a category column against Loan_Status.
// Rows with a null category or a null status are not counted.
type CrossTab struct {
	// Column is the category column the rows are grouped by.
	Column string

	// Rows lists the observed category values, sorted. Bucket labels keep
	// bucket order.
	Rows []string

	// Statuses lists the observed Loan_Status values, sorted.
	Statuses []string

	counts map[string]map[string]int
	totals map[string]int
}

// CrossTabulate builds the cross-tabulation of column against Loan_Status.
func CrossTabulate(obs []Observation, column string) (*CrossTab, error) {
	get, err := categoryOf(column)
	if err != nil {
		return nil, err
	}

	ct := &CrossTab{
		Column: column,
		counts: make(map[string]map[string]int),
		totals: make(map[string]int),
	}
	statuses := make(map[string]bool)

	for _, o := range obs {
		row := get(o)
		if !row.Valid || !o.LoanStatus.Valid {
			continue
		}
		status := o.LoanStatus.String
		if ct.counts[row.String] == nil {
			ct.counts[row.String] = make(map[string]int)
			ct.Rows = append(ct.Rows, row.String)
		}
		ct.counts[row.String][status]++
		ct.totals[row.String]++
		if !statuses[status] {
			statuses[status] = true
			ct.Statuses = append(ct.Statuses, status)
		}
	}

	sort.Strings(ct.Statuses)
	if column == ColLoanAmountCategory {
		sortByBucket(ct.Rows)
	} else {
		sort.Strings(ct.Rows)
	}
	return ct, nil
}

func sortByBucket(rows []string) {
	rank := make(map[string]int, len(Buckets))
	for i, b := range Buckets {
		rank[b] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rank[rows[i]] < rank[rows[j]]
	})
}

// Count returns the number of rows with the given category and status.
func (c *CrossTab) Count(row, status string) int {
	return c.counts[row][status]
}

// Total returns the number of rows counted for a category.
func (c *CrossTab) Total(row string) int {
	return c.totals[row]
}

// HasRow reports whether the category was observed.
func (c *CrossTab) HasRow(row string) bool {
	_, ok := c.totals[row]
	return ok
}

// Percent returns the share of a category's rows that carry status,
// times 100. An unobserved category or status yields 0.
func (c *CrossTab) Percent(row, status string) float64 {
	total := c.totals[row]
	if total == 0 {
		return 0
	}
	return float64(c.counts[row][status]) / float64(total) * 100
}

// ApprovalRate returns Percent(row, "Y").
func (c *CrossTab) ApprovalRate(row string) float64 {
	return c.Percent(row, core.StatusApproved)
}

// Normalized returns the percentage table, one slice per entry of Rows
// with one value per entry of Statuses. Each row sums to 100.
func (c *CrossTab) Normalized() [][]float64 {
	table := make([][]float64, len(c.Rows))
	for i, row := range c.Rows {
		table[i] = make([]float64, len(c.Statuses))
		for j, status := range c.Statuses {
			table[i][j] = c.Percent(row, status)
		}
	}
	return table
}

// RowSum returns the sum of a row of the percentage table. It is 100 for
// every observed row, within floating point error, and NaN otherwise.
func (c *CrossTab) RowSum(row string) float64 {
	if !c.HasRow(row) {
		return math.NaN()
	}
	sum := 0.0
	for _, status := range c.Statuses {
		sum += c.Percent(row, status)
	}
	return sum
}

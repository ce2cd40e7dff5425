package analysis

import (
	"sort"

	"github.com/leapstack-labs/loanlens/internal/stats"
)

// GroupSummary summarizes a numeric column over the rows sharing one
// Loan_Status. Statistics of an empty group are NaN.
type GroupSummary struct {
	Status string
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// ColumnSummary holds the per-status summaries of one numeric column.
type ColumnSummary struct {
	Column string
	Groups []GroupSummary
}

// Group returns the summary for status. ok is false when no row carries it.
func (s ColumnSummary) Group(status string) (GroupSummary, bool) {
	for _, g := range s.Groups {
		if g.Status == status {
			return g, true
		}
	}
	return GroupSummary{}, false
}

// GroupByStatus partitions rows by Loan_Status and summarizes the non-null
// values of a numeric column in each partition. Rows with a null status
// are skipped. Groups are sorted by status.
func GroupByStatus(obs []Observation, column string) (ColumnSummary, error) {
	get, err := numericOf(column)
	if err != nil {
		return ColumnSummary{}, err
	}

	groups := make(map[string][]float64)
	var statuses []string
	for _, o := range obs {
		if !o.LoanStatus.Valid {
			continue
		}
		status := o.LoanStatus.String
		values, seen := groups[status]
		if !seen {
			statuses = append(statuses, status)
		}
		if v := get(o); v.Valid {
			values = append(values, v.Float64)
		}
		groups[status] = values
	}
	sort.Strings(statuses)

	summary := ColumnSummary{Column: column}
	for _, status := range statuses {
		values := groups[status]
		summary.Groups = append(summary.Groups, GroupSummary{
			Status: status,
			Count:  len(values),
			Mean:   stats.Mean(values),
			Median: stats.Median(values),
			Min:    stats.Min(values),
			Max:    stats.Max(values),
		})
	}
	return summary, nil
}

// MeanWhere returns the mean of a numeric column over the rows whose
// Loan_Status equals status. It is NaN when no such value exists.
func MeanWhere(obs []Observation, column, status string) (float64, error) {
	get, err := numericOf(column)
	if err != nil {
		return 0, err
	}
	var values []float64
	for _, o := range obs {
		if !o.LoanStatus.Valid || o.LoanStatus.String != status {
			continue
		}
		if v := get(o); v.Valid {
			values = append(values, v.Float64)
		}
	}
	return stats.Mean(values), nil
}

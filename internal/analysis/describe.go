package analysis

import "github.com/leapstack-labs/loanlens/internal/stats"

// Description is the summary of one numeric column over its non-null values.
type Description struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// Describe summarizes a numeric column. Std is the sample standard
// deviation; quantiles interpolate linearly between ranks.
func Describe(obs []Observation, column string) (Description, error) {
	values, err := Values(obs, column)
	if err != nil {
		return Description{}, err
	}
	return Description{
		Column: column,
		Count:  len(values),
		Mean:   stats.Mean(values),
		Std:    stats.Std(values),
		Min:    stats.Min(values),
		Q25:    stats.Quantile(values, 0.25),
		Q50:    stats.Quantile(values, 0.5),
		Q75:    stats.Quantile(values, 0.75),
		Max:    stats.Max(values),
	}, nil
}

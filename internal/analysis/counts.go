package analysis

import "sort"

// Count is the frequency of one category value.
type Count struct {
	Value string
	Count int
}

// ValueCounts returns the frequency of every non-null value of column,
// highest count first. Ties keep first-seen order.
func ValueCounts(obs []Observation, column string) ([]Count, error) {
	get, err := categoryOf(column)
	if err != nil {
		return nil, err
	}

	var counts []Count
	pos := make(map[string]int)
	for _, o := range obs {
		v := get(o)
		if !v.Valid {
			continue
		}
		i, ok := pos[v.String]
		if !ok {
			i = len(counts)
			pos[v.String] = i
			counts = append(counts, Count{Value: v.String})
		}
		counts[i].Count++
	}

	sortCounts(counts)
	return counts, nil
}

// sortCounts orders counts descending. Equal counts keep their
// first-seen order.
func sortCounts(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}

package classify

import "binance-preproc/internal/domain"

// Group is the set of rows sharing one export timestamp, in source order.
type Group struct {
	Timestamp string
	Records   []domain.RawRecord
}

// GroupByTimestamp partitions records by exact timestamp string.
// Groups are returned in order of first appearance.
func GroupByTimestamp(records []domain.RawRecord) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, rec := range records {
		i, ok := index[rec.Timestamp]
		if !ok {
			i = len(groups)
			index[rec.Timestamp] = i
			groups = append(groups, Group{Timestamp: rec.Timestamp})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}

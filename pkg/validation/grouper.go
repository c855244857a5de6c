package validation

import "sort"

// GroupAndSort partitions records by flow id and orders each group by
// createdAt ascending. Grouping preserves first-seen order and the sort is
// stable, so records sharing a timestamp keep their relative capture order.
// Empty input yields an empty map.
func GroupAndSort(records []*Record) map[string][]*Record {
	flows := make(map[string][]*Record)
	for _, rec := range records {
		flows[rec.FlowID] = append(flows[rec.FlowID], rec)
	}
	for _, group := range flows {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
	}
	return flows
}

package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MatchesSearch reports whether the display id starts with q, ignoring case
// and a leading '#'. An empty query matches everything.
func MatchesSearch(o OrderView, q string) bool {
	q = strings.TrimPrefix(strings.TrimSpace(q), "#")
	if q == "" {
		return true
	}
	display := o.DisplayID
	if display == "" {
		display = DisplayID(o.ID)
	}
	return strings.HasPrefix(display, strings.ToUpper(q))
}

func FilterOrders(orders []OrderView, q string) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if MatchesSearch(o, q) {
			out = append(out, o)
		}
	}
	return out
}

// GroupByDate buckets orders by local creation date. Buckets are ordered
// newest first and keep the input order inside each bucket.
func GroupByDate(orders []OrderView, loc *time.Location) []OrderDateGroup {
	idx := make(map[string]int)
	var groups []OrderDateGroup
	for _, o := range orders {
		key := o.CreatedAt.In(loc).Format(DateLayout)
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, OrderDateGroup{Date: key})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Date > groups[b].Date })
	return groups
}

// AggregateStats counts orders, pending orders and revenue inside the day window of ref.
func AggregateStats(orders []OrderView, ref time.Time, loc *time.Location) DailyStats {
	stats := DailyStats{Date: ref.In(loc).Format(DateLayout), Revenue: decimal.Zero}
	for _, o := range orders {
		if !InDayWindow(o.CreatedAt, ref, loc) {
			continue
		}
		stats.TotalOrders++
		if o.Status == StatusPending {
			stats.PendingOrders++
		}
		stats.Revenue = stats.Revenue.Add(o.TotalAmount)
	}
	stats.Revenue = stats.Revenue.Round(2)
	return stats
}

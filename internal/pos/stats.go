package pos

import "sort"

// StatsByPeriod aggregates revenue for orders with datetime in
// [fromMs, toMs] inclusive: total revenue, distinct order count, total item
// quantity and a per-service breakdown sorted by revenue descending.
func (s *Store) StatsByPeriod(fromMs, toMs int64) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.ordersLocked(fromMs, toMs)
	inPeriod := make(map[OrderID]bool, len(orders))
	for _, o := range orders {
		inPeriod[o.ID] = true
	}

	stats := Stats{
		OrderCount: len(orders),
		Orders:     orders,
		ByService:  []ServiceStat{},
	}

	byName := make(map[string]*ServiceStat)
	for _, it := range s.data.OrderItems {
		if !inPeriod[it.OrderID] {
			continue
		}
		revenue := it.ServicePrice * float64(it.Quantity)
		stats.Revenue += revenue
		stats.ItemCount += it.Quantity

		st, ok := byName[it.ServiceName]
		if !ok {
			st = &ServiceStat{ServiceName: it.ServiceName}
			byName[it.ServiceName] = st
		}
		st.TotalQty += it.Quantity
		st.TotalRevenue += revenue
	}

	for _, st := range byName {
		stats.ByService = append(stats.ByService, *st)
	}
	sort.Slice(stats.ByService, func(i, j int) bool {
		a, b := stats.ByService[i], stats.ByService[j]
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		return a.ServiceName < b.ServiceName
	})

	return stats
}

// Package rollup aggregates tour stops into per-country totals for the
// presentation layer, with display formatting for the partially reported
// numbers the page produces.
package rollup

import (
	"sort"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// CountryStat is the per-country aggregate over one batch of events.
// Sums stay nil when no stop in the country reported the figure.
type CountryStat struct {
	Country     string   `json:"country"`
	GrossUSD    *float64 `json:"gross_usd"`
	Tickets     *int     `json:"tickets"`
	Shows       int      `json:"shows"`
	Runs        int      `json:"runs"`
	AvgPriceUSD *float64 `json:"avg_price_usd"`
}

// ByCountry groups events by country and sums gross, tickets, and shows.
// Stops without a country group under "". Results are sorted by gross
// descending with unreported countries last.
func ByCountry(events []event.Event) []CountryStat {
	byCountry := make(map[string]*CountryStat)
	order := make([]string, 0)

	for _, evt := range events {
		stat, ok := byCountry[evt.Country]
		if !ok {
			stat = &CountryStat{Country: evt.Country}
			byCountry[evt.Country] = stat
			order = append(order, evt.Country)
		}

		stat.Runs++
		stat.Shows += evt.Shows
		if evt.GrossUSD != nil {
			stat.GrossUSD = addFloat(stat.GrossUSD, *evt.GrossUSD)
		}
		if evt.Tickets != nil {
			stat.Tickets = addInt(stat.Tickets, *evt.Tickets)
		}
	}

	stats := make([]CountryStat, 0, len(order))
	for _, country := range order {
		stat := byCountry[country]
		if stat.GrossUSD != nil && stat.Tickets != nil && *stat.Tickets > 0 {
			avg := *stat.GrossUSD / float64(*stat.Tickets)
			stat.AvgPriceUSD = &avg
		}
		stats = append(stats, *stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		gi, gj := stats[i].GrossUSD, stats[j].GrossUSD
		switch {
		case gi != nil && gj != nil:
			return *gi > *gj
		case gi != nil:
			return true
		default:
			return false
		}
	})

	return stats
}

func addFloat(sum *float64, v float64) *float64 {
	if sum == nil {
		return &v
	}
	total := *sum + v
	return &total
}

func addInt(sum *int, v int) *int {
	if sum == nil {
		return &v
	}
	total := *sum + v
	return &total
}

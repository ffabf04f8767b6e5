package event

// DiffResult contains the results of comparing two scrape batches
type DiffResult struct {
	NewStops []Event
	Regions  map[string][]Event // new stops grouped by region
}

// Diff compares the current batch against the previous one and returns
// stops that were not present before. Matching is by StableKey, so a stop
// whose dates shifted between scrapes is not reported as new.
func Diff(previous, current []Event) *DiffResult {
	result := &DiffResult{
		NewStops: make([]Event, 0),
		Regions:  make(map[string][]Event),
	}

	known := make(map[string]bool, len(previous))
	for _, evt := range previous {
		known[evt.StableKey] = true
	}

	for _, evt := range current {
		if known[evt.StableKey] {
			continue
		}
		result.NewStops = append(result.NewStops, evt)
		result.Regions[evt.Region] = append(result.Regions[evt.Region], evt)
	}

	// Input batches are already in document order; keep it.
	return result
}

package scraper

import (
	"time"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// The summary labels the page renders above the per-stop sections. Each
// value sits on the line immediately after its label.
const (
	labelReportedRevenue = "Reported Revenue"
	labelReportedTickets = "Reported Tickets Sold"
	labelAvgRevenue      = "Average Revenue"
	labelAvgTickets      = "Average Tickets Sold"
	labelAvgPrice        = "Average Price"
	labelTotalReports    = "Total Reports"
)

// ExtractSummary pulls the document-wide summary Snapshot from the line
// stream. This is a flat label/next-line lookup with no block logic; it
// shares only the normalization step with the event extractor. Missing
// labels and unparsable values come back as nils.
func ExtractSummary(lines []string, sourceURL string, scrapedAt time.Time) event.Snapshot {
	lines = NormalizeLines(lines)

	find := func(label string) string {
		for i, ln := range lines {
			if ln == label && i+1 < len(lines) {
				return lines[i+1]
			}
		}
		return ""
	}

	return event.Snapshot{
		ScrapedAt:          scrapedAt,
		SourceURL:          sourceURL,
		ReportedRevenueUSD: ParseMoney(find(labelReportedRevenue)),
		ReportedTickets:    ParseInt(find(labelReportedTickets)),
		AvgRevenueUSD:      ParseMoney(find(labelAvgRevenue)),
		AvgTickets:         ParseInt(find(labelAvgTickets)),
		AvgPriceUSD:        ParseMoney(find(labelAvgPrice)),
		TotalReportsText:   find(labelTotalReports),
	}
}

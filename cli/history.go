// ABOUTME: History CLI command
// ABOUTME: Renders the merged feed, newest first, with a pending summary
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// HistoryCommand prints the merged record feed.
func HistoryCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	typeFilter := fs.String("type", "", "Filter by type: delivery, collection, visit, or shipment")
	limit := fs.Int("limit", 50, "Maximum number of records to show")
	_ = fs.Parse(args)

	filter := models.RecordType(*typeFilter)
	if *typeFilter != "" && !filter.Valid() {
		return fmt.Errorf("unknown record type %q", *typeFilter)
	}

	agg := history.NewAggregator(s)
	feed, err := agg.Feed()
	if err != nil {
		return fmt.Errorf("failed to build history feed: %w", err)
	}

	filtered := history.Filter(feed, filter)
	if *limit > 0 && len(filtered) > *limit {
		filtered = filtered[:*limit]
	}

	if len(filtered) == 0 {
		fmt.Println("No records yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tTYPE\tSCHOOL\tDETAIL\tSYNCED")
	for _, r := range filtered {
		base := r.Base()
		synced := "✗"
		if base.Synced {
			synced = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			base.CreatedAt.Format("2006-01-02 15:04"), base.Type,
			base.SchoolName, recordDetail(r), synced)
	}
	w.Flush()

	fmt.Printf("\n%d record(s), %d pending sync\n", len(filtered), history.PendingCount(feed))
	return nil
}

// recordDetail gives the one-line category-specific column for the feed.
func recordDetail(r models.Record) string {
	switch rec := r.(type) {
	case *models.Delivery:
		return fmt.Sprintf("%s → %s", rec.Item, rec.ResponsibleParty)
	case *models.Collection:
		return fmt.Sprintf("%s ← %s", rec.Item, rec.ResponsibleParty)
	case *models.Visit:
		return rec.SchoolAddress
	case *models.Shipment:
		return fmt.Sprintf("%s (%s)", rec.Item, rec.ShippingStatus)
	}
	return ""
}

// ABOUTME: History aggregator - merges all record categories into one feed
// ABOUTME: Newest first by creation time, with optional category filtering
package history

import (
	"sort"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// Aggregator builds the merged history feed over the record store's
// current snapshot. Pure projection; recomputed per call.
type Aggregator struct {
	store *store.Store
}

// NewAggregator creates an aggregator over a record store.
func NewAggregator(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Feed returns every record across all categories, sorted descending by
// CreatedAt. Ties keep their pre-sort relative order (stable sort) so
// the feed does not flicker between reads.
func (a *Aggregator) Feed() ([]models.Record, error) {
	all, err := a.store.LoadAll()
	if err != nil {
		return nil, err
	}

	var feed []models.Record
	for _, t := range models.RecordTypes() {
		feed = append(feed, all[t]...)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Base().CreatedAt.After(feed[j].Base().CreatedAt)
	})
	return feed, nil
}

// Filter keeps only records of the given type, preserving relative
// order. An empty type returns the feed unchanged.
func Filter(feed []models.Record, t models.RecordType) []models.Record {
	if t == "" {
		return feed
	}

	filtered := make([]models.Record, 0, len(feed))
	for _, r := range feed {
		if r.Base().Type == t {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// PendingCount returns how many records in the feed are still unsynced.
func PendingCount(feed []models.Record) int {
	count := 0
	for _, r := range feed {
		if !r.Base().Synced {
			count++
		}
	}
	return count
}

// SchoolNames returns the distinct school names appearing in the feed,
// newest first. Used for type-ahead suggestions on the entry forms.
func SchoolNames(feed []models.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range feed {
		name := r.Base().SchoolName
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ABOUTME: Tests for the history feed aggregator
// ABOUTME: Covers ordering, filtering, and school name extraction
package history

import (
	"testing"
	"time"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return store.NewStore(kv)
}

func TestFeedOrderedNewestFirst(t *testing.T) {
	s := newTestStore(t)
	a := NewAggregator(s)

	base := time.Now().UTC().Add(-time.Hour)

	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	d.CreatedAt = base
	v := models.NewVisit("Escola B", "Rua Dois, 2", "")
	v.CreatedAt = base.Add(10 * time.Minute)
	c := models.NewCollection("Escola C", "", "Tablets", "Ana", "Secretária", "21977776666", "", "")
	c.CreatedAt = base.Add(5 * time.Minute)

	require.NoError(t, s.Append(d))
	require.NoError(t, s.Append(v))
	require.NoError(t, s.Append(c))

	feed, err := a.Feed()
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// Descending createdAt for every adjacent pair.
	for i := 0; i < len(feed)-1; i++ {
		assert.False(t, feed[i].Base().CreatedAt.Before(feed[i+1].Base().CreatedAt),
			"feed[%d] older than feed[%d]", i, i+1)
	}
	assert.Equal(t, v.ID, feed[0].Base().ID)
	assert.Equal(t, d.ID, feed[2].Base().ID)
}

func TestFilterByVisit(t *testing.T) {
	s := newTestStore(t)
	a := NewAggregator(s)

	require.NoError(t, s.Append(models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")))
	require.NoError(t, s.Append(models.NewDelivery("Escola B", "", "Livros", "João", "Coordenador", "11988887777", "", "")))
	visit := models.NewVisit("Escola C", "Rua Três, 3", "")
	require.NoError(t, s.Append(visit))

	feed, err := a.Feed()
	require.NoError(t, err)
	require.Len(t, feed, 3)

	visits := Filter(feed, models.TypeVisit)
	require.Len(t, visits, 1)
	assert.Equal(t, visit.ID, visits[0].Base().ID)
}

func TestFilterPreservesRelativeOrder(t *testing.T) {
	s := newTestStore(t)
	a := NewAggregator(s)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 4; i++ {
		d := models.NewDelivery("Escola", "", "Item ok", "Alguém aí", "Diretora", "11999990000", "", "")
		d.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Append(d))
		ids = append(ids, d.ID)
	}
	require.NoError(t, s.Append(models.NewVisit("Escola V", "Rua V, 5", "")))

	feed, err := a.Feed()
	require.NoError(t, err)

	deliveries := Filter(feed, models.TypeDelivery)
	require.Len(t, deliveries, 4)
	for i := 0; i < 3; i++ {
		assert.False(t, deliveries[i].Base().CreatedAt.Before(deliveries[i+1].Base().CreatedAt))
	}
	assert.Equal(t, ids[3], deliveries[0].Base().ID)
}

func TestFilterEmptyTypeIsIdentity(t *testing.T) {
	feed := []models.Record{
		models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", ""),
	}
	assert.Equal(t, feed, Filter(feed, ""))
}

func TestPendingCount(t *testing.T) {
	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	v := models.NewVisit("Escola B", "Rua Dois, 2", "")
	v.Synced = true

	assert.Equal(t, 1, PendingCount([]models.Record{d, v}))
}

func TestSchoolNamesDeduplicated(t *testing.T) {
	feed := []models.Record{
		models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", ""),
		models.NewCollection("Escola A", "", "Tablets", "Ana", "Secretária", "21977776666", "", ""),
		models.NewVisit("Escola B", "Rua Dois, 2", ""),
	}

	names := SchoolNames(feed)
	assert.Equal(t, []string{"Escola A", "Escola B"}, names)
}

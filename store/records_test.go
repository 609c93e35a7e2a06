// ABOUTME: Tests for the record store's per-category persistence
// ABOUTME: Covers append/load round-trips, remove idempotence, and synced flag updates
package store

import (
	"testing"

	"github.com/harperreed/mobitec/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := OpenKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv)
}

func TestLoadEmptyCategory(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendThenLoadPreservesFields(t *testing.T) {
	s := newTestStore(t)

	d := models.NewDelivery("Escola A", "Secretaria", "Notebooks", "Maria Silva", "Diretora", "11999990000", "entregue na portaria", "")
	require.NoError(t, s.Append(d))

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got, ok := records[0].(*models.Delivery)
	require.True(t, ok)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.Item, got.Item)
	assert.Equal(t, d.ResponsibleParty, got.ResponsibleParty)
	assert.Equal(t, d.Observations, got.Observations)
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))
	assert.False(t, got.Synced)
}

func TestAppendPrependsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first := models.NewVisit("Escola A", "Rua Um, 1", "")
	second := models.NewVisit("Escola B", "Rua Dois, 2", "")
	require.NoError(t, s.Append(first))
	require.NoError(t, s.Append(second))

	records, err := s.Load(models.TypeVisit)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].Base().ID)
	assert.Equal(t, first.ID, records[1].Base().ID)
}

func TestCategoriesAreIndependent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(models.NewDelivery("Escola A", "", "Livros", "João", "Coordenador", "11988887777", "", "")))
	require.NoError(t, s.Append(models.NewVisit("Escola B", "Rua Dois, 2", "")))

	deliveries, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	visits, err := s.Load(models.TypeVisit)
	require.NoError(t, err)
	collections, err := s.Load(models.TypeCollection)
	require.NoError(t, err)

	assert.Len(t, deliveries, 1)
	assert.Len(t, visits, 1)
	assert.Empty(t, collections)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	d := models.NewDelivery("Escola A", "", "Livros", "João", "Coordenador", "11988887777", "", "")
	require.NoError(t, s.Append(d))

	removed, err := s.Remove(models.TypeDelivery, d.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Second remove of the same id is a no-op.
	removed, err = s.Remove(models.TypeDelivery, d.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	records, err = s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRemoveUnknownIDKeepsSequence(t *testing.T) {
	s := newTestStore(t)

	d := models.NewDelivery("Escola A", "", "Livros", "João", "Coordenador", "11988887777", "", "")
	require.NoError(t, s.Append(d))
	removed, err := s.Remove(models.TypeDelivery, "no-such-id")
	require.NoError(t, err)
	assert.False(t, removed)

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMarkSyncedFlipsOnlyListedIDs(t *testing.T) {
	s := newTestStore(t)

	a := models.NewCollection("Escola A", "", "Tablets", "Ana", "Secretária", "21977776666", "", "")
	b := models.NewCollection("Escola B", "", "Livros", "Bia", "Diretora", "21966665555", "", "")
	require.NoError(t, s.Append(a))
	require.NoError(t, s.Append(b))

	require.NoError(t, s.MarkSynced(models.TypeCollection, []string{a.ID}))

	records, err := s.Load(models.TypeCollection)
	require.NoError(t, err)
	for _, r := range records {
		if r.Base().ID == a.ID {
			assert.True(t, r.Base().Synced)
		} else {
			assert.False(t, r.Base().Synced)
		}
	}
}

func TestMarkSyncedIgnoresAbsentIDs(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.MarkSynced(models.TypeDelivery, []string{"ghost"}))

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMalformedSlotLoadsAsEmpty(t *testing.T) {
	kv, err := OpenKV(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()
	s := NewStore(kv)

	require.NoError(t, kv.Set([]byte(SlotDeliveries), []byte("{not json")))

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPendingFiltersSyncedRecords(t *testing.T) {
	s := newTestStore(t)

	a := models.NewShipment("Escola A", "", "Cadeiras", "Carlos", "Transportadora", models.ShippingPending, "", "")
	b := models.NewShipment("Escola B", "", "Mesas", "Dora", "Correios", models.ShippingInTransit, "BR1", "")
	require.NoError(t, s.Append(a))
	require.NoError(t, s.Append(b))
	require.NoError(t, s.MarkSynced(models.TypeShipment, []string{b.ID}))

	pending, err := s.Pending(models.TypeShipment)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].Base().ID)
}

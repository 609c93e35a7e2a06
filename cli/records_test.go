// ABOUTME: Tests for record CLI commands
// ABOUTME: Exercises the flag parsing and store round trips
package cli

import (
	"testing"

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

func TestAddDeliveryCommand(t *testing.T) {
	s := newTestStore(t)

	err := AddDeliveryCommand(s, []string{
		"--school", "Escola A",
		"--item", "Notebooks",
		"--responsible", "Maria Silva",
		"--role", "Diretora",
		"--phone", "11999990000",
	})
	require.NoError(t, err)

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Escola A", records[0].Base().SchoolName)
	assert.False(t, records[0].Base().Synced)
}

func TestAddDeliveryCommandValidation(t *testing.T) {
	s := newTestStore(t)

	err := AddDeliveryCommand(s, []string{"--school", "A"})
	assert.Error(t, err)

	records, loadErr := s.Load(models.TypeDelivery)
	require.NoError(t, loadErr)
	assert.Empty(t, records)
}

func TestAddVisitCommand(t *testing.T) {
	s := newTestStore(t)

	err := AddVisitCommand(s, []string{
		"--school", "Escola B",
		"--address", "Rua Dois, 2",
		"--inep", "12345678",
	})
	require.NoError(t, err)

	records, err := s.Load(models.TypeVisit)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestAddShipmentCommandDefaultsToPending(t *testing.T) {
	s := newTestStore(t)

	err := AddShipmentCommand(s, []string{
		"--school", "Escola C",
		"--item", "Livros",
		"--sender", "Almoxarifado",
		"--method", "Correios",
	})
	require.NoError(t, err)

	records, err := s.Load(models.TypeShipment)
	require.NoError(t, err)
	require.Len(t, records, 1)
	shipment := records[0].(*models.Shipment)
	assert.Equal(t, models.ShippingPending, shipment.ShippingStatus)
}

func TestDeleteRecordCommand(t *testing.T) {
	s := newTestStore(t)

	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	require.NoError(t, s.Append(d))

	require.NoError(t, DeleteRecordCommand(s, []string{"--type", "delivery", "--id", d.ID}))

	records, err := s.Load(models.TypeDelivery)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Deleting again is a reported no-op, not an error.
	assert.NoError(t, DeleteRecordCommand(s, []string{"--type", "delivery", "--id", d.ID}))

	assert.Error(t, DeleteRecordCommand(s, []string{"--type", "banana", "--id", d.ID}))
}

func TestFindRecord(t *testing.T) {
	s := newTestStore(t)

	v := models.NewVisit("Escola B", "Rua Dois, 2", "")
	require.NoError(t, s.Append(v))

	found, err := findRecord(s, models.TypeVisit, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, found.Base().ID)

	_, err = findRecord(s, models.TypeVisit, "no-such-id")
	assert.Error(t, err)
}

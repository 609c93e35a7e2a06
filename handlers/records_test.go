// ABOUTME: Tests for record MCP tool handlers
// ABOUTME: Validates creation, validation errors, listing, and deletion
package handlers

import (
	"context"
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

func TestRecordDeliveryHandler(t *testing.T) {
	h := NewRecordHandlers(newTestStore(t))

	_, out, err := h.RecordDelivery(context.Background(), nil, HandoverInput{
		SchoolName:       "Escola A",
		Item:             "Notebooks",
		ResponsibleParty: "Maria Silva",
		Role:             "Diretora",
		PhoneNumber:      "11999990000",
	})
	require.NoError(t, err)
	assert.Equal(t, "delivery", out.Type)
	assert.Equal(t, "Escola A", out.SchoolName)
	assert.NotEmpty(t, out.ID)
	assert.False(t, out.Synced)
}

func TestRecordDeliveryValidation(t *testing.T) {
	h := NewRecordHandlers(newTestStore(t))

	_, _, err := h.RecordDelivery(context.Background(), nil, HandoverInput{
		SchoolName: "A", // too short
		Item:       "Notebooks",
	})
	require.Error(t, err)

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRecordVisitHandler(t *testing.T) {
	h := NewRecordHandlers(newTestStore(t))

	_, out, err := h.RecordVisit(context.Background(), nil, VisitInput{
		SchoolName:    "Escola B",
		SchoolAddress: "Rua Dois, 2",
		INEP:          "12345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "visit", out.Type)
	assert.Equal(t, "12345678", out.INEP)
}

func TestRecordShipmentHandler(t *testing.T) {
	h := NewRecordHandlers(newTestStore(t))

	_, out, err := h.RecordShipment(context.Background(), nil, ShipmentInput{
		SchoolName:     "Escola C",
		Item:           "Livros",
		Sender:         "Almoxarifado",
		ShippingMethod: "Correios",
		ShippingStatus: models.ShippingInTransit,
		TrackingCode:   "BR123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "shipment", out.Type)
	assert.Equal(t, models.ShippingInTransit, out.ShippingStatus)

	_, _, err = h.RecordShipment(context.Background(), nil, ShipmentInput{
		SchoolName:     "Escola C",
		Item:           "Livros",
		Sender:         "Almoxarifado",
		ShippingMethod: "Correios",
		ShippingStatus: "teleported",
	})
	assert.Error(t, err)
}

func TestListRecordsHandler(t *testing.T) {
	s := newTestStore(t)
	h := NewRecordHandlers(s)

	_, _, err := h.RecordDelivery(context.Background(), nil, HandoverInput{
		SchoolName:       "Escola A",
		Item:             "Notebooks",
		ResponsibleParty: "Maria Silva",
		Role:             "Diretora",
		PhoneNumber:      "11999990000",
	})
	require.NoError(t, err)
	_, _, err = h.RecordCollection(context.Background(), nil, HandoverInput{
		SchoolName:       "Escola B",
		Item:             "Tablets",
		ResponsibleParty: "Ana Souza",
		Role:             "Secretária",
		PhoneNumber:      "21977776666",
	})
	require.NoError(t, err)

	_, all, err := h.ListRecords(context.Background(), nil, ListRecordsInput{})
	require.NoError(t, err)
	assert.Len(t, all.Records, 2)

	_, deliveries, err := h.ListRecords(context.Background(), nil, ListRecordsInput{Type: "delivery"})
	require.NoError(t, err)
	require.Len(t, deliveries.Records, 1)
	assert.Equal(t, "Escola A", deliveries.Records[0].SchoolName)

	_, _, err = h.ListRecords(context.Background(), nil, ListRecordsInput{Type: "banana"})
	assert.Error(t, err)
}

func TestListRecordsPendingOnly(t *testing.T) {
	s := newTestStore(t)
	h := NewRecordHandlers(s)

	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	require.NoError(t, s.Append(d))
	require.NoError(t, s.MarkSynced(models.TypeDelivery, []string{d.ID}))
	require.NoError(t, s.Append(models.NewDelivery("Escola B", "", "Livros", "João", "Coordenador", "11988887777", "", "")))

	_, out, err := h.ListRecords(context.Background(), nil, ListRecordsInput{PendingOnly: true})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Escola B", out.Records[0].SchoolName)
}

func TestDeleteRecordHandler(t *testing.T) {
	s := newTestStore(t)
	h := NewRecordHandlers(s)

	d := models.NewDelivery("Escola A", "", "Notebooks", "Maria", "Diretora", "11999990000", "", "")
	require.NoError(t, s.Append(d))

	_, out, err := h.DeleteRecord(context.Background(), nil, DeleteRecordInput{Type: "delivery", ID: d.ID})
	require.NoError(t, err)
	assert.True(t, out.Deleted)

	_, out, err = h.DeleteRecord(context.Background(), nil, DeleteRecordInput{Type: "delivery", ID: d.ID})
	require.NoError(t, err)
	assert.False(t, out.Deleted)

	_, _, err = h.DeleteRecord(context.Background(), nil, DeleteRecordInput{Type: "delivery"})
	assert.Error(t, err)
}

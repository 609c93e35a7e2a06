// ABOUTME: Record MCP tool handlers
// ABOUTME: Implements record_delivery, record_collection, record_visit, record_shipment, list_records, and delete_record tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RecordHandlers struct {
	store *store.Store
}

func NewRecordHandlers(s *store.Store) *RecordHandlers {
	return &RecordHandlers{store: s}
}

// RecordOutput is the wire shape of a record across all tools. Fields
// not used by a category are omitted.
type RecordOutput struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	SchoolName       string `json:"schoolName"`
	CreatedAt        string `json:"createdAt"`
	Synced           bool   `json:"synced"`
	Department       string `json:"department,omitempty"`
	Item             string `json:"item,omitempty"`
	ResponsibleParty string `json:"responsibleParty,omitempty"`
	Role             string `json:"role,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Observations     string `json:"observations,omitempty"`
	SchoolAddress    string `json:"schoolAddress,omitempty"`
	INEP             string `json:"inep,omitempty"`
	Sender           string `json:"sender,omitempty"`
	ShippingMethod   string `json:"shippingMethod,omitempty"`
	ShippingStatus   string `json:"shippingStatus,omitempty"`
	TrackingCode     string `json:"trackingCode,omitempty"`
	HasPhoto         bool   `json:"hasPhoto,omitempty"`
}

func recordToOutput(r models.Record) RecordOutput {
	base := r.Base()
	out := RecordOutput{
		ID:         base.ID,
		Type:       string(base.Type),
		SchoolName: base.SchoolName,
		CreatedAt:  base.CreatedAt.Format(time.RFC3339),
		Synced:     base.Synced,
	}

	switch rec := r.(type) {
	case *models.Delivery:
		out.Department = rec.Department
		out.Item = rec.Item
		out.ResponsibleParty = rec.ResponsibleParty
		out.Role = rec.Role
		out.PhoneNumber = rec.PhoneNumber
		out.Observations = rec.Observations
		out.HasPhoto = rec.PhotoDataURI != ""
	case *models.Collection:
		out.Department = rec.Department
		out.Item = rec.Item
		out.ResponsibleParty = rec.ResponsibleParty
		out.Role = rec.Role
		out.PhoneNumber = rec.PhoneNumber
		out.Observations = rec.Observations
		out.HasPhoto = rec.PhotoDataURI != ""
	case *models.Visit:
		out.SchoolAddress = rec.SchoolAddress
		out.INEP = rec.INEP
	case *models.Shipment:
		out.Department = rec.Department
		out.Item = rec.Item
		out.Sender = rec.Sender
		out.ShippingMethod = rec.ShippingMethod
		out.ShippingStatus = rec.ShippingStatus
		out.TrackingCode = rec.TrackingCode
		out.HasPhoto = rec.PhotoDataURI != ""
	}
	return out
}

type HandoverInput struct {
	SchoolName       string `json:"schoolName" jsonschema:"School name (required)"`
	Department       string `json:"department,omitempty" jsonschema:"Department at the school"`
	Item             string `json:"item" jsonschema:"Item handed over (required)"`
	ResponsibleParty string `json:"responsibleParty" jsonschema:"Name of the person who received or handed over the item (required)"`
	Role             string `json:"role" jsonschema:"Role of the responsible person (required)"`
	PhoneNumber      string `json:"phoneNumber" jsonschema:"Contact phone number (required)"`
	Observations     string `json:"observations,omitempty" jsonschema:"Free-form observations"`
	PhotoDataURI     string `json:"photoDataUri,omitempty" jsonschema:"Photo of the handover as a data URI"`
}

func (h *RecordHandlers) RecordDelivery(_ context.Context, request *mcp.CallToolRequest, input HandoverInput) (*mcp.CallToolResult, RecordOutput, error) {
	d := models.NewDelivery(input.SchoolName, input.Department, input.Item,
		input.ResponsibleParty, input.Role, input.PhoneNumber,
		input.Observations, input.PhotoDataURI)
	if err := d.Validate(); err != nil {
		return nil, RecordOutput{}, err
	}
	if err := h.store.Append(d); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to save delivery: %w", err)
	}
	return nil, recordToOutput(d), nil
}

func (h *RecordHandlers) RecordCollection(_ context.Context, request *mcp.CallToolRequest, input HandoverInput) (*mcp.CallToolResult, RecordOutput, error) {
	c := models.NewCollection(input.SchoolName, input.Department, input.Item,
		input.ResponsibleParty, input.Role, input.PhoneNumber,
		input.Observations, input.PhotoDataURI)
	if err := c.Validate(); err != nil {
		return nil, RecordOutput{}, err
	}
	if err := h.store.Append(c); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to save collection: %w", err)
	}
	return nil, recordToOutput(c), nil
}

type VisitInput struct {
	SchoolName    string `json:"schoolName" jsonschema:"School name (required)"`
	SchoolAddress string `json:"schoolAddress" jsonschema:"School address (required)"`
	INEP          string `json:"inep,omitempty" jsonschema:"8-digit INEP school registry code"`
}

func (h *RecordHandlers) RecordVisit(_ context.Context, request *mcp.CallToolRequest, input VisitInput) (*mcp.CallToolResult, RecordOutput, error) {
	v := models.NewVisit(input.SchoolName, input.SchoolAddress, input.INEP)
	if err := v.Validate(); err != nil {
		return nil, RecordOutput{}, err
	}
	if err := h.store.Append(v); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to save visit: %w", err)
	}
	return nil, recordToOutput(v), nil
}

type ShipmentInput struct {
	SchoolName     string `json:"schoolName" jsonschema:"Destination school name (required)"`
	Department     string `json:"department,omitempty" jsonschema:"Department at the school"`
	Item           string `json:"item" jsonschema:"Item shipped (required)"`
	Sender         string `json:"sender" jsonschema:"Who dispatched the item (required)"`
	ShippingMethod string `json:"shippingMethod" jsonschema:"Carrier or shipping method (required)"`
	ShippingStatus string `json:"shippingStatus" jsonschema:"One of pending, in_transit, delivered (required)"`
	TrackingCode   string `json:"trackingCode,omitempty" jsonschema:"Carrier tracking code"`
	PhotoDataURI   string `json:"photoDataUri,omitempty" jsonschema:"Photo of the package as a data URI"`
}

func (h *RecordHandlers) RecordShipment(_ context.Context, request *mcp.CallToolRequest, input ShipmentInput) (*mcp.CallToolResult, RecordOutput, error) {
	s := models.NewShipment(input.SchoolName, input.Department, input.Item,
		input.Sender, input.ShippingMethod, input.ShippingStatus,
		input.TrackingCode, input.PhotoDataURI)
	if err := s.Validate(); err != nil {
		return nil, RecordOutput{}, err
	}
	if err := h.store.Append(s); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to save shipment: %w", err)
	}
	return nil, recordToOutput(s), nil
}

type ListRecordsInput struct {
	Type        string `json:"type,omitempty" jsonschema:"Filter by record type: delivery, collection, visit, or shipment"`
	PendingOnly bool   `json:"pending_only,omitempty" jsonschema:"Only return records not yet synced"`
}

type ListRecordsOutput struct {
	Records []RecordOutput `json:"records"`
}

func (h *RecordHandlers) ListRecords(_ context.Context, request *mcp.CallToolRequest, input ListRecordsInput) (*mcp.CallToolResult, ListRecordsOutput, error) {
	var types []models.RecordType
	if input.Type != "" {
		t := models.RecordType(input.Type)
		if !t.Valid() {
			return nil, ListRecordsOutput{}, fmt.Errorf("unknown record type %q", input.Type)
		}
		types = []models.RecordType{t}
	} else {
		types = models.RecordTypes()
	}

	result := []RecordOutput{}
	for _, t := range types {
		records, err := h.store.Load(t)
		if err != nil {
			return nil, ListRecordsOutput{}, fmt.Errorf("failed to load %s records: %w", t, err)
		}
		for _, r := range records {
			if input.PendingOnly && r.Base().Synced {
				continue
			}
			result = append(result, recordToOutput(r))
		}
	}

	return nil, ListRecordsOutput{Records: result}, nil
}

type DeleteRecordInput struct {
	Type string `json:"type" jsonschema:"Record type: delivery, collection, visit, or shipment (required)"`
	ID   string `json:"id" jsonschema:"Record ID (required)"`
}

type DeleteRecordOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *RecordHandlers) DeleteRecord(_ context.Context, request *mcp.CallToolRequest, input DeleteRecordInput) (*mcp.CallToolResult, DeleteRecordOutput, error) {
	t := models.RecordType(input.Type)
	if !t.Valid() {
		return nil, DeleteRecordOutput{}, fmt.Errorf("unknown record type %q", input.Type)
	}
	if input.ID == "" {
		return nil, DeleteRecordOutput{}, fmt.Errorf("id is required")
	}

	removed, err := h.store.Remove(t, input.ID)
	if err != nil {
		return nil, DeleteRecordOutput{}, fmt.Errorf("failed to delete record: %w", err)
	}
	return nil, DeleteRecordOutput{Deleted: removed, ID: input.ID}, nil
}

// ABOUTME: Notification MCP tool handlers
// ABOUTME: Implements generate_message, create_summary, and lookup_school tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/notify"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type NotifyHandlers struct {
	generator notify.Generator
	directory *notify.SchoolDirectory
}

func NewNotifyHandlers(g notify.Generator, d *notify.SchoolDirectory) *NotifyHandlers {
	return &NotifyHandlers{generator: g, directory: d}
}

type GenerateMessageInput struct {
	Type             string `json:"type" jsonschema:"Record type: delivery, collection, or shipment (required)"`
	ResponsibleParty string `json:"responsibleParty,omitempty" jsonschema:"Name of the responsible person"`
	Item             string `json:"item" jsonschema:"Item the message is about (required)"`
	SchoolName       string `json:"schoolName" jsonschema:"School name (required)"`
}

type GenerateMessageOutput struct {
	Message   string `json:"message"`
	ShareLink string `json:"shareLink"`
}

func (h *NotifyHandlers) GenerateMessage(ctx context.Context, request *mcp.CallToolRequest, input GenerateMessageInput) (*mcp.CallToolResult, GenerateMessageOutput, error) {
	out, err := h.generator.GenerateMessage(ctx, notify.GenerateMessageInput{
		Type:             models.RecordType(input.Type),
		ResponsibleParty: input.ResponsibleParty,
		Item:             input.Item,
		SchoolName:       input.SchoolName,
	})
	if err != nil {
		return nil, GenerateMessageOutput{}, err
	}
	return nil, GenerateMessageOutput{Message: out.Message, ShareLink: out.ShareLink}, nil
}

type CreateSummaryInput struct {
	Type             string `json:"type" jsonschema:"Record type: delivery or collection (required)"`
	ResponsibleParty string `json:"responsibleParty" jsonschema:"Name of the responsible person (required)"`
	Item             string `json:"item" jsonschema:"Item that was handed over (required)"`
	SchoolName       string `json:"schoolName" jsonschema:"School name (required)"`
	Department       string `json:"department,omitempty" jsonschema:"Department at the school"`
	CreatedAt        string `json:"createdAt,omitempty" jsonschema:"Record timestamp in RFC 3339 format (defaults to now)"`
}

type CreateSummaryOutput struct {
	Summary string `json:"summary"`
}

func (h *NotifyHandlers) CreateSummary(ctx context.Context, request *mcp.CallToolRequest, input CreateSummaryInput) (*mcp.CallToolResult, CreateSummaryOutput, error) {
	createdAt := time.Now().UTC()
	if input.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.CreatedAt)
		if err != nil {
			return nil, CreateSummaryOutput{}, fmt.Errorf("invalid createdAt: %w", err)
		}
		createdAt = parsed
	}

	out, err := h.generator.CreateSummary(ctx, notify.CreateSummaryInput{
		Type:             models.RecordType(input.Type),
		ResponsibleParty: input.ResponsibleParty,
		Item:             input.Item,
		SchoolName:       input.SchoolName,
		Department:       input.Department,
		CreatedAt:        createdAt,
	})
	if err != nil {
		return nil, CreateSummaryOutput{}, err
	}
	return nil, CreateSummaryOutput{Summary: out.Summary}, nil
}

type LookupSchoolInput struct {
	INEP string `json:"inep" jsonschema:"8-digit INEP school registry code (required)"`
}

type LookupSchoolOutput struct {
	SchoolName    string `json:"schoolName"`
	SchoolAddress string `json:"schoolAddress"`
}

func (h *NotifyHandlers) LookupSchool(ctx context.Context, request *mcp.CallToolRequest, input LookupSchoolInput) (*mcp.CallToolResult, LookupSchoolOutput, error) {
	info, err := h.directory.Lookup(ctx, input.INEP)
	if err != nil {
		return nil, LookupSchoolOutput{}, err
	}
	return nil, LookupSchoolOutput{
		SchoolName:    info.SchoolName,
		SchoolAddress: info.SchoolAddress,
	}, nil
}

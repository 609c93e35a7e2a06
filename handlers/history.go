// ABOUTME: History MCP tool handlers
// ABOUTME: Implements the get_history tool over the merged feed
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type HistoryHandlers struct {
	aggregator *history.Aggregator
}

func NewHistoryHandlers(a *history.Aggregator) *HistoryHandlers {
	return &HistoryHandlers{aggregator: a}
}

type GetHistoryInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by record type: delivery, collection, visit, or shipment"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of records (default 50)"`
}

type GetHistoryOutput struct {
	Records      []RecordOutput `json:"records"`
	PendingCount int            `json:"pending_count"`
}

func (h *HistoryHandlers) GetHistory(_ context.Context, request *mcp.CallToolRequest, input GetHistoryInput) (*mcp.CallToolResult, GetHistoryOutput, error) {
	filter := models.RecordType(input.Type)
	if input.Type != "" && !filter.Valid() {
		return nil, GetHistoryOutput{}, fmt.Errorf("unknown record type %q", input.Type)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	feed, err := h.aggregator.Feed()
	if err != nil {
		return nil, GetHistoryOutput{}, fmt.Errorf("failed to build history feed: %w", err)
	}

	filtered := history.Filter(feed, filter)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	records := make([]RecordOutput, len(filtered))
	for i, r := range filtered {
		records[i] = recordToOutput(r)
	}

	return nil, GetHistoryOutput{
		Records:      records,
		PendingCount: history.PendingCount(feed),
	}, nil
}

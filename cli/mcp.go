// ABOUTME: MCP server subcommand
// ABOUTME: Exposes record, history, sync, and notification tools over stdio
package cli

import (
	"context"
	"log"

	"github.com/harperreed/mobitec/handlers"
	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/notify"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(s *store.Store) error {
	log.Println("Starting mobitec MCP server...")

	cfg, err := sync.LoadConfig()
	if err != nil {
		return err
	}

	journal, err := sync.OpenJournal(sync.DefaultJournalPath())
	if err != nil {
		log.Printf("warning: sync journal unavailable: %v", err)
		journal = nil
	} else {
		defer func() { _ = journal.Close() }()
	}

	recordHandlers := handlers.NewRecordHandlers(s)
	historyHandlers := handlers.NewHistoryHandlers(history.NewAggregator(s))
	syncHandlers := handlers.NewSyncHandlers(sync.NewReconciler(s, cfg.NewUplink(), journal), journal)

	generator := notify.Generator(notify.NewTemplateGenerator())
	if cfg.GeneratorURL != "" {
		generator = notify.NewHTTPGenerator(cfg.GeneratorURL, cfg.Token)
	}
	notifyHandlers := handlers.NewNotifyHandlers(generator, notify.NewSchoolDirectory(cfg.SchoolDirURL))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mobitec",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_delivery",
		Description: "Record the delivery of an item at a school",
	}, recordHandlers.RecordDelivery)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_collection",
		Description: "Record the collection of an item from a school",
	}, recordHandlers.RecordCollection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_visit",
		Description: "Record an in-person school visit",
	}, recordHandlers.RecordVisit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_shipment",
		Description: "Record an item shipped to a school",
	}, recordHandlers.RecordShipment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_records",
		Description: "List records, optionally filtered by type or pending sync state",
	}, recordHandlers.ListRecords)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record by type and ID",
	}, recordHandlers.DeleteRecord)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_history",
		Description: "Get the merged record history feed, newest first",
	}, historyHandlers.GetHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_now",
		Description: "Run one sync pass, uploading pending records to the backend",
	}, syncHandlers.SyncNow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_status",
		Description: "Show per-category sync state and pending record counts",
	}, syncHandlers.SyncStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_message",
		Description: "Generate a confirmation message for a delivery, collection, or shipment",
	}, notifyHandlers.GenerateMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_summary",
		Description: "Create a one-paragraph report summary for a delivery or collection",
	}, notifyHandlers.CreateSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_school",
		Description: "Look up a school's name and address by its 8-digit INEP code",
	}, notifyHandlers.LookupSchool)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}

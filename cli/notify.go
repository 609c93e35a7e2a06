// ABOUTME: Notification CLI commands
// ABOUTME: Confirmation messages, report summaries, and INEP school lookup
package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/harperreed/mobitec/history"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/notify"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
)

// newGenerator picks the remote generator when configured, local
// templates otherwise.
func newGenerator() notify.Generator {
	cfg, err := sync.LoadConfig()
	if err == nil && cfg.GeneratorURL != "" {
		return notify.NewHTTPGenerator(cfg.GeneratorURL, cfg.Token)
	}
	return notify.NewTemplateGenerator()
}

// MessageCommand generates the confirmation message for a record.
func MessageCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("message", flag.ExitOnError)
	recordType := fs.String("type", "", "Record type: delivery, collection, or shipment (required)")
	id := fs.String("id", "", "Record ID (required)")
	_ = fs.Parse(args)

	t := models.RecordType(*recordType)
	if !t.Valid() {
		return fmt.Errorf("unknown record type %q", *recordType)
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	record, err := findRecord(s, t, *id)
	if err != nil {
		return err
	}

	in := notify.GenerateMessageInput{Type: t, SchoolName: record.Base().SchoolName}
	switch rec := record.(type) {
	case *models.Delivery:
		in.ResponsibleParty = rec.ResponsibleParty
		in.Item = rec.Item
	case *models.Collection:
		in.ResponsibleParty = rec.ResponsibleParty
		in.Item = rec.Item
	case *models.Shipment:
		in.Item = rec.Item
	default:
		return fmt.Errorf("no message template for record type %q", t)
	}

	out, err := newGenerator().GenerateMessage(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	fmt.Printf("\nShare: %s\n", out.ShareLink)
	return nil
}

// SummaryCommand generates a report summary for a handover record.
func SummaryCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	recordType := fs.String("type", "", "Record type: delivery or collection (required)")
	id := fs.String("id", "", "Record ID (required)")
	_ = fs.Parse(args)

	t := models.RecordType(*recordType)
	if t != models.TypeDelivery && t != models.TypeCollection {
		return fmt.Errorf("summaries cover deliveries and collections only")
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	record, err := findRecord(s, t, *id)
	if err != nil {
		return err
	}

	in := notify.CreateSummaryInput{
		Type:       t,
		SchoolName: record.Base().SchoolName,
		CreatedAt:  record.Base().CreatedAt,
	}
	switch rec := record.(type) {
	case *models.Delivery:
		in.ResponsibleParty = rec.ResponsibleParty
		in.Item = rec.Item
		in.Department = rec.Department
	case *models.Collection:
		in.ResponsibleParty = rec.ResponsibleParty
		in.Item = rec.Item
		in.Department = rec.Department
	}

	out, err := newGenerator().CreateSummary(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Println(out.Summary)
	return nil
}

// SchoolCommand looks up a school by INEP code, or suggests schools by
// name prefix from previous entries.
func SchoolCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("school", flag.ExitOnError)
	inep := fs.String("inep", "", "8-digit INEP school registry code")
	suggest := fs.String("suggest", "", "Partial school name to match against previous entries")
	_ = fs.Parse(args)

	switch {
	case *inep != "":
		cfg, _ := sync.LoadConfig()
		baseURL := ""
		if cfg != nil {
			baseURL = cfg.SchoolDirURL
		}
		directory := notify.NewSchoolDirectory(baseURL)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		info, err := directory.Lookup(ctx, *inep)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%s\n", info.SchoolName, info.SchoolAddress)
		return nil

	case *suggest != "":
		feed, err := history.NewAggregator(s).Feed()
		if err != nil {
			return fmt.Errorf("failed to build history feed: %w", err)
		}
		matches := notify.SuggestSchools(*suggest, history.SchoolNames(feed))
		if len(matches) == 0 {
			fmt.Println("No matching schools")
			return nil
		}
		for _, name := range matches {
			fmt.Println(name)
		}
		return nil
	}

	return fmt.Errorf("--inep or --suggest is required")
}

// findRecord loads a record by category and id.
func findRecord(s *store.Store, t models.RecordType, id string) (models.Record, error) {
	records, err := s.Load(t)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s records: %w", t, err)
	}
	for _, r := range records {
		if r.Base().ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no %s record with ID %s", t, id)
}

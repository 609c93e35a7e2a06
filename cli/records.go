// ABOUTME: Record CLI commands
// ABOUTME: Human-friendly commands for adding, listing, and deleting records
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// AddDeliveryCommand records a delivery at a school.
func AddDeliveryCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-delivery", flag.ExitOnError)
	school := fs.String("school", "", "School name (required)")
	department := fs.String("department", "", "Department at the school")
	item := fs.String("item", "", "Item handed over (required)")
	responsible := fs.String("responsible", "", "Person who received the item (required)")
	role := fs.String("role", "", "Role of the responsible person (required)")
	phone := fs.String("phone", "", "Contact phone number (required)")
	observations := fs.String("observations", "", "Free-form observations")
	photo := fs.String("photo", "", "Path to a photo of the handover")
	_ = fs.Parse(args)

	photoURI, err := readPhoto(*photo)
	if err != nil {
		return err
	}

	d := models.NewDelivery(*school, *department, *item, *responsible, *role, *phone, *observations, photoURI)
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.Append(d); err != nil {
		return fmt.Errorf("failed to save delivery: %w", err)
	}

	fmt.Printf("✓ Delivery recorded: %s at %s (ID: %s)\n", d.Item, d.SchoolName, d.ID)
	return nil
}

// AddCollectionCommand records a collection from a school.
func AddCollectionCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-collection", flag.ExitOnError)
	school := fs.String("school", "", "School name (required)")
	department := fs.String("department", "", "Department at the school")
	item := fs.String("item", "", "Item picked up (required)")
	responsible := fs.String("responsible", "", "Person who handed over the item (required)")
	role := fs.String("role", "", "Role of the responsible person (required)")
	phone := fs.String("phone", "", "Contact phone number (required)")
	observations := fs.String("observations", "", "Free-form observations")
	photo := fs.String("photo", "", "Path to a photo of the handover")
	_ = fs.Parse(args)

	photoURI, err := readPhoto(*photo)
	if err != nil {
		return err
	}

	c := models.NewCollection(*school, *department, *item, *responsible, *role, *phone, *observations, photoURI)
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.Append(c); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}

	fmt.Printf("✓ Collection recorded: %s at %s (ID: %s)\n", c.Item, c.SchoolName, c.ID)
	return nil
}

// AddVisitCommand records a school visit.
func AddVisitCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-visit", flag.ExitOnError)
	school := fs.String("school", "", "School name (required)")
	address := fs.String("address", "", "School address (required)")
	inep := fs.String("inep", "", "8-digit INEP school registry code")
	_ = fs.Parse(args)

	v := models.NewVisit(*school, *address, *inep)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := s.Append(v); err != nil {
		return fmt.Errorf("failed to save visit: %w", err)
	}

	fmt.Printf("✓ Visit recorded: %s (ID: %s)\n", v.SchoolName, v.ID)
	return nil
}

// AddShipmentCommand records a shipment to a school.
func AddShipmentCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-shipment", flag.ExitOnError)
	school := fs.String("school", "", "Destination school name (required)")
	department := fs.String("department", "", "Department at the school")
	item := fs.String("item", "", "Item shipped (required)")
	sender := fs.String("sender", "", "Who dispatched the item (required)")
	method := fs.String("method", "", "Carrier or shipping method (required)")
	status := fs.String("status", models.ShippingPending, "Shipping status: pending, in_transit, or delivered")
	tracking := fs.String("tracking", "", "Carrier tracking code")
	photo := fs.String("photo", "", "Path to a photo of the package")
	_ = fs.Parse(args)

	photoURI, err := readPhoto(*photo)
	if err != nil {
		return err
	}

	sh := models.NewShipment(*school, *department, *item, *sender, *method, *status, *tracking, photoURI)
	if err := sh.Validate(); err != nil {
		return err
	}
	if err := s.Append(sh); err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}

	fmt.Printf("✓ Shipment recorded: %s to %s (ID: %s)\n", sh.Item, sh.SchoolName, sh.ID)
	return nil
}

// ListRecordsCommand lists records, optionally filtered by type.
func ListRecordsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	typeFilter := fs.String("type", "", "Filter by type: delivery, collection, visit, or shipment")
	pendingOnly := fs.Bool("pending", false, "Only show records not yet synced")
	_ = fs.Parse(args)

	types := models.RecordTypes()
	if *typeFilter != "" {
		t := models.RecordType(*typeFilter)
		if !t.Valid() {
			return fmt.Errorf("unknown record type %q", *typeFilter)
		}
		types = []models.RecordType{t}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSCHOOL\tCREATED\tSYNCED")

	count := 0
	for _, t := range types {
		records, err := s.Load(t)
		if err != nil {
			return fmt.Errorf("failed to load %s records: %w", t, err)
		}
		for _, r := range records {
			base := r.Base()
			if *pendingOnly && base.Synced {
				continue
			}
			synced := "✗"
			if base.Synced {
				synced = "✓"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				base.ID, base.Type, base.SchoolName,
				base.CreatedAt.Format("2006-01-02 15:04"), synced)
			count++
		}
	}
	w.Flush()

	fmt.Printf("\n%d record(s)\n", count)
	return nil
}

// DeleteRecordCommand deletes a record by type and id.
func DeleteRecordCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	recordType := fs.String("type", "", "Record type (required)")
	id := fs.String("id", "", "Record ID (required)")
	_ = fs.Parse(args)

	t := models.RecordType(*recordType)
	if !t.Valid() {
		return fmt.Errorf("unknown record type %q", *recordType)
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	removed, err := s.Remove(t, *id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if !removed {
		fmt.Printf("No %s record with ID %s\n", t, *id)
		return nil
	}
	fmt.Printf("✓ Record deleted: %s\n", *id)
	return nil
}

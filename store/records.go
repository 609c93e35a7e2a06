// ABOUTME: Record Store - per-category persistence of record sequences
// ABOUTME: Each category lives in one JSON-array slot; saves are whole-slot overwrites
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/harperreed/mobitec/models"
)

// Slot keys, one per record category.
const (
	SlotDeliveries  = "deliveries"
	SlotCollections = "collections"
	SlotVisits      = "visits"
	SlotShipments   = "shipments"
)

// Store persists record sequences per category. Every save replaces the
// category's slot wholesale (last writer wins, no merge); no operation
// spans two categories. The mutex makes each read-modify-write atomic
// per category so a background reconciliation cannot lose a concurrent
// append.
type Store struct {
	kv *KV
	mu sync.Mutex
}

// NewStore creates a record store over an open KV database.
func NewStore(kv *KV) *Store {
	return &Store{kv: kv}
}

// SlotKey maps a record type to its persisted slot name.
func SlotKey(t models.RecordType) string {
	switch t {
	case models.TypeDelivery:
		return SlotDeliveries
	case models.TypeCollection:
		return SlotCollections
	case models.TypeVisit:
		return SlotVisits
	case models.TypeShipment:
		return SlotShipments
	}
	return ""
}

// Load returns the persisted sequence for a category. A missing slot
// loads as empty; malformed stored data also loads as empty (fail-soft).
// A storage read failure is a real error and is surfaced.
func (s *Store) Load(t models.RecordType) ([]models.Record, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown record type %q", t)
	}

	data, err := s.kv.Get([]byte(SlotKey(t)))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []models.Record{}, nil
	}

	records, err := decodeSlot(t, data)
	if err != nil {
		// Corrupt slot data is treated as empty rather than wedging the
		// whole category; the next save overwrites it.
		return []models.Record{}, nil
	}
	return records, nil
}

// Save replaces the persisted sequence for a category wholesale.
func (s *Store) Save(t models.RecordType, records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(t, records)
}

func (s *Store) save(t models.RecordType, records []models.Record) error {
	if !t.Valid() {
		return fmt.Errorf("unknown record type %q", t)
	}
	if records == nil {
		records = []models.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s slot: %w", SlotKey(t), err)
	}
	return s.kv.Set([]byte(SlotKey(t)), data)
}

// Append prepends a record to its category so the newest record comes
// first. The record's own Type field decides the slot.
func (s *Store) Append(record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := record.Base().Type
	existing, err := s.Load(t)
	if err != nil {
		return err
	}
	return s.save(t, append([]models.Record{record}, existing...))
}

// Remove deletes the record with the given id from a category and
// reports whether it was present. Removing an absent id is a no-op, so
// the operation is idempotent.
func (s *Store) Remove(t models.RecordType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(t)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.Base().ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	return true, s.save(t, kept)
}

// LoadAll returns every category's sequence keyed by record type.
func (s *Store) LoadAll() (map[models.RecordType][]models.Record, error) {
	all := make(map[models.RecordType][]models.Record, len(models.RecordTypes()))
	for _, t := range models.RecordTypes() {
		records, err := s.Load(t)
		if err != nil {
			return nil, err
		}
		all[t] = records
	}
	return all, nil
}

// Pending returns the subsequence of a category where synced is false,
// preserving stored order.
func (s *Store) Pending(t models.RecordType) ([]models.Record, error) {
	records, err := s.Load(t)
	if err != nil {
		return nil, err
	}
	pending := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !r.Base().Synced {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// MarkSynced flips synced to true for the given ids within one category,
// leaving every other field untouched. The transition is monotonic:
// already-synced records are never reverted, and ids not present in the
// slot are ignored. The whole update is one read-modify-write under the
// store lock so records appended concurrently are preserved.
func (s *Store) MarkSynced(t models.RecordType, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(t)
	if err != nil {
		return err
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	changed := false
	for _, r := range records {
		base := r.Base()
		if idSet[base.ID] && !base.Synced {
			base.Synced = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(t, records)
}

// decodeSlot unmarshals a slot's JSON array into the category's concrete
// record type.
func decodeSlot(t models.RecordType, data []byte) ([]models.Record, error) {
	switch t {
	case models.TypeDelivery:
		var items []*models.Delivery
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		records := make([]models.Record, len(items))
		for i, item := range items {
			records[i] = item
		}
		return records, nil
	case models.TypeCollection:
		var items []*models.Collection
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		records := make([]models.Record, len(items))
		for i, item := range items {
			records[i] = item
		}
		return records, nil
	case models.TypeVisit:
		var items []*models.Visit
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		records := make([]models.Record, len(items))
		for i, item := range items {
			records[i] = item
		}
		return records, nil
	case models.TypeShipment:
		var items []*models.Shipment
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		records := make([]models.Record, len(items))
		for i, item := range items {
			records[i] = item
		}
		return records, nil
	}
	return nil, fmt.Errorf("unknown record type %q", t)
}

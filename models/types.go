// ABOUTME: Data models for field logistics records
// ABOUTME: Defines the record categories (delivery, collection, visit, shipment) and user/session types
package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RecordType discriminates the four record categories.
type RecordType string

const (
	TypeDelivery   RecordType = "delivery"
	TypeCollection RecordType = "collection"
	TypeVisit      RecordType = "visit"
	TypeShipment   RecordType = "shipment"
)

// RecordTypes lists every category in canonical order.
func RecordTypes() []RecordType {
	return []RecordType{TypeDelivery, TypeCollection, TypeVisit, TypeShipment}
}

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	switch t {
	case TypeDelivery, TypeCollection, TypeVisit, TypeShipment:
		return true
	}
	return false
}

// Shipping statuses.
const (
	ShippingPending   = "pending"
	ShippingInTransit = "in_transit"
	ShippingDelivered = "delivered"
)

// ShippingStatuses lists the valid shipment statuses.
func ShippingStatuses() []string {
	return []string{ShippingPending, ShippingInTransit, ShippingDelivered}
}

// RecordBase holds the fields shared by every record category.
// CreatedAt is immutable after creation; Synced only ever transitions
// false -> true (the reconciler owns that transition).
type RecordBase struct {
	ID         string     `json:"id"`
	Type       RecordType `json:"type"`
	SchoolName string     `json:"schoolName"`
	CreatedAt  time.Time  `json:"createdAt"`
	Synced     bool       `json:"synced"`
}

// Record is the tagged union over the four categories. Base gives access
// to the shared fields; switch on Base().Type for category-specific data.
type Record interface {
	Base() *RecordBase
}

// Delivery records an item handed over at a school.
type Delivery struct {
	RecordBase
	Department       string `json:"department,omitempty"`
	Item             string `json:"item"`
	ResponsibleParty string `json:"responsibleParty"`
	Role             string `json:"role"`
	PhoneNumber      string `json:"phoneNumber"`
	Observations     string `json:"observations,omitempty"`
	PhotoDataURI     string `json:"photoDataUri,omitempty"`
}

// Collection records an item picked up from a school.
type Collection struct {
	RecordBase
	Department       string `json:"department,omitempty"`
	Item             string `json:"item"`
	ResponsibleParty string `json:"responsibleParty"`
	Role             string `json:"role"`
	PhoneNumber      string `json:"phoneNumber"`
	Observations     string `json:"observations,omitempty"`
	PhotoDataURI     string `json:"photoDataUri,omitempty"`
}

// Visit records an in-person school visit.
type Visit struct {
	RecordBase
	SchoolAddress string `json:"schoolAddress"`
	INEP          string `json:"inep,omitempty"`
}

// Shipment records an item dispatched to a school.
type Shipment struct {
	RecordBase
	Department     string `json:"department,omitempty"`
	Item           string `json:"item"`
	Sender         string `json:"sender"`
	ShippingMethod string `json:"shippingMethod"`
	ShippingStatus string `json:"shippingStatus"`
	TrackingCode   string `json:"trackingCode,omitempty"`
	PhotoDataURI   string `json:"photoDataUri,omitempty"`
}

func (d *Delivery) Base() *RecordBase   { return &d.RecordBase }
func (c *Collection) Base() *RecordBase { return &c.RecordBase }
func (v *Visit) Base() *RecordBase      { return &v.RecordBase }
func (s *Shipment) Base() *RecordBase   { return &s.RecordBase }

// NewRecordID generates a ULID for a record: time-ordered with a random
// suffix, unique within and across categories.
func NewRecordID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// newBase stamps the shared fields for a freshly created record. Records
// are always born pending; only a reconciliation pass marks them synced.
func newBase(t RecordType, schoolName string) RecordBase {
	return RecordBase{
		ID:         NewRecordID(),
		Type:       t,
		SchoolName: schoolName,
		CreatedAt:  time.Now().UTC(),
		Synced:     false,
	}
}

// NewDelivery creates a pending delivery record.
func NewDelivery(schoolName, department, item, responsibleParty, role, phoneNumber, observations, photoDataURI string) *Delivery {
	return &Delivery{
		RecordBase:       newBase(TypeDelivery, schoolName),
		Department:       department,
		Item:             item,
		ResponsibleParty: responsibleParty,
		Role:             role,
		PhoneNumber:      phoneNumber,
		Observations:     observations,
		PhotoDataURI:     photoDataURI,
	}
}

// NewCollection creates a pending collection record.
func NewCollection(schoolName, department, item, responsibleParty, role, phoneNumber, observations, photoDataURI string) *Collection {
	return &Collection{
		RecordBase:       newBase(TypeCollection, schoolName),
		Department:       department,
		Item:             item,
		ResponsibleParty: responsibleParty,
		Role:             role,
		PhoneNumber:      phoneNumber,
		Observations:     observations,
		PhotoDataURI:     photoDataURI,
	}
}

// NewVisit creates a pending visit record.
func NewVisit(schoolName, schoolAddress, inep string) *Visit {
	return &Visit{
		RecordBase:    newBase(TypeVisit, schoolName),
		SchoolAddress: schoolAddress,
		INEP:          inep,
	}
}

// NewShipment creates a pending shipment record.
func NewShipment(schoolName, department, item, sender, shippingMethod, shippingStatus, trackingCode, photoDataURI string) *Shipment {
	return &Shipment{
		RecordBase:     newBase(TypeShipment, schoolName),
		Department:     department,
		Item:           item,
		Sender:         sender,
		ShippingMethod: shippingMethod,
		ShippingStatus: shippingStatus,
		TrackingCode:   trackingCode,
		PhotoDataURI:   photoDataURI,
	}
}

// User is a locally registered field agent. Credentials are stored and
// compared in plaintext on-device, matching the source system this
// replaces; not an authentication security model.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}

// Session identifies the currently logged-in user.
type Session struct {
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

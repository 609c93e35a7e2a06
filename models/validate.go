// ABOUTME: Per-field validation for record submissions
// ABOUTME: Mirrors the entry form constraints (minimum lengths, enums, INEP format)
package models

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError reports a single field that fails its form constraint.
// Validation blocks submission; nothing is persisted for an invalid record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func minLen(field, value string, n int) *ValidationError {
	if utf8.RuneCountInString(value) < n {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", n)}
	}
	return nil
}

func validateHandover(schoolName, item, responsibleParty, role, phoneNumber string) error {
	if err := minLen("schoolName", schoolName, 2); err != nil {
		return err
	}
	if err := minLen("item", item, 2); err != nil {
		return err
	}
	if err := minLen("responsibleParty", responsibleParty, 2); err != nil {
		return err
	}
	if err := minLen("role", role, 2); err != nil {
		return err
	}
	if err := minLen("phoneNumber", phoneNumber, 8); err != nil {
		return err
	}
	return nil
}

// Validate checks the delivery against the entry form constraints.
func (d *Delivery) Validate() error {
	return validateHandover(d.SchoolName, d.Item, d.ResponsibleParty, d.Role, d.PhoneNumber)
}

// Validate checks the collection against the entry form constraints.
func (c *Collection) Validate() error {
	return validateHandover(c.SchoolName, c.Item, c.ResponsibleParty, c.Role, c.PhoneNumber)
}

// Validate checks the visit against the entry form constraints.
func (v *Visit) Validate() error {
	if err := minLen("schoolName", v.SchoolName, 2); err != nil {
		return err
	}
	if err := minLen("schoolAddress", v.SchoolAddress, 5); err != nil {
		return err
	}
	if v.INEP != "" {
		if err := ValidateINEP(v.INEP); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the shipment against the entry form constraints.
func (s *Shipment) Validate() error {
	if err := minLen("schoolName", s.SchoolName, 2); err != nil {
		return err
	}
	if err := minLen("item", s.Item, 2); err != nil {
		return err
	}
	if err := minLen("sender", s.Sender, 2); err != nil {
		return err
	}
	if s.ShippingMethod == "" {
		return &ValidationError{Field: "shippingMethod", Message: "is required"}
	}
	switch s.ShippingStatus {
	case ShippingPending, ShippingInTransit, ShippingDelivered:
	default:
		return &ValidationError{Field: "shippingStatus", Message: "must be one of pending, in_transit, delivered"}
	}
	return nil
}

// ValidateINEP checks the government school-registry code format (8 digits).
func ValidateINEP(inep string) error {
	if len(inep) != 8 {
		return &ValidationError{Field: "inep", Message: "must be exactly 8 digits"}
	}
	for _, r := range inep {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "inep", Message: "must be exactly 8 digits"}
		}
	}
	return nil
}

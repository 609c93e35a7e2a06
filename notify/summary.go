// ABOUTME: One-paragraph report summaries for handover records
// ABOUTME: Brazilian Portuguese wording and dd/mm/aaaa HH:MM timestamps
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/mobitec/models"
)

// CreateSummaryInput describes the handover a report summary is wanted
// for.
type CreateSummaryInput struct {
	Type             models.RecordType
	ResponsibleParty string
	Item             string
	SchoolName       string
	Department       string
	CreatedAt        time.Time
}

// CreateSummaryOutput carries the rendered summary paragraph.
type CreateSummaryOutput struct {
	Summary string
}

// CreateSummary renders a one-paragraph report summary for a delivery or
// collection record.
func (g *TemplateGenerator) CreateSummary(_ context.Context, in CreateSummaryInput) (*CreateSummaryOutput, error) {
	var kind string
	switch in.Type {
	case models.TypeDelivery:
		kind = "Entrega"
	case models.TypeCollection:
		kind = "Recolhimento"
	default:
		return nil, fmt.Errorf("no summary template for record type %q", in.Type)
	}

	place := fmt.Sprintf("na escola %s", in.SchoolName)
	if in.Department != "" {
		place = fmt.Sprintf("na escola %s, no departamento %s", in.SchoolName, in.Department)
	}

	summary := fmt.Sprintf("%s do item '%s' realizada %s, sob responsabilidade de %s, em %s.",
		kind, in.Item, place, in.ResponsibleParty, in.CreatedAt.Format("02/01/2006 15:04"))

	return &CreateSummaryOutput{Summary: summary}, nil
}

// ABOUTME: Notification text generation for record confirmations
// ABOUTME: Template-backed by default, with a share link for messaging apps
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/harperreed/mobitec/models"
)

// GenerateMessageInput describes the record a confirmation message is
// wanted for. Visits have no handover party, so they are not messaged.
type GenerateMessageInput struct {
	Type             models.RecordType
	ResponsibleParty string
	Item             string
	SchoolName       string
}

// GenerateMessageOutput carries the confirmation text plus a ready-made
// Telegram share link.
type GenerateMessageOutput struct {
	Message   string
	ShareLink string
}

// Generator produces notification text for a record. Implementations may
// be local templates or a remote service; callers treat them the same.
type Generator interface {
	GenerateMessage(ctx context.Context, in GenerateMessageInput) (*GenerateMessageOutput, error)
	CreateSummary(ctx context.Context, in CreateSummaryInput) (*CreateSummaryOutput, error)
}

// TemplateGenerator renders messages from fixed templates, entirely
// offline. It is the default generator.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the offline template generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// GenerateMessage renders the confirmation text for a handover or
// shipment record.
func (g *TemplateGenerator) GenerateMessage(_ context.Context, in GenerateMessageInput) (*GenerateMessageOutput, error) {
	var message string
	switch in.Type {
	case models.TypeDelivery:
		message = fmt.Sprintf("Olá, %s! Confirmando que o item '%s' foi entregue com sucesso na escola %s. Agradecemos a colaboração!",
			in.ResponsibleParty, in.Item, in.SchoolName)
	case models.TypeCollection:
		message = fmt.Sprintf("Olá, %s! Passando para confirmar que o item '%s' foi recolhido com sucesso na escola %s. Obrigado!",
			in.ResponsibleParty, in.Item, in.SchoolName)
	case models.TypeShipment:
		message = fmt.Sprintf("Olá! Informamos que o item '%s' foi despachado para a escola %s e em breve estará a caminho. Atenciosamente.",
			in.Item, in.SchoolName)
	default:
		return nil, fmt.Errorf("no message template for record type %q", in.Type)
	}

	return &GenerateMessageOutput{
		Message:   message,
		ShareLink: TelegramShareLink(message),
	}, nil
}

// TelegramShareLink builds a t.me share URL that opens the messaging app
// with the text prefilled.
func TelegramShareLink(message string) string {
	// Query-escape, then fix spaces: Telegram wants %20, not +.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://t.me/share/url?url=&text=" + text
}

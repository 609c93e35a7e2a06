// ABOUTME: Tests for notification MCP tool handlers
// ABOUTME: Validates message generation, summaries, and school lookup
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/mobitec/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifyHandlers() *NotifyHandlers {
	return NewNotifyHandlers(notify.NewTemplateGenerator(), notify.NewSchoolDirectory(""))
}

func TestGenerateMessageHandler(t *testing.T) {
	h := newNotifyHandlers()

	_, out, err := h.GenerateMessage(context.Background(), nil, GenerateMessageInput{
		Type:             "delivery",
		ResponsibleParty: "Maria Silva",
		Item:             "Notebooks",
		SchoolName:       "Escola A",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "Maria Silva")
	assert.Contains(t, out.ShareLink, "t.me/share")

	_, _, err = h.GenerateMessage(context.Background(), nil, GenerateMessageInput{Type: "visit"})
	assert.Error(t, err)
}

func TestCreateSummaryHandler(t *testing.T) {
	h := newNotifyHandlers()

	_, out, err := h.CreateSummary(context.Background(), nil, CreateSummaryInput{
		Type:             "collection",
		ResponsibleParty: "Ana Souza",
		Item:             "Tablets",
		SchoolName:       "Escola B",
		CreatedAt:        "2026-08-15T14:30:00Z",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Summary, "Recolhimento")
	assert.Contains(t, out.Summary, "15/08/2026")

	_, _, err = h.CreateSummary(context.Background(), nil, CreateSummaryInput{
		Type:      "delivery",
		Item:      "Livros",
		CreatedAt: "not-a-date",
	})
	assert.Error(t, err)
}

func TestLookupSchoolHandler(t *testing.T) {
	h := newNotifyHandlers()

	_, out, err := h.LookupSchool(context.Background(), nil, LookupSchoolInput{INEP: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "Escola Exemplo de Sucesso", out.SchoolName)

	_, _, err = h.LookupSchool(context.Background(), nil, LookupSchoolInput{INEP: "123"})
	assert.Error(t, err)
}

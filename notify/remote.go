// ABOUTME: Remote message generator over HTTP
// ABOUTME: Fallible by contract - callers surface the error and retry manually
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harperreed/mobitec/models"
)

// HTTPGenerator asks a remote service for notification text. Errors are
// returned as-is for the caller to surface; there is no retry and no
// local fallback baked in.
type HTTPGenerator struct {
	client *resty.Client
}

// NewHTTPGenerator creates a generator against the given base URL. The
// token, when non-empty, is sent as a bearer header.
func NewHTTPGenerator(baseURL, token string) *HTTPGenerator {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &HTTPGenerator{client: client}
}

type generateMessageRequest struct {
	Type             models.RecordType `json:"type"`
	ResponsibleParty string            `json:"responsibleParty"`
	Item             string            `json:"item"`
	SchoolName       string            `json:"schoolName"`
}

type generateMessageResponse struct {
	Message   string `json:"message"`
	ShareLink string `json:"shareLink"`
}

// GenerateMessage requests confirmation text from the remote service.
func (g *HTTPGenerator) GenerateMessage(ctx context.Context, in GenerateMessageInput) (*GenerateMessageOutput, error) {
	var out generateMessageResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(generateMessageRequest{
			Type:             in.Type,
			ResponsibleParty: in.ResponsibleParty,
			Item:             in.Item,
			SchoolName:       in.SchoolName,
		}).
		SetResult(&out).
		Post("/v1/messages/generate")
	if err != nil {
		return nil, fmt.Errorf("message generation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("message generation failed: %s", resp.Status())
	}

	result := &GenerateMessageOutput{Message: out.Message, ShareLink: out.ShareLink}
	if result.ShareLink == "" {
		result.ShareLink = TelegramShareLink(result.Message)
	}
	return result, nil
}

type createSummaryRequest struct {
	Type             models.RecordType `json:"type"`
	ResponsibleParty string            `json:"responsibleParty"`
	Item             string            `json:"item"`
	SchoolName       string            `json:"schoolName"`
	Department       string            `json:"department,omitempty"`
	CreatedAt        string            `json:"createdAt"`
}

type createSummaryResponse struct {
	Summary string `json:"summary"`
}

// CreateSummary requests a report summary from the remote service.
func (g *HTTPGenerator) CreateSummary(ctx context.Context, in CreateSummaryInput) (*CreateSummaryOutput, error) {
	var out createSummaryResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(createSummaryRequest{
			Type:             in.Type,
			ResponsibleParty: in.ResponsibleParty,
			Item:             in.Item,
			SchoolName:       in.SchoolName,
			Department:       in.Department,
			CreatedAt:        in.CreatedAt.Format(time.RFC3339),
		}).
		SetResult(&out).
		Post("/v1/messages/summary")
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("summary generation failed: %s", resp.Status())
	}
	return &CreateSummaryOutput{Summary: out.Summary}, nil
}

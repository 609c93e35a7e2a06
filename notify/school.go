// ABOUTME: School helpers - type-ahead suggestions and INEP directory lookup
// ABOUTME: Suggestions are local; the directory falls back to canned data offline
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harperreed/mobitec/models"
)

// SuggestSchools returns up to five previously entered school names that
// start with the partial input, case-insensitively. Order follows the
// input list. An empty partial suggests nothing.
func SuggestSchools(partial string, previous []string) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	var matches []string
	for _, name := range previous {
		if strings.HasPrefix(strings.ToLower(name), partial) {
			matches = append(matches, name)
			if len(matches) == 5 {
				break
			}
		}
	}
	return matches
}

// SchoolInfo is a school directory entry keyed by INEP code.
type SchoolInfo struct {
	SchoolName    string `json:"schoolName"`
	SchoolAddress string `json:"schoolAddress"`
}

// SchoolDirectory resolves 8-digit INEP codes to school name and
// address. With no base URL it answers from canned data so the visit
// form works fully offline.
type SchoolDirectory struct {
	client *resty.Client
}

// NewSchoolDirectory creates a directory client. baseURL may be empty
// for offline-only operation.
func NewSchoolDirectory(baseURL string) *SchoolDirectory {
	d := &SchoolDirectory{}
	if baseURL != "" {
		d.client = resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second)
	}
	return d
}

// Lookup resolves an INEP code. Invalid codes are rejected before any
// network round trip; a failed remote call falls back to canned data.
func (d *SchoolDirectory) Lookup(ctx context.Context, inep string) (*SchoolInfo, error) {
	if err := models.ValidateINEP(inep); err != nil {
		return nil, err
	}

	if d.client != nil {
		var info SchoolInfo
		resp, err := d.client.R().
			SetContext(ctx).
			SetResult(&info).
			Get("/v1/schools/" + inep)
		if err == nil && resp.IsSuccess() && info.SchoolName != "" {
			return &info, nil
		}
	}

	return cannedSchool(inep), nil
}

// cannedSchool mirrors the directory's known sample entry and a generic
// placeholder for everything else.
func cannedSchool(inep string) *SchoolInfo {
	if inep == "12345678" {
		return &SchoolInfo{
			SchoolName:    "Escola Exemplo de Sucesso",
			SchoolAddress: "Rua da Amostra, 123",
		}
	}
	return &SchoolInfo{
		SchoolName:    fmt.Sprintf("Escola %s", inep),
		SchoolAddress: fmt.Sprintf("Endereço para INEP %s", inep),
	}
}

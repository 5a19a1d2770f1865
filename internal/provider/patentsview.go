package provider

import (
	"context"
	"net/http"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
)

// GrantedPatents queries the PatentsView granted-patent search API with an
// organization-name match (exact or text-contains).  It only sees granted
// patents plus their application metadata, so it runs after the examination
// adapter, catching assignees whose records never surface in PEDS.
type GrantedPatents struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewGrantedPatents builds the PatentsView adapter from configuration.
func NewGrantedPatents(cfg config.ProviderConfig, log logging.Logger) *GrantedPatents {
	return &GrantedPatents{
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(cfg),
		log:     log.Named("patentsview"),
	}
}

// Name identifies the adapter in logs and metrics.
func (a *GrantedPatents) Name() string { return "patentsview" }

type patentsViewQuery struct {
	Q map[string]interface{} `json:"q"`
	F []string               `json:"f"`
	O map[string]interface{} `json:"o"`
}

type patentsViewResponse struct {
	Patents          []patentsViewPatent `json:"patents"`
	TotalPatentCount int                 `json:"total_patent_count"`
}

type patentsViewPatent struct {
	PatentNumber string `json:"patent_number"`
	PatentTitle  string `json:"patent_title"`
	PatentDate   string `json:"patent_date"`
	AppDate      string `json:"app_date"`
}

// Query runs an assignee-organization search and maps each patent into the
// canonical shape.  Status derives purely from the presence of a grant date;
// PatentsView carries no examination status of its own.
func (a *GrantedPatents) Query(ctx context.Context, term string) ([]records.Patent, error) {
	payload := patentsViewQuery{
		Q: map[string]interface{}{
			"_or": []map[string]interface{}{
				{"_eq": map[string]string{"assignee_organization": term}},
				{"_text_any": map[string]string{"assignee_organization": term}},
			},
		},
		F: []string{"patent_number", "patent_title", "patent_date", "app_date"},
		O: map[string]interface{}{"per_page": 100},
	}

	var resp patentsViewResponse
	if err := postJSON(ctx, a.client, a.baseURL+"/patents/query", payload, &resp); err != nil {
		return nil, err
	}

	out := make([]records.Patent, 0, len(resp.Patents))
	for _, p := range resp.Patents {
		status := "Pending"
		if p.PatentDate != "" {
			status = "Granted"
		}
		out = append(out, records.Patent{
			PatentNumber: p.PatentNumber,
			PatentTitle:  p.PatentTitle,
			AppDate:      p.AppDate,
			PatentDate:   strOrNil(p.PatentDate),
			Status:       status,
		})
	}
	a.log.Debug("patentsview query complete",
		logging.String("term", term),
		logging.Int("records", len(out)),
	)
	return out, nil
}

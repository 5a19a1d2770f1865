package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
)

// PatentExamination queries the USPTO Patent Examination Data System (PEDS):
// a full-text search over pending and granted applications keyed on the
// applicant name.  It is the highest-priority patent source because it covers
// applications that have not yet been granted.
type PatentExamination struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewPatentExamination builds the PEDS adapter from configuration.
func NewPatentExamination(cfg config.ProviderConfig, log logging.Logger) *PatentExamination {
	return &PatentExamination{
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(cfg),
		log:     log.Named("peds"),
	}
}

// Name identifies the adapter in logs and metrics.
func (a *PatentExamination) Name() string { return "peds" }

// pedsQuery is the PEDS search request body.
type pedsQuery struct {
	SearchText string `json:"searchText"`
	Start      string `json:"start"`
	Rows       string `json:"rows"`
	Facet      string `json:"facet"`
}

// pedsResponse mirrors the slice of the PEDS response envelope we consume.
type pedsResponse struct {
	QueryResults struct {
		SearchResponse struct {
			Response struct {
				NumFound int       `json:"numFound"`
				Docs     []pedsDoc `json:"docs"`
			} `json:"response"`
		} `json:"searchResponse"`
	} `json:"queryResults"`
}

type pedsDoc struct {
	PatentNumber      string `json:"patentNumber"`
	AppEarlyPubNumber string `json:"appEarlyPubNumber"`
	ApplID            string `json:"applId"`
	PatentTitle       string `json:"patentTitle"`
	AppFilingDate     string `json:"appFilingDate"`
	PatentIssueDate   string `json:"patentIssueDate"`
	AppStatus         string `json:"appStatus"`
	AppType           string `json:"appType"`
}

// Query runs a PEDS applicant-name search and maps each document into the
// canonical patent shape.
func (a *PatentExamination) Query(ctx context.Context, term string) ([]records.Patent, error) {
	payload := pedsQuery{
		SearchText: fmt.Sprintf("firstNamedApplicant:(%q)", term),
		Start:      "0",
		Rows:       "100",
		Facet:      "false",
	}

	var resp pedsResponse
	if err := postJSON(ctx, a.client, a.baseURL+"/queries", payload, &resp); err != nil {
		return nil, err
	}

	docs := resp.QueryResults.SearchResponse.Response.Docs
	out := make([]records.Patent, 0, len(docs))
	for _, doc := range docs {
		out = append(out, mapPEDSDoc(doc))
	}
	a.log.Debug("peds query complete",
		logging.String("term", term),
		logging.Int("records", len(out)),
	)
	return out, nil
}

// mapPEDSDoc applies the canonical field mapping for one PEDS document:
// the patent number prefers an issued number, then the early-publication
// number, then the raw application number; the status prefers the explicit
// examination status, else derives from the presence of an issue date.
func mapPEDSDoc(doc pedsDoc) records.Patent {
	number := doc.PatentNumber
	if number == "" {
		number = doc.AppEarlyPubNumber
	}
	if number == "" {
		number = doc.ApplID
	}

	status := doc.AppStatus
	if status == "" {
		if doc.PatentIssueDate != "" {
			status = "Granted"
		} else {
			status = "Pending"
		}
	}

	return records.Patent{
		PatentNumber: number,
		PatentTitle:  doc.PatentTitle,
		AppDate:      doc.AppFilingDate,
		PatentDate:   strOrNil(doc.PatentIssueDate),
		Status:       status,
		Type:         doc.AppType,
	}
}

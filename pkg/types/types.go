// Package types declares the public wire contract of the ipgate API: the
// canonical record shapes and the aggregate result envelope.  It mirrors the
// JSON the service emits and exists so SDK consumers do not depend on service
// internals.
package types

import "strings"

// Source identifies where an aggregate result came from.
type Source string

const (
	// SourceClientDatabase marks results built from operator-curated
	// override records.
	SourceClientDatabase Source = "client_database"

	// SourceUSPTOAPI marks results produced by a USPTO upstream API.
	SourceUSPTOAPI Source = "uspto_api"

	// SourceNone marks a lookup for which no source had records.
	SourceNone Source = "none"

	// SourceError marks a resolution that failed; the error text travels in
	// the result body.
	SourceError Source = "error"
)

// Patent is the canonical patent record.
type Patent struct {
	PatentNumber string  `json:"patent_number"`
	PatentTitle  string  `json:"patent_title"`
	AppDate      string  `json:"app_date"`
	PatentDate   *string `json:"patent_date"` // nil ⇒ not yet granted
	Status       string  `json:"status"`
	Type         string  `json:"type,omitempty"`
}

// Granted reports whether the patent carries a grant signal.
func (p Patent) Granted() bool {
	return p.PatentDate != nil && *p.PatentDate != ""
}

// Trademark is the canonical trademark record.
type Trademark struct {
	SerialNumber     string `json:"serialNumber"`
	Mark             string `json:"mark"`
	FilingDate       string `json:"filingDate"`
	Status           string `json:"status"`
	Owner            string `json:"owner,omitempty"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// Registered reports whether the status text names a registration.
func (t Trademark) Registered() bool {
	return strings.Contains(strings.ToLower(t.Status), "registered")
}

// SearchResult is the aggregate envelope returned for one lookup.
//
// Invariant: Total == Granted + Applications == len(List).
type SearchResult[T any] struct {
	Total        int    `json:"total"`
	Granted      int    `json:"granted"`
	Applications int    `json:"applications"`
	List         []T    `json:"list"`
	Source       Source `json:"source"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ClientRecord is one stored override entry as exposed by the admin surface.
type ClientRecord struct {
	Key        string      `json:"key,omitempty"`
	Name       string      `json:"name"`
	Patents    []Patent    `json:"patents"`
	Trademarks []Trademark `json:"trademarks"`
}

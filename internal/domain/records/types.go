// Package records defines the canonical record shapes every upstream provider
// response is mapped into, and the aggregate result returned to callers.  All
// business meaning of a search response lives here; transport and provider
// idiosyncrasies are handled by the adapter layer.
package records

import "strings"

// Source identifies where an aggregate result came from.
type Source string

const (
	// SourceClientDatabase marks results built from operator-curated override
	// records; overrides always pre-empt upstream data.
	SourceClientDatabase Source = "client_database"

	// SourceUSPTOAPI marks results produced by the first upstream adapter
	// that returned at least one record.
	SourceUSPTOAPI Source = "uspto_api"

	// SourceNone marks an exhausted fallback chain: every adapter returned
	// zero records.
	SourceNone Source = "none"

	// SourceError marks a resolution that failed unexpectedly; the aggregate
	// is still returned to the caller with the message carried through.
	SourceError Source = "error"
)

// Patent is the canonical patent record.  Dates are carried as the provider's
// date strings (ISO yyyy-mm-dd where upstreams supply it); the service
// normalizes shape, not calendar formats.
type Patent struct {
	PatentNumber string  `json:"patent_number"`
	PatentTitle  string  `json:"patent_title"`
	AppDate      string  `json:"app_date"`
	PatentDate   *string `json:"patent_date"` // nil ⇒ not yet granted
	Status       string  `json:"status"`
	Type         string  `json:"type,omitempty"`
}

// Granted reports whether the patent carries a grant signal (an issue date).
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

// Registered reports whether the status text names a registration,
// case-insensitively.
func (t Trademark) Registered() bool {
	return strings.Contains(strings.ToLower(t.Status), "registered")
}

// SearchResult is the aggregate returned to callers for one lookup.
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

// Aggregate builds a SearchResult from a record list, counting grant signals
// with the supplied predicate.  A nil list produces an empty (never nil)
// List so callers always serialize a JSON array.
func Aggregate[T any](list []T, granted func(T) bool, source Source) SearchResult[T] {
	if list == nil {
		list = []T{}
	}
	g := 0
	for _, rec := range list {
		if granted(rec) {
			g++
		}
	}
	return SearchResult[T]{
		Total:        len(list),
		Granted:      g,
		Applications: len(list) - g,
		List:         list,
		Source:       source,
	}
}

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
)

func TestGrantedPatents_Query(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/patents/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"patents": [
				{"patent_number": "10999888", "patent_title": "Wearable dialyzer",
				 "patent_date": "2021-05-04", "app_date": "2019-02-11"},
				{"patent_number": "D900001", "patent_title": "Housing design",
				 "patent_date": "", "app_date": "2020-08-30"}
			],
			"total_patent_count": 2
		}`))
	}))
	defer srv.Close()

	a := NewGrantedPatents(testProviderConfig(srv.URL), logging.NewNopLogger())
	got, err := a.Query(context.Background(), "KidneyAide")
	require.NoError(t, err)

	// The query body carries both an exact and a text-contains clause on the
	// assignee organization.
	q, ok := gotBody["q"].(map[string]interface{})
	require.True(t, ok)
	or, ok := q["_or"].([]interface{})
	require.True(t, ok)
	require.Len(t, or, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "10999888", got[0].PatentNumber)
	assert.Equal(t, "Granted", got[0].Status)
	require.NotNil(t, got[0].PatentDate)
	assert.Equal(t, "2021-05-04", *got[0].PatentDate)

	assert.Equal(t, "Pending", got[1].Status)
	assert.Nil(t, got[1].PatentDate)
	assert.Empty(t, got[1].Type)
}

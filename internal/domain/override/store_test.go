package override

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kidney-Aide, Inc.", "kidneyaide"},
		{"KIDNEYAIDE", "kidneyaide"},
		{"Acme", "acme"},
		{"  A&B Labs LLC ", "ablabsllc"},
		{"日本株式会社", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Kidney-Aide, Inc.", "Acme Corp #42", "x"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestUpsertAndLookup(t *testing.T) {
	s := NewStore()

	key, err := s.Upsert("Kidney-Aide, Inc.", []records.Patent{{PatentNumber: "16/123456"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "kidneyaide", key)

	rec, ok := s.Lookup("kidneyaide")
	require.True(t, ok)
	assert.Equal(t, "Kidney-Aide, Inc.", rec.Name)
	assert.Len(t, rec.Patents, 1)
	// Missing trademark list defaults to empty, not nil.
	require.NotNil(t, rec.Trademarks)
	assert.Empty(t, rec.Trademarks)
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	s := NewStore()
	_, err := s.Upsert("Acme", []records.Patent{{PatentNumber: "1"}}, nil)
	require.NoError(t, err)
	_, err = s.Upsert("ACME", nil, []records.Trademark{{SerialNumber: "88123456"}})
	require.NoError(t, err)

	rec, ok := s.Lookup("acme")
	require.True(t, ok)
	assert.Equal(t, "ACME", rec.Name)
	assert.Empty(t, rec.Patents)
	assert.Len(t, rec.Trademarks, 1)
	assert.Equal(t, 1, s.Len())
}

func TestUpsert_EmptyNameRejected(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"", "   ", "---"} {
		_, err := s.Upsert(name, nil, nil)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.IsValidation(err))
	}
	assert.Equal(t, 0, s.Len())
}

func TestDelete(t *testing.T) {
	s := NewStore()
	_, err := s.Upsert("Acme", nil, nil)
	require.NoError(t, err)

	// Delete matches through normalization.
	assert.True(t, s.Delete("A.C.M.E"))
	assert.False(t, s.Delete("Acme"))
	assert.Equal(t, 0, s.Len())
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := NewStore()
	_, err := s.Upsert("Acme", nil, nil)
	require.NoError(t, err)

	all := s.All()
	delete(all, "acme")

	_, ok := s.Lookup("acme")
	assert.True(t, ok, "mutating the All() copy must not touch the store")
}

func TestSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
	  {"name": "KidneyAide", "patents": [
	    {"patent_number": "16/111111", "patent_title": "Dialysis aid", "app_date": "2019-04-02", "patent_date": null, "status": "Pending"}
	  ], "trademarks": []},
	  {"name": "", "patents": [], "trademarks": []}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	recs, err := ReadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	s := NewStore()
	assert.Equal(t, 1, s.Seed(recs), "empty-name entries are skipped")

	rec, ok := s.Lookup("kidneyaide")
	require.True(t, ok)
	assert.Equal(t, "Dialysis aid", rec.Patents[0].PatentTitle)
	assert.False(t, rec.Patents[0].Granted())
}

func TestReadSeedFile_Errors(t *testing.T) {
	_, err := ReadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadSeedFile(bad)
	assert.Error(t, err)
}

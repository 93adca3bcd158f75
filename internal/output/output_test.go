package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visahunt/internal/domain"
)

func TestTableDedupeKeepsFirst(t *testing.T) {
	tbl := NewTable("Company URL")
	acme := domain.CompanyRecord{Name: "Acme", URL: "https://www.linkedin.com/company/acme/"}

	assert.True(t, tbl.Add(domain.CompanyRow{Country: "Germany", Keyword: "DevOps", Company: acme}.Fields()))
	assert.False(t, tbl.Add(domain.CompanyRow{Country: "France", Keyword: "DevOps", Company: acme}.Fields()))

	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, 1, tbl.Dropped())
	assert.Equal(t, []string{"Country", "Keyword", "Company", "Company URL", "Recruiters"}, tbl.Columns())
	assert.Equal(t, [][]string{{"Germany", "DevOps", "Acme", acme.URL, "Not Found"}}, tbl.Records())
}

func TestTableIrregularColumns(t *testing.T) {
	tbl := NewTable("job_link")
	tbl.Add(domain.JobRecord{Source: domain.SourceLever, Company: "Spotify", Link: "l1"}.Fields())
	tbl.Add(domain.JobRecord{Source: domain.SourceLinkedIn, Role: "SRE", Country: "Germany", Link: "l2"}.Fields())
	tbl.Add(domain.JobRecord{Source: domain.SourceIndeed, Role: "SRE", Country: "Poland", Link: "l1"}.Fields())

	assert.Equal(t, []string{"source", "company", "job_link", "role", "country"}, tbl.Columns())
	assert.Equal(t, [][]string{
		{"Lever", "Spotify", "l1", "", ""},
		{"LinkedIn", "", "l2", "SRE", "Germany"},
	}, tbl.Records())
}

func TestTableKeyColumnUnique(t *testing.T) {
	tbl := NewTable("job_link")
	links := []string{"a", "b", "a", "c", "b", "a"}
	for _, l := range links {
		tbl.Add(domain.JobRecord{Source: domain.SourceGreenhouse, Company: "X", Link: l}.Fields())
	}

	seen := map[string]bool{}
	keyIdx := 2
	for _, rec := range tbl.Records() {
		assert.False(t, seen[rec[keyIdx]], "duplicate %q", rec[keyIdx])
		seen[rec[keyIdx]] = true
	}
	assert.Equal(t, 3, tbl.Len())
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "visa_jobs.csv")
	tbl := NewTable("job_link")
	tbl.Add(domain.JobRecord{Source: domain.SourceLinkedIn, Role: "DevOps, Cloud", Country: "Germany", Link: "https://x/1"}.Fields())

	require.NoError(t, WriteCSV(path, tbl))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"source", "role", "country", "job_link"},
		{"LinkedIn", "DevOps, Cloud", "Germany", "https://x/1"},
	}, recs)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteCSVEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, NewTable("job_link")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(b))
}

func TestWriteCSVLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.csv")
	other := flock.New(path + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer other.Unlock()

	err = WriteCSV(path, NewTable("job_link"))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestWriteCSVKeepsLockFileAndReleasesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, WriteCSV(path, NewTable("job_link")))
	require.FileExists(t, path+".lock")

	next := flock.New(path + ".lock")
	locked, err := next.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)
	require.NoError(t, next.Unlock())

	require.NoError(t, WriteCSV(path, NewTable("job_link")))
}

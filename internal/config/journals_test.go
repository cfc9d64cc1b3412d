package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-radar/internal/domain/entity"
)

func TestDefaultJournals(t *testing.T) {
	journals := DefaultJournals()

	assert.Len(t, journals, 19)
	seen := make(map[string]bool, len(journals))
	for _, j := range journals {
		require.NoError(t, j.Validate())
		assert.False(t, seen[j.ID], "duplicate journal id %s", j.ID)
		seen[j.ID] = true
	}
}

func TestLoadJournals_DefaultsWhenUnset(t *testing.T) {
	t.Setenv("JOURNALS_FILE", "")

	journals, err := LoadJournals()

	require.NoError(t, err)
	assert.Equal(t, DefaultJournals(), journals)
}

func TestLoadJournals_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journals.yaml")
	content := `
- name: Nature Plants
  id: nature_plants
  rss: https://www.nature.com/nplants.rss
- name: The Crop Journal
  id: crop_journal
  rss: https://rss.sciencedirect.com/publication/science/22145141
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("JOURNALS_FILE", path)

	journals, err := LoadJournals()

	require.NoError(t, err)
	want := []entity.Journal{
		{Name: "Nature Plants", ID: "nature_plants", FeedURL: "https://www.nature.com/nplants.rss"},
		{Name: "The Crop Journal", ID: "crop_journal", FeedURL: "https://rss.sciencedirect.com/publication/science/22145141"},
	}
	if diff := cmp.Diff(want, journals); diff != "" {
		t.Errorf("loaded journals mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJournals_MissingFileIsError(t *testing.T) {
	t.Setenv("JOURNALS_FILE", "/nonexistent/journals.yaml")

	_, err := LoadJournals()

	assert.Error(t, err)
}

func TestLoadJournals_InvalidEntryIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journals.yaml")
	content := `
- name: Missing Feed
  id: missing_feed
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("JOURNALS_FILE", path)

	_, err := LoadJournals()

	assert.Error(t, err)
}

func TestLoadJournals_EmptyFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	t.Setenv("JOURNALS_FILE", path)

	_, err := LoadJournals()

	assert.Error(t, err)
}

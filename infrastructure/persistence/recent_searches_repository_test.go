package persistence_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"music-stream/infrastructure/persistence"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "recent_searches.json")
}

func TestAddDeduplicatesToFront(t *testing.T) {
	repo := persistence.NewRecentSearchesRepository(tempStorePath(t))

	repo.Add("rock")
	repo.Add("pop")
	repo.Add("rock")

	assert.Equal(t, []string{"rock", "pop"}, repo.Recent(0))
}

func TestAddNormalizesQueries(t *testing.T) {
	repo := persistence.NewRecentSearchesRepository(tempStorePath(t))

	repo.Add("  Jazz  ")
	repo.Add("JAZZ")

	assert.Equal(t, []string{"jazz"}, repo.Recent(0))
}

func TestAddRejectsTooShortQueries(t *testing.T) {
	repo := persistence.NewRecentSearchesRepository(tempStorePath(t))

	repo.Add("a")
	repo.Add(" x ")
	repo.Add("")

	assert.Empty(t, repo.Recent(0))
}

func TestLogIsCappedAtTwenty(t *testing.T) {
	repo := persistence.NewRecentSearchesRepository(tempStorePath(t))

	for i := 1; i <= 21; i++ {
		repo.Add(fmt.Sprintf("query-%02d", i))
	}

	got := repo.Recent(0)
	require.Len(t, got, 20)
	assert.Equal(t, "query-21", got[0])
	assert.Equal(t, "query-02", got[19], "the oldest entry is dropped first")
}

func TestRecentHonorsLimit(t *testing.T) {
	repo := persistence.NewRecentSearchesRepository(tempStorePath(t))
	for i := 1; i <= 8; i++ {
		repo.Add(fmt.Sprintf("query-%d", i))
	}

	assert.Len(t, repo.Recent(5), 5)
	assert.Equal(t, []string{"query-8", "query-7", "query-6", "query-5", "query-4"}, repo.Recent(5))
	assert.Len(t, repo.Recent(50), 8)
}

func TestStateSurvivesReload(t *testing.T) {
	path := tempStorePath(t)

	repo := persistence.NewRecentSearchesRepository(path)
	repo.Add("indie")
	repo.Add("synthwave")

	reloaded := persistence.NewRecentSearchesRepository(path)
	assert.Equal(t, []string{"synthwave", "indie"}, reloaded.Recent(0))
}

func TestPersistedFileIsPlainJSONArray(t *testing.T) {
	path := tempStorePath(t)
	repo := persistence.NewRecentSearchesRepository(path)
	repo.Add("ambient")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var searches []string
	require.NoError(t, json.Unmarshal(data, &searches))
	assert.Equal(t, []string{"ambient"}, searches)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := persistence.NewRecentSearchesRepository(path)
	assert.Empty(t, repo.Recent(0))

	// The log still works, and the next save repairs the file.
	repo.Add("metal")
	assert.Equal(t, []string{"metal"}, repo.Recent(0))
}

package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store/memory"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	in := models.SeedProvinces()
	require.NoError(t, SaveJSON(d, FileProvinces, in))

	out, ok, err := LoadJSON[models.Province](d, FileProvinces)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestLoadMissingFileReportsAbsent(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	items, ok, err := LoadJSON[models.Province](d, FileProvinces)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestSaveKeepsAccentsUnescaped(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, SaveJSON(d, FileProvinces, []models.Province{
		{ID: 4, Name: "Bié", Capital: "Kuito"},
		{ID: 7, Name: "Cuanza Norte", Capital: "N'dalatando"},
	}))

	raw, err := os.ReadFile(filepath.Join(d.Path(), "provinces.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Bié")
	assert.Contains(t, string(raw), "N'dalatando")
	assert.NotContains(t, string(raw), `\u`)
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, SaveJSON(d, FileSchools, []models.School(nil)))

	raw, err := os.ReadFile(filepath.Join(d.Path(), "schools.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, SaveJSON(d, FileMarkets, models.SeedMarkets()))

	entries, err := os.ReadDir(d.Path())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestExportRoundTrip(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	in := memory.SeedExport()
	require.NoError(t, SaveExport(d, in))

	out, err := LoadExport(d)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadExportFallsBackToSeeds(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	out, err := LoadExport(d)
	require.NoError(t, err)
	assert.Equal(t, memory.SeedExport(), out)
}

package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geojson2poly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `{"features":[{"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`

func TestProcessJobs(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.geojson")
	require.NoError(t, os.WriteFile(good, []byte(square), 0644))

	yamlIn := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(yamlIn, []byte("features:\n  - geometry: {type: Polygon, coordinates: [[[0,0],[1,0],[1,1],[0,0]]]}\n"), 0644))

	bad := filepath.Join(dir, "bad.geojson")
	require.NoError(t, os.WriteFile(bad, []byte(`{"features": 1}`), 0644))

	jobs := []config.Job{
		{Name: "good", Input: good, Output: filepath.Join(dir, "good.poly")},
		{Name: "bad", Input: bad, Output: filepath.Join(dir, "bad.poly")},
		{Name: "yaml", Input: yamlIn, Output: filepath.Join(dir, "yaml.poly")},
	}

	res, err := ProcessJobs(jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 jobs failed")
	assert.Equal(t, Result{Succeeded: 2, Failed: 1}, res)

	jsonOut, err := os.ReadFile(filepath.Join(dir, "good.poly"))
	require.NoError(t, err)
	yamlOut, err := os.ReadFile(filepath.Join(dir, "yaml.poly"))
	require.NoError(t, err)
	assert.Equal(t, string(jsonOut), string(yamlOut))
	assert.Contains(t, string(jsonOut), "   1.0000000   1.0000000\n")

	_, err = os.Stat(filepath.Join(dir, "bad.poly"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessJobsExplicitFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "square.txt")
	require.NoError(t, os.WriteFile(in, []byte("features: []\n"), 0644))

	res, err := ProcessJobs([]config.Job{{Name: "txt", Input: in, Output: filepath.Join(dir, "out.poly"), Format: "yaml"}})
	require.NoError(t, err)
	assert.Equal(t, Result{Succeeded: 1}, res)
}

func TestFilterJobs(t *testing.T) {
	jobs := []config.Job{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Equal(t, jobs, FilterJobs(jobs, nil))
	assert.Equal(t,
		[]config.Job{{Name: "c"}, {Name: "a"}},
		FilterJobs(jobs, []string{"c", "missing", "a", "c"}))
	assert.Empty(t, FilterJobs(jobs, []string{"missing"}))
}

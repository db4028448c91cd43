package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEvents = `#	Event	1	weight	1	EPangle	0	N_hadrons	4
0 211 27 120.0 120.0 0.0 0.0
1 -211 27 100.0 -100.0 0.0 0.0
2 13 27 30.0 0.0 30.0 0.0
3 -14 27 25.0 0.0 -25.0 0.0
#	Event	2	weight	1	EPangle	0	N_hadrons	1
0 2212 27 10.0 1.0 2.0 3.0
`

const sampleConfig = `
min_track_pt: 0.
jetR: [0.4]
min_jet_pt: 80.
n_event_max: 10
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRealMainInvalidArguments(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, realMain("jetscape_ttbar", nil, &stderr))
	assert.Contains(t, stderr.String(), "Usage: jetscape_ttbar")
	assert.Contains(t, stderr.String(), "Invalid arguments")
}

func TestRealMainRun(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", sampleConfig)
	in := writeFile(t, dir, "final_state_hadrons.dat", sampleEvents)
	out := filepath.Join(dir, "out.yoda")
	prom := filepath.Join(dir, "ttbar.prom")

	var stderr bytes.Buffer
	code := realMain("jetscape_ttbar", []string{"-c", cfg, "-o", out, "-metrics", prom, "-workers", "2", in}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 6+4, strings.Count(string(raw), "BEGIN YODA_HISTO1D"))
	assert.Contains(t, string(raw), "hJetPt_R0.4")

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "ttbar_events_processed_total")
}

func TestRealMainKeepsProfileOnFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "final_state_hadrons.dat", sampleEvents)

	var stderr bytes.Buffer
	code := realMain("jetscape_ttbar", []string{
		"-profile", "-profile-dir", dir,
		"-c", filepath.Join(dir, "missing.yaml"),
		in,
	}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "jetscape_ttbar failed")

	_, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	assert.NoError(t, err, "the profile is flushed before exiting")
}

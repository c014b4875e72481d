package bplan_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiploc/vstp/internal/bplan"
)

func writeGzipFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	for _, l := range lines {
		_, err := gz.Write([]byte(l + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	return path
}

func writeFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var content string
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func tabJoin(fields ...string) string {
	out := fields[0]
	for _, f := range fields[1:] {
		out += "\t" + f
	}
	return out
}

func locLine(tiploc, name, easting, northing string) string {
	f := make([]string, 13)
	f[0] = "LOC"
	f[1] = "A"
	f[2] = tiploc
	f[3] = name
	f[4] = ""
	f[5] = ""
	f[6] = easting
	f[7] = northing
	f[8] = "CI"
	f[9] = "ZN"
	f[10] = "12345"
	f[11] = "N"
	f[12] = "N"
	return tabJoin(f...)
}

func nwkLine(origin, dest, lineCode, lineDesc, initDir, finalDir, distance, reversible string) string {
	f := make([]string, 19)
	f[0] = "NWK"
	f[1] = "A"
	f[2] = origin
	f[3] = dest
	f[4] = lineCode
	f[5] = lineDesc
	f[6] = ""
	f[7] = ""
	f[8] = initDir
	f[9] = finalDir
	f[10] = distance
	f[11] = "N"
	f[12] = "N"
	f[13] = ""
	f[14] = "Z1"
	f[15] = reversible
	f[16] = "DC"
	f[17] = "7"
	f[18] = "775"
	return tabJoin(f...)
}

func TestLoadParsesLocAndNwk(t *testing.T) {
	dir := t.TempDir()
	locPath := writeFile(t, dir, "LOC", []string{
		locLine("CREWE", "Crewe", "471500", "355400"),
		locLine("DRBY", "Derby", "435700", "335800"),
		"LOC\tA\tSHORT", // malformed, too few fields
	})
	nwkPath := writeFile(t, dir, "NWK", []string{
		nwkLine("CREWE", "DRBY", "FL", "FAST LINE", "D", "D", "5000", "Y"),
		nwkLine("CREWE", "DRBY", "BUS", "", "D", "D", "100", "N"),
	})

	locs, links, stats, err := bplan.Load(locPath, nwkPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.LocationsLoaded)
	assert.Equal(t, 1, stats.LinksLoaded)
	assert.Equal(t, 1, stats.LinksSkippedBus)
	assert.Equal(t, 1, stats.LinesSkippedShort)

	rec, ok := locs.Get("CREWE")
	require.True(t, ok)
	assert.Equal(t, "Crewe", rec.Name)

	assert.True(t, links.HasTiploc("CREWE"))
	assert.Equal(t, 5000, links.MinDistance("CREWE", "DRBY"))
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	nwkPath := writeFile(t, dir, "NWK", []string{nwkLine("A", "B", "FL", "", "U", "U", "100", "N")})

	_, _, _, err := bplan.Load(filepath.Join(dir, "does-not-exist"), nwkPath, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bplan.ErrMissingFile))

	var mfe *bplan.MissingFileError
	require.ErrorAs(t, err, &mfe)
}

func TestLoadAcceptsGzippedInput(t *testing.T) {
	dir := t.TempDir()
	locPath := writeGzipFile(t, dir, "LOC.gz", []string{locLine("CREWE", "Crewe", "471500", "355400")})
	nwkPath := writeGzipFile(t, dir, "NWK.gz", []string{nwkLine("CREWE", "DRBY", "FL", "FAST LINE", "D", "D", "5000", "Y")})

	locs, links, stats, err := bplan.Load(locPath, nwkPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LocationsLoaded)
	assert.Equal(t, 1, stats.LinksLoaded)

	_, ok := locs.Get("CREWE")
	assert.True(t, ok)
	assert.Equal(t, 5000, links.MinDistance("CREWE", "DRBY"))
}

func TestFingerprintStableAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	locPath := writeFile(t, dir, "LOC", []string{locLine("CREWE", "Crewe", "471500", "355400")})
	nwkPath := writeFile(t, dir, "NWK", []string{nwkLine("A", "B", "FL", "", "U", "U", "100", "N")})

	f1, err := bplan.Fingerprint(locPath, nwkPath)
	require.NoError(t, err)
	f2, err := bplan.Fingerprint(locPath, nwkPath)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

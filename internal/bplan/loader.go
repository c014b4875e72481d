package bplan

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gotidy/ptr"
	"github.com/klauspost/compress/gzip"

	"github.com/tiploc/vstp/internal/topology"
)

// Expected minimum field counts per record type — lines with fewer fields
// are silently skipped as malformed records. LOC fields are mapped
// through index 12; NWK's published schema has 19 fields.
const (
	locMinFields = 13
	nwkMinFields = 19
)

// ParseStats reports what happened during a Load, purely for observability
// — none of these counters feed back into planning behaviour.
type ParseStats struct {
	LocationsLoaded   int
	LinksLoaded       int
	LinksSkippedBus   int
	LinesSkippedShort int
}

// Load reads locPath (LOC records) and nwkPath (NWK records), populating
// and returning a fresh LocationStore and LinkStore. Either path missing
// is a fatal, distinguished error (*MissingFileError).
func Load(locPath, nwkPath string, logger *slog.Logger) (*topology.LocationStore, *topology.LinkStore, ParseStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	locs := topology.NewLocationStore()
	links := topology.NewLinkStore()
	var stats ParseStats

	locLines, err := readLines(locPath)
	if err != nil {
		return nil, nil, stats, err
	}
	for _, fields := range locLines {
		if len(fields) < locMinFields {
			stats.LinesSkippedShort++
			continue
		}
		locs.Insert(parseLocationRecord(fields))
		stats.LocationsLoaded++
	}

	nwkLines, err := readLines(nwkPath)
	if err != nil {
		return nil, nil, stats, err
	}
	for _, fields := range nwkLines {
		if len(fields) < nwkMinFields {
			stats.LinesSkippedShort++
			continue
		}
		link := parseNetworkLink(fields)
		if topology.IsBusLink(link.LineCode, link.LineDescription) {
			stats.LinksSkippedBus++
			continue
		}
		links.Insert(link)
		stats.LinksLoaded++
	}

	logger.Info("bplan: load complete",
		"locations", stats.LocationsLoaded,
		"links", stats.LinksLoaded,
		"links_skipped_bus", stats.LinksSkippedBus,
		"lines_skipped_short", stats.LinesSkippedShort,
	)

	return locs, links, stats, nil
}

// readLines opens path and splits each line on the tab character,
// returning the field slices. A missing file is reported as
// *MissingFileError rather than the raw os error. A path ending in ".gz"
// is transparently decompressed (distributed BPLAN extracts are routinely
// shipped gzipped) via klauspost/compress, whose gzip reader is a drop-in
// for compress/gzip but noticeably faster on the multi-megabyte NWK
// extracts this loader sees in practice.
func readLines(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, missingFile(path)
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	var out [][]string
	scanner := bufio.NewScanner(r)
	// BPLAN lines can exceed bufio.Scanner's default 64KiB token size in
	// degenerate cases (e.g. schedule extracts); the LOC/NWK files the
	// planner consumes never approach this, but size generously anyway.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		out = append(out, strings.Split(line, "\t"))
	}

	return out, scanner.Err()
}

func parseLocationRecord(f []string) *topology.LocationRecord {
	rec := &topology.LocationRecord{
		TIPLOC:          f[2],
		Name:            f[3],
		TimingPointType: f[8],
		Zone:            f[9],
		Stanox:          f[10],
		OffNetwork:      f[11],
		ForceLPB:        strings.TrimRight(f[12], "\n\r \t"),
	}

	if e, err := strconv.Atoi(strings.TrimSpace(f[6])); err == nil {
		rec.Easting = ptr.Int(e)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f[7])); err == nil {
		rec.Northing = ptr.Int(n)
	}

	return rec
}

func parseNetworkLink(f []string) *topology.NetworkLink {
	link := &topology.NetworkLink{
		Origin:           f[2],
		Destination:      f[3],
		LineCode:         strings.TrimSpace(f[4]),
		LineDescription:  strings.TrimSpace(f[5]),
		InitialDirection: f[8],
		FinalDirection:   f[9],
		Reversible:       f[15],
	}

	if d, err := strconv.Atoi(strings.TrimSpace(f[10])); err == nil {
		link.Distance = ptr.Int(d)
	}

	if len(f) > 18 {
		link.MaxLength = strings.TrimRight(f[18], "\n\r \t")
	}

	return link
}

// Command vstp plans a route across a BPLAN network extract.
//
// Exit codes: 0 on success, including a partial result with missing legs
// (a diagnostic is printed, but the process still exits 0); non-zero only
// when request validation fails or an input file is missing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/tiploc/vstp/internal/bplan"
	"github.com/tiploc/vstp/internal/config"
	"github.com/tiploc/vstp/internal/events"
	"github.com/tiploc/vstp/internal/geo"
	"github.com/tiploc/vstp/internal/planner"
	"github.com/tiploc/vstp/internal/request"
	"github.com/tiploc/vstp/internal/snapshot"
	"github.com/tiploc/vstp/internal/topology"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vstp", flag.ContinueOnError)
	locPath := fs.String("loc", "", "path to the BPLAN LOC file")
	nwkPath := fs.String("nwk", "", "path to the BPLAN NWK file")
	start := fs.String("start", "", "start TIPLOC")
	end := fs.String("end", "", "end TIPLOC")
	via := fs.String("via", "", "comma-separated via TIPLOCs")
	avoid := fs.String("avoid", "", "comma-separated avoid TIPLOCs")
	legsFlag := fs.Bool("legs", false, "group output by leg")
	jsonOut := fs.Bool("json", false, "emit JSON instead of plain text")
	geojsonOut := fs.Bool("geojson", false, "emit a GeoJSON FeatureCollection instead of plain text")
	dumpLocations := fs.String("dump-locations", "", "fuzzy-search known TIPLOCs/names by QUERY and exit")
	snapshotPath := fs.String("snapshot", "", "SQLite cache path (see internal/snapshot)")
	natsURL := fs.String("nats-url", "", "NATS URL for optional route.computed events")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	dumpLocationsSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dump-locations" {
			dumpLocationsSet = true
		}
	})

	logger := newLogger()
	cfg := config.New(
		config.WithInputFiles(*locPath, *nwkPath),
		config.WithSnapshotPath(*snapshotPath),
		config.WithEvents(*natsURL, ""),
		config.FromEnv(),
	)

	locs, links, err := loadTopology(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if dumpLocationsSet {
		dumpLocationsMatching(locs, *dumpLocations)
		return 0
	}

	pub, err := events.New(cfg.NATSURL, cfg.EventsSubjectPrefix, logger)
	if err != nil {
		logger.Warn("vstp: events disabled, connect failed", "error", err)
	}
	defer pub.Close()

	in := request.Input{
		Start:  *start,
		End:    *end,
		Via:    splitList(*via),
		Avoid:  splitList(*avoid),
		AsLegs: *legsFlag,
	}

	req, reqID, err := request.Validate(links, locs, in, cfg.SuggestionCap)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rp := planner.NewRoutePlanner(locs, links)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := rp.Plan(ctx, req)
	pub.PublishResult(reqID, req.Start, req.End, result)

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}

	switch {
	case *geojsonOut:
		printGeoJSON(result.Locations, locs)
	case *jsonOut:
		printJSON(result)
	default:
		printPlain(result)
	}

	return 0
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadTopology loads the BPLAN pair directly, unless a snapshot path is
// configured and its recorded fingerprint still matches the source files
// — in which case the cached tables are loaded instead of re-parsing.
func loadTopology(cfg *config.Config, logger *slog.Logger) (*topology.LocationStore, *topology.LinkStore, error) {
	if cfg.SnapshotPath == "" {
		locs, links, _, err := bplan.Load(cfg.LocPath, cfg.NWKPath, logger)
		return locs, links, err
	}

	store, err := snapshot.Open(cfg.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	fp, err := bplan.Fingerprint(cfg.LocPath, cfg.NWKPath)
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	if cached, ok, _ := store.Fingerprint(ctx); ok && cached == fp {
		logger.Info("vstp: snapshot hit", "fingerprint", fp)
		return store.Load(ctx)
	}

	locs, links, _, err := bplan.Load(cfg.LocPath, cfg.NWKPath, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Save(ctx, fp, locs, links); err != nil {
		logger.Warn("vstp: snapshot save failed", "error", err)
	}
	return locs, links, nil
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printPlain(result planner.Result) {
	if result.Legs != nil {
		for i, leg := range result.Legs {
			fmt.Printf("leg %d: %s\n", i+1, strings.Join(leg, " -> "))
		}
		return
	}
	fmt.Println(strings.Join(result.Locations, " -> "))
}

func printJSON(result planner.Result) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "vstp: marshal result:", err)
		return
	}
	fmt.Println(string(data))
}

func printGeoJSON(tiplocs []string, locs *topology.LocationStore) {
	points := make([]geo.Point, len(tiplocs))
	known := make([]bool, len(tiplocs))
	for i, t := range tiplocs {
		p, ok := locs.WGS(t)
		points[i], known[i] = p, ok
	}
	fc := geo.RouteFeatureCollection(tiplocs, points, known)
	data, err := fc.MarshalJSON()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vstp: marshal geojson:", err)
		return
	}
	fmt.Println(string(data))
}

// dumpLocationsMatching lists every TIPLOC whose code or name fuzzy-
// matches query (see topology.LocationStore.FuzzyMatch), or every known
// TIPLOC when query is empty.
func dumpLocationsMatching(locs *topology.LocationStore, query string) {
	var results []string
	if query == "" {
		results = locs.Tiplocs()
	} else {
		results = locs.FuzzyMatch(query)
	}

	stamp := strftime.Format("%Y-%m-%d %H:%M:%S", time.Now())
	fmt.Printf("# %s matching TIPLOCs as of %s\n", humanize.Comma(int64(len(results))), stamp)
	for _, r := range results {
		fmt.Println(r)
	}
}

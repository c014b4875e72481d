// Command routesvc exposes the route planner over HTTP via fasthttp:
// POST /route accepts a JSON request body and returns the planned route,
// optionally as a GeoJSON FeatureCollection (?format=geojson).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/tiploc/vstp/internal/bplan"
	"github.com/tiploc/vstp/internal/config"
	"github.com/tiploc/vstp/internal/events"
	"github.com/tiploc/vstp/internal/geo"
	"github.com/tiploc/vstp/internal/planner"
	"github.com/tiploc/vstp/internal/request"
	"github.com/tiploc/vstp/internal/topology"
)

type routeRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Via    any    `json:"via"`
	Avoid  any    `json:"avoid"`
	AsLegs bool   `json:"as_legs"`
}

type errorResponse struct {
	RequestID string   `json:"request_id"`
	Kind      string   `json:"kind"`
	Tiploc    string   `json:"tiploc,omitempty"`
	Arg       string   `json:"argument,omitempty"`
	Suggest   []string `json:"suggestions,omitempty"`
}

type server struct {
	locs   *topology.LocationStore
	links  *topology.LinkStore
	rp     *planner.RoutePlanner
	pub    *events.Publisher
	logger *slog.Logger
	cfg    *config.Config
}

func main() {
	locPath := flag.String("loc", "", "path to the BPLAN LOC file")
	nwkPath := flag.String("nwk", "", "path to the BPLAN NWK file")
	addr := flag.String("addr", ":8080", "listen address")
	natsURL := flag.String("nats-url", "", "NATS URL for optional route.computed events")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.New(
		config.WithInputFiles(*locPath, *nwkPath),
		config.WithEvents(*natsURL, ""),
		config.FromEnv(),
	)

	locs, links, _, err := bplan.Load(cfg.LocPath, cfg.NWKPath, logger)
	if err != nil {
		logger.Error("routesvc: load failed", "error", err)
		os.Exit(1)
	}

	pub, err := events.New(cfg.NATSURL, cfg.EventsSubjectPrefix, logger)
	if err != nil {
		logger.Warn("routesvc: events disabled, connect failed", "error", err)
	}
	defer pub.Close()

	s := &server{
		locs:   locs,
		links:  links,
		rp:     planner.NewRoutePlanner(locs, links),
		pub:    pub,
		logger: logger,
		cfg:    cfg,
	}

	logger.Info("routesvc: listening", "addr", *addr)
	if err := fasthttp.ListenAndServe(*addr, s.handle); err != nil {
		logger.Error("routesvc: serve failed", "error", err)
		os.Exit(1)
	}
}

func (s *server) handle(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/route" || !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}

	var body routeRequest
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetBodyString(`{"error":"malformed JSON body"}`)
		return
	}

	req, reqID, err := request.Validate(s.links, s.locs, request.Input{
		Start:  body.Start,
		End:    body.End,
		Via:    body.Via,
		Avoid:  body.Avoid,
		AsLegs: body.AsLegs,
	}, s.cfg.SuggestionCap)
	if err != nil {
		s.writeValidationError(ctx, reqID, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := s.rp.Plan(reqCtx, req)
	s.pub.PublishResult(reqID, req.Start, req.End, result)

	ctx.Response.Header.Set("X-Request-Id", reqID)

	if string(ctx.QueryArgs().Peek("format")) == "geojson" {
		s.writeGeoJSON(ctx, result)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *server) writeValidationError(ctx *fasthttp.RequestCtx, reqID string, err error) {
	ctx.SetStatusCode(fasthttp.StatusBadRequest)
	ctx.SetContentType("application/json")

	var rerr *request.Error
	resp := errorResponse{RequestID: reqID}
	if errors.As(err, &rerr) {
		resp.Kind = string(rerr.Kind)
		resp.Tiploc = rerr.Tiploc
		resp.Arg = rerr.Argument
		resp.Suggest = rerr.Suggestions
	}
	data, _ := json.Marshal(resp)
	ctx.SetBody(data)
}

func (s *server) writeGeoJSON(ctx *fasthttp.RequestCtx, result planner.Result) {
	points := make([]geo.Point, len(result.Locations))
	known := make([]bool, len(result.Locations))
	for i, t := range result.Locations {
		p, ok := s.locs.WGS(t)
		points[i], known[i] = p, ok
	}
	fc := geo.RouteFeatureCollection(result.Locations, points, known)
	data, err := fc.MarshalJSON()
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/vnd.geo+json")
	ctx.SetBody(data)
}

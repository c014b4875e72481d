package config

import (
	"os"
	"strconv"

	"github.com/tiploc/vstp/internal/request"
)

// Config holds the knobs that vary between a CLI invocation, an HTTP
// service instance, and a test fixture. It carries no behaviour of its
// own — every field is read by another package (request, snapshot,
// events).
type Config struct {
	// LocPath / NWKPath are the BPLAN input files (internal/bplan.Load).
	LocPath string
	NWKPath string

	// SuggestionCap bounds fuzzy-match suggestions on an unknown-tiploc
	// error (internal/request.Validate).
	SuggestionCap int

	// SnapshotPath, when non-empty, is the SQLite file internal/snapshot
	// uses to cache a parsed BPLAN pair keyed by its fingerprint. Empty
	// disables snapshotting.
	SnapshotPath string

	// NATSURL and EventsSubjectPrefix configure internal/events. An empty
	// NATSURL disables event publishing entirely.
	NATSURL             string
	EventsSubjectPrefix string
}

// Option mutates a Config under construction.
type Option func(*Config)

// New returns a Config with documented defaults, then applies opts in
// order; later options override earlier ones.
func New(opts ...Option) *Config {
	cfg := &Config{
		SuggestionCap:       request.DefaultSuggestionCap,
		EventsSubjectPrefix: "route",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithInputFiles sets the BPLAN LOC/NWK paths. A blank path is a no-op —
// callers that only want to override one of the two can pass "" for the
// other.
func WithInputFiles(locPath, nwkPath string) Option {
	return func(cfg *Config) {
		if locPath != "" {
			cfg.LocPath = locPath
		}
		if nwkPath != "" {
			cfg.NWKPath = nwkPath
		}
	}
}

// WithSuggestionCap overrides the fuzzy-suggestion cap. Non-positive
// values are a no-op (request.Validate treats <=0 as "uncapped").
func WithSuggestionCap(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.SuggestionCap = n
		}
	}
}

// WithSnapshotPath sets the SQLite cache path. Blank disables snapshotting.
func WithSnapshotPath(path string) Option {
	return func(cfg *Config) { cfg.SnapshotPath = path }
}

// WithEvents configures the optional NATS publisher. A blank natsURL
// disables it.
func WithEvents(natsURL, subjectPrefix string) Option {
	return func(cfg *Config) {
		cfg.NATSURL = natsURL
		if subjectPrefix != "" {
			cfg.EventsSubjectPrefix = subjectPrefix
		}
	}
}

// FromEnv returns an Option that overrides whatever was set so far with
// VSTP_* environment variables, if present: VSTP_LOC_PATH, VSTP_NWK_PATH,
// VSTP_SUGGESTION_CAP, VSTP_SNAPSHOT_PATH, VSTP_NATS_URL,
// VSTP_EVENTS_SUBJECT_PREFIX. Applying it last (as cmd/vstp and
// cmd/routesvc do) lets the environment win over CLI defaults without
// requiring every flag to itself understand env vars.
func FromEnv() Option {
	return func(cfg *Config) {
		if v, ok := os.LookupEnv("VSTP_LOC_PATH"); ok {
			cfg.LocPath = v
		}
		if v, ok := os.LookupEnv("VSTP_NWK_PATH"); ok {
			cfg.NWKPath = v
		}
		if v, ok := os.LookupEnv("VSTP_SUGGESTION_CAP"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				cfg.SuggestionCap = n
			}
		}
		if v, ok := os.LookupEnv("VSTP_SNAPSHOT_PATH"); ok {
			cfg.SnapshotPath = v
		}
		if v, ok := os.LookupEnv("VSTP_NATS_URL"); ok {
			cfg.NATSURL = v
		}
		if v, ok := os.LookupEnv("VSTP_EVENTS_SUBJECT_PREFIX"); ok && v != "" {
			cfg.EventsSubjectPrefix = v
		}
	}
}

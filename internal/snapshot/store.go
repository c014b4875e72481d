package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gotidy/ptr"
	_ "modernc.org/sqlite"

	"github.com/tiploc/vstp/internal/topology"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS locations (
	tiploc            TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	easting           INTEGER,
	northing          INTEGER,
	timing_point_type TEXT NOT NULL,
	zone              TEXT NOT NULL,
	stanox            TEXT NOT NULL,
	off_network       TEXT NOT NULL,
	force_lpb         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS links (
	origin             TEXT NOT NULL,
	destination        TEXT NOT NULL,
	line_code          TEXT NOT NULL,
	line_description   TEXT NOT NULL,
	initial_direction  TEXT NOT NULL,
	final_direction    TEXT NOT NULL,
	distance           INTEGER,
	reversible         TEXT NOT NULL,
	doop               TEXT NOT NULL,
	doonp              TEXT NOT NULL,
	retb               TEXT NOT NULL,
	zone               TEXT NOT NULL,
	power              TEXT NOT NULL,
	route_availability TEXT NOT NULL,
	max_length         TEXT NOT NULL,
	seq                INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_links_origin ON links(origin, seq);
`

const fingerprintKey = "fingerprint"

// Store wraps a SQLite-backed materialisation of a parsed BPLAN pair.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Fingerprint returns the fingerprint recorded by the last Save, or
// ok=false if the store is empty.
func (s *Store) Fingerprint(ctx context.Context) (string, bool, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, fingerprintKey).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("snapshot: read fingerprint: %w", err)
	}
	return fp, true, nil
}

// Save replaces the store's contents with locs/links and records
// fingerprint, all within one transaction.
func (s *Store) Save(ctx context.Context, fingerprint string, locs *topology.LocationStore, links *topology.LinkStore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM meta`, `DELETE FROM locations`, `DELETE FROM links`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("snapshot: clear tables: %w", err)
		}
	}

	for _, tpl := range locs.Tiplocs() {
		rec, ok := locs.Get(tpl)
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO locations (tiploc, name, easting, northing, timing_point_type, zone, stanox, off_network, force_lpb)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.TIPLOC, rec.Name, nullableInt(rec.Easting), nullableInt(rec.Northing),
			rec.TimingPointType, rec.Zone, rec.Stanox, rec.OffNetwork, rec.ForceLPB,
		); err != nil {
			return fmt.Errorf("snapshot: insert location %s: %w", tpl, err)
		}

		seq := 0
		for _, dest := range links.Neighbours(tpl) {
			for _, l := range links.LinksBetween(tpl, dest) {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO links (origin, destination, line_code, line_description, initial_direction, final_direction, distance, reversible, doop, doonp, retb, zone, power, route_availability, max_length, seq)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					l.Origin, l.Destination, l.LineCode, l.LineDescription, l.InitialDirection, l.FinalDirection,
					nullableInt(l.Distance), l.Reversible, l.DOOP, l.DOONP, l.RETB, l.Zone, l.Power, l.RouteAvailability, l.MaxLength, seq,
				); err != nil {
					return fmt.Errorf("snapshot: insert link %s->%s: %w", tpl, dest, err)
				}
				seq++
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, fingerprintKey, fingerprint); err != nil {
		return fmt.Errorf("snapshot: write fingerprint: %w", err)
	}

	return tx.Commit()
}

// Load reconstructs a LocationStore and LinkStore from the snapshot's
// current contents.
func (s *Store) Load(ctx context.Context) (*topology.LocationStore, *topology.LinkStore, error) {
	locs := topology.NewLocationStore()
	links := topology.NewLinkStore()

	locRows, err := s.db.QueryContext(ctx, `SELECT tiploc, name, easting, northing, timing_point_type, zone, stanox, off_network, force_lpb FROM locations`)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: query locations: %w", err)
	}
	defer locRows.Close()
	for locRows.Next() {
		var rec topology.LocationRecord
		var easting, northing sql.NullInt64
		if err := locRows.Scan(&rec.TIPLOC, &rec.Name, &easting, &northing, &rec.TimingPointType, &rec.Zone, &rec.Stanox, &rec.OffNetwork, &rec.ForceLPB); err != nil {
			return nil, nil, fmt.Errorf("snapshot: scan location: %w", err)
		}
		if easting.Valid {
			rec.Easting = ptr.Int(int(easting.Int64))
		}
		if northing.Valid {
			rec.Northing = ptr.Int(int(northing.Int64))
		}
		locs.Insert(&rec)
	}
	if err := locRows.Err(); err != nil {
		return nil, nil, err
	}

	linkRows, err := s.db.QueryContext(ctx, `
		SELECT origin, destination, line_code, line_description, initial_direction, final_direction, distance, reversible, doop, doonp, retb, zone, power, route_availability, max_length
		FROM links ORDER BY origin, seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: query links: %w", err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var l topology.NetworkLink
		var distance sql.NullInt64
		if err := linkRows.Scan(&l.Origin, &l.Destination, &l.LineCode, &l.LineDescription, &l.InitialDirection, &l.FinalDirection, &distance, &l.Reversible, &l.DOOP, &l.DOONP, &l.RETB, &l.Zone, &l.Power, &l.RouteAvailability, &l.MaxLength); err != nil {
			return nil, nil, fmt.Errorf("snapshot: scan link: %w", err)
		}
		if distance.Valid {
			l.Distance = ptr.Int(int(distance.Int64))
		}
		links.Insert(&l)
	}
	if err := linkRows.Err(); err != nil {
		return nil, nil, err
	}

	return locs, links, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tiploc/vstp/internal/config"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, 10, cfg.SuggestionCap)
	assert.Equal(t, "route", cfg.EventsSubjectPrefix)
	assert.Empty(t, cfg.SnapshotPath)
}

func TestWithInputFilesBlankIsNoOp(t *testing.T) {
	cfg := config.New(
		config.WithInputFiles("loc.dat", "nwk.dat"),
		config.WithInputFiles("", "override-nwk.dat"),
	)
	assert.Equal(t, "loc.dat", cfg.LocPath)
	assert.Equal(t, "override-nwk.dat", cfg.NWKPath)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("VSTP_SNAPSHOT_PATH", "/tmp/snapshot.db")
	t.Setenv("VSTP_SUGGESTION_CAP", "3")

	cfg := config.New(config.FromEnv())
	assert.Equal(t, "/tmp/snapshot.db", cfg.SnapshotPath)
	assert.Equal(t, 3, cfg.SuggestionCap)
}

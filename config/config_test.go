package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	os.Unsetenv("DB_DRIVER")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 168, cfg.JWT.ExpiryHours)
	assert.Equal(t, 6, cfg.Scoring.BallsPerOver)
	assert.Equal(t, 3*time.Second, cfg.Overlay.PollInterval)
	assert.Equal(t, "Clubhouse Cricket Club", cfg.Club.Name)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "week")
	_, err := Load(zerolog.Nop())
	assert.ErrorContains(t, err, "JWT_EXPIRY_HOURS")

	t.Setenv("JWT_EXPIRY_HOURS", "24")
	t.Setenv("OVERLAY_POLL_INTERVAL", "3")
	_, err = Load(zerolog.Nop())
	assert.ErrorContains(t, err, "OVERLAY_POLL_INTERVAL")

	t.Setenv("OVERLAY_POLL_INTERVAL", "1s")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = Load(zerolog.Nop())
	assert.ErrorContains(t, err, "mysql")
}

func TestLoadClubFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Riverside CC
short_name: RCC
balls_per_over: 8
colors:
  primary: "#003366"
scheduler:
  available_days: [sat]
  min_days_between_matches: 2
  venues:
    - name: Riverside Oval
      slots:
        - start: "10:00"
          end: "14:00"
`), 0o600))

	club, err := LoadClub(path)
	require.NoError(t, err)
	assert.Equal(t, "Riverside CC", club.Name)
	assert.Equal(t, 8, club.BallsPerOver)
	assert.Equal(t, "#003366", club.Colors.Primary)
	assert.Equal(t, []string{"sat"}, club.Scheduler.AvailableDays)
	require.Len(t, club.Scheduler.Venues, 1)
	assert.Equal(t, "14:00", club.Scheduler.Venues[0].Slots[0].End)

	t.Setenv("CLUB_CONFIG_PATH", path)
	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Scoring.BallsPerOver, "club file overrides the env default")
}

func TestLoadClubErrors(t *testing.T) {
	_, err := LoadClub(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read club config")

	path := filepath.Join(t.TempDir(), "club.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0o600))
	_, err = LoadClub(path)
	assert.ErrorContains(t, err, "parse club config")

	require.NoError(t, os.WriteFile(path, []byte("name: \"\"\n"), 0o600))
	_, err = LoadClub(path)
	assert.ErrorContains(t, err, "name is required")
}

func TestOpenSQLite(t *testing.T) {
	db, err := OpenSQLite("file::memory:")
	require.NoError(t, err)
	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

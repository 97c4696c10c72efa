package match

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/scoring"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&TournamentMatch{}, &BallByBall{}))
	return db
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Scoring.BallsPerOver = 6
	cfg.Overlay.PollInterval = 20 * time.Millisecond

	r := gin.New()
	MatchRoutes(r.Group("/api"), db, cfg, zerolog.Nop())
	return r
}

// seedMatch stores a chase: Lions made 5/1, Tigers are 4/0 after two legal balls.
func seedMatch(t *testing.T, db *gorm.DB) *TournamentMatch {
	t.Helper()
	m := &TournamentMatch{TournamentID: 1, Team1Name: "Lions", Team2Name: "Tigers", Status: StatusMatchLive}
	require.NoError(t, db.Create(m).Error)

	balls := []BallByBall{
		{Innings: 1, OverNumber: 1, BallNumber: 1, Batsman: "Alice", NonStriker: "Bob", Bowler: "Zed", Runs: 4, IsFour: true, WagonWheelZone: 1, BattingTeam: "Lions"},
		{Innings: 1, OverNumber: 1, BallNumber: 2, Batsman: "Alice", NonStriker: "Bob", Bowler: "Zed", IsWicket: true, WicketType: scoring.WicketBowled, BattingTeam: "Lions"},
		{Innings: 1, OverNumber: 1, BallNumber: 3, Batsman: "Carl", NonStriker: "Bob", Bowler: "Zed", Runs: 1, BattingTeam: "Lions"},
		{Innings: 2, OverNumber: 1, BallNumber: 1, Batsman: "Dan", NonStriker: "Eve", Bowler: "Yan", Runs: 2, WagonWheelZone: 3, BattingTeam: "Tigers"},
		{Innings: 2, OverNumber: 1, BallNumber: 2, Batsman: "Dan", NonStriker: "Eve", Bowler: "Yan", Extras: 1, ExtraType: scoring.ExtraWide, BattingTeam: "Tigers"},
		{Innings: 2, OverNumber: 1, BallNumber: 3, Batsman: "Dan", NonStriker: "Eve", Bowler: "Yan", Runs: 1, BattingTeam: "Tigers"},
	}
	for i := range balls {
		balls[i].MatchID = m.ID
	}
	require.NoError(t, db.Create(&balls).Error)
	return m
}

func get(t *testing.T, r http.Handler, path string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestTournamentMatchValidate(t *testing.T) {
	m := TournamentMatch{Team1Name: "Lions", Team2Name: " lions "}
	assert.ErrorIs(t, m.Validate(), ErrSameTeams)

	m = TournamentMatch{Team1ID: 3, Team2ID: 3, Team1Name: "A", Team2Name: "B"}
	assert.ErrorIs(t, m.Validate(), ErrSameTeams)

	m = TournamentMatch{Team1Name: "A", Team2Name: "B", MatchDate: "17/10/2026"}
	assert.ErrorIs(t, m.Validate(), ErrBadMatchDate)

	m = TournamentMatch{Team1Name: "A", Team2Name: "B", MatchDate: "2026-10-17T10:00:00"}
	require.NoError(t, m.Validate())
	assert.Equal(t, StatusMatchScheduled, m.Status)

	m.MatchDate = "2026-10-17"
	assert.NoError(t, m.Validate())
}

func TestBallByBallValidate(t *testing.T) {
	b := BallByBall{Runs: 6}
	require.NoError(t, b.Validate())
	assert.True(t, b.IsSix)
	assert.False(t, b.IsFour)

	b = BallByBall{WicketType: scoring.WicketCaught}
	assert.ErrorIs(t, b.Validate(), ErrWicketTypeOnly)

	legal := false
	b = BallByBall{MatchID: 9, Innings: 2, Extras: 1, ExtraType: scoring.ExtraNoBall, IsLegalDelivery: &legal}
	ball := b.ToBall()
	assert.Equal(t, "9", ball.MatchID)
	assert.Equal(t, 2, ball.Innings)
	assert.False(t, ball.Legal())
}

func TestRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewGormMatchRepository(db)
	ctx := context.Background()

	missing, err := repo.GetMatch(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.CreateMatches(ctx, []TournamentMatch{
		{TournamentID: 7, Team1Name: "C", Team2Name: "D", MatchDate: "2026-10-18T10:00:00"},
		{TournamentID: 7, Team1Name: "A", Team2Name: "B", MatchDate: "2026-10-17T10:00:00", Group: "A"},
		{TournamentID: 8, Team1Name: "E", Team2Name: "F"},
	}))
	matches, err := repo.MatchesForTournament(ctx, 7)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "A", matches[0].Team1Name)
	assert.Equal(t, "A", matches[0].Group)
	assert.Equal(t, StatusMatchScheduled, matches[0].Status)

	err = repo.WithTransaction(func(tx MatchRepository) error {
		if err := tx.CreateMatches(ctx, []TournamentMatch{{TournamentID: 7, Team1Name: "G", Team2Name: "H"}}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	matches, err = repo.MatchesForTournament(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestBuildOverlay(t *testing.T) {
	p := scoring.NewProcessor(6)
	m := &TournamentMatch{Team1Name: "Lions", Team2Name: "Tigers"}

	empty := BuildOverlay(p, m, nil)
	assert.Equal(t, 1, empty.Innings)
	assert.Equal(t, 0, empty.Totals.Runs)
	assert.Nil(t, empty.Striker)
	assert.Nil(t, empty.Target)

	balls := []scoring.Ball{
		{Innings: 1, OverNumber: 1, BallNumber: 1, Batsman: "Alice", NonStriker: "Bob", Bowler: "Zed", Runs: 2},
		{Innings: 1, OverNumber: 1, BallNumber: 2, Batsman: "Alice", NonStriker: "Bob", Bowler: "Zed", IsWicket: true, WicketType: scoring.WicketCaught},
	}
	o := BuildOverlay(p, m, balls)
	assert.Nil(t, o.Striker, "dismissed striker has left the crease")
	require.NotNil(t, o.NonStriker)
	assert.Equal(t, "Bob", o.NonStriker.Name)
	assert.Equal(t, 0, o.NonStriker.Balls)
	require.NotNil(t, o.Bowler)
	assert.Equal(t, 1, o.Bowler.Wickets)
	require.NotNil(t, o.LastWicket)
	assert.Equal(t, "Alice", o.LastWicket.Batsman)
	assert.Equal(t, 2, o.LastWicket.Score)
}

func TestScorecardEndpoint(t *testing.T) {
	db := setupDB(t)
	m := seedMatch(t, db)
	r := setupRouter(t, db)

	var resp struct {
		Data Scorecard `json:"data"`
	}
	require.Equal(t, http.StatusOK, get(t, r, "/api/matches/1/scorecard", &resp))
	require.Len(t, resp.Data.Innings, 2)
	assert.Equal(t, m.ID, resp.Data.Match.ID)

	first := resp.Data.Innings[0]
	assert.Equal(t, "Lions", first.BattingTeam)
	assert.Equal(t, 5, first.Totals.Runs)
	assert.Equal(t, 1, first.Totals.Wickets)
	assert.Equal(t, "Alice", first.TopScorer)
	require.Len(t, first.FallOfWickets, 1)

	second := resp.Data.Innings[1]
	assert.Equal(t, 4, second.Totals.Runs)
	assert.Equal(t, 1, second.Extras.Wides)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/matches/99/scorecard", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/matches/abc/scorecard", nil))
}

func TestOverlayEndpoint(t *testing.T) {
	db := setupDB(t)
	seedMatch(t, db)
	r := setupRouter(t, db)

	var resp struct {
		Data Overlay `json:"data"`
	}
	require.Equal(t, http.StatusOK, get(t, r, "/api/matches/1/overlay", &resp))
	o := resp.Data
	assert.Equal(t, 2, o.Innings)
	assert.Equal(t, "Tigers", o.BattingTeam)
	assert.Equal(t, 4, o.Totals.Runs)
	assert.Equal(t, "0.2", o.Totals.Overs)
	assert.Equal(t, 1, o.CurrentOver.Number)
	assert.Len(t, o.CurrentOver.Balls, 3)
	require.NotNil(t, o.Striker)
	assert.Equal(t, "Dan", o.Striker.Name)
	assert.Equal(t, 3, o.Striker.Runs)
	require.NotNil(t, o.NonStriker)
	assert.Equal(t, "Eve", o.NonStriker.Name)
	require.NotNil(t, o.Bowler)
	assert.Equal(t, "Yan", o.Bowler.Name)
	assert.Equal(t, 4, o.Bowler.Runs)
	require.NotNil(t, o.Target)
	assert.Equal(t, 6, *o.Target)
	assert.Equal(t, 2, *o.RequiredRuns)
	assert.Nil(t, o.LastWicket)
}

func TestWagonWheelEndpoint(t *testing.T) {
	db := setupDB(t)
	seedMatch(t, db)
	r := setupRouter(t, db)

	var resp struct {
		Data []scoring.ZoneTally `json:"data"`
	}
	require.Equal(t, http.StatusOK, get(t, r, "/api/matches/1/wagon-wheel?batsman=Dan", &resp))
	require.Len(t, resp.Data, 8)
	assert.Equal(t, scoring.ZoneTally{Zone: 3, Runs: 2, Shots: 1}, resp.Data[2])
	assert.Equal(t, 0, resp.Data[0].Runs)

	require.Equal(t, http.StatusOK, get(t, r, "/api/matches/1/wagon-wheel", &resp))
	assert.Equal(t, 4, resp.Data[0].Runs)
}

func TestOverlayWebsocketPushesChanges(t *testing.T) {
	db := setupDB(t)
	m := seedMatch(t, db)
	srv := httptest.NewServer(setupRouter(t, db))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/matches/1/overlay/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() Overlay {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var o Overlay
		require.NoError(t, json.Unmarshal(msg, &o))
		return o
	}

	first := read()
	assert.Equal(t, 4, first.Totals.Runs)

	require.NoError(t, db.Create(&BallByBall{
		MatchID: m.ID, Innings: 2, OverNumber: 1, BallNumber: 4,
		Batsman: "Dan", NonStriker: "Eve", Bowler: "Yan", Runs: 6, IsSix: true, BattingTeam: "Tigers",
	}).Error)

	next := read()
	assert.Equal(t, 10, next.Totals.Runs)
	require.NotNil(t, next.RequiredRuns)
	assert.Equal(t, 0, *next.RequiredRuns)
}

func TestOverlayWebsocketUnknownMatch(t *testing.T) {
	db := setupDB(t)
	srv := httptest.NewServer(setupRouter(t, db))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/matches/5/overlay/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

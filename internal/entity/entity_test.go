package entity

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/club"
	"github.com/DhavalSuthar-24/clubhouse/internal/match"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
	"github.com/DhavalSuthar-24/clubhouse/pkg/token"
)

const testSecret = "entity-test-secret"

type harness struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	member   string
	admin    string
	memberID uint
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenSQLite("file::memory:")
	require.NoError(t, err)
	registry := Catalog()
	require.NoError(t, db.AutoMigrate(append(registry.Models(), &user.User{})...))

	h := &harness{t: t, db: db}
	h.memberID, h.member = h.user("member@club.test", user.RoleMember)
	_, h.admin = h.user("admin@club.test", user.RoleAdmin)

	r := gin.New()
	RegisterEntityRoutes(r.Group("/api"), db, registry, testSecret, zerolog.Nop())
	h.router = r
	return h
}

func (h *harness) user(email, role string) (uint, string) {
	h.t.Helper()
	u := user.User{Name: email, Email: email, Password: "x", Role: role}
	require.NoError(h.t, h.db.Create(&u).Error)
	tok, _, err := token.Generate(u.ID, u.Role, testSecret, time.Hour)
	require.NoError(h.t, err)
	return u.ID, tok
}

func (h *harness) do(method, path, bearer string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	h.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	var out map[string]interface{}
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestRegistryColumns(t *testing.T) {
	r := Catalog()
	assert.Equal(t, []string{
		"BallByBall", "News", "Payment", "Team", "TeamPlayer",
		"Tournament", "TournamentMatch", "TournamentTeam", "Venue",
	}, r.Names())

	def, ok := r.Lookup("TournamentMatch")
	require.True(t, ok)
	assert.Equal(t, "tournament_matches", def.Table)

	for _, field := range []string{"group", "Group", "group_name"} {
		col, ok := def.Column(field)
		require.True(t, ok, field)
		assert.Equal(t, "group_name", col)
	}
	col, ok := def.Column("created_date")
	require.True(t, ok)
	assert.Equal(t, "created_at", col)
	_, ok = def.Column("password")
	assert.False(t, ok)

	_, ok = r.Lookup("Nope")
	assert.False(t, ok)
	assert.Panics(t, func() { Define[club.Team](r, "Team") })
}

func TestOrderClause(t *testing.T) {
	def, _ := Catalog().Lookup("BallByBall")
	order, err := orderClause(def, "-innings, over_number,+ball_number")
	require.NoError(t, err)
	assert.Equal(t, "innings DESC, over_number ASC, ball_number ASC", order)

	order, err = orderClause(def, " ")
	require.NoError(t, err)
	assert.Equal(t, "id ASC", order)

	_, err = orderClause(def, "innings; DROP TABLE users")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCreateRequiresAuthAndValidates(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/entities/Team", "", map[string]interface{}{"name": "Lions"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := h.do(http.MethodPost, "/api/entities/Team", h.member, map[string]interface{}{"short_name": "LIO"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["errors"], "name")

	w, body = h.do(http.MethodPost, "/api/entities/Team", h.member, map[string]interface{}{"id": 77, "name": "Lions", "captain": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := body["data"].(map[string]interface{})
	assert.NotEqual(t, float64(77), data["id"])
	assert.Equal(t, float64(h.memberID), data["created_by"])

	w, _ = h.do(http.MethodPost, "/api/entities/Venue", h.member, map[string]interface{}{"name": "Oval", "time_slots": []string{"morning"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/api/entities/TournamentMatch", h.member, map[string]interface{}{
		"tournament_id": 1, "team1_name": "Lions", "team2_name": "Lions",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/api/entities/Dragons", h.member, map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndFilter(t *testing.T) {
	h := newHarness(t)
	for _, tm := range []club.Team{
		{Name: "Lions", Division: "A"},
		{Name: "Tigers", Division: "B"},
		{Name: "Bears", Division: "A"},
	} {
		require.NoError(t, h.db.Create(&tm).Error)
	}

	w, body := h.do(http.MethodGet, "/api/entities/Team?page=1&page_size=2&sort=-name", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Tigers", items[0].(map[string]interface{})["name"])
	pg := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pg["total_items"])
	assert.Equal(t, true, pg["has_next_page"])

	w, _ = h.do(http.MethodGet, "/api/entities/Team?sort=nope", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = h.do(http.MethodPost, "/api/entities/Team/filter", "", FilterRequest{Query: map[string]interface{}{"division": "A"}, Sort: "name"})
	require.Equal(t, http.StatusOK, w.Code)
	items = body["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Bears", items[0].(map[string]interface{})["name"])

	w, _ = h.do(http.MethodPost, "/api/entities/Team/filter", "", `{"query":{"password":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = h.do(http.MethodPost, "/api/entities/Team/filter", "", `{"query":{"name":{"$ne":"x"}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = h.do(http.MethodPost, "/api/entities/Team/filter", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 3)
}

func TestFilterNumbers(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Create(&[]match.BallByBall{
		{MatchID: 1, Innings: 1, OverNumber: 1, BallNumber: 1, Batsman: "A", Runs: 1},
		{MatchID: 1, Innings: 2, OverNumber: 1, BallNumber: 1, Batsman: "B", Runs: 4},
		{MatchID: 2, Innings: 2, OverNumber: 1, BallNumber: 1, Batsman: "C"},
	}).Error)

	w, body := h.do(http.MethodPost, "/api/entities/BallByBall/filter", "", `{"query":{"match_id":1,"innings":2}}`)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].(map[string]interface{})["batsman"])
}

func TestBulkCreateIsAllOrNothing(t *testing.T) {
	h := newHarness(t)
	bad := []map[string]interface{}{
		{"match_id": 1, "innings": 1, "over_number": 1, "ball_number": 1, "batsman": "A", "bowler": "Z", "runs": 4},
		{"match_id": 1, "innings": 1, "over_number": 1, "ball_number": 2, "batsman": "A", "bowler": "Z", "runs": 9},
		{"innings": 1},
	}
	w, body := h.do(http.MethodPost, "/api/entities/BallByBall/bulk", h.member, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	records := body["records"].([]interface{})
	require.Len(t, records, 2)
	assert.Equal(t, float64(1), records[0].(map[string]interface{})["index"])
	assert.Equal(t, float64(2), records[1].(map[string]interface{})["index"])

	var count int64
	require.NoError(t, h.db.Model(&match.BallByBall{}).Count(&count).Error)
	assert.Zero(t, count)

	w, body = h.do(http.MethodPost, "/api/entities/BallByBall/bulk", h.member, bad[:1])
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := body["data"].([]interface{})
	require.Len(t, created, 1)
	assert.Equal(t, true, created[0].(map[string]interface{})["is_four"])

	w, _ = h.do(http.MethodPost, "/api/entities/BallByBall/bulk", h.member, []interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOverlaysFields(t *testing.T) {
	h := newHarness(t)
	team := club.Team{Name: "Lions", Captain: "Alice", Division: "A"}
	require.NoError(t, h.db.Create(&team).Error)

	w, body := h.do(http.MethodPut, "/api/entities/Team/1", h.member, map[string]interface{}{"captain": "Bob", "id": 9})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(team.ID), data["id"])
	assert.Equal(t, "Bob", data["captain"])
	assert.Equal(t, "Lions", data["name"])

	var stored club.Team
	require.NoError(t, h.db.First(&stored, team.ID).Error)
	assert.Equal(t, "Bob", stored.Captain)
	assert.Equal(t, "A", stored.Division)

	w, _ = h.do(http.MethodPut, "/api/entities/Team/1", h.member, map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = h.do(http.MethodPut, "/api/entities/Team/42", h.member, map[string]interface{}{"captain": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	news := club.News{Title: "Nets moved to Thursday"}
	require.NoError(t, h.db.Create(&news).Error)

	w, _ := h.do(http.MethodDelete, "/api/entities/News/1", h.member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = h.do(http.MethodDelete, "/api/entities/News/1", h.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodGet, "/api/entities/News/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = h.do(http.MethodDelete, "/api/entities/News/1", h.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = h.do(http.MethodGet, "/api/entities/News/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNames(t *testing.T) {
	h := newHarness(t)
	w, body := h.do(http.MethodGet, "/api/entities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 9)
}

package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/club"
	"github.com/DhavalSuthar-24/clubhouse/internal/logger"
	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
)

type CreateSessionRequest struct {
	Format scheduler.Format  `json:"format"`
	Config *scheduler.Config `json:"config"`
}

type UpdateConfigRequest struct {
	Format scheduler.Format `json:"format"`
	Config scheduler.Config `json:"config" binding:"required"`
}

type UpdateFixtureRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SwapRequest struct {
	I *int `json:"i" binding:"required,gte=0"`
	J *int `json:"j" binding:"required,gte=0"`
}

type CheckRequest struct {
	Fixtures []scheduler.Fixture `json:"fixtures" binding:"required"`
	Config   scheduler.Config    `json:"config"`
}

type CheckResponse struct {
	Conflicts []scheduler.Conflict `json:"conflicts"`
	Blocking  int                  `json:"blocking"`
}

type TournamentController struct {
	repo     TournamentRepository
	clubRepo club.ClubRepository
	store    SessionStore
	config   *config.Config
	log      zerolog.Logger
	newRand  func() *rand.Rand
}

func NewTournamentController(repo TournamentRepository, clubRepo club.ClubRepository, store SessionStore, cfg *config.Config, log zerolog.Logger) *TournamentController {
	return &TournamentController{
		repo:     repo,
		clubRepo: clubRepo,
		store:    store,
		config:   cfg,
		log:      log.With().Str("component", "scheduler").Logger(),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// statusFor maps scheduling errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrTournamentNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduler.ErrWrongStep),
		errors.Is(err, scheduler.ErrInvalidTransition),
		errors.Is(err, ErrAlreadyScheduled),
		errors.Is(err, scheduler.ErrBlockingConflicts):
		return http.StatusConflict
	case errors.Is(err, scheduler.ErrNotEnoughTeams),
		errors.Is(err, scheduler.ErrNotEnoughSlots),
		errors.Is(err, scheduler.ErrNoPairings),
		errors.Is(err, scheduler.ErrUnknownFormat),
		errors.Is(err, scheduler.ErrInvalidConfig),
		errors.Is(err, scheduler.ErrFixtureIndex),
		errors.Is(err, scheduler.ErrUnknownField),
		errors.Is(err, scheduler.ErrInvalidValue),
		errors.Is(err, scheduler.ErrSelfPairing),
		errors.Is(err, scheduler.ErrDuplicateFixture),
		errors.Is(err, scheduler.ErrTeamBusy),
		errors.Is(err, scheduler.ErrNoFixtures):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (tc *TournamentController) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromContext(c).Error().Err(err).Str("session_id", c.Param("sid")).Msg("scheduling request failed")
		responses.InternalServerError(c)
		return
	}
	responses.ErrorResponse(c, code, err.Error())
}

func (tc *TournamentController) tournamentFromParam(c *gin.Context) (*Tournament, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return nil, false
	}
	t, err := tc.repo.GetTournament(c.Request.Context(), uint(id))
	if err != nil {
		tc.fail(c, err)
		return nil, false
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return nil, false
	}
	return t, true
}

func fixtureIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid fixture index")
		return 0, false
	}
	return i, true
}

// defaultConfig starts from the club's scheduler settings, takes the dates
// from the tournament, and the venues from the venue entity when the club
// file lists none.
func (tc *TournamentController) defaultConfig(ctx context.Context, t *Tournament) (scheduler.Config, error) {
	var cfg scheduler.Config
	if tc.config.Club != nil {
		cfg = schedulerDefaults(tc.config.Club.Scheduler)
	}
	cfg.StartDate = t.StartDate
	cfg.EndDate = t.EndDate
	if len(cfg.Venues) == 0 {
		venues, err := tc.clubRepo.AvailableVenues(ctx)
		if err != nil {
			return cfg, fmt.Errorf("load venues: %w", err)
		}
		cfg.Venues = club.SchedulerVenues(venues)
	}
	return cfg, nil
}

func schedulerDefaults(c config.ClubScheduler) scheduler.Config {
	cfg := scheduler.Config{
		AvailableDays:         append([]string(nil), c.AvailableDays...),
		AvoidConsecutiveDays:  c.AvoidConsecutiveDays,
		MinDaysBetweenMatches: c.MinDaysBetweenMatches,
	}
	for _, v := range c.Venues {
		venue := scheduler.VenueSlots{Name: v.Name}
		for _, s := range v.Slots {
			venue.Slots = append(venue.Slots, scheduler.TimeSlot{Start: s.Start, End: s.End})
		}
		cfg.Venues = append(cfg.Venues, venue)
	}
	return cfg
}

// withSession loads the session, applies fn and saves the result. A failed fn
// leaves the stored session as it was.
func (tc *TournamentController) withSession(c *gin.Context, fn func(*scheduler.Session) error) (*scheduler.Session, bool) {
	ctx := c.Request.Context()
	s, err := tc.store.Get(ctx, c.Param("sid"))
	if err != nil {
		tc.fail(c, err)
		return nil, false
	}
	if err := fn(s); err != nil {
		tc.fail(c, err)
		return nil, false
	}
	if err := tc.store.Save(ctx, s); err != nil {
		tc.fail(c, err)
		return nil, false
	}
	return s, true
}

// GetTeams godoc
// @Summary      Approved tournament teams
// @Tags         tournaments
// @Produce      json
// @Param        id  path  int  true  "Tournament ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /tournaments/{id}/teams [get]
func (tc *TournamentController) GetTeams(c *gin.Context) {
	t, ok := tc.tournamentFromParam(c)
	if !ok {
		return
	}
	teams, err := tc.repo.ApprovedTeams(c.Request.Context(), t.ID)
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, teams)
}

// CreateSession godoc
// @Summary      Start a scheduling session
// @Description  Snapshots the approved teams and opens a session in the config step.
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true   "Tournament ID"
// @Param        request  body  CreateSessionRequest  false  "Format and config overrides"
// @Success      201  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /tournaments/{id}/schedule/sessions [post]
func (tc *TournamentController) CreateSession(c *gin.Context) {
	t, ok := tc.tournamentFromParam(c)
	if !ok {
		return
	}
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.ValidationErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	format := req.Format
	if format == "" {
		format = t.Format
	}
	if !format.Valid() {
		responses.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("%s: %q", scheduler.ErrUnknownFormat, format))
		return
	}

	var cfg scheduler.Config
	if req.Config != nil {
		cfg = *req.Config
		if err := cfg.Validate(); err != nil {
			tc.fail(c, err)
			return
		}
	} else {
		var err error
		if cfg, err = tc.defaultConfig(ctx, t); err != nil {
			tc.fail(c, err)
			return
		}
	}

	entries, err := tc.repo.ApprovedTeams(ctx, t.ID)
	if err != nil {
		tc.fail(c, err)
		return
	}
	teams := make([]scheduler.Team, len(entries))
	for i := range entries {
		teams[i] = entries[i].SchedulerTeam()
	}

	s := scheduler.NewSession(uuid.NewString(), t.ID, format, teams, cfg)
	if err := tc.store.Save(ctx, s); err != nil {
		tc.fail(c, err)
		return
	}
	logger.FromContext(c).Info().
		Str("session_id", s.ID).
		Uint("tournament_id", t.ID).
		Int("teams", len(teams)).
		Msg("scheduling session created")
	responses.SuccessResponse(c, http.StatusCreated, s)
}

// GetSession godoc
// @Summary      Get a scheduling session
// @Tags         scheduling
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path  string  true  "Session ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid} [get]
func (tc *TournamentController) GetSession(c *gin.Context) {
	s, err := tc.store.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		tc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// UpdateConfig godoc
// @Summary      Replace the session's format and config
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid      path  string               true  "Session ID"
// @Param        request  body  UpdateConfigRequest  true  "New config"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Failure      409  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/config [put]
func (tc *TournamentController) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	s, ok := tc.withSession(c, func(s *scheduler.Session) error {
		return s.Configure(req.Format, req.Config)
	})
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// Generate godoc
// @Summary      Generate fixtures
// @Description  Pairs the teams, assigns slots and moves the session to preview.
// @Tags         scheduling
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path  string  true  "Session ID"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Failure      409  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/generate [post]
func (tc *TournamentController) Generate(c *gin.Context) {
	s, ok := tc.withSession(c, func(s *scheduler.Session) error {
		return s.Generate(tc.newRand())
	})
	if !ok {
		return
	}
	logger.FromContext(c).Info().
		Str("session_id", s.ID).
		Int("fixtures", len(s.Fixtures)).
		Int("blocking", s.Blocking()).
		Msg("fixtures generated")
	responses.SuccessResponse(c, http.StatusOK, s)
}

// Back godoc
// @Summary      Discard the preview
// @Tags         scheduling
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path  string  true  "Session ID"
// @Success      200  {object}  responses.Envelope
// @Failure      409  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/back [post]
func (tc *TournamentController) Back(c *gin.Context) {
	s, ok := tc.withSession(c, func(s *scheduler.Session) error { return s.Back() })
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// UpdateFixture godoc
// @Summary      Edit one field of a fixture
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid      path  string                true  "Session ID"
// @Param        index    path  int                   true  "Fixture index"
// @Param        request  body  UpdateFixtureRequest  true  "Field and value"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/fixtures/{index} [patch]
func (tc *TournamentController) UpdateFixture(c *gin.Context) {
	index, ok := fixtureIndex(c)
	if !ok {
		return
	}
	var req UpdateFixtureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	s, ok := tc.withSession(c, func(s *scheduler.Session) error {
		return s.UpdateFixture(index, req.Field, req.Value)
	})
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// SwapFixtures godoc
// @Summary      Swap the date, venue and time of two fixtures
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid      path  string       true  "Session ID"
// @Param        request  body  SwapRequest  true  "Fixture indices"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/swap [post]
func (tc *TournamentController) SwapFixtures(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	s, ok := tc.withSession(c, func(s *scheduler.Session) error {
		return s.SwapFixtures(*req.I, *req.J)
	})
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// AddFixture godoc
// @Summary      Add a fixture by hand
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid      path  string             true  "Session ID"
// @Param        request  body  scheduler.Fixture  true  "Fixture"
// @Success      201  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/fixtures [post]
func (tc *TournamentController) AddFixture(c *gin.Context) {
	var f scheduler.Fixture
	if err := c.ShouldBindJSON(&f); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	s, ok := tc.withSession(c, func(s *scheduler.Session) error { return s.AddFixture(f) })
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, s)
}

// RemoveFixture godoc
// @Summary      Remove a fixture
// @Tags         scheduling
// @Produce      json
// @Security     BearerAuth
// @Param        sid    path  string  true  "Session ID"
// @Param        index  path  int     true  "Fixture index"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/fixtures/{index} [delete]
func (tc *TournamentController) RemoveFixture(c *gin.Context) {
	index, ok := fixtureIndex(c)
	if !ok {
		return
	}
	s, ok := tc.withSession(c, func(s *scheduler.Session) error { return s.RemoveFixture(index) })
	if !ok {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, s)
}

// Confirm godoc
// @Summary      Confirm the schedule
// @Description  Creates every fixture as a match in one transaction. Refused while error conflicts remain.
// @Tags         scheduling
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path  string  true  "Session ID"
// @Success      201  {object}  responses.Envelope
// @Failure      409  {object}  responses.ErrorEnvelope
// @Router       /schedule/sessions/{sid}/confirm [post]
func (tc *TournamentController) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := tc.store.Get(ctx, c.Param("sid"))
	if err != nil {
		tc.fail(c, err)
		return
	}

	if err := s.Confirm(ctx, tc.repo); err != nil {
		if errors.Is(err, scheduler.ErrBlockingConflicts) {
			// Keep the refreshed conflict list for the next GET.
			if saveErr := tc.store.Save(ctx, s); saveErr != nil {
				tc.log.Warn().Err(saveErr).Str("session_id", s.ID).Msg("save conflicts failed")
			}
		}
		tc.fail(c, err)
		return
	}

	if err := tc.store.Save(ctx, s); err != nil {
		// The matches exist. A retry of this session is refused by CommitFixtures.
		tc.log.Warn().Err(err).Str("session_id", s.ID).Msg("save committed session failed")
	}
	logger.FromContext(c).Info().
		Str("session_id", s.ID).
		Uint("tournament_id", s.TournamentID).
		Int("matches", len(s.Fixtures)).
		Msg("schedule confirmed")
	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":         "Schedule confirmed",
		"matches_created": len(s.Fixtures),
		"session":         s,
	})
}

// CheckFixtures godoc
// @Summary      Detect conflicts in a fixture list
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Param        id       path  int           true  "Tournament ID"
// @Param        request  body  CheckRequest  true  "Fixtures and config"
// @Success      200  {object}  responses.Envelope
// @Router       /tournaments/{id}/schedule/check [post]
func (tc *TournamentController) CheckFixtures(c *gin.Context) {
	if _, ok := tc.tournamentFromParam(c); !ok {
		return
	}
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	conflicts := scheduler.DetectConflicts(req.Fixtures, req.Config)
	responses.SuccessResponse(c, http.StatusOK, CheckResponse{
		Conflicts: conflicts,
		Blocking:  scheduler.BlockingConflicts(conflicts),
	})
}

package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/logger"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
)

type MatchController struct {
	service *Service
	repo    MatchRepository
	config  *config.Config
	log     zerolog.Logger
}

func NewMatchController(repo MatchRepository, cfg *config.Config, log zerolog.Logger) *MatchController {
	return &MatchController{
		service: NewService(repo, cfg.Scoring.BallsPerOver, log),
		repo:    repo,
		config:  cfg,
		log:     log,
	}
}

func parseMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

func (mc *MatchController) handleError(c *gin.Context, id uint, err error) {
	if errors.Is(err, ErrMatchNotFound) {
		responses.NotFound(c, "Match")
		return
	}
	logger.FromContext(c).Error().Err(err).Uint("match_id", id).Msg("match report failed")
	responses.InternalServerError(c)
}

// GetMatch godoc
// @Summary      Get a match
// @Tags         matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	m, err := mc.repo.GetMatch(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, id, err)
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// GetScorecard godoc
// @Summary      Full scorecard
// @Description  Batting, bowling, fall of wickets, extras and totals for every innings.
// @Tags         matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /matches/{id}/scorecard [get]
func (mc *MatchController) GetScorecard(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	card, err := mc.service.Scorecard(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, id, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, card)
}

// GetOverlay godoc
// @Summary      Live overlay snapshot
// @Tags         matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /matches/{id}/overlay [get]
func (mc *MatchController) GetOverlay(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	overlay, err := mc.service.Overlay(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, id, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, overlay)
}

// GetWagonWheel godoc
// @Summary      Wagon wheel
// @Tags         matches
// @Produce      json
// @Param        id       path   int     true   "Match ID"
// @Param        batsman  query  string  false  "Restrict to one batsman"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /matches/{id}/wagon-wheel [get]
func (mc *MatchController) GetWagonWheel(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	zones, err := mc.service.WagonWheel(c.Request.Context(), id, c.Query("batsman"))
	if err != nil {
		mc.handleError(c, id, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, zones)
}

// ListTournamentMatches godoc
// @Summary      Fixtures of a tournament
// @Tags         matches
// @Produce      json
// @Param        id  path  int  true  "Tournament ID"
// @Success      200  {object}  responses.Envelope
// @Router       /tournaments/{id}/matches [get]
func (mc *MatchController) ListTournamentMatches(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}
	matches, err := mc.repo.MatchesForTournament(c.Request.Context(), uint(id))
	if err != nil {
		logger.FromContext(c).Error().Err(err).Uint64("tournament_id", id).Msg("list matches failed")
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, matches)
}

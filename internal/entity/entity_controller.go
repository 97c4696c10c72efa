package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/models"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
	pkgvalidator "github.com/DhavalSuthar-24/clubhouse/pkg/validator"
)

type EntityController struct {
	repo     Repository
	registry *Registry
	log      zerolog.Logger
}

func NewEntityController(repo Repository, registry *Registry, log zerolog.Logger) *EntityController {
	return &EntityController{repo: repo, registry: registry, log: log.With().Str("component", "entity").Logger()}
}

type FilterRequest struct {
	Query map[string]interface{} `json:"query"`
	Sort  string                 `json:"sort"`
	Limit int                    `json:"limit"`
}

// BulkError reports which record of a bulk request failed.
type BulkError struct {
	Index  int               `json:"index"`
	Errors map[string]string `json:"errors"`
}

func (ec *EntityController) definition(c *gin.Context) (*Definition, bool) {
	def, ok := ec.registry.Lookup(c.Param("name"))
	if !ok {
		responses.ErrorResponse(c, http.StatusNotFound, fmt.Sprintf("Unknown entity %q", c.Param("name")))
		return nil, false
	}
	return def, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}

// validate runs binding tags, then the record's own cross-field check.
func validate(rec models.Record) error {
	if err := binding.Validator.ValidateStruct(rec); err != nil {
		return err
	}
	if v, ok := rec.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

func (ec *EntityController) queryError(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownField) || errors.Is(err, ErrBadValue) {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	ec.log.Error().Err(err).Str("entity", c.Param("name")).Msg("query failed")
	responses.InternalServerError(c)
}

// @Summary      List entities
// @Tags         Entities
// @Produce      json
// @Param        name       path   string  true   "Entity name"
// @Param        page       query  int     false  "Page number"     default(1)
// @Param        page_size  query  int     false  "Items per page"  default(10)
// @Param        sort       query  string  false  "Sort fields, prefix with - for descending"
// @Success      200  {object}  responses.PaginatedEnvelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /entities/{name} [get]
func (ec *EntityController) List(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	items, total, err := ec.repo.List(c.Request.Context(), def, ListOptions{Page: page, PageSize: pageSize, Sort: c.Query("sort")})
	if err != nil {
		ec.queryError(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, items, page, pageSize, total)
}

// @Summary      Get entity
// @Tags         Entities
// @Produce      json
// @Param        name  path  string  true  "Entity name"
// @Param        id    path  int     true  "Record id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /entities/{name}/{id} [get]
func (ec *EntityController) Get(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := ec.repo.Get(c.Request.Context(), def, id)
	if err != nil {
		ec.queryError(c, err)
		return
	}
	if rec == nil {
		responses.NotFound(c, def.Name)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, rec)
}

// @Summary      Filter entities
// @Description  Equality match on every field in query.
// @Tags         Entities
// @Accept       json
// @Produce      json
// @Param        name     path  string         true  "Entity name"
// @Param        request  body  FilterRequest  true  "Filter"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /entities/{name}/filter [post]
func (ec *EntityController) Filter(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	var req FilterRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.ValidationErrorResponse(c, err)
		return
	}
	for k, v := range req.Query {
		req.Query[k] = plainNumber(v)
	}
	limit := req.Limit
	if limit <= 0 || limit > constants.MaxFilterLimit {
		limit = constants.MaxFilterLimit
	}

	items, err := ec.repo.Filter(c.Request.Context(), def, req.Query, req.Sort, limit)
	if err != nil {
		ec.queryError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, items)
}

func plainNumber(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// @Summary      Create entity
// @Tags         Entities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Entity name"
// @Success      201  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /entities/{name} [post]
func (ec *EntityController) Create(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	rec := def.New()
	if err := c.ShouldBindJSON(rec); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	*rec.BaseRecord() = models.Base{CreatedBy: userID}
	if err := validate(rec); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if err := ec.repo.Create(c.Request.Context(), rec); err != nil {
		ec.log.Error().Err(err).Str("entity", def.Name).Msg("create failed")
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, rec)
}

// @Summary      Bulk create entities
// @Description  Creates every record or none.
// @Tags         Entities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Entity name"
// @Success      201  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Router       /entities/{name}/bulk [post]
func (ec *EntityController) BulkCreate(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	var raw []json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if len(raw) == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Expected a non-empty array of records")
		return
	}
	if len(raw) > constants.MaxBulkCreate {
		responses.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("At most %d records per request", constants.MaxBulkCreate))
		return
	}

	recs := make([]models.Record, 0, len(raw))
	var failures []BulkError
	for i, msg := range raw {
		rec := def.New()
		err := json.Unmarshal(msg, rec)
		if err == nil {
			*rec.BaseRecord() = models.Base{CreatedBy: userID}
			err = validate(rec)
		}
		if err != nil {
			failures = append(failures, BulkError{Index: i, Errors: pkgvalidator.ParseError(err)})
			continue
		}
		recs = append(recs, rec)
	}
	if len(failures) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Validation failed. No records were created.",
			"code":    http.StatusBadRequest,
			"records": failures,
		})
		return
	}

	if err := ec.repo.CreateBatch(c.Request.Context(), recs); err != nil {
		ec.log.Error().Err(err).Str("entity", def.Name).Int("count", len(recs)).Msg("bulk create failed")
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, recs)
}

// @Summary      Update entity
// @Description  Fields present in the body overwrite the stored record.
// @Tags         Entities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Entity name"
// @Param        id    path  int     true  "Record id"
// @Success      200  {object}  responses.Envelope
// @Failure      400  {object}  responses.ErrorEnvelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /entities/{name}/{id} [put]
func (ec *EntityController) Update(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	ctx := c.Request.Context()

	rec, err := ec.repo.Get(ctx, def, id)
	if err != nil {
		ec.queryError(c, err)
		return
	}
	if rec == nil {
		responses.NotFound(c, def.Name)
		return
	}

	base := *rec.BaseRecord()
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(rec); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	*rec.BaseRecord() = base
	if err := validate(rec); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if err := ec.repo.Update(ctx, rec); err != nil {
		ec.log.Error().Err(err).Str("entity", def.Name).Uint("id", id).Msg("update failed")
		responses.InternalServerError(c)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, rec)
}

// @Summary      Delete entity
// @Tags         Entities
// @Security     BearerAuth
// @Produce      json
// @Param        name  path  string  true  "Entity name"
// @Param        id    path  int     true  "Record id"
// @Success      200  {object}  responses.Envelope
// @Failure      403  {object}  responses.ErrorEnvelope
// @Failure      404  {object}  responses.ErrorEnvelope
// @Router       /entities/{name}/{id} [delete]
func (ec *EntityController) Delete(c *gin.Context) {
	def, ok := ec.definition(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := ec.repo.Delete(c.Request.Context(), def, id)
	if err != nil {
		ec.queryError(c, err)
		return
	}
	if !deleted {
		responses.NotFound(c, def.Name)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": def.Name + " deleted", "id": id})
}

// @Summary      List entity names
// @Tags         Entities
// @Produce      json
// @Success      200  {object}  responses.Envelope
// @Router       /entities [get]
func (ec *EntityController) Names(c *gin.Context) {
	responses.SuccessResponse(c, http.StatusOK, ec.registry.Names())
}

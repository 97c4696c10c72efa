package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorResponse(t *testing.T) {
	w, c := recorder()
	ErrorResponse(c, http.StatusConflict, "taken")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, c.IsAborted())
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "taken", body["message"])

	w, c = recorder()
	InternalServerError(c)
	assert.Equal(t, "fail", decode(t, w)["status"])
}

func TestValidationErrorResponse(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	w, c := recorder()
	ValidationErrorResponse(c, validator.New().Struct(payload{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]any{"name": "The name field is required."}, body["errors"])

	w, c = recorder()
	ValidationErrorResponse(c, errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request payload: unexpected EOF", decode(t, w)["message"])
}

func TestSuccessResponseLiftsMessage(t *testing.T) {
	w, c := recorder()
	SuccessResponse(c, http.StatusOK, gin.H{"message": "done", "id": 3})
	body := decode(t, w)
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]any{"id": float64(3)}, body["data"])

	w, c = recorder()
	SuccessResponse(c, http.StatusOK, gin.H{"message": "only"})
	body = decode(t, w)
	assert.NotContains(t, body, "data")
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	require.NotNil(t, p.NextPage)
	require.NotNil(t, p.PreviousPage)
	assert.Equal(t, 3, *p.NextPage)
	assert.Equal(t, 1, *p.PreviousPage)

	p = NewPagination(1, 0, 0)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

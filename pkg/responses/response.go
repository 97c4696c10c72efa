package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/DhavalSuthar-24/clubhouse/pkg/validator"
)

type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorEnvelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type PaginatedEnvelope struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// ErrorResponse aborts the request with an error envelope. 5xx responses use
// status "fail", everything else "error".
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, ErrorEnvelope{
		Status:  statusText,
		Message: message,
		Code:    statusCode,
	})
}

// ValidationErrorResponse reports binding failures. Field-level validation
// errors are listed under "errors"; malformed payloads get a plain 400.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
			Status:  "error",
			Message: "Validation failed. Please check your input.",
			Code:    http.StatusBadRequest,
			Errors:  pkgvalidator.ParseError(ve),
		})
		return
	}
	ErrorResponse(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
}

// SuccessResponse wraps data in the success envelope. A gin.H carrying a
// string "message" has it lifted to the top level.
func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	payload := Envelope{Status: "success"}

	if gh, ok := data.(gin.H); ok {
		if msg, isStr := gh["message"].(string); isStr {
			payload.Message = msg
			rest := make(gin.H, len(gh))
			for k, v := range gh {
				if k != "message" {
					rest[k] = v
				}
			}
			if len(rest) > 0 {
				payload.Data = rest
			}
			c.JSON(statusCode, payload)
			return
		}
	}
	payload.Data = data
	c.JSON(statusCode, payload)
}

func PaginatedResponse(c *gin.Context, statusCode int, items interface{}, currentPage, pageSize int, totalItems int64) {
	c.JSON(statusCode, PaginatedEnvelope{
		Status:     "success",
		Data:       items,
		Pagination: NewPagination(currentPage, pageSize, totalItems),
	})
}

func NewPagination(currentPage, pageSize int, totalItems int64) Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	p := Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1 && currentPage <= totalPages,
	}
	if p.HasNextPage {
		next := currentPage + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	return p
}

func NotFound(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, resource+" not found")
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func InternalServerError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred on the server")
}

// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	"crm-client/internal/validation"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// Abort before writing so no later handler touches the body.
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// ValidationError sends a 400 Bad Request response for invalid input. Field
// errors from the validation package are listed per field.
func ValidationError(c *gin.Context, message string, err error) {
	var fields validation.Errors
	if errors.As(err, &fields) {
		c.Abort()
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: message,
			Error:   fields.Error(),
			Errors:  fields,
		})
		return
	}
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// Outcome writes an operation result as is: okStatus when it succeeded,
// 422 when the operation itself failed.
func Outcome(c *gin.Context, succeeded bool, okStatus int, body interface{}) {
	if !succeeded {
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}
	c.JSON(okStatus, body)
}

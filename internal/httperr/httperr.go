package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type envelope struct {
	Success bool      `json:"success"`
	Error   HTTPError `json:"error"`
}

// Abort writes the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Error: HTTPError{Code: code, Message: message}})
}

// Respond writes err using its kind. Untyped errors become a generic 500;
// the original is attached to the gin context for the request logger.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err, "internal_error")
	}

	body := HTTPError{Code: e.Code, Message: e.Message, Fields: e.Fields}
	if e.Kind == KindInternal {
		body.Message = "Internal error."
	}

	c.JSON(e.Status(), envelope{Error: body})
}

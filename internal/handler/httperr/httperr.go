package httperr

import (
	"net/http"

	"garage-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError writes the response and keeps err on the context for the
// logging middleware.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Status maps a domain error to an HTTP status and a public message.
func Status(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid argument"
	case errs.Is(err, errs.ErrCanceled):
		return http.StatusServiceUnavailable, "Request canceled while waiting for a lot"
	default:
		// includes ErrInvalidState
		return http.StatusInternalServerError, "Internal server error"
	}
}

func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}

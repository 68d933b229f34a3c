// Package httperr defines the error envelope the API returns and the
// abort helper that records the cause on the gin error stack.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the wire shape for error replies. Status travels out of
// band; only the envelope is serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError writes the envelope and pushes the original error
// onto the context so logging middleware sees the cause, not the
// sanitized message.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError requires a non-nil error")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

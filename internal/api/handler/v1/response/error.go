package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`

	internal error
}

func (e *Err) Error() string {
	return e.Message
}

func NewErr(statusCode int, message string, internal error) *Err {
	return &Err{
		StatusCode: statusCode,
		Message:    message,
		internal:   internal,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials", err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, "permission denied", err)
}

func ErrNotFound(resource string, key string, value interface{}) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found by %v (%v)", resource, key, value), nil)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err.Error(), err)
}

func ErrUnprocessable(err error) *Err {
	return NewErr(http.StatusUnprocessableEntity, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr writes the error response and logs server faults with the
// request id for correlation.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.internal),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

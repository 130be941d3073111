package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medrec-api/pkg/apperror"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps a domain error to the transport status. Errors are
// never swallowed; store failures surface as 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var ve *apperror.ValidationError
	var pf *apperror.PartialFailureError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, NewErrorResponse(ve.Error()))
	case errors.Is(err, apperror.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error()))
	case errors.Is(err, apperror.ErrForbidden):
		c.JSON(http.StatusForbidden, NewErrorResponse(err.Error()))
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.Is(err, apperror.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case errors.Is(err, apperror.ErrInvalidTransition):
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case errors.As(err, &pf):
		c.JSON(http.StatusInternalServerError, &Response{
			Status:  "error",
			Message: "registration partially failed",
			Data:    gin.H{"orphan_user_id": pf.OrphanUserID},
		})
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
	}
}

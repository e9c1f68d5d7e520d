package handlers

import (
	"errors"
	"net/http"

	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/logger"

	"github.com/gin-gonic/gin"
)

// MsgRequestMalformed is the message of every validation failure.
const MsgRequestMalformed = "Request malformed"

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	StatusCode int                    `json:"status_code" example:"409"`
	Message    string                 `json:"message" example:"conflict on product: resource has been modified since it was read"`
	Payload    map[string]interface{} `json:"payload"`
}

// RespondError writes err in the API error shape with the status code of its class.
func RespondError(c *gin.Context, err error) {
	resp := toErrorResponse(err)
	if resp.StatusCode >= http.StatusInternalServerError {
		logger.FromGinContext(c).WithError(err).Error("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(resp.StatusCode, resp)
}

func toErrorResponse(err error) ErrorResponse {
	var fieldErrs apperrors.FieldErrors
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &fieldErrs):
		errs := make(map[string]string, len(fieldErrs))
		for field, msg := range fieldErrs {
			errs[field] = msg
		}
		return errorResponse(http.StatusBadRequest, MsgRequestMalformed, map[string]interface{}{"errors": errs})
	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return errorResponse(http.StatusBadRequest, validationErr.Message, nil)
		}
		return errorResponse(http.StatusBadRequest, MsgRequestMalformed, map[string]interface{}{
			"errors": map[string]string{validationErr.Field: validationErr.Message},
		})
	case apperrors.IsAuthentication(err), apperrors.IsAuthorization(err):
		return errorResponse(http.StatusUnauthorized, err.Error(), nil)
	case apperrors.IsNotFound(err):
		return errorResponse(http.StatusNotFound, err.Error(), nil)
	case apperrors.IsConflict(err):
		return errorResponse(http.StatusConflict, err.Error(), nil)
	}
	return errorResponse(http.StatusInternalServerError, "internal server error", nil)
}

func errorResponse(status int, message string, payload map[string]interface{}) ErrorResponse {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return ErrorResponse{StatusCode: status, Message: message, Payload: payload}
}

package response

import (
	"net/http"

	"practicehub/pkg/errors"
	"practicehub/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageBody is the flat `{"message": ...}` body used by mutation endpoints.
type MessageBody struct {
	Message string `json:"message"`
}

// FieldViolation describes a single failed validation rule.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationBody enumerates every violated field of a rejected request.
type ValidationBody struct {
	Errors []FieldViolation `json:"errors"`
}

// JSON sends a 200 response with the given payload.
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message sends a 200 response with a confirmation message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Created sends a 201 response with a confirmation message.
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, MessageBody{Message: message})
}

// ValidationFailed sends a 400 response listing every violated field.
func ValidationFailed(c *gin.Context, violations []FieldViolation) {
	c.JSON(http.StatusBadRequest, ValidationBody{Errors: violations})
}

// Error sends an error response.
// It maps the error code to an HTTP status and logs server-side failures
// without leaking their detail to the caller.
func Error(c *gin.Context, err error) {
	customErr := errors.GetError(err)
	status := customErr.Code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			zap.Int("code", int(customErr.Code)),
			zap.String("message", customErr.Error()),
			zap.Error(customErr.Unwrap()),
		)
		c.JSON(status, MessageBody{Message: errors.InternalServerError.Message()})
		return
	}

	logger.Warn(c.Request.Context(), "request rejected",
		zap.Int("code", int(customErr.Code)),
		zap.String("message", customErr.Error()),
	)
	c.JSON(status, MessageBody{Message: customErr.Error()})
}

// AbortUnauthorized rejects a request that carried no credential. No body.
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

// AbortForbidden rejects a request whose credential could not be verified. No body.
func AbortForbidden(c *gin.Context) {
	c.AbortWithStatus(http.StatusForbidden)
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps the error taxonomy onto HTTP codes. Validation and
// incomplete-answer failures are the user's to fix; storage failures are
// reported as service trouble without killing the session.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case IsValidationError(err):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case isAny(err, ErrIncompleteAnswers):
		RespondError(c, http.StatusConflict, "支払い方法を選択してください。")
	case isAny(err, ErrInvalidTransition, ErrInvalidStep, ErrInvalidMode):
		RespondError(c, http.StatusBadRequest, err.Error())
	case isAny(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "diagnosis session not found")
	case isAny(err, ErrStorageFailure, ErrCorruptPayload):
		RespondError(c, http.StatusServiceUnavailable, "データの保存に失敗しました")
	default:
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

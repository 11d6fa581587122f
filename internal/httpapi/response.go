package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

const codeUnauthorized = "UNAUTHORIZED"

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondUseCaseError maps a use-case error to its status and code.
func respondUseCaseError(c *gin.Context, err error) {
	code := contract.CodeOf(err)
	RespondError(c, statusFor(code), string(code), err)
}

func statusFor(code contract.ErrorCode) int {
	switch code {
	case contract.CodeEmptyTopics, contract.CodeInsufficientTime, contract.CodeInvalidRequest:
		return http.StatusBadRequest
	case contract.CodeNotFound:
		return http.StatusNotFound
	case contract.CodeDuplicateActiveRoadmap, contract.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

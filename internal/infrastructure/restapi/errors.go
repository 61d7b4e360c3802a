package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	huberrors "hub_balance/internal/pkg/errors"
)

const codeAccountNotFound = "ACCOUNT_NOT_FOUND"

// APIError is the body of every failed request.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Chain   string            `json:"chain,omitempty"`
	Module  string            `json:"module,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case huberrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case huberrors.CodeChainNotFound, codeAccountNotFound:
		return http.StatusNotFound
	case huberrors.CodeUnsupportedOperation, huberrors.CodeCapabilityUnavailable:
		return http.StatusNotImplemented
	case huberrors.CodeNotConnected:
		return http.StatusServiceUnavailable
	case huberrors.CodeAggregateFailure, huberrors.CodeRuntimeIncompatible, huberrors.CodeQueryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as an APIError with the status of its code.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	body := APIError{Code: huberrors.Code(err), Message: err.Error()}
	var herr *huberrors.Error
	if huberrors.As(err, &herr) {
		body.Message = herr.Message
		body.Chain = herr.Chain
		body.Module = herr.Module
		body.Details = herr.Details
	}

	status := statusFor(body.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: body})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	h.abortWithError(c, huberrors.New(huberrors.ErrInvalidArgument, "", "", message))
}

func (h *Handler) accountNotFound(c *gin.Context, id string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: APIError{
		Code:    codeAccountNotFound,
		Message: "account " + id + " not found",
	}})
}

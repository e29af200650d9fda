package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/authorization"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	reportdomain "github.com/parishlabs/tdrms/internal/report/domain"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                          `json:"type"`
	Message string                          `json:"message"`
	Errors  []receiptdomain.ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &receiptdomain.ValidationErrors{
		Errors: []receiptdomain.ValidationError{
			{Field: "request", Code: "invalid_request", Message: "invalid request"},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr, ok := receiptdomain.AsValidationErrors(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if code, ok := validationErrorCode(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []receiptdomain.ValidationError{
				{Field: validationErrorField(code), Code: code, Message: err.Error()},
			},
		}
	}

	switch {
	case errors.Is(err, verificationdomain.ErrDonorMismatch),
		errors.Is(err, verificationdomain.ErrAmountMismatch):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "verification_failed",
			Message: err.Error(),
		}
	case errors.Is(err, reportdomain.ErrEmptyResultSet):
		return http.StatusNotFound, errorPayload{
			Type:    "empty_result_set",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func validationErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request", true
	case errors.Is(err, verificationdomain.ErrMissingIdentifier):
		return "missing_identifier", true
	case errors.Is(err, verificationdomain.ErrMalformedPayload):
		return "malformed_payload", true
	case errors.Is(err, verificationdomain.ErrInvalidAmount):
		return "invalid_amount", true
	case errors.Is(err, templatedomain.ErrInvalidName):
		return "invalid_name", true
	case errors.Is(err, templatedomain.ErrInvalidOrganization):
		return "invalid_organization", true
	case errors.Is(err, templatedomain.ErrInvalidPurpose):
		return "invalid_purpose", true
	case errors.Is(err, templatedomain.ErrInvalidSignatories):
		return "invalid_signatories", true
	case errors.Is(err, authdomain.ErrInvalidRole):
		return "invalid_role", true
	case errors.Is(err, notificationdomain.ErrInvalidType):
		return "invalid_type", true
	case errors.Is(err, notificationdomain.ErrInvalidMessage):
		return "invalid_message", true
	default:
		return "", false
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "missing_identifier":
		return "receipt_id"
	case "malformed_payload":
		return "payload"
	case "invalid_amount":
		return "amount"
	case "invalid_name":
		return "name"
	case "invalid_organization":
		return "organization"
	case "invalid_purpose":
		return "purpose"
	case "invalid_signatories":
		return "signatories"
	case "invalid_role":
		return "role"
	case "invalid_type":
		return "type"
	case "invalid_message":
		return "message"
	default:
		return ""
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, receiptdomain.ErrReceiptNotFound),
		errors.Is(err, verificationdomain.ErrReceiptNotFound),
		errors.Is(err, templatedomain.ErrTemplateNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels errors for the request log without leaking
// internals.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status >= http.StatusBadRequest:
		return "client", payload.Type
	default:
		return "", ""
	}
}

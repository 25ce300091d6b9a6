// Package errors provides standardized error handling for the configurator.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Client-detectable validation failures. These never reach the network:
	// they block Advance/Submit with an inline message.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// The persistence collaborator refused the payload (e.g. the server-side
	// email re-check failed). The collaborator's message is shown verbatim.
	ErrCodeLeadRejected ErrorCode = "LEAD_REJECTED"

	// No usable response from the persistence collaborator. The user may
	// resubmit; there is no automatic retry.
	ErrCodeTransportError ErrorCode = "TRANSPORT_ERROR"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeLeadNotFound             ErrorCode = "LEAD_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreError ErrorCode = "SESSION_STORE_ERROR"
	ErrCodeInvalidCSRFToken  ErrorCode = "INVALID_CSRF_TOKEN"

	ErrCodeSubmissionPending ErrorCode = "SUBMISSION_PENDING"
	ErrCodeSubmissionLocked  ErrorCode = "SUBMISSION_LOCKED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable local validation error.
// Fields lists the offending input fields so the UI can highlight them.
func NewValidationFailedError(message string, fields []string) *StandardError {
	err := &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if len(fields) > 0 {
		err.Details = fmt.Sprintf("fields: %s", strings.Join(fields, ", "))
		err.Metadata = map[string]interface{}{"fields": fields}
	}
	return err
}

// NewLeadRejectedError wraps a rejection message from the persistence
// collaborator. The message is surfaced to the user verbatim.
func NewLeadRejectedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadRejected,
		Message:   message,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError creates a retryable transport error with a generic
// user-facing message.
func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportError,
		Message:   "An error occurred. Please try again later.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLeadNotFoundError creates a non-retryable missing lead error.
func NewLeadNotFoundError(id int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadNotFound,
		Message:   "Lead not found",
		Details:   fmt.Sprintf("leadId: %d", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable missing session error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Wizard session not found or expired",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError creates a retryable session persistence error.
func NewSessionStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreError,
		Message:   "Failed to persist wizard session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCSRFTokenError creates a non-retryable anti-forgery error.
func NewInvalidCSRFTokenError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCSRFToken,
		Message:   "Security check failed",
		Details:   "missing or mismatched anti-forgery token",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionPendingError signals that a submit attempt is already in flight.
func NewSubmissionPendingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionPending,
		Message:   "A submission is already in progress",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionLockedError signals that the lead was already submitted.
func NewSubmissionLockedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionLocked,
		Message:   "This request has already been submitted",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps internal error codes to HTTP status codes at the API edge.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeLeadRejected:
		return http.StatusUnprocessableEntity
	case ErrCodeSessionNotFound, ErrCodeLeadNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidCSRFToken:
		return http.StatusForbidden
	case ErrCodeSubmissionPending, ErrCodeSubmissionLocked:
		return http.StatusConflict
	case ErrCodeTransportError,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeSessionStoreError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// AsStandardError extracts a *StandardError, wrapping unknown errors as
// transport failures so no failure path escapes the taxonomy.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewTransportError(err)
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "CSRF"):
		return "VALIDATION"
	case strings.Contains(codeStr, "REJECTED") || strings.Contains(codeStr, "SUBMISSION") || strings.Contains(codeStr, "TRANSPORT"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "LEAD"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	default:
		return "OTHER"
	}
}

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError       ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidQuizInput ErrorCode = "INVALID_QUIZ_INPUT"

	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogInvalid    ErrorCode = "CATALOG_INVALID"
	ErrCodeCatalogEmpty      ErrorCode = "CATALOG_EMPTY"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchIndexFailed             ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeNoRecipient            ErrorCode = "NO_RECIPIENT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewParseError wraps a job-variable decoding failure.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false, err)
}

// NewInvalidQuizInputError reports quiz answers that failed schema validation.
func NewInvalidQuizInputError(details string) *StandardError {
	return newError(ErrCodeInvalidQuizInput, "Quiz input validation failed", details, false, nil)
}

// NewCatalogLoadFailedError is retryable: the source may come back.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Provider catalog could not be loaded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

// NewCatalogInvalidError is not retryable: the data itself is wrong.
func NewCatalogInvalidError(details string) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Provider catalog failed validation", details, false, nil)
}

func NewCatalogEmptyError(source string) *StandardError {
	return newError(ErrCodeCatalogEmpty, "Provider catalog is empty", fmt.Sprintf("source: %s", source), false, nil)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true, err)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true, err)
}

func NewSearchIndexFailedError(indexName string, err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Provider search index update failed",
		fmt.Sprintf("indexName: %s, error: %s", indexName, err.Error()), true, err)
}

func NewSearchTimeoutError(indexName string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Elasticsearch request timeout", fmt.Sprintf("indexName: %s", indexName), true, nil)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewNoRecipientError() *StandardError {
	return newError(ErrCodeNoRecipient, "No email address or phone number supplied", "", false, nil)
}

// NewInternalError normalises an arbitrary error.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// BPMNErrorMapping maps internal error codes to BPMN error codes. They are
// identical today; the indirection keeps process models stable if one changes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:                    "PARSE_ERROR",
	ErrCodeInvalidQuizInput:              "INVALID_QUIZ_INPUT",
	ErrCodeCatalogLoadFailed:             "CATALOG_LOAD_FAILED",
	ErrCodeCatalogInvalid:                "CATALOG_INVALID",
	ErrCodeCatalogEmpty:                  "CATALOG_EMPTY",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchIndexFailed:             "SEARCH_INDEX_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
	ErrCodeNoRecipient:                   "NO_RECIPIENT",
	ErrCodeInternal:                      "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeSearchTimeout:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// AsStandardError extracts a StandardError from an error chain, normalising
// anything else into an INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "RECIPIENT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// Package errors provides standardized error handling for the XML
// generation pipeline.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Fatal: the whole job is rejected or aborted.
	ErrCodeInvalidParameter     ErrorCode = "INVALID_PARAMETER"
	ErrCodeTemplateParseFailed  ErrorCode = "TEMPLATE_PARSE_FAILED"
	ErrCodeMissingBatchTemplate ErrorCode = "MISSING_BATCH_TEMPLATE"

	// Warnings: the job continues with degraded output.
	ErrCodeMissingTransactionTemplate ErrorCode = "MISSING_TRANSACTION_TEMPLATE"
	ErrCodeUnknownMessageType         ErrorCode = "UNKNOWN_MESSAGE_TYPE"
	ErrCodeMalformedAmount            ErrorCode = "MALFORMED_AMOUNT"

	// Delivery layer.
	ErrCodeArchiveNotFound ErrorCode = "ARCHIVE_NOT_FOUND"
	ErrCodeCopyFailed      ErrorCode = "COPY_GENERATION_FAILED"
)

// GenerationError represents a structured application error.
type GenerationError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Fatal     bool                   `json:"fatal"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("GenerationError[%s]: %s", e.Code, e.Message)
}

// Is matches two GenerationErrors by code, so that sentinel comparison via
// errors.Is works regardless of the message and details carried.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is dispatch.
var (
	ErrInvalidParameter           = &GenerationError{Code: ErrCodeInvalidParameter}
	ErrTemplateParseFailed        = &GenerationError{Code: ErrCodeTemplateParseFailed}
	ErrMissingBatchTemplate       = &GenerationError{Code: ErrCodeMissingBatchTemplate}
	ErrMissingTransactionTemplate = &GenerationError{Code: ErrCodeMissingTransactionTemplate}
	ErrUnknownMessageType         = &GenerationError{Code: ErrCodeUnknownMessageType}
	ErrMalformedAmount            = &GenerationError{Code: ErrCodeMalformedAmount}
	ErrArchiveNotFound            = &GenerationError{Code: ErrCodeArchiveNotFound}
	ErrCopyFailed                 = &GenerationError{Code: ErrCodeCopyFailed}
)

// NewInvalidParameterError creates a fatal parameter validation error.
// The job is rejected before any work starts.
func NewInvalidParameterError(param, details string) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeInvalidParameter,
		Message:   fmt.Sprintf("invalid parameter %q", param),
		Details:   details,
		Fatal:     true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateParseError creates a fatal template parse error.
func NewTemplateParseError(err error) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeTemplateParseFailed,
		Message:   "template document could not be parsed",
		Details:   err.Error(),
		Fatal:     true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingBatchTemplateError creates a fatal structural error: the
// template carries no batch element, so no copy can be produced.
func NewMissingBatchTemplateError(batchTag string) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeMissingBatchTemplate,
		Message:   "no batch element found in template",
		Details:   fmt.Sprintf("batchTag: %s", batchTag),
		Fatal:     true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingTransactionTemplateError creates a non-fatal structural
// warning: the batch is emitted with zero transactions.
func NewMissingTransactionTemplateError(transactionTag string) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeMissingTransactionTemplate,
		Message:   "no transaction element found in batch",
		Details:   fmt.Sprintf("transactionTag: %s", transactionTag),
		Fatal:     false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownMessageTypeError creates a non-fatal classification warning;
// the default profile is substituted and the job continues.
func NewUnknownMessageTypeError(details string) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeUnknownMessageType,
		Message:   "message type not recognized, default profile substituted",
		Details:   details,
		Fatal:     false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedAmountError creates a non-fatal amount parse warning; the
// transaction's contribution is excluded from control sums.
func NewMalformedAmountError(raw string, err error) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeMalformedAmount,
		Message:   "transaction amount could not be parsed",
		Details:   fmt.Sprintf("amount: %q, error: %s", raw, err.Error()),
		Fatal:     false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveNotFoundError creates an error for an invalid, expired, or
// already-consumed download id.
func NewArchiveNotFoundError(id string) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeArchiveNotFound,
		Message:   "archive not found or already downloaded",
		Details:   fmt.Sprintf("downloadId: %s", id),
		Fatal:     false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCopyFailedError wraps the failure of a single copy's generation.
func NewCopyFailedError(copyIndex int, err error) *GenerationError {
	return &GenerationError{
		Code:      ErrCodeCopyFailed,
		Message:   fmt.Sprintf("copy %d failed", copyIndex+1),
		Details:   err.Error(),
		Fatal:     false,
		Timestamp: time.Now().UTC(),
	}
}

// IsFatal reports whether an error carries a fatal generation code.
func IsFatal(err error) bool {
	if ge, ok := err.(*GenerationError); ok {
		return ge.Fatal
	}
	return false
}

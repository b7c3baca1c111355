package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to callers. The presentation layer maps these to
// HTTP statuses; services and repositories only ever speak in codes.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeSelfRequest      = "SELF_REQUEST"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
	CodeNotFriends       = "NOT_FRIENDS"
	CodeEmptyMessage     = "EMPTY_MESSAGE"
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeStorageFailure   = "STORAGE_FAILURE"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

func NewSelfRequestError() *AppError {
	return &AppError{
		Code:    CodeSelfRequest,
		Message: "Cannot send a friend request to yourself",
	}
}

func NewDuplicateRequestError() *AppError {
	return &AppError{
		Code:    CodeDuplicateRequest,
		Message: "A friend request or friendship already exists between these users",
	}
}

func NewNotFriendsError() *AppError {
	return &AppError{
		Code:    CodeNotFriends,
		Message: "Recipient is not a confirmed friend",
	}
}

func NewEmptyMessageError() *AppError {
	return &AppError{
		Code:    CodeEmptyMessage,
		Message: "Message text must not be empty",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewStorageError wraps a persistence or cache collaborator failure.
// These must never be surfaced as business-logic errors.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageFailure,
		Message: "Storage operation failed",
		Err:     err,
	}
}

// NewInternalError wraps an unexpected failure that is not the caller's fault.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageFailure,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to API clients. Every failure the service produces
// carries exactly one of these machine-checkable codes.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDuplicateIdentity  = "DUPLICATE_IDENTITY"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeSelfReference      = "SELF_REFERENCE"
	CodeAlreadyFriends     = "ALREADY_FRIENDS"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeAlreadyResolved    = "ALREADY_RESOLVED"
	CodeEmptyContent       = "EMPTY_CONTENT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
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
func NewInvalidInputError(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

func NewDuplicateIdentityError() *AppError {
	return &AppError{Code: CodeDuplicateIdentity, Message: "An account with that email or username already exists"}
}

// NewInvalidCredentialsError returns the single credential failure error.
// The message is identical for an unknown email and a wrong password so the
// response never discloses which one was the mismatch.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewSelfReferenceError() *AppError {
	return &AppError{Code: CodeSelfReference, Message: "Cannot send a friend request to yourself"}
}

func NewAlreadyFriendsError() *AppError {
	return &AppError{Code: CodeAlreadyFriends, Message: "You are already friends"}
}

func NewDuplicateRequestError() *AppError {
	return &AppError{Code: CodeDuplicateRequest, Message: "A pending friend request already exists between you"}
}

func NewAlreadyResolvedError() *AppError {
	return &AppError{Code: CodeAlreadyResolved, Message: "Friend request has already been resolved"}
}

func NewEmptyContentError(message string) *AppError {
	return &AppError{Code: CodeEmptyContent, Message: message}
}

// NewStorageError wraps a persistence layer failure. The caller decides on
// retry; the service never retries internally.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageUnavailable,
		Message: "Storage unavailable",
		Err:     err,
	}
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case CodeInvalidInput, CodeSelfReference, CodeAlreadyFriends,
		CodeDuplicateRequest, CodeAlreadyResolved, CodeEmptyContent:
		return fiber.StatusBadRequest
	case CodeInvalidCredentials, CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateIdentity:
		return fiber.StatusConflict
	case CodeStorageUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response. For AppErrors the
// HTTP status is derived from the error code; other errors become opaque 500s.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil && appErr.Code != CodeStorageUnavailable {
			response.Details = appErr.Err.Error()
		}
		return c.Status(statusForCode(appErr.Code)).JSON(response)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "Internal server error",
	})
}

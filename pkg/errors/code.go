package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11999: User & Auth module errors
// 12000-12999: Problem module errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	Unauthorized        ErrorCode = 10004
	Forbidden           ErrorCode = 10005
	TooManyRequests     ErrorCode = 10006
	ServiceUnavailable  ErrorCode = 10007

	// Store errors (10100-10199)
	DatabaseError       ErrorCode = 10100
	RecordAlreadyExists ErrorCode = 10101

	// Validation errors (10300-10399)
	ValidationFailed ErrorCode = 10300

	// ========== User & Auth Module Errors (11000-11999) ==========

	// Authentication (11000-11099)
	InvalidCredentials    ErrorCode = 11000
	TokenExpired          ErrorCode = 11001
	TokenInvalid          ErrorCode = 11002
	TokenGenerationFailed ErrorCode = 11003

	// User operations (11100-11199)
	UserNotFound          ErrorCode = 11100
	UsernameAlreadyExists ErrorCode = 11101
	NotResourceOwner      ErrorCode = 11102

	// ========== Problem Module Errors (12000-12999) ==========

	ProblemNotFound     ErrorCode = 12000
	ProblemCreateFailed ErrorCode = 12001
	ProblemDeleteFailed ErrorCode = 12002
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	Unauthorized:        "Unauthorized access",
	Forbidden:           "Access forbidden",
	TooManyRequests:     "Too many requests, please try again later",
	ServiceUnavailable:  "Service temporarily unavailable",

	DatabaseError:       "Database operation failed",
	RecordAlreadyExists: "Record already exists",

	ValidationFailed: "Validation failed",

	InvalidCredentials:    "Invalid credentials",
	TokenExpired:          "Token has expired",
	TokenInvalid:          "Invalid token",
	TokenGenerationFailed: "Failed to generate token",

	UserNotFound:          "User not found",
	UsernameAlreadyExists: "Username already exists",
	NotResourceOwner:      "Operation not permitted on this resource",

	ProblemNotFound:     "Problem not found",
	ProblemCreateFailed: "Failed to create problem",
	ProblemDeleteFailed: "Failed to delete problem",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the recommended HTTP status code for the error code
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case Success:
		return 200
	case InvalidParams, ValidationFailed, RecordAlreadyExists, UsernameAlreadyExists:
		return 400
	case Unauthorized, InvalidCredentials:
		return 401
	case Forbidden, TokenExpired, TokenInvalid, NotResourceOwner:
		return 403
	case NotFound, UserNotFound, ProblemNotFound:
		return 404
	case TooManyRequests:
		return 429
	case ServiceUnavailable:
		return 503
	default:
		return 500
	}
}

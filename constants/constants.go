package constants

// Context keys set by middlewares
const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
)

const (
	MinPasswordLength = 6
	PriceMaxDigits    = 5
	PricePlaces       = 2
)

// Response messages
const (
	ErrNotFound           = "Not found."
	ErrUnexpected         = "Unexpected error"
	ErrInvalidID          = "Invalid id"
	ErrMalformedBody      = "Malformed request body."
	ErrMethodNotAllowed   = "Method not allowed."
	ErrNotAuthenticated   = "Authentication credentials were not provided."
	ErrInvalidToken       = "Invalid token."
	ErrPermissionDenied   = "You do not have permission to perform this action."
	ErrInvalidCredentials = "Unable to authenticate with provided credentials"
	ErrFieldRequired      = "This field is required."
	ErrFieldBlank         = "This field may not be blank."
	ErrInvalidEmail       = "Enter a valid email address."
	ErrEmailExists        = "user with this email already exists."
	MsgLoggedOut          = "Successfully logged out"
	NonFieldErrorsKey     = "non_field_errors"
	DetailKey             = "detail"
)

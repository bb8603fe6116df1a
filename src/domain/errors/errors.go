package errors

// ErrorType classifies application errors so controllers can map them to
// HTTP status codes without inspecting error strings
type ErrorType string

const (
	NotFound            ErrorType = "NotFound"
	ValidationError     ErrorType = "ValidationError"
	ResourceAlreadyExists ErrorType = "ResourceAlreadyExists"
	NotAuthorized       ErrorType = "NotAuthorized"
	UnknownError        ErrorType = "UnknownError"
)

var errorMessages = map[ErrorType]string{
	NotFound:              "record not found",
	ValidationError:       "validation error",
	ResourceAlreadyExists: "resource already exists",
	NotAuthorized:         "not authorized",
	UnknownError:          "internal error",
}

// AppError carries a classified error through the application layers
type AppError struct {
	Err  error
	Type ErrorType
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return errorMessages[e.Type]
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps an existing error with a type
func NewAppError(err error, errType ErrorType) *AppError {
	return &AppError{Err: err, Type: errType}
}

// NewAppErrorWithType creates an error carrying only a type, using the
// default message for that type
func NewAppErrorWithType(errType ErrorType) *AppError {
	return &AppError{Type: errType}
}

package apperrors

import "errors"

// Generic error kinds. HTTP status mapping is decided on these with errors.Is.
var (
	// NotFound
	ErrResourceNotFound = errors.New("resource not found")
	// UniqueViolation
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// BadClientData
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	ErrServiceUnavailable = errors.New("service unavailable")
)

// Student errors
var (
	ErrStudentNotFound      = NewCustomError(ErrResourceNotFound, "student not found").WithCode("STUDENT_NOT_FOUND")
	ErrStudentAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "a student with this email already exists").WithCode("STUDENT_ALREADY_EXISTS")
	ErrInvalidEmail         = NewCustomError(ErrValidationFailed, "invalid email format").WithCode("INVALID_EMAIL")
)

// Course errors
var (
	ErrCourseNotFound      = NewCustomError(ErrResourceNotFound, "course not found").WithCode("COURSE_NOT_FOUND")
	ErrCourseAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "a course with this name already exists").WithCode("COURSE_ALREADY_EXISTS")
	ErrInvalidCourseName   = NewCustomError(ErrValidationFailed, "course name must not be blank").WithCode("INVALID_COURSE_NAME")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled = NewCustomError(ErrResourceAlreadyExists, "student is already enrolled in this course").WithCode("ALREADY_ENROLLED")
)

// Pool errors
var (
	ErrConnectionUnavailable = NewCustomError(ErrServiceUnavailable, "no database connection available, try again later").WithCode("DB_POOL_EXHAUSTED")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// IsNotFound reports whether err is a NotFound of any entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// IsUniqueViolation reports whether err is a duplicate of an existing record.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrResourceAlreadyExists)
}

// IsBadClientData reports whether err was caused by the caller's input.
func IsBadClientData(err error) bool {
	return Is(err, ErrValidationFailed, ErrBadRequest)
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches another CustomError carrying the same code, so copies made by
// WithDetails still compare equal to the package-level value.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && e.Code != "" && e.Code == t.Code
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying context details.
// The package-level values are shared, so they are never mutated after init.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument is out of the accepted domain.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature, driver or option is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Timeout is returned when an operation does not finish in time.
	Timeout = ErrorKind("Timeout")

	// SomethingWentWrong is returned for unexpected internal failures.
	SomethingWentWrong = ErrorKind("Something Went Wrong")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

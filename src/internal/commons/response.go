package commons

// MessageValidationFailed marks responses rejected before any work was done.
const MessageValidationFailed = "validation failed"

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

func ValidationErrorResponse[T any](err error) Response[T] {
	return ErrorResponse[T](MessageValidationFailed, err.Error())
}

func (r Response[T]) IsValidationFailure() bool {
	return !r.Success && r.Message == MessageValidationFailed
}

// Summary reports the outcome of the response without its data.
func (r Response[T]) Summary() (bool, string) {
	return r.Success, r.Message
}

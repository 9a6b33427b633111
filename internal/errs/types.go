package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type MethodNotAllowedError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// PrincipalDecodeError means an identity header was sent but could not be decoded.
type PrincipalDecodeError struct {
	ErrorMessage
}

// DomainDeniedError means the identity decoded fine but is outside the allowed domain.
type DomainDeniedError struct {
	ErrorMessage
}

type ConfigurationError struct {
	ErrorMessage
}

type RateLimitedError struct {
	ErrorMessage
}

// OrchestrationError wraps any failure inside the tool session or the model rounds.
type OrchestrationError struct {
	ErrorMessage
	Err error
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

const genericOrchestrationMessage = "an unexpected error occurred"

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMethodNotAllowedError(message string) *MethodNotAllowedError {
	return &MethodNotAllowedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewPrincipalDecodeError(message string) *PrincipalDecodeError {
	return &PrincipalDecodeError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDomainDeniedError(message string) *DomainDeniedError {
	return &DomainDeniedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewRateLimitedError() *RateLimitedError {
	return &RateLimitedError{
		ErrorMessage: ErrorMessage{Message: "too many requests"},
	}
}

// NewOrchestrationError keeps the underlying message when there is one.
func NewOrchestrationError(err error) *OrchestrationError {
	message := genericOrchestrationMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &OrchestrationError{
		ErrorMessage: ErrorMessage{Message: message},
		Err:          err,
	}
}

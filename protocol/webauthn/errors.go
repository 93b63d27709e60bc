package webauthn

// Platform ceremony error names, matching the DOMException names a browser
// WebAuthn implementation surfaces.
const (
	ErrNameNotSupported = "NotSupportedError"
	ErrNameNotAllowed   = "NotAllowedError"
	ErrNameAbort        = "AbortError"
	ErrNameConstraint   = "ConstraintError"
	ErrNameInvalidState = "InvalidStateError"
	ErrNameSecurity     = "SecurityError"
	ErrNameUnknown      = "UnknownError"
)

// CeremonyError is the error contract of a delegated ceremony: a well-known
// name, free-text message, and optional numeric code.
type CeremonyError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// NewCeremonyError creates a CeremonyError with the given name and message.
func NewCeremonyError(name, message string) *CeremonyError {
	return &CeremonyError{Name: name, Message: message}
}

// Error returns the string representation of the error.
func (e *CeremonyError) Error() string {
	if e.Message != "" {
		return e.Name + ": " + e.Message
	}
	return e.Name
}

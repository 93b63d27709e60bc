package passkey

import "errors"

// Common errors returned by the passkey package.
var (
	// ErrNotSupported is returned when the WebAuthn capability is absent
	// from the environment.
	ErrNotSupported = errors.New("passkey: webauthn is not supported")
	// ErrPlatformUnavailable is returned when no user-verifying platform
	// authenticator is available.
	ErrPlatformUnavailable = errors.New("passkey: platform authenticator unavailable")
	// ErrNoAuthenticator is returned when a client is built without a
	// ceremony delegate.
	ErrNoAuthenticator = errors.New("passkey: no authenticator configured")
)

// ErrorWithMessage represents an error with an additional descriptive message.
type ErrorWithMessage struct {
	Message string
	Err     error
}

// newErrorMessage creates a new ErrorWithMessage.
func newErrorMessage(err error, msg string) *ErrorWithMessage {
	return &ErrorWithMessage{
		Message: msg,
		Err:     err,
	}
}

// Error returns the string representation of the error.
func (m *ErrorWithMessage) Error() string {
	if m.Message != "" {
		return m.Err.Error() + " (" + m.Message + ")"
	}
	return m.Err.Error()
}

// Unwrap returns the underlying error.
func (m *ErrorWithMessage) Unwrap() error {
	return m.Err
}

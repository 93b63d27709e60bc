package passkey

import (
	"errors"
	"strings"

	"github.com/aegisbank/passkey/protocol/webauthn"
)

// Human-readable messages for the closed set of platform ceremony errors.
const (
	msgNotSupported = "This device does not support biometric authentication."
	msgCancelled    = "Biometric authentication was cancelled or timed out. Please try again."
	msgSandboxed    = "Biometric authentication is blocked in this embedded environment. Open the page in a full browser tab and try again."
	msgAborted      = "Biometric authentication was cancelled."
	msgConstraint   = "This device's authenticator cannot satisfy the requested settings."
	msgInvalidState = "A passkey for this account already exists on this device."
	msgSecurity     = "Biometric authentication was blocked for security reasons. Make sure the page is served over a secure connection."
	msgFallback     = "Biometric authentication failed. Please try again."
)

// sandboxHint is the message fragment a sandboxed frame produces when the
// publickey-credentials permission policy is disabled.
const sandboxHint = "feature is not enabled"

// UserMessage translates a ceremony error into a message fit for the login
// screen. Known error names map to fixed strings; unknown errors fall back
// to their own message, then to a generic failure string.
func UserMessage(err error) string {
	var cerr *webauthn.CeremonyError
	if !errors.As(err, &cerr) {
		if err != nil && err.Error() != "" {
			return err.Error()
		}
		return msgFallback
	}

	switch cerr.Name {
	case webauthn.ErrNameNotSupported:
		return msgNotSupported
	case webauthn.ErrNameNotAllowed:
		if strings.Contains(cerr.Message, sandboxHint) {
			return msgSandboxed
		}
		return msgCancelled
	case webauthn.ErrNameAbort:
		return msgAborted
	case webauthn.ErrNameConstraint:
		return msgConstraint
	case webauthn.ErrNameInvalidState:
		return msgInvalidState
	case webauthn.ErrNameSecurity:
		return msgSecurity
	default:
		if cerr.Message != "" {
			return cerr.Message
		}
		return msgFallback
	}
}

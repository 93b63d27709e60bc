package webauthn

// Client data ceremony types, embedded in the clientDataJSON payload.
const (
	CeremonyTypeCreate = "webauthn.create"
	CeremonyTypeGet    = "webauthn.get"
)

// CollectedClientData is the contextual binding signed over by the
// authenticator. Challenge carries the base64url text form from the options.
type CollectedClientData struct {
	Type        string `json:"type"`
	Challenge   string `json:"challenge"`
	Origin      string `json:"origin"`
	CrossOrigin bool   `json:"crossOrigin,omitempty"`
}

// AuthenticatorAttestationResponse carries the registration ceremony output.
// All byte fields are base64url-encoded.
type AuthenticatorAttestationResponse struct {
	ClientDataJSON    string   `json:"clientDataJSON"`
	AttestationObject string   `json:"attestationObject"`
	Transports        []string `json:"transports,omitempty"`
}

// RegistrationCredential is the public-key credential returned by a
// successful registration ceremony. The payload is opaque to the caller and
// shaped exactly like the browser's JSON serialization, so relying-party
// tooling can consume it unchanged.
type RegistrationCredential struct {
	ID                      string                           `json:"id"`
	RawID                   string                           `json:"rawId"`
	Type                    CredentialType                   `json:"type"`
	AuthenticatorAttachment AuthenticatorAttachment          `json:"authenticatorAttachment,omitempty"`
	Response                AuthenticatorAttestationResponse `json:"response"`
}

// AuthenticatorAssertionResponse carries the authentication ceremony output.
// All byte fields are base64url-encoded.
type AuthenticatorAssertionResponse struct {
	ClientDataJSON    string `json:"clientDataJSON"`
	AuthenticatorData string `json:"authenticatorData"`
	Signature         string `json:"signature"`
	UserHandle        string `json:"userHandle,omitempty"`
}

// AssertionCredential is the public-key credential returned by a successful
// authentication ceremony.
type AssertionCredential struct {
	ID                      string                         `json:"id"`
	RawID                   string                         `json:"rawId"`
	Type                    CredentialType                 `json:"type"`
	AuthenticatorAttachment AuthenticatorAttachment        `json:"authenticatorAttachment,omitempty"`
	Response                AuthenticatorAssertionResponse `json:"response"`
}

// AttestationObject is the CBOR container holding authenticator data and the
// attestation statement.
type AttestationObject struct {
	AuthData []byte         `cbor:"authData"`
	Fmt      string         `cbor:"fmt"`
	AttStmt  map[string]any `cbor:"attStmt"`
}

// AttestationFormatNone is the attestation format carrying no statement.
const AttestationFormatNone = "none"

// Authenticator data flag bits.
const (
	FlagUserPresent            = 0b00000001
	FlagUserVerified           = 0b00000100
	FlagAttestedCredentialData = 0b01000000
)

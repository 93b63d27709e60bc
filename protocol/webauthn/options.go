// Package webauthn defines the client-side WebAuthn wire structures: the
// option containers passed into a ceremony, the credential payloads returned
// by one, and the base64url codec tying the binary and text forms together.
// Field names and JSON tags follow the browser PublicKeyCredential API.
package webauthn

// CredentialType identifies the credential kind. Only "public-key" is
// registered by WebAuthn.
type CredentialType string

// CredentialTypePublicKey is the sole registered credential type.
const CredentialTypePublicKey CredentialType = "public-key"

// COSEAlgorithmIdentifier is a registered COSE algorithm number.
type COSEAlgorithmIdentifier int

const (
	// AlgES256 is ECDSA with SHA-256 over P-256.
	AlgES256 COSEAlgorithmIdentifier = -7
	// AlgRS256 is RSASSA-PKCS1-v1_5 with SHA-256.
	AlgRS256 COSEAlgorithmIdentifier = -257
)

// AuthenticatorAttachment constrains where the authenticator lives.
type AuthenticatorAttachment string

// AttachmentPlatform requests an authenticator bound to the client device,
// such as a fingerprint reader or face unlock.
const AttachmentPlatform AuthenticatorAttachment = "platform"

// UserVerificationRequirement states how strongly the ceremony needs the
// user to be verified, not merely present.
type UserVerificationRequirement string

// UserVerificationRequired means the ceremony fails unless the user is
// verified with biometrics or an equivalent gesture.
const UserVerificationRequired UserVerificationRequirement = "required"

// ResidentKeyRequirement states whether the credential should be
// discoverable by the authenticator without an allow list.
type ResidentKeyRequirement string

// ResidentKeyPreferred asks for a discoverable credential when the
// authenticator supports one.
const ResidentKeyPreferred ResidentKeyRequirement = "preferred"

// AttestationConveyancePreference states how much attestation the relying
// party wants back.
type AttestationConveyancePreference string

// AttestationNone requests no attestation statement at all.
const AttestationNone AttestationConveyancePreference = "none"

// PublicKeyCredentialRpEntity identifies the relying party.
type PublicKeyCredentialRpEntity struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// PublicKeyCredentialUserEntity identifies the account a credential is
// created for. ID is the base64url-encoded user handle.
type PublicKeyCredentialUserEntity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// PublicKeyCredentialParameters names one acceptable signature algorithm.
type PublicKeyCredentialParameters struct {
	Type CredentialType          `json:"type"`
	Alg  COSEAlgorithmIdentifier `json:"alg"`
}

// PublicKeyCredentialDescriptor references an existing credential by its
// base64url-encoded id.
type PublicKeyCredentialDescriptor struct {
	Type       CredentialType `json:"type"`
	ID         string         `json:"id"`
	Transports []string       `json:"transports,omitempty"`
}

// AuthenticatorSelectionCriteria narrows which authenticators may take part
// in a registration ceremony.
type AuthenticatorSelectionCriteria struct {
	AuthenticatorAttachment AuthenticatorAttachment     `json:"authenticatorAttachment,omitempty"`
	ResidentKey             ResidentKeyRequirement      `json:"residentKey,omitempty"`
	UserVerification        UserVerificationRequirement `json:"userVerification"`
}

// PublicKeyCredentialCreationOptions is the request container for a
// registration ceremony. Challenge is base64url-encoded.
type PublicKeyCredentialCreationOptions struct {
	Challenge              string                          `json:"challenge"`
	RP                     PublicKeyCredentialRpEntity     `json:"rp"`
	User                   PublicKeyCredentialUserEntity   `json:"user"`
	PubKeyCredParams       []PublicKeyCredentialParameters `json:"pubKeyCredParams"`
	AuthenticatorSelection *AuthenticatorSelectionCriteria `json:"authenticatorSelection,omitempty"`
	Timeout                uint                            `json:"timeout,omitempty"`
	Attestation            AttestationConveyancePreference `json:"attestation,omitempty"`
	ExcludeCredentials     []PublicKeyCredentialDescriptor `json:"excludeCredentials,omitempty"`
}

// PublicKeyCredentialRequestOptions is the request container for an
// authentication ceremony. Challenge is base64url-encoded.
type PublicKeyCredentialRequestOptions struct {
	Challenge        string                          `json:"challenge"`
	Timeout          uint                            `json:"timeout,omitempty"`
	RPID             string                          `json:"rpId,omitempty"`
	AllowCredentials []PublicKeyCredentialDescriptor `json:"allowCredentials"`
	UserVerification UserVerificationRequirement     `json:"userVerification,omitempty"`
}

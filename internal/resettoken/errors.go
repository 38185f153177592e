package resettoken

import "errors"

var (
	ErrValidation       = errors.New("missing or invalid field")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoContact        = errors.New("no email address on file for this user")
	ErrFormat           = errors.New("invalid token format")
	ErrMalformed        = errors.New("malformed token")
	ErrSignature        = errors.New("invalid token signature")
	ErrExpired          = errors.New("reset token has expired")
	ErrInvalidCode      = errors.New("invalid reset code")
	ErrIdentityMismatch = errors.New("provided account details do not match the token")
	ErrTokenUsed        = errors.New("reset token has already been used")
	ErrDelivery         = errors.New("could not deliver reset code")
	ErrStore            = errors.New("could not update credentials")
)

// IsClientError reports whether err is caused by the caller's input rather
// than by a failing collaborator.
func IsClientError(err error) bool {
	for _, e := range []error{
		ErrValidation, ErrNoContact, ErrFormat, ErrMalformed, ErrSignature,
		ErrExpired, ErrInvalidCode, ErrIdentityMismatch, ErrTokenUsed,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

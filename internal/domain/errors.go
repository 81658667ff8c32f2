package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Workflow errors for the signup and verification orchestrators.
// Collaborator failures are normalized to one of these at the adapter or
// orchestrator boundary; callers discriminate with errors.Is.
var (
	// ErrDuplicateAccount: a user record already exists for this email.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrProvider: the identity provider rejected or failed the operation.
	ErrProvider = errors.New("identity provider failure")
	// ErrNoActiveChallenge: no outstanding OTP record, or it expired.
	ErrNoActiveChallenge = errors.New("no active verification challenge")
	// ErrInvalidCode: one or both submitted codes did not match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrVerificationPartial: codes were consumed but a later step failed.
	// The principal must request a fresh signup-level resend.
	ErrVerificationPartial = errors.New("verification partially applied")
	// ErrStore: durable store transport or consistency failure.
	ErrStore = errors.New("store failure")
)

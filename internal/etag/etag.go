// Package etag implements the optimistic concurrency tokens carried by every
// stored resource.
package etag

import (
	"strings"

	apperrors "dci-control-server/internal/errors"

	"github.com/google/uuid"
)

// Header is the request header through which clients present the etag they last read.
const Header = "If-match"

// New returns a fresh token. Tokens are random and never reused.
func New() string {
	return uuid.NewString()
}

// Normalize strips the optional double quotes and weak marker clients put around a token.
func Normalize(presented string) string {
	presented = strings.TrimSpace(presented)
	presented = strings.TrimPrefix(presented, "W/")
	return strings.Trim(presented, `"`)
}

// Check compares the stored token with the one presented by the caller.
// An absent token is a conflict, same as a stale one.
func Check(entity, current, presented string) error {
	presented = Normalize(presented)
	if presented == "" {
		return apperrors.NewConflictError(entity, apperrors.ErrEtagMissing.Message)
	}
	if presented != current {
		return apperrors.NewConflictError(entity, apperrors.ErrEtagMismatch.Message)
	}
	return nil
}

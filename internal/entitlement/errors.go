// Package entitlement is the single source of truth for whether a user
// has the right to fetch a content item's artifact. The Engine computes
// the access decision and maintains the library cascades that catalog
// and user mutations require; the Gateway is the one checkpoint every
// download authorization passes through.
package entitlement

import "errors"

// Sentinel outcomes of the gateway pipeline. Each stage fails closed
// with its own error so callers never conflate, for example, "no such
// content" with "no access". Handlers translate these one-to-one into
// HTTP statuses.
var (
	// ErrUnauthenticated is returned when the bearer token is missing,
	// unknown, revoked or past its absolute lifetime. It is raised
	// before any content lookup, so an unauthenticated caller learns
	// nothing about the catalog.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNoArtifact is returned when the item exists and is otherwise
	// servable but nothing was ever uploaded for it.
	ErrNoArtifact = errors.New("no file has been uploaded for this content")

	// ErrForbidden is returned when a valid identity fails the access
	// decision rule.
	ErrForbidden = errors.New("forbidden")
)

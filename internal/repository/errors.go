// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// entitlement engine and handlers to distinguish between different
// failure scenarios. For example, ErrEmailExists indicates the atomic
// unique-key precondition on registration failed because another writer
// already holds the email, while ErrContentNotFound separates "no such
// item" from every access-control outcome.
package repository

import "errors"

// ErrEmailExists is returned when a user insert loses the unique-email
// race. Handlers translate this into an HTTP 409 response; it is never
// retried and never silently overwrites the first writer.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrContentNotFound is returned when a content lookup or mutation
// references an id that does not exist. Callers must keep this distinct
// from access denial.
var ErrContentNotFound = errors.New("content not found")

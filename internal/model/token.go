package model

import "time"

// Token models an entry in the `tokens` table. A token is the bearer
// credential issued at register/login and presented on every request.
// The plain value is returned to the client once; only its SHA-256
// hash is stored. Tokens die either by logout (RevokedAt set) or by
// crossing the 30-day absolute lifetime, enforced at read time.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – issuance time plus the absolute lifetime.
//  RevokedAt – when the token was revoked (null if still live).
//  CreatedAt – timestamp of issuance.
type Token struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// TokenLifetime is the absolute validity window of a bearer token,
// measured from issuance regardless of use.
const TokenLifetime = 30 * 24 * time.Hour

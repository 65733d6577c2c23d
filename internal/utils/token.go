package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for bearer tokens
    "encoding/hex"  // hex encoding functions
    "time"          // time utilities for generating expirations
)

// BearerToken represents an opaque session token handed to a client.
// The Raw field contains the value returned to the client. The Exp
// field records the absolute expiry. In the database only a SHA-256
// hash of the raw string is stored, so a leaked table cannot be used
// to impersonate sessions.
type BearerToken struct {
    Raw string    // raw token string returned to the client
    Exp time.Time // UTC expiration time
}

// NewBearerToken returns a cryptographically secure random token (raw)
// and its expiration time. The lifetime is absolute: the token becomes
// invalid once Exp passes regardless of how recently it was used.
func NewBearerToken(lifetime time.Duration) (BearerToken, error) {
    // 48 random bytes encode to 96 hex characters, far beyond guessing range.
    raw, err := randomHex(48)
    if err != nil {
        return BearerToken{}, err
    }
    return BearerToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(lifetime),
    }, nil
}

// HashTokenRaw returns the SHA-256 hash of the raw token as a hex
// string. Only the hash is ever persisted.
func HashTokenRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

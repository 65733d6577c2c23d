package model

import "time"

// Role values stored in users.role. The platform only distinguishes
// students from catalog administrators.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Subscription status values stored in users.sub_status. The stored
// status is never trusted on its own: access checks always compare
// ExpiresAt against the current clock as well.
const (
	SubStatusActive   = "active"
	SubStatusInactive = "inactive"
	SubStatusPastDue  = "past_due"
)

// Subscription is the per-user subscription record embedded in the
// users row. A user without a subscription carries a nil *Subscription.
//
// Fields:
//  PlanID    – identifier of the plan from the static plan catalog.
//  Status    – active | inactive | past_due.
//  ExpiresAt – absolute end of the current term (UTC).
type Subscription struct {
	PlanID    string    `json:"plan_id"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the subscription grants blanket access at
// instant now. Expiry is evaluated lazily here instead of by a sweeper,
// so a stale "active" status past its term never grants access.
func (s *Subscription) Active(now time.Time) bool {
	return s != nil && s.Status == SubStatusActive && s.ExpiresAt.After(now)
}

// User represents an application user record as stored in the `users`
// table. PasswordHash must never leave the service; handlers build
// separate response structs that omit it.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed credential.
//  Phone        – optional contact number.
//  Role         – STUDENT or ADMIN.
//  Subscription – nil until the first activation.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         string
	Subscription *Subscription
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may perform catalog mutations.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

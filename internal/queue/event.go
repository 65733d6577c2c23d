// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the entitlement.events queue.
const (
    KindSubscriptionActivated = "subscription.activated"
    KindContentDeleted        = "content.deleted"
)

// EntitlementEvent is published after an entitlement-changing mutation
// commits. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database. Fields irrelevant to a given kind stay empty.
type EntitlementEvent struct {
    Kind         string `json:"kind"`
    UserID       uint64 `json:"user_id,omitempty"`
    UserEmail    string `json:"user_email,omitempty"`
    PlanID       string `json:"plan_id,omitempty"`
    ExpiresAt    string `json:"expires_at,omitempty"`
    ContentID    uint64 `json:"content_id,omitempty"`
    ContentTitle string `json:"content_title,omitempty"`
    OccurredAt   string `json:"occurred_at"`
}

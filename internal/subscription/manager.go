// Package subscription tracks a user's plan, status and expiry and, on
// activation, grants blanket catalog access through the entitlement
// engine. Expiry is never swept by a background job: the entitlement
// decision rule re-validates expires_at on every access check instead.
package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/edu-content-platform/internal/entitlement"
	"github.com/iliyamo/edu-content-platform/internal/model"
)

// ErrPlanNotFound is returned when an activation names a plan id that
// is not in the static plan catalog. No mutation is performed.
var ErrPlanNotFound = errors.New("subscription plan not found")

// UserStore is the slice of the user repository the manager needs.
type UserStore interface {
	SetSubscription(ctx context.Context, id uint64, planID, status string, expiresAt time.Time) error
}

// Manager activates subscription plans for users.
type Manager struct {
	Users  UserStore
	Engine *entitlement.Engine

	// now is swappable in tests; defaults to the real clock.
	now func() time.Time
}

func NewManager(users UserStore, engine *entitlement.Engine) *Manager {
	return &Manager{Users: users, Engine: engine, now: func() time.Time { return time.Now().UTC() }}
}

// Plans returns the static plan catalog.
func (m *Manager) Plans() []model.SubscriptionPlan {
	return model.Plans()
}

// Activate validates the plan, overwrites the user's subscription
// record wholesale with a fresh fixed term, and backfills the current
// catalog into the user's library so the purchased listing is complete
// immediately. A second activation before expiry resets the clock and
// may switch plan; there is no stacking and no proration.
func (m *Manager) Activate(ctx context.Context, user model.User, planID string) (model.Subscription, error) {
	plan, ok := model.PlanByID(planID)
	if !ok {
		return model.Subscription{}, ErrPlanNotFound
	}

	sub := model.Subscription{
		PlanID:    plan.ID,
		Status:    model.SubStatusActive,
		ExpiresAt: m.now().Add(model.SubscriptionTerm),
	}
	if err := m.Users.SetSubscription(ctx, user.ID, sub.PlanID, sub.Status, sub.ExpiresAt); err != nil {
		return model.Subscription{}, err
	}

	// Blanket grant of everything that exists right now. Content added
	// later is covered by the subscription branch of the decision rule
	// until a catalog mutation backfills it.
	if err := m.Engine.GrantCatalog(ctx, user.ID); err != nil {
		return model.Subscription{}, err
	}
	return sub, nil
}

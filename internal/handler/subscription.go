package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/edu-content-platform/internal/queue"
	queuepub "github.com/iliyamo/edu-content-platform/internal/service"
	"github.com/iliyamo/edu-content-platform/internal/subscription"
)

// SubscriptionHandler exposes plan activation for authenticated users.
type SubscriptionHandler struct {
	Manager *subscription.Manager
}

func NewSubscriptionHandler(m *subscription.Manager) *SubscriptionHandler {
	if m == nil {
		panic("nil manager passed to NewSubscriptionHandler")
	}
	return &SubscriptionHandler{Manager: m}
}

type activateReq struct {
	PlanID string `json:"plan_id"`
}

// Activate handles POST /v1/subscription/activate. The new term always
// starts now regardless of any previous subscription state, and the
// caller's library is backfilled with the current catalog before the
// response is written.
func (h *SubscriptionHandler) Activate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req activateReq
	if err := c.Bind(&req); err != nil || req.PlanID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plan_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sub, err := h.Manager.Activate(ctx, user, req.PlanID)
	if err != nil {
		if err == subscription.ErrPlanNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not activate subscription"})
	}

	// Audit event; delivery failure never rolls back the activation.
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		if err := queuepub.PublishEntitlementEvent(pctx, queue.EntitlementEvent{
			Kind:       queue.KindSubscriptionActivated,
			UserID:     user.ID,
			UserEmail:  user.Email,
			PlanID:     sub.PlanID,
			ExpiresAt:  sub.ExpiresAt.UTC().Format(time.RFC3339),
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("⚠️ publish subscription.activated: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "subscription activated",
		"subscription": sub,
	})
}

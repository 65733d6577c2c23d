package model

import "time"

// SubscriptionPlan is static reference data; plans live in code, not in
// the database, and are read-only at runtime.
type SubscriptionPlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  uint32 `json:"price_cents"`
	Description string `json:"description"`
}

// SubscriptionTerm is the fixed length of one paid period. A repeat
// activation before expiry simply restarts the term from "now".
const SubscriptionTerm = 30 * 24 * time.Hour

// Plans returns the static plan catalog. Callers receive a fresh slice
// so they cannot mutate the catalog.
func Plans() []SubscriptionPlan {
	return []SubscriptionPlan{
		{ID: "starter", Name: "Starter Plan", PriceCents: 699, Description: "Access to core revision kits"},
		{ID: "premium", Name: "Premium Plan", PriceCents: 999, Description: "All kits, downloads, and support"},
	}
}

// PlanByID looks up a plan in the static catalog.
func PlanByID(id string) (SubscriptionPlan, bool) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return SubscriptionPlan{}, false
}

package model

import (
	"testing"
	"time"
)

func TestDetectContentType(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"application/pdf", ContentTypePDF},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentTypeDocx},
		{"application/msword", ContentTypeDocx},
		{"application/vnd.openxmlformats-officedocument.presentationml.presentation", ContentTypePptx},
		{"text/plain", ContentTypeTxt},
		{"audio/mpeg", ContentTypeAudio},
		{"video/mp4", ContentTypeVideo},
		{"application/epub+zip", ContentTypeEPUB},
		{"application/octet-stream", ContentTypeOther},
		{"", ContentTypeOther},
	}
	for _, tc := range cases {
		if got := DetectContentType(tc.mime); got != tc.want {
			t.Errorf("DetectContentType(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestContentItemFlags(t *testing.T) {
	free := ContentItem{PriceCents: 0}
	paid := ContentItem{PriceCents: 499, FileKey: "content/2026/08/29/abc"}

	if !free.Free() || paid.Free() {
		t.Error("Free must reflect a zero price only")
	}
	if free.HasArtifact() {
		t.Error("item without a file key must report no artifact")
	}
	if !paid.HasArtifact() {
		t.Error("item with a file key must report an artifact")
	}
}

func TestSubscriptionActive(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var none *Subscription
	if none.Active(now) {
		t.Error("nil subscription must not be active")
	}

	live := &Subscription{PlanID: "starter", Status: SubStatusActive, ExpiresAt: now.Add(24 * time.Hour)}
	if !live.Active(now) {
		t.Error("active unexpired subscription must be active")
	}

	// Status alone is never enough; the clock wins.
	stale := &Subscription{PlanID: "starter", Status: SubStatusActive, ExpiresAt: now.Add(-time.Second)}
	if stale.Active(now) {
		t.Error("expired subscription must not be active regardless of status")
	}

	lapsed := &Subscription{PlanID: "starter", Status: SubStatusInactive, ExpiresAt: now.Add(24 * time.Hour)}
	if lapsed.Active(now) {
		t.Error("inactive status must not be active")
	}
}

func TestPlanByID(t *testing.T) {
	if _, ok := PlanByID("starter"); !ok {
		t.Error("starter plan must exist")
	}
	if _, ok := PlanByID("enterprise"); ok {
		t.Error("unknown plan id must not resolve")
	}
}

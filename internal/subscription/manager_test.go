package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/edu-content-platform/internal/entitlement"
	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/repository"
)

// recordingUserStore captures SetSubscription calls so tests can assert
// both the written record and the absence of writes on failure.
type recordingUserStore struct {
	calls []writtenSub
}

type writtenSub struct {
	userID    uint64
	planID    string
	status    string
	expiresAt time.Time
}

func (r *recordingUserStore) SetSubscription(_ context.Context, id uint64, planID, status string, expiresAt time.Time) error {
	r.calls = append(r.calls, writtenSub{id, planID, status, expiresAt})
	return nil
}

// catalogLibrary implements the engine's LibraryStore with just enough
// behavior to observe the activation backfill.
type catalogLibrary struct {
	contentIDs []uint64
	granted    map[uint64][]uint64 // userID -> content ids granted
}

func (c *catalogLibrary) Contains(context.Context, uint64, uint64) (bool, error) { return false, nil }
func (c *catalogLibrary) GrantContentToAll(context.Context, uint64) error        { return nil }
func (c *catalogLibrary) RevokeContentFromAll(context.Context, uint64) error     { return nil }
func (c *catalogLibrary) GrantFreeContent(context.Context, uint64) error         { return nil }
func (c *catalogLibrary) GrantAllContent(_ context.Context, userID uint64) error {
	if c.granted == nil {
		c.granted = map[uint64][]uint64{}
	}
	c.granted[userID] = append([]uint64(nil), c.contentIDs...)
	return nil
}

type emptyContent struct{}

func (emptyContent) GetByID(context.Context, uint64) (model.ContentItem, error) {
	return model.ContentItem{}, repository.ErrContentNotFound
}

var activateAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(library *catalogLibrary) (*Manager, *recordingUserStore) {
	users := &recordingUserStore{}
	m := NewManager(users, entitlement.NewEngine(emptyContent{}, library))
	m.now = func() time.Time { return activateAt }
	return m, users
}

func TestActivate_UnknownPlanMutatesNothing(t *testing.T) {
	m, users := newTestManager(&catalogLibrary{})

	_, err := m.Activate(context.Background(), model.User{ID: 7}, "platinum")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.Empty(t, users.calls, "a failed validation must not write anything")
}

func TestActivate_WritesFixedTermAndBackfillsCatalog(t *testing.T) {
	library := &catalogLibrary{contentIDs: []uint64{1, 2, 3}}
	m, users := newTestManager(library)

	sub, err := m.Activate(context.Background(), model.User{ID: 7}, "premium")
	require.NoError(t, err)

	assert.Equal(t, "premium", sub.PlanID)
	assert.Equal(t, model.SubStatusActive, sub.Status)
	assert.Equal(t, activateAt.Add(30*24*time.Hour), sub.ExpiresAt)

	require.Len(t, users.calls, 1)
	assert.Equal(t, sub.ExpiresAt, users.calls[0].expiresAt)

	// Every item existing at activation time lands in the library.
	assert.Equal(t, []uint64{1, 2, 3}, library.granted[7])
}

func TestActivate_RepeatActivationResetsClockAndPlan(t *testing.T) {
	m, users := newTestManager(&catalogLibrary{})

	_, err := m.Activate(context.Background(), model.User{ID: 7}, "starter")
	require.NoError(t, err)

	// Ten days later the user upgrades; the record is overwritten
	// wholesale with a fresh 30-day term, no stacking.
	m.now = func() time.Time { return activateAt.Add(10 * 24 * time.Hour) }
	sub, err := m.Activate(context.Background(), model.User{ID: 7}, "premium")
	require.NoError(t, err)

	assert.Equal(t, "premium", sub.PlanID)
	assert.Equal(t, activateAt.Add(40*24*time.Hour), sub.ExpiresAt)
	assert.Len(t, users.calls, 2)
}

func TestPlans_ReturnsStaticCatalog(t *testing.T) {
	m, _ := newTestManager(&catalogLibrary{})

	plans := m.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, "starter", plans[0].ID)
	assert.Equal(t, "premium", plans[1].ID)

	// Callers get a copy; mutating it must not poison the catalog.
	plans[0].ID = "mutated"
	assert.Equal(t, "starter", m.Plans()[0].ID)
}

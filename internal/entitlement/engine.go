package entitlement

import (
	"context"
	"time"

	"github.com/iliyamo/edu-content-platform/internal/model"
)

// ContentStore is the slice of the catalog repository the engine needs.
// GetByID must return repository.ErrContentNotFound (or a wrapper of
// it) when the id does not exist.
type ContentStore interface {
	GetByID(ctx context.Context, id uint64) (model.ContentItem, error)
}

// LibraryStore is the slice of the library repository the engine needs.
// All mutations must be idempotent set operations: replaying any of
// them is a no-op, never an error.
type LibraryStore interface {
	Contains(ctx context.Context, userID, contentID uint64) (bool, error)
	GrantContentToAll(ctx context.Context, contentID uint64) error
	RevokeContentFromAll(ctx context.Context, contentID uint64) error
	GrantFreeContent(ctx context.Context, userID uint64) error
	GrantAllContent(ctx context.Context, userID uint64) error
}

// Engine evaluates the access decision rule and applies the library
// cascades triggered by catalog and user lifecycle events.
type Engine struct {
	Content ContentStore
	Library LibraryStore

	// now is swappable in tests; defaults to the real clock.
	now func() time.Time
}

func NewEngine(content ContentStore, library LibraryStore) *Engine {
	return &Engine{Content: content, Library: library, now: func() time.Time { return time.Now().UTC() }}
}

// Decide applies the decision rule to an already-loaded content item,
// short-circuiting in order:
//
//  1. free content is universally accessible;
//  2. an active, unexpired subscription unlocks the full catalog;
//  3. direct library ownership grants the single item;
//  4. otherwise access is denied.
//
// Rule 2 re-validates expiry against the clock on every call, so a
// stored "active" status past its term never grants access. Rules 1 and
// 2 do not consult the library at all, which is why the catalog-wide
// backfill cascades can lag across users without affecting access.
func (e *Engine) Decide(ctx context.Context, user model.User, item model.ContentItem) (bool, error) {
	if item.Free() {
		return true, nil
	}
	if user.Subscription.Active(e.now()) {
		return true, nil
	}
	return e.Library.Contains(ctx, user.ID, item.ID)
}

// CheckAccess loads the content item and applies the decision rule. An
// unknown content id surfaces the store's not-found error untouched:
// "no such content" must stay distinct from "no access".
func (e *Engine) CheckAccess(ctx context.Context, user model.User, contentID uint64) (bool, error) {
	item, err := e.Content.GetByID(ctx, contentID)
	if err != nil {
		return false, err
	}
	return e.Decide(ctx, user, item)
}

// ContentCreated runs the catalog-creation cascade: a free item is
// granted into every existing user's library so library-based listings
// stay consistent. Priced items need no grant; rule 2 and future
// purchases cover them.
func (e *Engine) ContentCreated(ctx context.Context, item model.ContentItem) error {
	if !item.Free() {
		return nil
	}
	return e.Library.GrantContentToAll(ctx, item.ID)
}

// ContentDeleted runs the deletion cascade: the id is retracted from
// every user's library regardless of price, so a deleted id can never
// again resolve to granted access through ownership.
func (e *Engine) ContentDeleted(ctx context.Context, contentID uint64) error {
	return e.Library.RevokeContentFromAll(ctx, contentID)
}

// UserCreated seeds a fresh user's library with all currently-free
// content so their first "my content" view is populated without a
// catalog scan.
func (e *Engine) UserCreated(ctx context.Context, userID uint64) error {
	return e.Library.GrantFreeContent(ctx, userID)
}

// GrantCatalog backfills the entire current catalog into one user's
// library. The subscription manager invokes this at activation time;
// content added later is still covered by rule 2 until the next
// catalog-mutation cascade backfills it.
func (e *Engine) GrantCatalog(ctx context.Context, userID uint64) error {
	return e.Library.GrantAllContent(ctx, userID)
}

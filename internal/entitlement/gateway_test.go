package entitlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/repository"
)

// newTestGateway wires a gateway over fakes with one student (id 7,
// token "tok-student") and whatever content the caller provides.
func newTestGateway(library *fakeLibraryStore, items ...model.ContentItem) *Gateway {
	content := newFakeContentStore(items...)
	tokens := newFakeTokenStore()
	tokens.issue("tok-student", 7)
	users := newFakeUserStore(student(7, nil))
	engine := newTestEngine(content, library)
	return NewGateway(tokens, users, content, engine)
}

func TestAuthorizeDownload_MissingTokenRejectedBeforeLookup(t *testing.T) {
	gw := newTestGateway(newFakeLibraryStore())

	// Content id 999 does not exist either, but authentication must
	// fail first so the caller learns nothing about the catalog.
	_, err := gw.AuthorizeDownload(context.Background(), "", 999)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = gw.AuthorizeDownload(context.Background(), "unknown-token", 999)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeDownload_UnknownContentIsNotFoundNeverForbidden(t *testing.T) {
	gw := newTestGateway(newFakeLibraryStore())

	_, err := gw.AuthorizeDownload(context.Background(), "tok-student", 999)
	assert.ErrorIs(t, err, repository.ErrContentNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeDownload_NoArtifactBeforeEntitlement(t *testing.T) {
	// Item is free (so access would be granted) but has no upload.
	free := model.ContentItem{ID: 1, PriceCents: 0}
	gw := newTestGateway(newFakeLibraryStore(), free)

	_, err := gw.AuthorizeDownload(context.Background(), "tok-student", 1)
	assert.ErrorIs(t, err, ErrNoArtifact)

	// Item is paid and inaccessible AND has no upload: the artifact
	// stage still fires first, per the fixed pipeline order.
	paid := model.ContentItem{ID: 2, PriceCents: 500}
	gw = newTestGateway(newFakeLibraryStore(), paid)
	_, err = gw.AuthorizeDownload(context.Background(), "tok-student", 2)
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestAuthorizeDownload_DeniedPaidContentIsForbidden(t *testing.T) {
	paid := model.ContentItem{ID: 2, PriceCents: 500, FileKey: "users/2025/obj-2"}
	gw := newTestGateway(newFakeLibraryStore(), paid)

	_, err := gw.AuthorizeDownload(context.Background(), "tok-student", 2)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeDownload_OwnedContentReturnsArtifactRef(t *testing.T) {
	paid := model.ContentItem{ID: 3, PriceCents: 450, FileKey: "users/2025/obj-3", FileName: "chem.pdf", FileType: "application/pdf"}
	library := newFakeLibraryStore()
	library.add(7, 3)
	gw := newTestGateway(library, paid)

	item, err := gw.AuthorizeDownload(context.Background(), "tok-student", 3)
	require.NoError(t, err)
	assert.Equal(t, "users/2025/obj-3", item.FileKey)
	assert.Equal(t, "chem.pdf", item.FileName)
}

func TestAuthorizeDownload_SubscriberGetsPaidContentImmediately(t *testing.T) {
	paid := model.ContentItem{ID: 4, PriceCents: 999, FileKey: "users/2025/obj-4"}
	content := newFakeContentStore(paid)
	tokens := newFakeTokenStore()
	tokens.issue("tok-sub", 8)
	sub := &model.Subscription{PlanID: "premium", Status: model.SubStatusActive, ExpiresAt: testNow.Add(model.SubscriptionTerm)}
	users := newFakeUserStore(student(8, sub))
	engine := newTestEngine(content, newFakeLibraryStore())
	gw := NewGateway(tokens, users, content, engine)

	item, err := gw.AuthorizeDownload(context.Background(), "tok-sub", 4)
	require.NoError(t, err)
	assert.Equal(t, paid.FileKey, item.FileKey)
}

func TestAuthorizeDownload_DeletedContentNeverResolvesAgain(t *testing.T) {
	paid := model.ContentItem{ID: 5, PriceCents: 500, FileKey: "users/2025/obj-5"}
	library := newFakeLibraryStore()
	library.add(7, 5)
	content := newFakeContentStore(paid)
	tokens := newFakeTokenStore()
	tokens.issue("tok-student", 7)
	users := newFakeUserStore(student(7, nil))
	engine := newTestEngine(content, library)
	gw := NewGateway(tokens, users, content, engine)

	// Owned and uploaded: granted.
	_, err := gw.AuthorizeDownload(context.Background(), "tok-student", 5)
	require.NoError(t, err)

	// Delete the item and run the cascade; the id must now resolve to
	// not-found, never to forbidden or to a stale grant.
	delete(content.items, 5)
	require.NoError(t, engine.ContentDeleted(context.Background(), 5))
	_, err = gw.AuthorizeDownload(context.Background(), "tok-student", 5)
	assert.ErrorIs(t, err, repository.ErrContentNotFound)
}

func TestResolveToken_LoadsUserRecord(t *testing.T) {
	gw := newTestGateway(newFakeLibraryStore())

	u, err := gw.ResolveToken(context.Background(), "tok-student")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, model.RoleStudent, u.Role)
}

func TestEngineClockDefaultsToNow(t *testing.T) {
	e := NewEngine(newFakeContentStore(), newFakeLibraryStore())
	assert.WithinDuration(t, time.Now().UTC(), e.now(), 2*time.Second)
}

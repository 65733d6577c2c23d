package entitlement

import (
	"context"
	"database/sql"

	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/repository"
	"github.com/iliyamo/edu-content-platform/internal/utils"
)

// In-memory store fakes backing the engine and gateway tests. They
// mirror the contracts of the real repositories: set semantics on the
// library, sql.ErrNoRows on a token miss, repository sentinels on
// missing rows.

type fakeContentStore struct {
	items map[uint64]model.ContentItem
}

func newFakeContentStore(items ...model.ContentItem) *fakeContentStore {
	m := make(map[uint64]model.ContentItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeContentStore{items: m}
}

func (f *fakeContentStore) GetByID(_ context.Context, id uint64) (model.ContentItem, error) {
	it, ok := f.items[id]
	if !ok {
		return model.ContentItem{}, repository.ErrContentNotFound
	}
	return it, nil
}

type fakeLibraryStore struct {
	// owned[userID] is the set of content ids in that user's library.
	owned map[uint64]map[uint64]bool
	// users known to the store, for the grant-to-all cascade.
	userIDs []uint64
	// contentIDs currently in the catalog, for the grant-all cascades.
	contentIDs []uint64
	freeIDs    []uint64
}

func newFakeLibraryStore() *fakeLibraryStore {
	return &fakeLibraryStore{owned: map[uint64]map[uint64]bool{}}
}

func (f *fakeLibraryStore) add(userID, contentID uint64) {
	if f.owned[userID] == nil {
		f.owned[userID] = map[uint64]bool{}
	}
	f.owned[userID][contentID] = true
}

func (f *fakeLibraryStore) Contains(_ context.Context, userID, contentID uint64) (bool, error) {
	return f.owned[userID][contentID], nil
}

func (f *fakeLibraryStore) GrantContentToAll(_ context.Context, contentID uint64) error {
	for _, uid := range f.userIDs {
		f.add(uid, contentID)
	}
	return nil
}

func (f *fakeLibraryStore) RevokeContentFromAll(_ context.Context, contentID uint64) error {
	for _, set := range f.owned {
		delete(set, contentID)
	}
	return nil
}

func (f *fakeLibraryStore) GrantFreeContent(_ context.Context, userID uint64) error {
	for _, cid := range f.freeIDs {
		f.add(userID, cid)
	}
	return nil
}

func (f *fakeLibraryStore) GrantAllContent(_ context.Context, userID uint64) error {
	for _, cid := range f.contentIDs {
		f.add(userID, cid)
	}
	return nil
}

type fakeTokenStore struct {
	// byHash maps token hash -> owning user id.
	byHash map[string]uint64
}

func newFakeTokenStore() *fakeTokenStore { return &fakeTokenStore{byHash: map[string]uint64{}} }

func (f *fakeTokenStore) issue(raw string, userID uint64) {
	f.byHash[utils.HashTokenRaw(raw)] = userID
}

func (f *fakeTokenStore) Resolve(_ context.Context, tokenHash string) (uint64, error) {
	uid, ok := f.byHash[tokenHash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return uid, nil
}

type fakeUserStore struct {
	users map[uint64]model.User
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	m := make(map[uint64]model.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserStore{users: m}
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

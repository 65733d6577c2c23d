package entitlement

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/utils"
)

// TokenStore resolves a token hash to its owning user id. A missing,
// revoked or expired token must surface sql.ErrNoRows.
type TokenStore interface {
	Resolve(ctx context.Context, tokenHash string) (uint64, error)
}

// UserStore loads user records for the gateway.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Gateway is the mandatory checkpoint before any content artifact is
// served. It is the only component permitted to authorize a download;
// the actual bytes move between the client and the object store.
type Gateway struct {
	Tokens  TokenStore
	Users   UserStore
	Content ContentStore
	Engine  *Engine
}

func NewGateway(tokens TokenStore, users UserStore, content ContentStore, engine *Engine) *Gateway {
	return &Gateway{Tokens: tokens, Users: users, Content: content, Engine: engine}
}

// AuthorizeDownload runs the staged authorization pipeline for one
// download request and, on success, returns the content item carrying
// the artifact reference for the caller to hand off.
//
// The stages run in a fixed order and each fails closed without
// revealing what a later stage would have decided:
//
//  1. token -> user; failure is ErrUnauthenticated, raised before any
//     content lookup;
//  2. content existence; failure is the store's not-found error;
//  3. artifact presence; failure is ErrNoArtifact;
//  4. the access decision rule; denial is ErrForbidden.
func (g *Gateway) AuthorizeDownload(ctx context.Context, rawToken string, contentID uint64) (model.ContentItem, error) {
	user, err := g.ResolveToken(ctx, rawToken)
	if err != nil {
		return model.ContentItem{}, err
	}

	item, err := g.Content.GetByID(ctx, contentID)
	if err != nil {
		return model.ContentItem{}, err
	}

	if !item.HasArtifact() {
		return model.ContentItem{}, ErrNoArtifact
	}

	ok, err := g.Engine.Decide(ctx, user, item)
	if err != nil {
		return model.ContentItem{}, err
	}
	if !ok {
		return model.ContentItem{}, ErrForbidden
	}
	return item, nil
}

// ResolveToken maps a raw bearer token to its user. Any authentication
// failure collapses into ErrUnauthenticated; store-level failures other
// than a miss pass through so callers can report them as server errors.
func (g *Gateway) ResolveToken(ctx context.Context, rawToken string) (model.User, error) {
	if rawToken == "" {
		return model.User{}, ErrUnauthenticated
	}
	userID, err := g.Tokens.Resolve(ctx, utils.HashTokenRaw(rawToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUnauthenticated
		}
		return model.User{}, err
	}
	user, err := g.Users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/edu-content-platform/internal/model"
)

// LibraryRepo persists the 'user_library' join table: the explicit set
// of content ids each user owns outright. The composite primary key
// (user_id, content_id) is the set; INSERT IGNORE and keyed DELETE are
// the idempotent set-add and set-remove, so racing catalog and user
// mutations can replay either side effect without error.
//
// The catalog-wide cascades are single bulk statements rather than
// in-process loops over users, which keeps them interruptible and
// retryable at the store level.
type LibraryRepo struct{ DB *sql.DB }

func NewLibraryRepo(db *sql.DB) *LibraryRepo { return &LibraryRepo{DB: db} }

// Add records ownership of one content item. Re-adding an id already in
// the library is a no-op, never an error.
func (r *LibraryRepo) Add(ctx context.Context, userID, contentID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_library (user_id, content_id) VALUES (?,?)",
		userID, contentID)
	return err
}

// Remove drops ownership of one content item. Removing an absent id is
// a no-op.
func (r *LibraryRepo) Remove(ctx context.Context, userID, contentID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_library WHERE user_id=? AND content_id=?",
		userID, contentID)
	return err
}

// Contains reports whether the user's library holds the content id.
func (r *LibraryRepo) Contains(ctx context.Context, userID, contentID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_library WHERE user_id=? AND content_id=? LIMIT 1",
		userID, contentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListContent returns the full content rows of a user's library,
// newest first. This backs the "my purchased content" listing.
func (r *LibraryRepo) ListContent(ctx context.Context, userID uint64) ([]model.ContentItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.`+strings.Join(contentColumns, ",c.")+`
		 FROM content c
		 JOIN user_library l ON l.content_id = c.id
		 WHERE l.user_id=?
		 ORDER BY c.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContent(rows)
}

// GrantContentToAll adds one content id to every existing user's
// library in a single bulk insert. Invoked when free content is created.
func (r *LibraryRepo) GrantContentToAll(ctx context.Context, contentID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_library (user_id, content_id) SELECT id, ? FROM users",
		contentID)
	return err
}

// RevokeContentFromAll removes one content id from every library in a
// single bulk delete. Invoked on content deletion regardless of price.
func (r *LibraryRepo) RevokeContentFromAll(ctx context.Context, contentID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_library WHERE content_id=?", contentID)
	return err
}

// GrantFreeContent seeds one user's library with every currently-free
// content id. Invoked when a user is created.
func (r *LibraryRepo) GrantFreeContent(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_library (user_id, content_id) SELECT ?, id FROM content WHERE price_cents = 0",
		userID)
	return err
}

// GrantAllContent adds every currently existing content id to one
// user's library. Invoked at subscription activation so the purchased
// listing shows the full catalog immediately.
func (r *LibraryRepo) GrantAllContent(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_library (user_id, content_id) SELECT ?, id FROM content",
		userID)
	return err
}

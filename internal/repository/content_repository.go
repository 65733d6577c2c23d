package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/edu-content-platform/internal/model"
)

// ContentRepo persists rows of the 'content' table.
type ContentRepo struct{ DB *sql.DB }

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{DB: db} }

var contentColumns = []string{
	"id", "title", "description", "subject", "price_cents", "preview_url",
	"content_type", "lessons", "file_key", "file_name", "file_type", "file_size",
	"created_at", "updated_at",
}

// Create inserts a content item and fills in its generated ID.
func (r *ContentRepo) Create(ctx context.Context, c *model.ContentItem) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO content
		 (title, description, subject, price_cents, preview_url, content_type, lessons, file_key, file_name, file_type, file_size)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		c.Title, c.Description, c.Subject, c.PriceCents, c.PreviewURL, c.Type,
		c.Lessons, c.FileKey, c.FileName, c.FileType, c.FileSize)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches one content item.
func (r *ContentRepo) GetByID(ctx context.Context, id uint64) (model.ContentItem, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+strings.Join(contentColumns, ",")+" FROM content WHERE id=? LIMIT 1", id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return model.ContentItem{}, ErrContentNotFound
	}
	return c, err
}

// List returns the full catalog, newest first.
func (r *ContentRepo) List(ctx context.Context) ([]model.ContentItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+strings.Join(contentColumns, ",")+" FROM content ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContent(rows)
}

// ContentUpdate carries the partial update applied by PUT /content/:id.
// Nil pointers leave the corresponding column untouched.
type ContentUpdate struct {
	Title       *string
	Description *string
	Subject     *string
	PriceCents  *uint32
	PreviewURL  *string
	Type        *string
	Lessons     *uint32
}

// Update applies the non-nil fields of upd to the content row and
// returns the updated item. An unknown id maps to ErrContentNotFound.
func (r *ContentRepo) Update(ctx context.Context, id uint64, upd ContentUpdate) (model.ContentItem, error) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Subject != nil {
		add("subject", *upd.Subject)
	}
	if upd.PriceCents != nil {
		add("price_cents", *upd.PriceCents)
	}
	if upd.PreviewURL != nil {
		add("preview_url", *upd.PreviewURL)
	}
	if upd.Type != nil {
		add("content_type", *upd.Type)
	}
	if upd.Lessons != nil {
		add("lessons", *upd.Lessons)
	}
	if len(sets) > 0 {
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE content SET "+strings.Join(sets, ", ")+" WHERE id=?",
			append(args, id)...); err != nil {
			return model.ContentItem{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// AttachFile records a completed artifact upload on the content row.
func (r *ContentRepo) AttachFile(ctx context.Context, id uint64, key, name, mime string, size uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE content SET file_key=?, file_name=?, file_type=?, file_size=? WHERE id=?",
		key, name, mime, size, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a content item and returns the deleted row so callers
// can clean up its artifact. The library cascade is the engine's
// responsibility, not this method's.
func (r *ContentRepo) Delete(ctx context.Context, id uint64) (model.ContentItem, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.ContentItem{}, err
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM content WHERE id=?", id)
	if err != nil {
		return model.ContentItem{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Lost a race with a concurrent delete.
		return model.ContentItem{}, ErrContentNotFound
	}
	return c, nil
}

func scanContent(s rowScanner) (model.ContentItem, error) {
	var c model.ContentItem
	err := s.Scan(&c.ID, &c.Title, &c.Description, &c.Subject, &c.PriceCents,
		&c.PreviewURL, &c.Type, &c.Lessons, &c.FileKey, &c.FileName,
		&c.FileType, &c.FileSize, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func collectContent(rows *sql.Rows) ([]model.ContentItem, error) {
	var items []model.ContentItem
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

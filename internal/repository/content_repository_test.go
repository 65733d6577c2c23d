package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/edu-content-platform/internal/model"
)

func newContentRepoMock(t *testing.T) (*ContentRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewContentRepo(db), mock, db
}

func contentRow(id uint64, title string, price uint32, fileKey string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(contentColumns).
		AddRow(id, title, "desc", "math", price, "", model.ContentTypePDF, 10,
			fileKey, "kit.pdf", "application/pdf", 1024, now, now)
}

func TestContentCreate_FillsID(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO content").
		WillReturnResult(sqlmock.NewResult(11, 1))

	item := model.ContentItem{Title: "Algebra Kit", PriceCents: 499, Type: model.ContentTypePDF}
	if err := repo.Create(context.Background(), &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 11 {
		t.Errorf("expected generated id 11, got %d", item.ID)
	}
}

func TestContentGetByID_NotFound(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentUpdate_PartialThenReload(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	title := "Geometry Kit"
	var price uint32 = 0
	mock.ExpectExec("UPDATE content SET title=\\?, price_cents=\\? WHERE id=").
		WithArgs(title, price, uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(contentRow(11, title, price, ""))

	item, err := repo.Update(context.Background(), 11, ContentUpdate{Title: &title, PriceCents: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Title != title || !item.Free() {
		t.Errorf("update not applied: %+v", item)
	}
}

func TestContentUpdate_EmptyBodySkipsWrite(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(contentRow(11, "Algebra Kit", 499, ""))

	if _, err := repo.Update(context.Background(), 11, ContentUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected reload only, no UPDATE: %v", err)
	}
}

func TestContentAttachFile(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE content SET file_key=").
		WithArgs("content/2026/08/29/abc", "kit.pdf", "application/pdf", uint64(1024), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AttachFile(context.Background(), 11, "content/2026/08/29/abc", "kit.pdf", "application/pdf", 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContentDelete_ReturnsDeletedRow(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(contentRow(11, "Algebra Kit", 499, "content/2026/08/29/abc"))
	mock.ExpectExec("DELETE FROM content WHERE id=").
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := repo.Delete(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.FileKey != "content/2026/08/29/abc" {
		t.Errorf("caller needs the artifact key for cleanup, got %q", item.FileKey)
	}
}

func TestContentDelete_Unknown(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

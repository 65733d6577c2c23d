package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/repository"
)

var catalogColumns = []string{
	"id", "title", "description", "subject", "price_cents", "preview_url",
	"content_type", "lessons", "file_key", "file_name", "file_type", "file_size",
	"created_at", "updated_at",
}

func TestListCatalog_MarksLockedItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM content ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow(2, "Premium Kit", "d", "math", 499, "", model.ContentTypePDF, 12, "k", "kit.pdf", "application/pdf", 2048, now, now).
			AddRow(1, "Free Kit", "d", "math", 0, "", model.ContentTypePDF, 5, "", "", "", 0, now, now))

	h := NewPublicHandler(repository.NewContentRepo(db))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/content", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListCatalog(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID      uint64 `json:"id"`
			Locked  bool   `json:"locked"`
			FileKey string `json:"file_key"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Locked, "paid item must be locked")
	assert.False(t, resp.Items[1].Locked, "free item must be unlocked")
	assert.Empty(t, resp.Items[0].FileKey, "object keys must never appear in the catalog")
	assert.NotContains(t, rec.Body.String(), "file_key")
}

func TestGetCatalogItem_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM content WHERE id=").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(catalogColumns))

	h := NewPublicHandler(repository.NewContentRepo(db))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/content/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/content/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetCatalogItem(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPlans_Static(t *testing.T) {
	h := NewPublicHandler(repository.NewContentRepo(nil))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/subscription/plans", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListPlans(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "starter")
	assert.Contains(t, rec.Body.String(), "premium")
}

package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/edu-content-platform/internal/config"
	"github.com/iliyamo/edu-content-platform/internal/entitlement"
	"github.com/iliyamo/edu-content-platform/internal/middleware"
	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/queue"
	"github.com/iliyamo/edu-content-platform/internal/repository"
	queuepub "github.com/iliyamo/edu-content-platform/internal/service"
	"github.com/iliyamo/edu-content-platform/internal/storage"

	"github.com/redis/go-redis/v9"
)

// AdminHandler bundles dependencies for the admin content surface:
// catalog CRUD, artifact upload, and the student roster. Every route
// it serves sits behind RequireRole("ADMIN").
type AdminHandler struct {
	Cfg       config.Config
	CacheCfg  config.CacheConfig
	Redis     *redis.Client
	Content   *repository.ContentRepo
	Users     *repository.UserRepo
	Engine    *entitlement.Engine
	Artifacts *storage.ArtifactStore
}

func NewAdminHandler(cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client,
	content *repository.ContentRepo, users *repository.UserRepo,
	engine *entitlement.Engine, artifacts *storage.ArtifactStore) *AdminHandler {
	return &AdminHandler{
		Cfg:       cfg,
		CacheCfg:  cacheCfg,
		Redis:     rdb,
		Content:   content,
		Users:     users,
		Engine:    engine,
		Artifacts: artifacts,
	}
}

type createContentReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	PriceCents  uint32 `json:"price_cents"`
	PreviewURL  string `json:"preview_url"`
	Type        string `json:"type"`
	Lessons     uint32 `json:"lessons"`
}

type updateContentReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subject     *string `json:"subject"`
	PriceCents  *uint32 `json:"price_cents"`
	PreviewURL  *string `json:"preview_url"`
	Type        *string `json:"type"`
	Lessons     *uint32 `json:"lessons"`
}

// CreateContent handles POST /v1/admin/content. A free item is pushed
// into every existing library before the response is written so the
// new kit is immediately visible to all users.
func (h *AdminHandler) CreateContent(c echo.Context) error {
	var req createContentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.Type == "" {
		req.Type = model.ContentTypeOther
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := model.ContentItem{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		PriceCents:  req.PriceCents,
		PreviewURL:  req.PreviewURL,
		Type:        req.Type,
		Lessons:     req.Lessons,
	}
	if err := h.Content.Create(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create content"})
	}
	if err := h.Engine.ContentCreated(ctx, item); err != nil {
		// The row exists; only the free backfill failed. Surface it,
		// a retry of the same create is not the right fix.
		log.Printf("⚠️ free content backfill for %d: %v", item.ID, err)
	}
	h.invalidateCatalogCache()

	return c.JSON(http.StatusCreated, echo.Map{"id": item.ID, "item": toCatalogItem(item)})
}

// UploadArtifact handles POST /v1/admin/content/:id/file. The multipart
// "file" part is streamed to object storage under a fresh key and the
// row is stamped with the artifact metadata. Re-upload replaces the
// previous artifact reference; the old object is removed best effort.
func (h *AdminHandler) UploadArtifact(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file part is required"})
	}
	if max := int64(h.Cfg.MaxUploadMB) << 20; fh.Size > max {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	item, err := h.Content.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "content not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read file"})
	}
	defer src.Close()

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	key := storage.NewObjectKey()
	if err := h.Artifacts.Upload(ctx, key, src, mime); err != nil {
		log.Printf("⚠️ artifact upload for content %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store file"})
	}
	if err := h.Content.AttachFile(ctx, id, key, fh.Filename, mime, uint64(fh.Size)); err != nil {
		// Row update failed after the object landed; drop the orphan.
		_ = h.Artifacts.Delete(ctx, key)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not attach file"})
	}
	if item.FileKey != "" && item.FileKey != key {
		if err := h.Artifacts.Delete(ctx, item.FileKey); err != nil {
			log.Printf("⚠️ stale artifact cleanup %s: %v", item.FileKey, err)
		}
	}

	// A derived type is only applied when the admin did not set one.
	if item.Type == "" || item.Type == model.ContentTypeOther {
		t := model.DetectContentType(mime)
		if _, err := h.Content.Update(ctx, id, repository.ContentUpdate{Type: &t}); err != nil {
			log.Printf("⚠️ content type update for %d: %v", id, err)
		}
	}
	h.invalidateCatalogCache()

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "file uploaded",
		"file_name": fh.Filename,
		"file_type": mime,
		"file_size": fh.Size,
	})
}

// UpdateContent handles PUT /v1/admin/content/:id with a partial body.
// Price changes do not rewrite anyone's library; items already granted
// stay granted.
func (h *AdminHandler) UpdateContent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateContentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Content.Update(ctx, id, repository.ContentUpdate{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		PriceCents:  req.PriceCents,
		PreviewURL:  req.PreviewURL,
		Type:        req.Type,
		Lessons:     req.Lessons,
	})
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "content not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update content"})
	}

	// Going paid→free grants the item to everyone, same as creating a
	// free item. The reverse direction never revokes.
	if req.PriceCents != nil && *req.PriceCents == 0 {
		if err := h.Engine.ContentCreated(ctx, item); err != nil {
			log.Printf("⚠️ free content backfill for %d: %v", item.ID, err)
		}
	}
	h.invalidateCatalogCache()

	return c.JSON(http.StatusOK, echo.Map{"item": toCatalogItem(item)})
}

// DeleteContent handles DELETE /v1/admin/content/:id. The row, every
// library reference, and the stored artifact all go; in-flight download
// authorizations fail closed once the row is gone.
func (h *AdminHandler) DeleteContent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The row goes first. If the delete fails, no library entry has been
	// touched; once it succeeds, the revoke cascade (and the FK cascade
	// backing it) can only remove grants for content that is gone.
	item, err := h.Content.Delete(ctx, id)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "content not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete content"})
	}
	if err := h.Engine.ContentDeleted(ctx, id); err != nil {
		// The FK cascade already dropped the grants with the row.
		log.Printf("⚠️ library revoke for %d: %v", id, err)
	}
	if item.FileKey != "" {
		if err := h.Artifacts.Delete(ctx, item.FileKey); err != nil {
			log.Printf("⚠️ artifact cleanup %s: %v", item.FileKey, err)
		}
	}
	h.invalidateCatalogCache()

	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		if err := queuepub.PublishEntitlementEvent(pctx, queue.EntitlementEvent{
			Kind:         queue.KindContentDeleted,
			ContentID:    item.ID,
			ContentTitle: item.Title,
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("⚠️ publish content.deleted: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "content deleted", "id": item.ID})
}

// ListStudents handles GET /v1/admin/students and returns every user
// account with credentials redacted.
func (h *AdminHandler) ListStudents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *AdminHandler) invalidateCatalogCache() {
	if h.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	middleware.InvalidateCache(ctx, h.CacheCfg, h.Redis)
}

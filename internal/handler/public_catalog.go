package handler // handler package contains the public catalog handlers

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/edu-content-platform/internal/model"
    "github.com/iliyamo/edu-content-platform/internal/repository"
)

// PublicHandler exposes the unauthenticated catalog surface: the
// content listing and detail views every visitor can browse, and the
// static subscription plan catalog. Responses never include artifact
// keys; gated items only carry a locked flag.
type PublicHandler struct {
    Content *repository.ContentRepo
}

func NewPublicHandler(content *repository.ContentRepo) *PublicHandler {
    if content == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{Content: content}
}

// ListCatalog handles GET /v1/content and returns the whole catalog,
// newest first.
func (h *PublicHandler) ListCatalog(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Content.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    out := make([]catalogItem, 0, len(items))
    for _, it := range items {
        out = append(out, toCatalogItem(it))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCatalogItem handles GET /v1/content/:id and returns one item's
// full metadata (description and preview included).
func (h *PublicHandler) GetCatalogItem(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    item, err := h.Content.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrContentNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "content not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "id":          item.ID,
        "title":       item.Title,
        "description": item.Description,
        "subject":     item.Subject,
        "price_cents": item.PriceCents,
        "preview_url": item.PreviewURL,
        "type":        item.Type,
        "lessons":     item.Lessons,
        "locked":      !item.Free(),
        "file_size":   item.FileSize,
        "created_at":  item.CreatedAt,
        "updated_at":  item.UpdatedAt,
    })
}

// ListPlans handles GET /v1/subscription/plans and returns the static
// plan catalog.
func (h *PublicHandler) ListPlans(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"items": model.Plans()})
}

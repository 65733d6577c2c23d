package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/edu-content-platform/internal/repository"
)

// LibraryHandler serves the authenticated user's unlocked content.
type LibraryHandler struct {
	Library *repository.LibraryRepo
}

func NewLibraryHandler(lib *repository.LibraryRepo) *LibraryHandler {
	if lib == nil {
		panic("nil repository passed to NewLibraryHandler")
	}
	return &LibraryHandler{Library: lib}
}

// List handles GET /v1/library and returns every item the caller has
// unlocked, newest first. An empty library is a 200 with an empty list,
// never an error.
func (h *LibraryHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Library.ListContent(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]libraryItem, 0, len(items))
	for _, it := range items {
		out = append(out, toLibraryItem(it))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

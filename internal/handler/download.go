package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/edu-content-platform/internal/entitlement"
	"github.com/iliyamo/edu-content-platform/internal/middleware"
	"github.com/iliyamo/edu-content-platform/internal/repository"
	"github.com/iliyamo/edu-content-platform/internal/storage"
)

// DownloadHandler is the single chokepoint for artifact delivery. It
// delegates the whole decision to the entitlement gateway and only
// mints a presigned URL once the gateway said yes, so no route can
// hand out a file the gateway would refuse.
type DownloadHandler struct {
	Gateway   *entitlement.Gateway
	Artifacts *storage.ArtifactStore
}

func NewDownloadHandler(gw *entitlement.Gateway, artifacts *storage.ArtifactStore) *DownloadHandler {
	if gw == nil || artifacts == nil {
		panic("nil dependency passed to NewDownloadHandler")
	}
	return &DownloadHandler{Gateway: gw, Artifacts: artifacts}
}

// Download handles GET /v1/content/:id/download. Failures are ordered:
// a bad token is 401 before the content is even looked up, an unknown
// id is 404, a known id without an uploaded file is 404 with its own
// message, and only then does a lack of entitlement produce 403.
func (h *DownloadHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	item, err := h.Gateway.AuthorizeDownload(ctx, middleware.BearerToken(c), id)
	if err != nil {
		switch err {
		case entitlement.ErrUnauthenticated:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		case repository.ErrContentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "content not found"})
		case entitlement.ErrNoArtifact:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no file has been uploaded for this content"})
		case entitlement.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "please purchase this content or an active subscription to download it"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not authorize download"})
		}
	}

	url, err := h.Artifacts.PresignDownload(ctx, item.FileKey, item.FileName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate download link"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"download_url": url,
		"file_name":    item.FileName,
		"file_type":    item.FileType,
		"file_size":    item.FileSize,
	})
}

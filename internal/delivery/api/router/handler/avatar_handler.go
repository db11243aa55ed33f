package handler

import (
	"net/http"
	"path"
	"strings"

	domainerrors "skatehubba/internal/domain/errors"
	"skatehubba/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const avatarCacheControl = "public, max-age=31536000, immutable"

// AvatarHandler serves avatars from buckets without a public URL of their own.
type AvatarHandler struct {
	storage service.AvatarStorage
}

func NewAvatarHandler(storage service.AvatarStorage) *AvatarHandler {
	return &AvatarHandler{storage: storage}
}

// Serve handles GET /avatars/*.
func (h *AvatarHandler) Serve(c echo.Context) error {
	rel := path.Clean("/" + c.Param("*"))
	if rel == "/" || strings.Contains(rel, "..") {
		return domainerrors.ErrNotFound
	}
	key := "avatars" + rel

	r, contentType, err := h.storage.Open(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.WithStack(err)
	}
	defer r.Close()

	c.Response().Header().Set("Cache-Control", avatarCacheControl)
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")

	return c.Stream(http.StatusOK, contentType, r)
}

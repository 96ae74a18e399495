package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type MediaHandler struct {
	store ports.MediaStore
}

func NewMediaHandler(store ports.MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Get streams a stored image.
//
// @Summary      Fetch uploaded media
// @Tags         media
// @Produce      octet-stream
// @Param        id   path      string  true  "Media ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  messageResponse
// @Router       /media/{id} [get]
func (h *MediaHandler) Get(c echo.Context) error {
	media, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer media.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentLength, strconv.FormatInt(media.Size, 10))
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	header.Set(echo.HeaderXContentTypeOptions, "nosniff")
	header.Set(echo.HeaderContentSecurityPolicy, "default-src 'none'")
	return c.Stream(http.StatusOK, media.ContentType, media.Body)
}

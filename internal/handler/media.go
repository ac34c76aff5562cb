package handler

import (
	"net/http"

	"vedacart/internal/apierror"
	"vedacart/internal/dto"
	"vedacart/internal/media"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	store media.Store
}

func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// Upload stages one image ahead of record creation and returns its durable
// reference. The creation endpoint accepts only references, never raw files.
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file"))
		return
	}
	f, err := readFormFile(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ref, err := h.store.Upload(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UploadResponse{URL: ref})
}

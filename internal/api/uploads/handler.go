package uploads

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cradle-api/config"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/media"
	"cradle-api/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store    storage.Store
	settings config.UploadSettings
	now      func() time.Time
}

func NewHandler(store storage.Store, settings config.UploadSettings) *Handler {
	return &Handler{store: store, settings: settings, now: time.Now}
}

type UploadResponse struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	ThumbURL string `json:"thumb_url"`
}

type DeleteRequest struct {
	Path string `json:"path" binding:"required"`
}

// POST /uploads  (multipart: file, folder)
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, apperr.Invalid("file is required"))
		return
	}
	folder, err := media.ParseFolder(c.PostForm("folder"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	ext, contentType, err := media.Extension(fh.Filename)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := media.CheckSize(fh.Size, h.settings.MaxBytes); err != nil {
		respond.Error(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "read upload"))
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "read upload"))
		return
	}

	thumb, err := media.Thumbnail(bytes.NewReader(raw), h.settings.ThumbnailSize)
	if err != nil {
		respond.Error(c, apperr.Invalid("file is not a readable image"))
		return
	}

	ctx := c.Request.Context()
	key := media.ObjectKey(folder, ext, h.now(), media.RandomSuffix())
	url, err := h.store.Put(ctx, key, bytes.NewReader(raw), int64(len(raw)), contentType)
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "store upload"))
		return
	}

	thumbKey := media.ThumbKey(key)
	thumbURL, err := h.store.Put(ctx, thumbKey, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		if derr := h.store.Delete(ctx, key); derr != nil {
			slog.Error("upload: orphaned original", "key", key, "err", derr)
		}
		respond.Error(c, apperr.Upstream(err, "store thumbnail"))
		return
	}

	slog.Info("upload stored", "key", key, "bytes", len(raw))
	c.JSON(http.StatusCreated, UploadResponse{URL: url, Path: key, ThumbURL: thumbURL})
}

// DELETE /uploads  {"path": key or public url}
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	key := storage.KeyFromURL(h.store, req.Path)
	if key == "" {
		respond.Error(c, apperr.Invalid("path is required"))
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, key); err != nil {
		respond.Error(c, apperr.Upstream(err, "delete upload"))
		return
	}
	// the thumbnail may never have existed
	if err := h.store.Delete(ctx, media.ThumbKey(key)); err != nil {
		slog.Warn("upload: thumbnail not deleted", "key", key, "err", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "path": key})
}

// GET /uploads/*key  (memory store only)
func ServeMemory(m *storage.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, contentType, ok := m.Object(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			respond.Error(c, apperr.NotFound("file not found"))
			return
		}
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

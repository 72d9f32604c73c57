package handlers

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"

	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/storage"
)

// MediaHandler streams stored objects: user avatars and reel background art.
type MediaHandler struct {
	s3 *storage.S3Storage
}

func NewMediaHandler(s3 *storage.S3Storage) *MediaHandler {
	return &MediaHandler{s3: s3}
}

func normalizeETag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, "\"")
	return v
}

// GetAvatar streams an avatar object. Keys are private to the authed user
// base; cacheable forever because uploads rotate the key.
func (h *MediaHandler) GetAvatar(c *fiber.Ctx) error {
	return h.serveObject(c, "avatars", "private, max-age=31536000, immutable")
}

// GetReelBackground streams verse background art. Shared across users, so
// publicly cacheable.
func (h *MediaHandler) GetReelBackground(c *fiber.Ctx) error {
	return h.serveObject(c, "reels", "public, max-age=31536000, immutable")
}

func (h *MediaHandler) serveObject(c *fiber.Ctx, prefix string, cacheControl string) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	keyParam := strings.TrimSpace(c.Params("*"))
	key, err := storage.SafeJoinObjectPath(prefix, keyParam)
	if err != nil {
		return httpx.NotFound(c, "not_found", "Not found")
	}

	obj, st, err := h.s3.GetObject(c.Context(), key)
	if err != nil {
		// Hide details.
		var resp minio.ErrorResponse
		if errors.As(err, &resp) {
			if resp.StatusCode == 404 || resp.Code == "NoSuchKey" || resp.Code == "NoSuchObject" {
				return httpx.NotFound(c, "not_found", "Not found")
			}
		}
		log.Printf("[media] get error key=%q err=%v", key, err)
		return httpx.Internal(c, "media_fetch_failed")
	}

	etag := st.ETag
	if etag != "" {
		c.Set("ETag", "\""+etag+"\"")
		if inm := normalizeETag(c.Get("If-None-Match")); inm != "" && inm == normalizeETag(etag) {
			_ = obj.Close()
			return c.SendStatus(fiber.StatusNotModified)
		}
	}
	if !st.LastModified.IsZero() {
		c.Set("Last-Modified", st.LastModified.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"))
	}

	c.Set("Cache-Control", cacheControl)
	if st.ContentType != "" {
		c.Type(st.ContentType)
	} else {
		c.Type("image/jpeg")
	}
	if st.Size > 0 {
		c.Set("Content-Length", strconv.FormatInt(st.Size, 10))
	}

	// Stream object while capturing any mid-stream errors.
	// (Fiber versions vary; use underlying fasthttp stream writer.)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			_ = obj.Close()
		}()

		n, copyErr := io.Copy(w, obj)
		flushErr := w.Flush()

		if copyErr != nil {
			log.Printf("[media] stream error key=%q copied=%d err=%v", key, n, copyErr)
			return
		}
		if flushErr != nil {
			log.Printf("[media] stream flush error key=%q copied=%d err=%v", key, n, flushErr)
		}
	})
	return nil
}

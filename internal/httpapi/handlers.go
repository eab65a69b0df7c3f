package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csp-tools/sutbuild/internal/normalize"
	"github.com/csp-tools/sutbuild/internal/platform/logger"
	"github.com/csp-tools/sutbuild/internal/settings"
	"github.com/csp-tools/sutbuild/internal/sutdb"
	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
)

// MaxUploadSize bounds the total multipart body accepted by /convert.
const MaxUploadSize = 50 << 20 // 50MiB

// MaxImageSize bounds any single file entry within that body.
const MaxImageSize = 16 << 20 // 16MiB

const builderVersion = "1.0.0"

// ConvertHandler serves /status and /convert. newBuilder is called once
// per request so every build gets a fresh, non-deterministic UUID
// source; tests may inject a seeded factory.
type ConvertHandler struct {
	log        *logger.Logger
	newBuilder func() *sutdb.Builder
}

func NewConvertHandler(log *logger.Logger, newBuilder func() *sutdb.Builder) *ConvertHandler {
	return &ConvertHandler{log: log, newBuilder: newBuilder}
}

func (h *ConvertHandler) Status(c *gin.Context) {
	RespondOK(c, gin.H{
		"status":         "ok",
		"csp_compatible": true,
		"version":        builderVersion,
		"capabilities":   []string{"png", "jpeg"},
		"max_file_size":  MaxUploadSize,
		"max_image_size": MaxImageSize,
	})
}

func (h *ConvertHandler) Convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}

	packageName := strings.TrimSpace(c.Request.FormValue("package_name"))
	authorName := strings.TrimSpace(c.Request.FormValue("author_name"))
	if packageName == "" {
		RespondError(c, http.StatusBadRequest, "missing_package_name", nil)
		return
	}

	opts := compose.DefaultOptions()
	if raw := c.Request.FormValue("settings"); raw != "" {
		parsed, err := settings.Decode([]byte(raw))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_settings", err)
			return
		}
		opts = parsed
	}

	fileHeaders := c.Request.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		RespondError(c, http.StatusBadRequest, "no_files", nil)
		return
	}

	brushes := make([]compose.BrushInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > MaxImageSize {
			RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large", nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable_file", err)
			return
		}
		raw, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable_file", err)
			return
		}

		img, err := normalize.Normalize(raw)
		if err != nil {
			if h.log != nil {
				h.log.Warn("skipping unusable image", "file", fh.Filename, "error", err)
			}
			continue
		}

		baseName := strings.TrimSuffix(fh.Filename, "."+fileExt(fh.Filename))
		brushes = append(brushes, compose.BrushInput{
			Name:    baseName + " (Python)",
			Width:   img.Width,
			Height:  img.Height,
			PNG:     img.PNG,
			Options: opts,
		})
	}
	if len(brushes) == 0 {
		RespondError(c, http.StatusBadRequest, "no_usable_images", nil)
		return
	}

	builder := h.newBuilder()
	out, err := builder.Emit(sutdb.Package{Name: packageName, Author: authorName, Brushes: brushes}, time.Now())
	if err != nil {
		if h.log != nil {
			h.log.Error("convert failed", "error", err)
		}
		RespondError(c, http.StatusInternalServerError, "build_failed", err)
		return
	}

	c.Header("X-Brush-Count", strconv.Itoa(len(brushes)))
	c.Header("Content-Disposition", `attachment; filename="`+sanitizedOutputName(packageName)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func fileExt(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// sanitizedOutputName derives the downloaded file's name from the
// package name the way the original Python server derived its ZIP
// download name: spaces become underscores.
func sanitizedOutputName(packageName string) string {
	return strings.ReplaceAll(packageName, " ", "_") + ".sut"
}

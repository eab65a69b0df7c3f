package httpapi

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/csp-tools/sutbuild/internal/idgen"
	"github.com/csp-tools/sutbuild/internal/sutdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(seed int64) *gin.Engine {
	h := NewConvertHandler(nil, func() *sutdb.Builder {
		return sutdb.NewBuilder(idgen.NewSeededSource(seed))
	})
	return NewRouter(nil, h)
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStatusReturnsCapabilities(t *testing.T) {
	r := testRouter(1)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, true, body["csp_compatible"])
}

func TestConvertBuildsSutFromUpload(t *testing.T) {
	r := testRouter(1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("package_name", "Pack"))
	require.NoError(t, mw.WriteField("author_name", "A"))
	fw, err := mw.CreateFormFile("files", "dot.png")
	require.NoError(t, err)
	_, err = fw.Write(encodeTestPNG(t, 64, 64))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-Brush-Count"))
	require.Equal(t, "SQLite format 3\x00", rec.Body.String()[0:16])
}

func TestConvertSuffixesBrushNameAndSanitizesDownloadName(t *testing.T) {
	r := testRouter(1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("package_name", "My Pack"))
	require.NoError(t, mw.WriteField("author_name", "A"))
	fw, err := mw.CreateFormFile("files", "dot.png")
	require.NoError(t, err)
	_, err = fw.Write(encodeTestPNG(t, 64, 64))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="My_Pack.sut"`, rec.Header().Get("Content-Disposition"))

	path := filepath.Join(t.TempDir(), "out.sut")
	require.NoError(t, os.WriteFile(path, rec.Body.Bytes(), 0o644))
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var brushName string
	require.NoError(t, db.QueryRow(`SELECT NodeName FROM Node WHERE NodeName != ? LIMIT 1`, "My Pack").Scan(&brushName))
	require.Equal(t, "dot (Python)", brushName)
}

func TestConvertRejectsMissingPackageName(t *testing.T) {
	r := testRouter(1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "dot.png")
	require.NoError(t, err)
	_, err = fw.Write(encodeTestPNG(t, 64, 64))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertRejectsNoFiles(t *testing.T) {
	r := testRouter(1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("package_name", "Pack"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

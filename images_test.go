package glowblog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImageResizesWideImages(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	img, data, err := processImage(bytes.NewReader(pngBytes(t, 1600, 400)), "Wide Shot.png", now)
	require.NoError(t, err)

	assert.Equal(t, "wide-shot.jpg", img.Filename)
	assert.Equal(t, 800, img.Width)
	assert.Equal(t, 200, img.Height)
	assert.Equal(t, len(data), img.Size)
	assert.Equal(t, "2025-04-01T12:00:00Z", img.UploadedAt)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, cfg.Width)
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	img, _, err := processImage(bytes.NewReader(pngBytes(t, 120, 80)), "small.png", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 120, img.Width)
	assert.Equal(t, 80, img.Height)
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, _, err := processImage(bytes.NewReader([]byte("not an image")), "x.png", time.Now())
	assert.Error(t, err)
}

func uploadRequest(t *testing.T, a *App, session *http.Cookie, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	token, csrfCookie := csrf(t, a, session)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("_csrf", token))
	fw, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return serve(a, req, session, csrfCookie)
}

func TestAdminImageUploadListDelete(t *testing.T) {
	a := newTestApp(t)
	session := login(t, a)
	ctx := context.Background()

	rec := uploadRequest(t, a, session, "Serum Bottle.png", pngBytes(t, 40, 30))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/images/", rec.Header().Get("Location"))

	rec = uploadRequest(t, a, session, "Serum Bottle.png", pngBytes(t, 40, 30))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	images, err := a.Local.ListImages(ctx)
	require.NoError(t, err)
	var names []string
	for _, img := range images {
		names = append(names, img.Filename)
	}
	assert.ElementsMatch(t, []string{"serum-bottle.jpg", "serum-bottle-2.jpg"}, names)
	assert.FileExists(t, filepath.Join(a.uploadsDir(), "serum-bottle.jpg"))

	page := get(a, "/admin/images/", session)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "/public/uploads/serum-bottle-2.jpg")

	rec = submitForm(t, a, "/admin/images/serum-bottle.jpg/delete/", map[string][]string{}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	_, err = os.Stat(filepath.Join(a.uploadsDir(), "serum-bottle.jpg"))
	assert.True(t, os.IsNotExist(err))
	exists, err := a.Local.ImageExists(ctx, "serum-bottle.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAdminImageUploadRejectsInvalid(t *testing.T) {
	a := newTestApp(t)
	session := login(t, a)
	rec := uploadRequest(t, a, session, "notes.png", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminImagesRequireSession(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/admin/images/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

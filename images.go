package glowblog

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/store"
	"github.com/eringen/glowblog/views"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, shrinks it to maxImageWidth when
// wider, and encodes it as JPEG.
func processImage(src io.Reader, originalName string, now time.Time) (store.Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return store.Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return store.Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return store.Image{
		Filename:     imageSlug(originalName) + ".jpg",
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   now.UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// imageSlug slugs a filename without its extension.
func imageSlug(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if s := content.Slugify(base); s != "" {
		return s
	}
	return "image"
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.Config.StaticDir, uploadsSubdir)
}

// uniqueImageName suffixes the name until neither the uploads directory nor
// the images table has it.
func (a *App) uniqueImageName(ctx context.Context, img *store.Image) {
	base := strings.TrimSuffix(img.Filename, ".jpg")
	name := content.UniqueSlug(base, func(candidate string) bool {
		file := candidate + ".jpg"
		if _, err := os.Stat(filepath.Join(a.uploadsDir(), file)); err == nil {
			return true
		}
		exists, err := a.Local.ImageExists(ctx, file)
		return err == nil && exists
	})
	img.Filename = name + ".jpg"
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ctx := c.Request().Context()

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename, time.Now())
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	a.uniqueImageName(ctx, &img)

	if err := os.MkdirAll(a.uploadsDir(), 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.uploadsDir(), img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Local.SaveImage(ctx, img); err != nil {
		return err
	}
	c.Logger().Infof("admin: uploaded image %s (%dx%d)", img.Filename, img.Width, img.Height)
	return c.Redirect(http.StatusSeeOther, "/admin/images/")
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	// The file may already be gone.
	_ = os.Remove(filepath.Join(a.uploadsDir(), filename))

	if err := a.Local.DeleteImage(c.Request().Context(), filename); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/images/")
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	images, err := a.Local.ListImages(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(views.ImagesData{
		Page:   a.adminPage(c, "images.title"),
		Images: images,
	}))
}

package store

import (
	"context"
)

// Image is the metadata of an uploaded, re-encoded image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL is the public path of the image.
func (img Image) URL() string {
	return "/public/uploads/" + img.Filename
}

func (l *Local) SaveImage(ctx context.Context, img Image) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns image metadata, newest first.
func (l *Local) ListImages(ctx context.Context) ([]Image, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether metadata for filename is stored.
func (l *Local) ImageExists(ctx context.Context, filename string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

func (l *Local) DeleteImage(ctx context.Context, filename string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	return err
}

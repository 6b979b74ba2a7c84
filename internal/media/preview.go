package media

import (
	"fmt"
	"os"
	"path/filepath"

	"getthumb/internal/logging"

	"github.com/disintegration/imaging"
)

// PreviewQuality is the JPEG quality used for previews.
const PreviewQuality = 80

// WritePreview writes a JPEG copy of src to dst that fits within a size x
// size box. Images already inside the box are re-encoded without scaling.
func WritePreview(src, dst string, size int) error {
	if size < 1 {
		return fmt.Errorf("preview size must be positive, got %d", size)
	}

	img, err := LoadImageConstrained(src, MaxImageDimension, MaxImagePixels)
	if err != nil {
		return err
	}

	b := img.Bounds()
	if b.Dx() > size || b.Dy() > size {
		img = imaging.Fit(img, size, size, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(PreviewQuality)); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}

	logging.Debug("Preview %s: %dx%d", dst, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

package media

import (
	"errors"
	"fmt"
	"image"
	"os"

	"getthumb/internal/logging"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// MaxImageDimension is the maximum width or height we'll process.
	// Larger images are downscaled on load.
	MaxImageDimension = 8192

	// MaxImagePixels is the maximum total pixels (width * height) we'll process.
	MaxImagePixels = 40_000_000
)

// ErrEmptyImage is returned for images with a zero dimension.
var ErrEmptyImage = errors.New("image has no pixels")

// ImageDimensions holds image width and height
type ImageDimensions struct {
	Width  int
	Height int
	Format string
}

// GetImageDimensions returns image dimensions without fully decoding the image
func GetImageDimensions(path string) (*ImageDimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
		Format: format,
	}, nil
}

// ValidateImage checks that path is a decodable, non-empty image. It is used
// on banner templates so a bad file fails before any frame is extracted.
func ValidateImage(path string) (*ImageDimensions, error) {
	dims, err := GetImageDimensions(path)
	if err != nil {
		return nil, fmt.Errorf("invalid image %s: %w", path, err)
	}
	if dims.Width == 0 || dims.Height == 0 {
		return nil, fmt.Errorf("invalid image %s: %w", path, ErrEmptyImage)
	}
	logging.Debug("Image %s: %s %dx%d", path, dims.Format, dims.Width, dims.Height)
	return dims, nil
}

// LoadImageConstrained loads an image, downscaling it if it exceeds
// maxDimension on either side or maxPixels in total.
func LoadImageConstrained(path string, maxDimension, maxPixels int) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= maxDimension && height <= maxDimension && width*height <= maxPixels {
		return img, nil
	}

	targetWidth, targetHeight := constrain(width, height, maxDimension, maxPixels)
	logging.Info("Constraining large image %s from %dx%d to %dx%d", path, width, height, targetWidth, targetHeight)
	return imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos), nil
}

// constrain scales width and height down to fit both limits, keeping the
// aspect ratio.
func constrain(width, height, maxDimension, maxPixels int) (int, int) {
	if width > maxDimension || height > maxDimension {
		if width > height {
			height = height * maxDimension / width
			width = maxDimension
		} else {
			width = width * maxDimension / height
			height = maxDimension
		}
	}

	if pixels := width * height; pixels > maxPixels {
		scale := float64(maxPixels) / float64(pixels)
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
	}
	return max(width, 1), max(height, 1)
}

package startup

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	posixFont   = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	windowsFont = "C:/Windows/Fonts/arial.ttf"

	// bannerAsset is the bundled banner, relative to the executable.
	bannerAsset = "assets/banner.png"
)

// DefaultFont returns the font used for the metadata block on goos.
func DefaultFont(goos string) string {
	if goos == "windows" {
		return windowsFont
	}
	return posixFont
}

// DefaultBannerPath returns the bundled banner next to the running
// executable.
func DefaultBannerPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return bannerBeside(exe), nil
}

func bannerBeside(exe string) string {
	return filepath.Join(filepath.Dir(exe), filepath.FromSlash(bannerAsset))
}

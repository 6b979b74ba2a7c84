package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"getthumb/internal/logging"
	"getthumb/internal/media"
	"getthumb/internal/mediatypes"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("getthumb %s (commit %s, built %s, %s %s/%s)",
		b.Version, b.Commit, b.BuildTime, b.GoVersion, b.OS, b.Arch)
}

// Config holds all application configuration. Environment variables provide
// the defaults; command line flags override them.
type Config struct {
	OutputDir   string `env:"GETTHUMB_OUTPUT_DIR"   envDefault:"."`
	TempDir     string `env:"GETTHUMB_TEMP_DIR"`
	Banner      string `env:"GETTHUMB_BANNER"`
	Font        string `env:"GETTHUMB_FONT"`
	FFmpeg      string `env:"GETTHUMB_FFMPEG"       envDefault:"ffmpeg"`
	FFprobe     string `env:"GETTHUMB_FFPROBE"      envDefault:"ffprobe"`
	Keep        bool   `env:"GETTHUMB_KEEP"         envDefault:"false"`
	Debug       bool   `env:"GETTHUMB_DEBUG"        envDefault:"false"`
	PreviewSize int    `env:"GETTHUMB_PREVIEW_SIZE" envDefault:"0"`
	MetricsFile string `env:"GETTHUMB_METRICS_FILE"`

	// BannerDefault is set by Resolve when Banner is the bundled artwork.
	BannerDefault bool
}

// LoadEnvFile loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are not overridden.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// Resolve fills in defaults that depend on the host, makes the output
// directory absolute and checks that the banner and font can be used.
func (c *Config) Resolve() error {
	if c.PreviewSize < 0 {
		return fmt.Errorf("preview size must not be negative, got %d", c.PreviewSize)
	}

	outputDir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory path: %w", err)
	}
	c.OutputDir = outputDir
	if info, err := os.Stat(outputDir); err == nil && !info.IsDir() {
		return fmt.Errorf("output path exists but is not a directory: %s", outputDir)
	}

	if c.Banner == "" {
		banner, err := DefaultBannerPath()
		if err != nil {
			return err
		}
		c.Banner = banner
		c.BannerDefault = true
	}
	if mediatypes.ClassifyPath(c.Banner) != mediatypes.FileTypeImage {
		return fmt.Errorf("banner: unsupported image format: %s", c.Banner)
	}
	if _, err := media.ValidateImage(c.Banner); err != nil {
		return fmt.Errorf("banner: %w", err)
	}

	if c.Font == "" {
		c.Font = DefaultFont(runtime.GOOS)
	}
	if _, err := os.Stat(c.Font); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	return nil
}

// LogConfig logs the effective configuration the same way on every run.
func LogConfig(c *Config) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  OUTPUT_DIR:    %s", c.OutputDir)
	logging.Info("  TEMP_DIR:      %s", valueOr(c.TempDir, os.TempDir()))
	logging.Info("  BANNER:        %s%s", c.Banner, defaultSuffix(c.BannerDefault))
	logging.Info("  FONT:          %s", c.Font)
	logging.Info("  FFMPEG:        %s", c.FFmpeg)
	logging.Info("  FFPROBE:       %s", c.FFprobe)
	logging.Info("  KEEP:          %v", c.Keep)
	logging.Info("  DEBUG:         %v", c.Debug)
	logging.Info("  PREVIEW_SIZE:  %s", previewString(c.PreviewSize))
	logging.Info("  METRICS_FILE:  %s", valueOr(c.MetricsFile, "DISABLED"))
	logging.Info("  LOG_LEVEL:     %s", logging.GetLevel())
	logging.Info("")
}

func printBanner() {
	logging.Debug("------------------------------------------------------------")
	logging.Debug("  getthumb %s", Version)
	logging.Debug("  Commit:     %s", Commit)
	logging.Debug("  Build Time: %s", BuildTime)
	logging.Debug("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Debug("")
}

func logSystemInfo() {
	if !logging.IsDebugEnabled() {
		return
	}
	logging.Debug("------------------------------------------------------------")
	logging.Debug("SYSTEM INFORMATION")
	logging.Debug("------------------------------------------------------------")
	logging.Debug("  Go version:      %s", runtime.Version())
	logging.Debug("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	if wd, err := os.Getwd(); err == nil {
		logging.Debug("  Working dir:     %s", wd)
	}
	logging.Debug("")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultSuffix(isDefault bool) string {
	if isDefault {
		return " (bundled)"
	}
	return ""
}

func previewString(size int) string {
	if size <= 0 {
		return "DISABLED"
	}
	return fmt.Sprintf("%dpx", size)
}

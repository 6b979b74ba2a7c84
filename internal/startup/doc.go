// Package startup handles configuration loading and startup logging for
// getthumb.
//
// # Configuration
//
// Configuration is read from environment variables via [LoadConfig], after
// an optional .env file has been loaded with [LoadEnvFile]. Command line
// flags override every value. The following variables are supported:
//
//   - GETTHUMB_OUTPUT_DIR: Directory for finished sheets (default: .)
//   - GETTHUMB_TEMP_DIR: Parent of temporary workspaces (default: system temp)
//   - GETTHUMB_BANNER: Banner image (default: assets/banner.png next to the executable)
//   - GETTHUMB_FONT: Font file for text overlays (default: DejaVuSans, or Arial on Windows)
//   - GETTHUMB_FFMPEG, GETTHUMB_FFPROBE: Tool binaries (default: looked up in PATH)
//   - GETTHUMB_KEEP: Keep intermediate images (default: false)
//   - GETTHUMB_DEBUG: Verbose tool output and ffmpeg -report files (default: false)
//   - GETTHUMB_PREVIEW_SIZE: Also write a JPEG preview this many pixels wide or tall (default: off)
//   - GETTHUMB_METRICS_FILE: Write Prometheus metrics to this file on exit (default: off)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - DEBUG: Shortcut for LOG_LEVEL=debug
//
// [Config.Resolve] makes paths absolute and validates the banner image and
// font before any work starts. [CheckTools] confirms both tools run.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
package startup

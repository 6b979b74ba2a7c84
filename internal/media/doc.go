// Package media handles the still images around a contact sheet run: it
// validates banner templates before any ffmpeg work starts and renders a
// small JPEG preview of a finished sheet.
//
// Decoding supports JPEG, PNG, GIF and WebP.
package media

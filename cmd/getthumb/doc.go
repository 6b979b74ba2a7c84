// Command getthumb builds a contact sheet for a video file.
//
// It probes the video with ffprobe, extracts evenly spaced frames with
// ffmpeg, tiles them into a grid and places the grid under a banner showing
// the file name, size, resolution, codecs and duration.
//
// Usage:
//
//	getthumb -f movie.mp4 [-o DIR] [-b BANNER] [-t FONT] [-k] [-d]
//	         [-cols 3] [-rows 3] [-preview N] [-metrics-file PATH]
//
// The finished image is written to DIR/{stem}_full.png, or to
// DIR/{stem}/{stem}_full.png together with every intermediate frame when -k
// is given. Its path is the only thing printed on standard output (apart from
// ffmpeg's own output in -d mode); progress goes to standard error when it is
// a terminal.
//
// Exit status is 0 on success, 1 when the run fails and 2 for usage errors.
// Every option can also be set through the environment; see package startup.
package main

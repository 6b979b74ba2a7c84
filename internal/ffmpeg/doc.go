// Package ffmpeg builds and runs ffmpeg and ffprobe command lines.
//
// Commands are assembled as argument vectors with Builder and never pass
// through a shell. Filter option values are escaped in one place (EscapeValue
// and EscapeText) so that colons, commas and quotes inside drawtext text or
// font paths survive ffmpeg's filtergraph and option parsers.
//
// Runner executes a Command to completion. ExecRunner is the os/exec backed
// implementation; tests substitute their own Runner to record argument vectors.
package ffmpeg

// Package logging provides a simple leveled logging interface for getthumb.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information, including every external command
//   - INFO: Pipeline progress messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// The log level is configured via the DEBUG or LOG_LEVEL environment variables
// and can be raised at runtime with SetLevel (the -debug flag does this).
// Messages go to stderr through a zerolog console writer, or to the writer
// given to SetOutput, so that stdout stays free for the final image path.
package logging

// Package thumb builds a contact sheet for one video.
//
// A Thumb probes the video once when it is constructed. Create then runs the
// remaining stages strictly in sequence, one external process at a time:
//
//  1. Extract: one ffmpeg call per frame, each frame stamped with its time
//  2. Compose: one hstack call per grid row, then one vstack call over the rows
//  3. Banner: one ffmpeg call that pads the banner, draws the metadata block
//     and overlays the grid
//  4. Preview (optional): a downscaled JPEG of the final image
//
// Intermediate files live in a Workspace. When intermediates are not kept the
// workspace is a temporary directory that is removed on every exit path,
// including failures and cancellation.
//
// Every failure is returned as a *StageError that matches one of the stage
// sentinels (ErrProbe, ErrExtraction, ErrComposition, ErrOverlay,
// ErrWorkspace, ErrPreview) with errors.Is. Nothing is retried.
package thumb

// Package mediatypes classifies files by extension.
//
// It is a dependency-free foundation that can be imported by other packages
// without creating import cycles. Classification is a hint only: ffprobe has
// the final word on whether a file is a usable video.
//
//	switch mediatypes.ClassifyPath(name) {
//	case mediatypes.FileTypeVideo:
//	    // probe it
//	case mediatypes.FileTypeImage:
//	    // decodable banner image
//	}
package mediatypes

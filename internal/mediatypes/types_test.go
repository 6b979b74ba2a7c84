package mediatypes

import "testing"

func TestGetFileType(t *testing.T) {
	tests := []struct {
		ext  string
		want FileType
	}{
		{".jpg", FileTypeImage},
		{".jpeg", FileTypeImage},
		{".png", FileTypeImage},
		{".gif", FileTypeImage},
		{".webp", FileTypeImage},
		{".mp4", FileTypeVideo},
		{".mkv", FileTypeVideo},
		{".webm", FileTypeVideo},
		{".ts", FileTypeVideo},
		{".bmp", FileTypeOther},
		{".txt", FileTypeOther},
		{"", FileTypeOther},
		{".MP4", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetFileType(tt.ext); got != tt.want {
				t.Errorf("GetFileType(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		path string
		want FileType
	}{
		{"/videos/Movie.MP4", FileTypeVideo},
		{"clip.final.mkv", FileTypeVideo},
		{"assets/banner.PNG", FileTypeImage},
		{"README", FileTypeOther},
		{"archive.tar.gz", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ClassifyPath(tt.path); got != tt.want {
				t.Errorf("ClassifyPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtensionSetsDisjoint(t *testing.T) {
	for ext := range ImageExtensions {
		if VideoExtensions[ext] {
			t.Errorf("%s is listed as both image and video", ext)
		}
	}
}

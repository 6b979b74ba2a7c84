package media

import (
	"path/filepath"
	"testing"
)

func TestWritePreview(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name       string
		width      int
		height     int
		size       int
		wantWidth  int
		wantHeight int
	}{
		{name: "Landscape sheet", width: 640, height: 360, size: 320, wantWidth: 320, wantHeight: 180},
		{name: "Portrait sheet", width: 200, height: 400, size: 100, wantWidth: 50, wantHeight: 100},
		{name: "Already small", width: 120, height: 60, size: 320, wantWidth: 120, wantHeight: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(tmpDir, tt.name+".png")
			dst := filepath.Join(tmpDir, "out", tt.name+".jpg")
			createTestImage(t, src, tt.width, tt.height, "png")

			if err := WritePreview(src, dst, tt.size); err != nil {
				t.Fatalf("WritePreview() error = %v", err)
			}

			dims, err := GetImageDimensions(dst)
			if err != nil {
				t.Fatalf("GetImageDimensions() error = %v", err)
			}
			if dims.Format != "jpeg" {
				t.Errorf("Format = %q, want jpeg", dims.Format)
			}
			if dims.Width != tt.wantWidth || dims.Height != tt.wantHeight {
				t.Errorf("Preview = %dx%d, want %dx%d", dims.Width, dims.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestWritePreviewErrors(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "sheet.png")
	createTestImage(t, src, 10, 10, "png")

	if err := WritePreview(src, filepath.Join(tmpDir, "p.jpg"), 0); err == nil {
		t.Error("Expected error for zero size")
	}
	if err := WritePreview(filepath.Join(tmpDir, "missing.png"), filepath.Join(tmpDir, "p.jpg"), 100); err == nil {
		t.Error("Expected error for missing source")
	}
}

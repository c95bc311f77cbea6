package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"github.com/banshee-data/tda.playground/internal/fsutil"
)

// FrameFileName returns the PNG file name for a frame at cutoff.
func FrameFileName(prefix string, cutoff float64) string {
	return fmt.Sprintf("%s_%.2f.png", prefix, cutoff)
}

// GeoJSONFileName returns the GeoJSON file name for a frame at cutoff.
func GeoJSONFileName(cutoff float64) string {
	return fmt.Sprintf("cutoff_%.2f.geojson", cutoff)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SaveFramePNG writes img to dir under FrameFileName(prefix, cutoff) and
// returns the full path.
func SaveFramePNG(fsys fsutil.FileSystem, dir, prefix string, cutoff float64, img image.Image) (string, error) {
	path := filepath.Join(dir, FrameFileName(prefix, cutoff))
	if err := WriteFile(fsys, path, func(w io.Writer) error { return WritePNG(w, img) }); err != nil {
		return "", err
	}
	return path, nil
}

// CleanPNGs removes PNG files left in dir by a previous run.
func CleanPNGs(fsys fsutil.FileSystem, dir string) (int, error) {
	return fsutil.RemoveByExt(fsys, dir, ".png")
}

// WriteFile creates path in fsys, hands it to write and closes it.
func WriteFile(fsys fsutil.FileSystem, path string, write func(io.Writer) error) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

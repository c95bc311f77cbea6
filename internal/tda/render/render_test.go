package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/tda.playground/internal/fsutil"
	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
)

var unitTriangle = []adjacency.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

func smallRenderer() *Renderer {
	return &Renderer{Width: 6 * vg.Inch, Height: 2 * vg.Inch, DPI: 30}
}

func sweepResult(t *testing.T, points []adjacency.Point, cutoffs ...float64) *sweep.Result {
	t.Helper()
	res, err := sweep.Run(context.Background(), points, cutoffs, sweep.ModeComplex)
	require.NoError(t, err)
	return res
}

func hasNonWhite(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return true
			}
		}
	}
	return false
}

func TestRenderFrame(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0.3, 0.8)
	summary := res.Summary()

	for i := range res.Frames {
		img, err := smallRenderer().RenderFrame(res, summary, i)
		require.NoError(t, err)
		assert.False(t, img.Bounds().Empty())
		assert.True(t, hasNonWhite(img), "frame %d is blank", i)
	}
}

func TestRenderFrame_ZeroThreshold(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0)
	_, err := smallRenderer().RenderFrame(res, res.Summary(), 0)
	require.NoError(t, err)
}

func TestRenderFrame_OutOfRange(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0.3)
	summary := res.Summary()

	_, err := smallRenderer().RenderFrame(res, summary, 1)
	assert.Error(t, err)
	_, err = smallRenderer().RenderFrame(res, summary, -1)
	assert.Error(t, err)
	_, err = smallRenderer().RenderFrame(nil, summary, 0)
	assert.Error(t, err)
}

func TestRenderFrame_SummaryMismatch(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0.3, 0.8)
	other := sweepResult(t, unitTriangle, 0.3)

	_, err := smallRenderer().RenderFrame(res, other.Summary(), 0)
	assert.Error(t, err)
}

func TestFrameFileName(t *testing.T) {
	assert.Equal(t, "two_squares_0.10.png", FrameFileName("two_squares", 0.1))
	assert.Equal(t, "x_1.25.png", FrameFileName("x", 1.25))
	assert.Equal(t, "cutoff_0.50.geojson", GeoJSONFileName(0.5))
}

func TestSaveFramePNGAndClean(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, fsys.MkdirAll("results", 0755))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)

	path, err := SaveFramePNG(fsys, "results", "run", 0.5, img)
	require.NoError(t, err)
	assert.Equal(t, "results/run_0.50.png", path)

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	require.NoError(t, WriteFile(fsys, "results/run.gif", func(w io.Writer) error {
		_, err := w.Write([]byte("GIF89a"))
		return err
	}))

	n, err := CleanPNGs(fsys, "results")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, fsys.Exists(path))
	assert.True(t, fsys.Exists("results/run.gif"))
}

func TestSaveFramePNG_MissingDir(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	_, err := SaveFramePNG(fsys, "nowhere", "run", 0.5, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.Error(t, err)
}

func TestWriteGIF(t *testing.T) {
	frames := make([]image.Image, 3)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		img.Set(i, i, color.RGBA{R: 255, A: 255})
		frames[i] = img
	}

	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, frames, 250*time.Millisecond))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{25, 25, 25}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)
}

func TestWriteGIF_MinimumDelay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, []image.Image{image.NewRGBA(image.Rect(0, 0, 2, 2))}, 0))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, anim.Delay)
}

func TestWriteGIF_NoFrames(t *testing.T) {
	assert.Error(t, WriteGIF(&bytes.Buffer{}, nil, time.Second))
}

func TestWriteScatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScatter(&buf, unitTriangle))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, hasNonWhite(img))
}

func TestWriteReport(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0.3, 0.6, 0.8)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "unit_triangle", res))

	html := buf.String()
	assert.True(t, strings.Contains(html, "unit_triangle"))
	assert.True(t, strings.Contains(html, "triangles"))
	assert.True(t, strings.Contains(html, "echarts"))
}

func TestWriteReport_Empty(t *testing.T) {
	assert.Error(t, WriteReport(&bytes.Buffer{}, "x", nil))
	assert.Error(t, WriteReport(&bytes.Buffer{}, "x", &sweep.Result{}))
}

func TestExportGeoJSON(t *testing.T) {
	res := sweepResult(t, unitTriangle, 0.8)
	c := res.Frames[0].Complex

	var buf bytes.Buffer
	require.NoError(t, ExportGeoJSON(&buf, unitTriangle, c))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}
	assert.Equal(t, map[string]int{"vertex": 3, "edge": 3, "triangle": 1}, kinds)

	last := fc.Features[len(fc.Features)-1]
	poly, ok := last.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 4)
	assert.InDelta(t, 0.5, last.Properties.MustFloat64("area"), 1e-9)
}

func TestExportGeoJSON_CollinearTriangle(t *testing.T) {
	line := []adjacency.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	c, err := adjacency.Analyze(line, 1)
	require.NoError(t, err)
	require.Len(t, c.Triples, 1)

	var buf bytes.Buffer
	require.NoError(t, ExportGeoJSON(&buf, line, c))
}

func TestComplexFeatures_Mismatch(t *testing.T) {
	c, err := adjacency.Analyze(unitTriangle, 1)
	require.NoError(t, err)

	_, err = ComplexFeatures(unitTriangle[:2], c)
	assert.Error(t, err)
	_, err = ComplexFeatures(unitTriangle, nil)
	assert.Error(t, err)
}

func TestGenerateColors(t *testing.T) {
	assert.Nil(t, generateColors(0))
	colors := generateColors(3)
	require.Len(t, colors, 3)
	assert.NotEqual(t, colors[0], colors[1])
	assert.NotEqual(t, colors[1], colors[2])
}

// Package pointgen produces synthetic 2D point clouds for the playground.
package pointgen

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/banshee-data/tda.playground/internal/config"
	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

// Rectangles returns the corners of n axis-aligned squares laid out along
// the diagonal. Square r has edge 2^(r/2) and its lower-left corner at
// (b·r, b·r) with b = 2·2^(n/2), so squares grow but never overlap.
// Corners are emitted as (x0,y0), (x0,y1), (x1,y0), (x1,y1).
func Rectangles(n int) ([]adjacency.Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("number of rectangles must be at least 1, got %d", n)
	}

	base := 2 * math.Pow(2, float64(n)/2)
	points := make([]adjacency.Point, 0, 4*n)
	for r := 0; r < n; r++ {
		edge := math.Pow(2, float64(r)/2)
		coords := [2]float64{base * float64(r), base*float64(r) + edge}
		for _, x := range coords {
			for _, y := range coords {
				points = append(points, adjacency.Point{X: x, Y: y})
			}
		}
	}
	return points, nil
}

// NoisyCircle returns n points evenly spaced around a circle of the given
// radius centred on the origin, each pushed radially by Gaussian noise with
// standard deviation sigma. The same seed yields the same cloud.
func NoisyCircle(n int, radius, sigma float64, seed uint64) ([]adjacency.Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("number of points must be at least 1, got %d", n)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %f", radius)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("sigma must be non-negative, got %f", sigma)
	}

	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: newSource(seed)}
	points := make([]adjacency.Point, n)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := radius
		if sigma > 0 {
			r += noise.Rand()
		}
		points[i] = adjacency.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return points, nil
}

// UniformBox returns n points drawn uniformly from box.
func UniformBox(n int, box r2.Box, seed uint64) ([]adjacency.Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("number of points must be at least 1, got %d", n)
	}
	box = box.Canon()
	src := newSource(seed)
	xs := distuv.Uniform{Min: box.Min.X, Max: box.Max.X, Src: src}
	ys := distuv.Uniform{Min: box.Min.Y, Max: box.Max.Y, Src: src}

	points := make([]adjacency.Point, n)
	for i := range points {
		points[i] = adjacency.Point{X: xs.Rand(), Y: ys.Rand()}
	}
	return points, nil
}

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x5851f42d4c957f2d)
}

// WriteYAML writes points as a YAML list of {x, y} mappings, ready to paste
// under a run's "points" key.
func WriteYAML(w io.Writer, points []adjacency.Point) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pointSpecs(points)); err != nil {
		return fmt.Errorf("failed to encode points: %w", err)
	}
	return enc.Close()
}

// WriteConfig writes a complete playground configuration holding a single
// complex sweep of points named name, with results under results/<name>.
func WriteConfig(w io.Writer, name string, points []adjacency.Point) error {
	save, gif := true, true
	cfg := config.Config{Runs: []config.RunConfig{{
		Type: config.TypeComplex,
		Name: name,
		Config: config.RunParams{
			Points:        pointSpecs(points),
			ResultsFolder: "results/" + name,
			SaveFig:       &save,
			CreateGIF:     &gif,
		},
	}}}
	if err := cfg.Validate(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func pointSpecs(points []adjacency.Point) []config.PointSpec {
	specs := make([]config.PointSpec, len(points))
	for i, p := range points {
		specs[i] = config.PointSpec{X: p.X, Y: p.Y}
	}
	return specs
}

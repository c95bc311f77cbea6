package sweep

import (
	"context"
	"fmt"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
)

// Mode controls how a cutoff maps onto the analyzer's proximity threshold.
type Mode string

const (
	// ModeComplex uses the cutoff as the circle radius: points connect when
	// they are at most 2·cutoff apart.
	ModeComplex Mode = "complex"
	// ModeRips uses the cutoff as the maximum edge length: points connect
	// when they are at most cutoff apart.
	ModeRips Mode = "rips"
)

// Threshold converts a cutoff into a proximity threshold for this mode.
func (m Mode) Threshold(cutoff float64) (float64, error) {
	switch m {
	case ModeComplex:
		return cutoff, nil
	case ModeRips:
		return cutoff / 2, nil
	default:
		return 0, fmt.Errorf("unknown sweep mode %q", m)
	}
}

// Frame is the analyzer output for a single cutoff.
type Frame struct {
	Index     int
	Cutoff    float64
	Threshold float64
	Complex   *adjacency.Complex
}

// Result holds every frame of a sweep in cutoff order.
type Result struct {
	Mode    Mode
	Points  []adjacency.Point
	Cutoffs []float64
	Frames  []Frame
}

// Run analyzes points at every cutoff. Each cutoff is a fresh, independent
// computation. ctx is checked between cutoffs.
func Run(ctx context.Context, points []adjacency.Point, cutoffs []float64, mode Mode) (*Result, error) {
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("no cutoffs to sweep")
	}

	res := &Result{
		Mode:    mode,
		Points:  points,
		Cutoffs: cutoffs,
		Frames:  make([]Frame, 0, len(cutoffs)),
	}
	for i, cutoff := range cutoffs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		threshold, err := mode.Threshold(cutoff)
		if err != nil {
			return nil, err
		}
		c, err := adjacency.Analyze(points, threshold)
		if err != nil {
			return nil, fmt.Errorf("cutoff %.3f: %w", cutoff, err)
		}
		res.Frames = append(res.Frames, Frame{
			Index:     i,
			Cutoff:    cutoff,
			Threshold: threshold,
			Complex:   c,
		})
	}
	return res, nil
}

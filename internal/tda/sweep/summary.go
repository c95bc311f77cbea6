package sweep

import (
	"gonum.org/v1/gonum/floats"
)

// FrameStats is the per-cutoff size of the complex.
type FrameStats struct {
	Cutoff     float64
	Threshold  float64
	Edges      int
	Triangles  int
	Components int
}

// Summary aggregates the frames of a sweep.
type Summary struct {
	Frames []FrameStats

	MaxEdges      int
	MaxTriangles  int
	MeanEdges     float64
	MeanTriangles float64

	// FirstConnected is the smallest cutoff at which the complex has a
	// single component, or -1 if it never does within the sweep.
	FirstConnected float64
}

// Summary computes per-frame counts and sweep-wide aggregates.
func (r *Result) Summary() Summary {
	s := Summary{FirstConnected: -1}
	if r == nil || len(r.Frames) == 0 {
		return s
	}

	edges := make([]float64, len(r.Frames))
	triangles := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		st := FrameStats{
			Cutoff:     f.Cutoff,
			Threshold:  f.Threshold,
			Edges:      len(f.Complex.Edges),
			Triangles:  len(f.Complex.Triples),
			Components: f.Complex.Components,
		}
		s.Frames = append(s.Frames, st)
		edges[i] = float64(st.Edges)
		triangles[i] = float64(st.Triangles)
		if st.Components == 1 && (s.FirstConnected < 0 || st.Cutoff < s.FirstConnected) {
			s.FirstConnected = st.Cutoff
		}
	}

	s.MaxEdges = int(floats.Max(edges))
	s.MaxTriangles = int(floats.Max(triangles))
	s.MeanEdges = floats.Sum(edges) / float64(len(edges))
	s.MeanTriangles = floats.Sum(triangles) / float64(len(triangles))
	return s
}

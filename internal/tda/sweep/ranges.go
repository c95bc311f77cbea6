// Package sweep runs the adjacency analyzer across a series of distance
// cutoffs and summarises the resulting complexes.
package sweep

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxCutoffs bounds how many cutoffs a single range may expand to.
const MaxCutoffs = 10000

// RangeSpec is a half-open cutoff range [Min, Lim) advanced by Step.
type RangeSpec struct {
	Min  float64
	Lim  float64
	Step float64
}

// ParseRangeSpec parses a "min:lim:step" string into a RangeSpec.
// Returns an error if the format is invalid or values cannot be parsed.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range format %q: expected min:lim:step", s)
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid min value %q: %w", parts[0], err)
	}

	lim, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid lim value %q: %w", parts[1], err)
	}

	step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid step value %q: %w", parts[2], err)
	}

	if step <= 0 {
		return RangeSpec{}, fmt.Errorf("step must be positive, got %f", step)
	}

	return RangeSpec{Min: min, Lim: lim, Step: step}, nil
}

// Values expands the range, see Cutoffs.
func (r RangeSpec) Values() []float64 { return Cutoffs(r.Min, r.Lim, r.Step) }

// Cutoffs returns min, min+step, ... strictly below lim. Values are computed
// as min+i*step and rounded to 1e-9 so they do not accumulate drift.
// Returns nil for a non-positive step, an empty range, or a range that
// would exceed MaxCutoffs entries.
func Cutoffs(min, lim, step float64) []float64 {
	if step <= 0 || math.IsNaN(step) || !(min < lim) {
		return nil
	}

	count := math.Ceil((lim - min) / step)
	if count > MaxCutoffs || math.IsInf(count, 0) || math.IsNaN(count) {
		return nil
	}

	result := make([]float64, 0, int(count))
	for i := 0; i < int(count); i++ {
		v := math.Round((min+float64(i)*step)*1e9) / 1e9
		if v >= lim {
			break
		}
		result = append(result, v)
	}
	return result
}

// ParseCutoffList parses either a "min:lim:step" range or a comma-separated
// list of cutoffs. Cutoffs must be non-negative. Listed values are returned
// sorted ascending with duplicates removed.
func ParseCutoffList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	if strings.Contains(s, ":") {
		spec, err := ParseRangeSpec(s)
		if err != nil {
			return nil, err
		}
		if spec.Min < 0 {
			return nil, fmt.Errorf("cutoff must be non-negative, got min %g", spec.Min)
		}
		values := spec.Values()
		if len(values) == 0 {
			return nil, fmt.Errorf("range %q must expand to between 1 and %d cutoffs", s, MaxCutoffs)
		}
		return values, nil
	}

	values, err := ParseCSVFloat64s(s)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("cutoff must be non-negative, got %g", v)
		}
	}
	slices.Sort(values)
	return slices.Compact(values), nil
}

// ParseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings.
func ParseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
	"gopkg.in/yaml.v3"
)

// RunType selects what a configured run produces.
type RunType string

const (
	// TypeSimpleScatter draws the raw point cloud only.
	TypeSimpleScatter RunType = "simple_scatter"
	// TypeComplex sweeps cutoffs treating each cutoff as the circle radius.
	TypeComplex RunType = "complex"
	// TypeGDA is the historical name of TypeComplex.
	TypeGDA RunType = "gda"
	// TypeRips sweeps cutoffs treating each cutoff as the maximum edge length.
	TypeRips RunType = "rips"
)

// Canonical maps historical aliases onto their canonical run type.
func (t RunType) Canonical() RunType {
	if t == TypeGDA {
		return TypeComplex
	}
	return t
}

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is the root of a playground YAML file.
type Config struct {
	Runs []RunConfig `yaml:"tda"`
}

// RunConfig describes one entry of the tda list.
type RunConfig struct {
	Type   RunType   `yaml:"type"`
	Name   string    `yaml:"name,omitempty"`
	Config RunParams `yaml:"config"`
}

// PointSpec is a point as written in YAML.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MarshalYAML emits the point as a plain {x, y} mapping. The default encoder
// quotes the "y" key because YAML 1.1 reads it as a boolean.
func (p PointSpec) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "x"},
			{Kind: yaml.ScalarNode, Value: formatFloat(p.X)},
			{Kind: yaml.ScalarNode, Value: "y"},
			{Kind: yaml.ScalarNode, Value: formatFloat(p.Y)},
		},
	}, nil
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RunParams holds the per-run parameters. Pointer fields are optional and
// resolved through the Get* methods.
type RunParams struct {
	Points []PointSpec `yaml:"points"`

	CutoffMin  *float64 `yaml:"cutoff_min,omitempty"`
	CutoffLim  *float64 `yaml:"cutoff_lim,omitempty"`
	CutoffStep *float64 `yaml:"cutoff_step,omitempty"`

	ResultsFolder string `yaml:"results_folder,omitempty"`
	SaveFig       *bool  `yaml:"save_fig,omitempty"`
	ShowFig       *bool  `yaml:"show_fig,omitempty"`
	CreateGIF     *bool  `yaml:"create_gif,omitempty"`
	GIFName       string `yaml:"gif_name,omitempty"`
	FrameDelayMs  *int   `yaml:"frame_delay_ms,omitempty"`

	ReportHTML    *bool `yaml:"report_html,omitempty"`
	ExportGeoJSON *bool `yaml:"export_geojson,omitempty"`
}

// Load reads and validates a YAML configuration file.
// The file must have a .yml or .yaml extension and be under 1MB. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yml" && ext != ".yaml" {
		return nil, fmt.Errorf("config file must have .yml or .yaml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every run entry.
func (c *Config) Validate() error {
	if len(c.Runs) == 0 {
		return fmt.Errorf("no tda runs configured")
	}
	for i := range c.Runs {
		if err := c.Runs[i].Validate(); err != nil {
			return fmt.Errorf("tda[%d] (%s): %w", i, c.Runs[i].DisplayName(i), err)
		}
	}
	return nil
}

// Validate checks that the run's type and parameters are usable.
func (r *RunConfig) Validate() error {
	switch r.Type.Canonical() {
	case TypeSimpleScatter, TypeComplex, TypeRips:
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("type %q not implemented", r.Type)
	}

	p := &r.Config
	if len(p.Points) == 0 {
		return fmt.Errorf("points must not be empty")
	}
	if r.Type.Canonical() == TypeSimpleScatter {
		return nil
	}

	if p.GetCutoffMin() < 0 {
		return fmt.Errorf("cutoff_min must be non-negative, got %f", p.GetCutoffMin())
	}
	if p.GetCutoffStep() <= 0 {
		return fmt.Errorf("cutoff_step must be positive, got %f", p.GetCutoffStep())
	}
	if p.GetCutoffLim() <= p.GetCutoffMin() {
		return fmt.Errorf("cutoff_lim (%f) must be greater than cutoff_min (%f)", p.GetCutoffLim(), p.GetCutoffMin())
	}
	if len(p.CutoffRange().Values()) == 0 {
		return fmt.Errorf("cutoff range %g:%g:%g must expand to between 1 and %d cutoffs",
			p.GetCutoffMin(), p.GetCutoffLim(), p.GetCutoffStep(), sweep.MaxCutoffs)
	}
	if p.ResultsFolder == "" {
		return fmt.Errorf("results_folder is required")
	}
	if p.FrameDelayMs != nil && *p.FrameDelayMs < 0 {
		return fmt.Errorf("frame_delay_ms must be non-negative, got %d", *p.FrameDelayMs)
	}
	return nil
}

// DisplayName returns the configured name or a positional fallback.
func (r *RunConfig) DisplayName(idx int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%s_%d", r.Type.Canonical(), idx)
}

// AdjacencyPoints converts the configured points into analyzer points,
// preserving order.
func (p *RunParams) AdjacencyPoints() []adjacency.Point {
	pts := make([]adjacency.Point, len(p.Points))
	for i, sp := range p.Points {
		pts[i] = adjacency.Point{X: sp.X, Y: sp.Y}
	}
	return pts
}

// CutoffRange returns the configured cutoff range with defaults applied.
func (p *RunParams) CutoffRange() sweep.RangeSpec {
	return sweep.RangeSpec{Min: p.GetCutoffMin(), Lim: p.GetCutoffLim(), Step: p.GetCutoffStep()}
}

// GetCutoffMin returns cutoff_min or the default.
func (p *RunParams) GetCutoffMin() float64 {
	if p.CutoffMin == nil {
		return 0.1
	}
	return *p.CutoffMin
}

// GetCutoffLim returns cutoff_lim (exclusive) or the default.
func (p *RunParams) GetCutoffLim() float64 {
	if p.CutoffLim == nil {
		return 2.0
	}
	return *p.CutoffLim
}

// GetCutoffStep returns cutoff_step or the default.
func (p *RunParams) GetCutoffStep() float64 {
	if p.CutoffStep == nil {
		return 0.1
	}
	return *p.CutoffStep
}

// GetSaveFig returns save_fig or the default (true).
func (p *RunParams) GetSaveFig() bool {
	if p.SaveFig == nil {
		return true
	}
	return *p.SaveFig
}

// GetShowFig returns show_fig or the default (false).
func (p *RunParams) GetShowFig() bool {
	if p.ShowFig == nil {
		return false
	}
	return *p.ShowFig
}

// GetCreateGIF returns create_gif or the default (false).
func (p *RunParams) GetCreateGIF() bool {
	if p.CreateGIF == nil {
		return false
	}
	return *p.CreateGIF
}

// GetReportHTML returns report_html or the default (false).
func (p *RunParams) GetReportHTML() bool {
	if p.ReportHTML == nil {
		return false
	}
	return *p.ReportHTML
}

// GetExportGeoJSON returns export_geojson or the default (false).
func (p *RunParams) GetExportGeoJSON() bool {
	if p.ExportGeoJSON == nil {
		return false
	}
	return *p.ExportGeoJSON
}

// GetGIFName returns gif_name or "<runName>.gif".
func (p *RunParams) GetGIFName(runName string) string {
	if p.GIFName != "" {
		return p.GIFName
	}
	return runName + ".gif"
}

// GetFrameDelay returns the per-frame GIF delay. Without an explicit
// frame_delay_ms the delay scales with the sweep length (frames/16 seconds).
func (p *RunParams) GetFrameDelay(frames int) time.Duration {
	if p.FrameDelayMs != nil {
		return time.Duration(*p.FrameDelayMs) * time.Millisecond
	}
	return time.Duration(frames) * time.Second / 16
}

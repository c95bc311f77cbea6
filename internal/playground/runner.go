// Package playground executes the runs of a configuration file: scatter
// previews, cutoff sweeps and everything rendered from them.
package playground

import (
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/banshee-data/tda.playground/internal/config"
	"github.com/banshee-data/tda.playground/internal/fsutil"
	"github.com/banshee-data/tda.playground/internal/monitoring"
	"github.com/banshee-data/tda.playground/internal/tda/render"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
)

const (
	scatterFile = "scatter.png"
	summaryFile = "summary.csv"
	reportFile  = "report.html"
)

var (
	mainLog    = monitoring.NewComponentLogger("Main", monitoring.Yellow)
	plotterLog = monitoring.NewComponentLogger("Plotter", monitoring.Blue)
)

// Catalog records finished sweeps. *db.DB satisfies it.
type Catalog interface {
	RecordRun(ctx context.Context, name string, cutoffs sweep.RangeSpec, res *sweep.Result) (string, error)
}

// Outcome describes what one configured run produced.
type Outcome struct {
	Name    string
	Type    config.RunType
	Files   []string
	RunID   string
	Summary *sweep.Summary
}

// Runner executes configured runs against a filesystem.
type Runner struct {
	FS       fsutil.FileSystem
	Renderer *render.Renderer

	// Catalog is optional; when set every sweep is recorded.
	Catalog Catalog

	// Cutoffs, when non-empty, replaces the configured cutoff range of
	// every sweep.
	Cutoffs []float64
}

// NewRunner returns a runner writing through fsys with the default renderer.
func NewRunner(fsys fsutil.FileSystem) *Runner {
	return &Runner{FS: fsys, Renderer: render.NewRenderer()}
}

// Execute runs every entry of cfg in order and stops at the first failure.
func (r *Runner) Execute(ctx context.Context, cfg *config.Config) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(cfg.Runs))
	for i := range cfg.Runs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		run := &cfg.Runs[i]
		name := run.DisplayName(i)

		mainLog.Infof("running %s (%s)", name, run.Type)
		out, err := r.executeRun(ctx, name, run)
		if err != nil {
			return outcomes, fmt.Errorf("tda[%d] %s: %w", i, name, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (r *Runner) executeRun(ctx context.Context, name string, run *config.RunConfig) (Outcome, error) {
	if run.Config.GetShowFig() {
		plotterLog.Warnf("show_fig is not supported; figures are only written to disk")
	}

	switch run.Type.Canonical() {
	case config.TypeSimpleScatter:
		return r.scatter(name, run)
	case config.TypeComplex:
		return r.sweep(ctx, name, run, sweep.ModeComplex, fsutil.SanitizeFilename(name))
	case config.TypeRips:
		return r.sweep(ctx, name, run, sweep.ModeRips, "cutoff")
	default:
		return Outcome{}, fmt.Errorf("type %q not implemented", run.Type)
	}
}

func (r *Runner) scatter(name string, run *config.RunConfig) (Outcome, error) {
	defer monitoring.Timed(name + " scatter")()

	dir := run.Config.ResultsFolder
	if dir == "" {
		dir = "."
	}
	if err := r.FS.MkdirAll(dir, 0755); err != nil {
		return Outcome{}, fmt.Errorf("create results folder: %w", err)
	}

	path := filepath.Join(dir, scatterFile)
	points := run.Config.AdjacencyPoints()
	err := render.WriteFile(r.FS, path, func(w io.Writer) error {
		return render.WriteScatter(w, points)
	})
	if err != nil {
		return Outcome{}, err
	}
	plotterLog.Infof("wrote %s", path)
	return Outcome{Name: name, Type: run.Type, Files: []string{path}}, nil
}

// cutoffs returns the sweep cutoffs for p and the range to record them under.
// An explicit override list is recorded with a zero step.
func (r *Runner) cutoffs(p *config.RunParams) ([]float64, sweep.RangeSpec) {
	if len(r.Cutoffs) > 0 {
		return r.Cutoffs, sweep.RangeSpec{Min: r.Cutoffs[0], Lim: r.Cutoffs[len(r.Cutoffs)-1]}
	}
	spec := p.CutoffRange()
	return spec.Values(), spec
}

func (r *Runner) sweep(ctx context.Context, name string, run *config.RunConfig, mode sweep.Mode, prefix string) (Outcome, error) {
	p := &run.Config
	dir := p.ResultsFolder
	out := Outcome{Name: name, Type: run.Type}

	if err := r.FS.MkdirAll(dir, 0755); err != nil {
		return out, fmt.Errorf("create results folder: %w", err)
	}
	removed, err := render.CleanPNGs(r.FS, dir)
	if err != nil {
		return out, fmt.Errorf("clean results folder: %w", err)
	}
	if removed > 0 {
		mainLog.Debugf("removed %d old frames from %s", removed, dir)
	}

	cutoffs, spec := r.cutoffs(p)
	if len(cutoffs) == 0 {
		return out, fmt.Errorf("empty cutoff range %g:%g:%g", spec.Min, spec.Lim, spec.Step)
	}

	done := monitoring.Timed(name + " sweep")
	res, err := sweep.Run(ctx, p.AdjacencyPoints(), cutoffs, mode)
	done()
	if err != nil {
		return out, err
	}
	summary := res.Summary()
	out.Summary = &summary

	var frames []image.Image
	if p.GetSaveFig() || p.GetCreateGIF() {
		done := monitoring.Timed(name + " render")
		for i, f := range res.Frames {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			img, err := r.Renderer.RenderFrame(res, summary, i)
			if err != nil {
				return out, fmt.Errorf("render cutoff %.2f: %w", f.Cutoff, err)
			}
			if p.GetSaveFig() {
				path, err := render.SaveFramePNG(r.FS, dir, prefix, f.Cutoff, img)
				if err != nil {
					return out, err
				}
				out.Files = append(out.Files, path)
				plotterLog.Debugf("wrote %s", path)
			}
			if p.GetCreateGIF() {
				frames = append(frames, img)
			}
		}
		done()
	}

	if p.GetCreateGIF() {
		path, err := fsutil.JoinWithin(dir, p.GetGIFName(fsutil.SanitizeFilename(name)))
		if err != nil {
			return out, fmt.Errorf("gif_name: %w", err)
		}
		if err := r.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return out, err
		}
		delay := p.GetFrameDelay(len(frames))
		if err := r.writeFile(&out, path, func(w io.Writer) error {
			return render.WriteGIF(w, frames, delay)
		}); err != nil {
			return out, err
		}
		plotterLog.Infof("wrote %s (%d frames, %v per frame)", path, len(frames), delay)
	}

	if err := r.writeFile(&out, filepath.Join(dir, summaryFile), func(w io.Writer) error {
		return sweep.WriteSummaryCSV(w, summary)
	}); err != nil {
		return out, err
	}

	if p.GetReportHTML() {
		if err := r.writeFile(&out, filepath.Join(dir, reportFile), func(w io.Writer) error {
			return render.WriteReport(w, name, res)
		}); err != nil {
			return out, err
		}
	}

	if p.GetExportGeoJSON() {
		for _, f := range res.Frames {
			path := filepath.Join(dir, render.GeoJSONFileName(f.Cutoff))
			if err := r.writeFile(&out, path, func(w io.Writer) error {
				return render.ExportGeoJSON(w, res.Points, f.Complex)
			}); err != nil {
				return out, err
			}
		}
	}

	if r.Catalog != nil {
		id, err := r.Catalog.RecordRun(ctx, name, spec, res)
		if err != nil {
			return out, fmt.Errorf("record run: %w", err)
		}
		out.RunID = id
		mainLog.Infof("recorded %s as %s", name, id)
	}

	if summary.FirstConnected >= 0 {
		mainLog.Infof("%s: %d frames, connected from cutoff %.2f", name, len(res.Frames), summary.FirstConnected)
	} else {
		mainLog.Infof("%s: %d frames, never connected", name, len(res.Frames))
	}
	return out, nil
}

func (r *Runner) writeFile(out *Outcome, path string, write func(io.Writer) error) error {
	if err := render.WriteFile(r.FS, path, write); err != nil {
		return err
	}
	out.Files = append(out.Files, path)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/warp"
)

var (
	errJobFormat = errors.New("unknown job file format")
	errJob       = errors.New("invalid job")
)

// Job describes one run: where to read the source, what to do with it and
// where to write the result. Exactly one of Project and Deform is set.
type Job struct {
	Input   string      `toml:"input" yaml:"input"`
	Output  string      `toml:"output" yaml:"output"`
	Blur    float64     `toml:"blur,omitempty" yaml:"blur,omitempty"`
	Project *ProjectJob `toml:"project,omitempty" yaml:"project,omitempty"`
	Deform  *DeformJob  `toml:"deform,omitempty" yaml:"deform,omitempty"`
}

// ProjectJob maps the source onto a quadrilateral.
type ProjectJob struct {
	// Width and Height of the target; zero means the source size.
	Width  int `toml:"width,omitempty" yaml:"width,omitempty"`
	Height int `toml:"height,omitempty" yaml:"height,omitempty"`

	// Quad lists the vertices as [x, y] pairs: upper left, upper right,
	// bottom right, bottom left.
	Quad [][2]int `toml:"quad" yaml:"quad"`

	// Perspective holds the horizontal and vertical magnitudes, if any.
	Perspective []float64 `toml:"perspective,omitempty" yaml:"perspective,omitempty"`

	ProjectorFlags `yaml:",inline"`
}

// ProjectorFlags are the projector options a job can set.
type ProjectorFlags struct {
	HardEdges        bool `toml:"hard_edges,omitempty" yaml:"hard_edges,omitempty"`
	Nearest          bool `toml:"nearest,omitempty" yaml:"nearest,omitempty"`
	FlipHorizontally bool `toml:"flip_horizontally,omitempty" yaml:"flip_horizontally,omitempty"`
	FlipVertically   bool `toml:"flip_vertically,omitempty" yaml:"flip_vertically,omitempty"`
}

// DeformJob bands the source along one axis. Either Bands (constant
// targets) or Sources with Separators (curved bands) is given.
type DeformJob struct {
	// Axis is "columns" (the default) or "rows".
	Axis       string     `toml:"axis,omitempty" yaml:"axis,omitempty"`
	Bands      []BandJob  `toml:"bands,omitempty" yaml:"bands,omitempty"`
	Sources    []int      `toml:"sources,omitempty" yaml:"sources,omitempty"`
	Separators []CurveJob `toml:"separators,omitempty" yaml:"separators,omitempty"`
	Workers    int        `toml:"workers,omitempty" yaml:"workers,omitempty"`
}

// BandJob is a constant band.
type BandJob struct {
	Source int     `toml:"source" yaml:"source"`
	Target float64 `toml:"target" yaml:"target"`
}

// CurveJob is a separator curve in target pixel coordinates.
type CurveJob struct {
	// Kind is "bezier", "spline" (standard), "open" or "closed".
	Kind   string       `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Order  int          `toml:"order,omitempty" yaml:"order,omitempty"`
	Points [][2]float64 `toml:"points" yaml:"points"`
}

// LoadJob reads a job file. The format is chosen by extension:
// .toml, or .yaml/.yml.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	job, err := DecodeJob(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.resolvePaths(filepath.Dir(path))
	return job, nil
}

// DecodeJob parses and validates a job in the format named by ext.
func DecodeJob(data []byte, ext string) (*Job, error) {
	var job Job
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &job)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &job)
	default:
		return nil, fmt.Errorf("%w: %q", errJobFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// resolvePaths makes relative image paths relative to the job file.
func (j *Job) resolvePaths(dir string) {
	if j.Input != "" && !filepath.IsAbs(j.Input) {
		j.Input = filepath.Join(dir, j.Input)
	}
	if j.Output != "" && !filepath.IsAbs(j.Output) {
		j.Output = filepath.Join(dir, j.Output)
	}
}

// Validate checks the parts of a job that the library cannot.
func (j *Job) Validate() error {
	switch {
	case j.Input == "":
		return fmt.Errorf("%w: no input", errJob)
	case j.Output == "":
		return fmt.Errorf("%w: no output", errJob)
	case j.Blur < 0:
		return fmt.Errorf("%w: negative blur radius %g", errJob, j.Blur)
	case (j.Project == nil) == (j.Deform == nil):
		return fmt.Errorf("%w: need exactly one of project and deform", errJob)
	case j.Project != nil:
		return j.Project.validate()
	default:
		return j.Deform.validate()
	}
}

func (p *ProjectJob) validate() error {
	if len(p.Quad) != 4 {
		return fmt.Errorf("%w: quad has %d vertices, want 4", errJob, len(p.Quad))
	}
	if n := len(p.Perspective); n != 0 && n != 2 {
		return fmt.Errorf("%w: perspective has %d values, want 2", errJob, n)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: negative target size", errJob)
	}
	return nil
}

// Size returns the target size, defaulting each zero dimension to the
// matching source dimension.
func (p *ProjectJob) Size(src image.Point) image.Point {
	size := image.Pt(p.Width, p.Height)
	if size.X == 0 {
		size.X = src.X
	}
	if size.Y == 0 {
		size.Y = src.Y
	}
	return size
}

// Quadrilateral converts the vertex list.
func (p *ProjectJob) Quadrilateral() warp.Quadrilateral {
	pt := func(v [2]int) image.Point { return image.Pt(v[0], v[1]) }
	return warp.Quadrilateral{
		UpperLeft:   pt(p.Quad[0]),
		UpperRight:  pt(p.Quad[1]),
		BottomRight: pt(p.Quad[2]),
		BottomLeft:  pt(p.Quad[3]),
	}
}

// PseudoPerspective returns nil when no perspective is configured.
func (p *ProjectJob) PseudoPerspective() (*warp.PseudoPerspective, error) {
	if len(p.Perspective) == 0 {
		return nil, nil
	}
	return warp.NewPseudoPerspective(p.Perspective[0], p.Perspective[1])
}

// Options returns the projector options for the flags. Both remember-last
// caches are on, since a watched job projects the same quad repeatedly.
func (f ProjectorFlags) Options() []warp.ProjectorOption {
	return []warp.ProjectorOption{
		warp.WithSmoothEdges(!f.HardEdges),
		warp.WithSubSampling(!f.Nearest),
		warp.WithFlipHorizontally(f.FlipHorizontally),
		warp.WithFlipVertically(f.FlipVertically),
		warp.WithRememberLast(true),
	}
}

func (d *DeformJob) validate() error {
	switch d.Axis {
	case "", "columns", "rows":
	default:
		return fmt.Errorf("%w: unknown axis %q", errJob, d.Axis)
	}
	if (len(d.Bands) == 0) == (len(d.Sources) == 0) {
		return fmt.Errorf("%w: need exactly one of bands and sources", errJob)
	}
	return nil
}

// Deformation builds the banding the job describes.
func (d *DeformJob) Deformation() (*warp.Deformation, error) {
	opts := []warp.DeformationOption{warp.WithWorkers(d.Workers)}

	if len(d.Bands) > 0 {
		bands := make([]warp.Band, len(d.Bands))
		for i, b := range d.Bands {
			bands[i] = warp.ConstantBand{Source: b.Source, Target: b.Target}
		}
		if d.Axis == "rows" {
			rb, err := warp.NewRowBanding(bands...)
			if err != nil {
				return nil, err
			}
			return rb.Deformation(opts...), nil
		}
		cb, err := warp.NewColumnBanding(bands...)
		if err != nil {
			return nil, err
		}
		return cb.Deformation(opts...), nil
	}

	separators := make([]warp.Curve, len(d.Separators))
	for i, cj := range d.Separators {
		c, err := cj.Curve()
		if err != nil {
			return nil, fmt.Errorf("separator %d: %w", i, err)
		}
		separators[i] = c
	}
	if d.Axis == "rows" {
		rb, err := warp.NewCurvedRowBanding(d.Sources, separators)
		if err != nil {
			return nil, err
		}
		return rb.Deformation(opts...), nil
	}
	cb, err := warp.NewCurvedColumnBanding(d.Sources, separators)
	if err != nil {
		return nil, err
	}
	return cb.Deformation(opts...), nil
}

// Curve builds the separator curve.
func (c CurveJob) Curve() (warp.Curve, error) {
	points := make([]warp.Point, len(c.Points))
	for i, p := range c.Points {
		points[i] = warp.Pt(p[0], p[1])
	}
	switch c.Kind {
	case "", "bezier":
		return warp.NewBezier(points...)
	case "spline":
		return warp.NewStandardSpline(points, c.Order)
	case "open":
		return warp.NewUniformOpenSpline(points, c.Order)
	case "closed":
		return warp.NewUniformClosedSpline(points, c.Order)
	default:
		return nil, fmt.Errorf("%w: unknown curve kind %q", errJob, c.Kind)
	}
}

package main

import (
	"image"
	"log"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/warp"
)

// runner executes jobs. It keeps one projector per flag set so that
// repeated runs of a watched job hit the projector's caches.
type runner struct {
	printer *message.Printer

	projector      *warp.Projector
	projectorFlags ProjectorFlags
}

func newRunner(lang language.Tag) *runner {
	return &runner{printer: message.NewPrinter(lang)}
}

// result describes a finished run.
type result struct {
	Input, Output string
	Format        string
	Source        image.Point
	Target        image.Point
	Covered       int
	Elapsed       time.Duration
}

// Run loads the source, applies the job and writes the output.
func (r *runner) Run(job *Job) (result, error) {
	start := time.Now()
	src, format, err := loadImage(job.Input)
	if err != nil {
		return result{}, err
	}
	src = blurImage(src, job.Blur)

	var dst *warp.Pixmap
	if job.Project != nil {
		dst, err = r.project(src, job.Project)
	} else {
		dst, err = r.deform(src, job.Deform)
	}
	if err != nil {
		return result{}, err
	}
	if err := saveImage(job.Output, dst); err != nil {
		return result{}, err
	}

	return result{
		Input:   job.Input,
		Output:  job.Output,
		Format:  format,
		Source:  image.Pt(src.Width(), src.Height()),
		Target:  image.Pt(dst.Width(), dst.Height()),
		Covered: covered(dst),
		Elapsed: time.Since(start),
	}, nil
}

func (r *runner) project(src *warp.Pixmap, pj *ProjectJob) (*warp.Pixmap, error) {
	pp, err := pj.PseudoPerspective()
	if err != nil {
		return nil, err
	}
	if r.projector == nil || r.projectorFlags != pj.ProjectorFlags {
		r.projector = warp.NewProjector(pj.ProjectorFlags.Options()...)
		r.projectorFlags = pj.ProjectorFlags
	}
	size := pj.Size(image.Pt(src.Width(), src.Height()))
	return r.projector.Project(src, size, pj.Quadrilateral(), pp)
}

func (r *runner) deform(src *warp.Pixmap, dj *DeformJob) (*warp.Pixmap, error) {
	d, err := dj.Deformation()
	if err != nil {
		return nil, err
	}
	return d.Deform(src), nil
}

// covered counts pixels with non-zero alpha.
func covered(pm *warp.Pixmap) int {
	n := 0
	for y := range pm.Height() {
		for x := range pm.Width() {
			if pm.ARGBAt(x, y).A() != 0 {
				n++
			}
		}
	}
	return n
}

// Summary formats a result for the log, with locale-aware numbers.
func (r *runner) Summary(res result) string {
	return r.printer.Sprintf("%s (%s, %dx%d) -> %s (%dx%d): %d of %d pixels covered in %v",
		res.Input, res.Format, res.Source.X, res.Source.Y,
		res.Output, res.Target.X, res.Target.Y,
		res.Covered, res.Target.X*res.Target.Y, res.Elapsed.Round(time.Millisecond))
}

// runAndReport runs job and logs its summary or error. It reports whether
// the run succeeded.
func (r *runner) runAndReport(job *Job) bool {
	res, err := r.Run(job)
	if err != nil {
		log.Printf("warp: %v", err)
		return false
	}
	log.Print(r.Summary(res))
	if r.projector != nil && job.Project != nil {
		st := r.projector.Stats()
		warp.Logger().Debug("projector stats",
			"projections", st.Projections,
			"projection_hits", st.ProjectionHits,
			"mask_hits", st.MaskHits)
	}
	return true
}

// Command warp projects an image onto a quadrilateral or deforms it with
// bands, as described by a TOML or YAML job file or by flags.
//
// Usage:
//
//	warp -job job.toml [-watch] [-v]
//	warp -in photo.jpg -out card.png -quad 88,61,247,15,256,345,75,293 [-size 320x360]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/gogpu/warp"
)

func main() {
	var (
		jobPath     = flag.String("job", "", "job file (.toml, .yaml)")
		watchJob    = flag.Bool("watch", false, "rerun the job when the job file or its input changes")
		verbose     = flag.Bool("v", false, "log library diagnostics")
		lang        = flag.String("lang", "en", "language for number formatting in the summary")
		input       = flag.String("in", "", "input image (without -job)")
		output      = flag.String("out", "warp.png", "output image (without -job)")
		quad        = flag.String("quad", "", "target quad as x,y for upper left, upper right, bottom right, bottom left")
		size        = flag.String("size", "", "target size as WxH (default: input size)")
		perspective = flag.String("perspective", "", "pseudo-perspective magnitudes as h,v")
		blurRadius  = flag.Float64("blur", 0, "Gaussian blur radius applied to the input")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	warp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	r := newRunner(language.Make(*lang))

	if *jobPath != "" {
		if *watchJob {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if err := watch(ctx, *jobPath, r); err != nil {
				log.Fatalf("warp: %v", err)
			}
			return
		}
		job, err := LoadJob(*jobPath)
		if err != nil {
			log.Fatalf("warp: %v", err)
		}
		if !r.runAndReport(job) {
			os.Exit(1)
		}
		return
	}

	job, err := jobFromFlags(*input, *output, *quad, *size, *perspective, *blurRadius)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if !r.runAndReport(job) {
		os.Exit(1)
	}
}

var errFlag = errors.New("invalid flag")

// jobFromFlags builds a projection job from command line flags.
func jobFromFlags(input, output, quad, size, perspective string, blurRadius float64) (*Job, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: -in or -job is required", errFlag)
	}
	pj := &ProjectJob{}
	var err error
	if pj.Quad, err = parseQuad(quad); err != nil {
		return nil, err
	}
	if size != "" {
		s, err := parseSize(size)
		if err != nil {
			return nil, err
		}
		pj.Width, pj.Height = s.X, s.Y
	}
	if perspective != "" {
		if pj.Perspective, err = parseFloats(perspective, 2); err != nil {
			return nil, err
		}
	}

	job := &Job{Input: input, Output: output, Blur: blurRadius, Project: pj}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// parseQuad parses eight comma-separated integers.
func parseQuad(s string) ([][2]int, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 8 {
		return nil, fmt.Errorf("%w: -quad needs 8 integers, got %q", errFlag, s)
	}
	quad := make([][2]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: -quad: %w", errFlag, err)
		}
		quad[i/2][i%2] = v
	}
	return quad, nil
}

// parseSize parses WxH.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("%w: -size must be WxH, got %q", errFlag, s)
	}
	x, errW := strconv.Atoi(w)
	y, errH := strconv.Atoi(h)
	if err := errors.Join(errW, errH); err != nil || x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("%w: -size must be positive WxH, got %q", errFlag, s)
	}
	return image.Pt(x, y), nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: want %d numbers, got %q", errFlag, n, s)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errFlag, err)
		}
		out[i] = v
	}
	return out, nil
}

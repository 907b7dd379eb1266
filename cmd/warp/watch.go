package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch runs the job at jobPath, then reruns it whenever the job file or
// its input changes, until ctx is done. The parent directories are watched
// rather than the files so that editors replacing a file are seen.
func watch(ctx context.Context, jobPath string, r *runner) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	jobPath, err = filepath.Abs(jobPath)
	if err != nil {
		return err
	}
	files := map[string]bool{jobPath: true}
	dirs := map[string]bool{}
	track := func(path string) {
		files[path] = true
		dir := filepath.Dir(path)
		if dirs[dir] {
			return
		}
		if err := w.Add(dir); err != nil {
			log.Printf("warp: watch %s: %v", dir, err)
			return
		}
		dirs[dir] = true
	}
	track(jobPath)

	rerun := func() {
		job, err := LoadJob(jobPath)
		if err != nil {
			log.Printf("warp: %v", err)
			return
		}
		if in, err := filepath.Abs(job.Input); err == nil {
			track(in)
		}
		r.runAndReport(job)
	}
	rerun()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Printf("warp: %s changed", ev.Name)
			rerun()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("warp: watch: %v", err)
		}
	}
}

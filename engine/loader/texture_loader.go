package loader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
)

// TextureSpec names one image file to decode.
type TextureSpec struct {
	// Key is the name the decoded texture is returned under.
	Key string
	// Path is the image file.
	Path string
}

func (l *loader) LoadTextures(specs []TextureSpec) (map[string]*material.Texture, error) {
	results := make([]*material.Texture, len(specs))
	errs := make([]error, len(specs))

	// The pool's own Wait blocks until workers idle-exit, so a WaitGroup is the barrier.
	pool := l.workerPool()
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		l.mu.Lock()
		id := l.nextTaskID
		l.nextTaskID++
		l.mu.Unlock()

		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				src := &common.ImageSource{Name: spec.Key, Path: spec.Path}
				img, err := src.Decode()
				if err != nil {
					errs[i] = fmt.Errorf("texture %q: %w", spec.Key, err)
					return nil, errs[i]
				}
				results[i] = material.NewTexture(spec.Key, spec.Path, img)
				return results[i], nil
			},
		})
	}
	wg.Wait()

	out := make(map[string]*material.Texture, len(specs))
	for i, spec := range specs {
		if results[i] != nil {
			out[spec.Key] = results[i]
		}
	}
	return out, errors.Join(errs...)
}

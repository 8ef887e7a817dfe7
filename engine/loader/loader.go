package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/qmuntal/gltf"
)

var (
	// ErrUnsupportedFormat is returned for model files that are neither .gltf nor .glb.
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrNoScene is returned when a document has no scene to instantiate.
	ErrNoScene = errors.New("document has no scene")
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	documentCache map[string]*gltf.Document

	backend      loaderBackend
	decoderPath  string
	dracoDecoder DracoDecoder

	workers    int
	pool       worker.DynamicWorkerPool
	poolOnce   sync.Once
	nextTaskID int
}

// Loader defines the public-facing interface for importing models into scene graph nodes and decoding textures.
//
// Decoded documents are cached by path, but every Load builds a fresh node tree with fresh materials,
// so callers may mutate what they receive.
type Loader interface {
	// Load imports a model file and builds its default scene as a node tree.
	// The backend is selected based on the file extension (.gltf/.glb).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *scene.Node: a group node holding the model's scene
	//   - error: error if loading fails
	Load(path string) (*scene.Node, error)

	// LoadAsync runs Load on a separate goroutine. The returned Future resolves exactly once.
	// Loads cannot be cancelled.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *Future: resolves to the node tree or the failure
	LoadAsync(path string) *Future

	// LoadDocument builds a node tree from an already decoded document.
	//
	// Parameters:
	//   - doc: the glTF document
	//   - baseDir: the directory external image URIs are resolved against
	//
	// Returns:
	//   - *scene.Node: a group node holding the document's scene
	//   - error: error if the document is malformed
	LoadDocument(doc *gltf.Document, baseDir string) (*scene.Node, error)

	// LoadTextures decodes image files in parallel on the loader's worker pool.
	// All specs are attempted; every failure is reported in the joined error.
	//
	// Parameters:
	//   - specs: the images to decode
	//
	// Returns:
	//   - map[string]*material.Texture: successfully decoded textures keyed by spec key
	//   - error: joined decode errors, or nil
	LoadTextures(specs []TextureSpec) (map[string]*material.Texture, error)

	// DecoderPath returns the directory configured for compressed geometry decoders.
	DecoderPath() string
}

var _ Loader = &loader{}

// NewLoader creates a new glTF Loader instance with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		documentCache: make(map[string]*gltf.Document),
		backend:       newGLTFLoaderBackend(),
		dracoDecoder:  NewDracoDecoder(),
		workers:       max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*scene.Node, error) {
	doc, err := l.document(path)
	if err != nil {
		return nil, err
	}

	root, err := l.LoadDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return root, nil
}

func (l *loader) LoadAsync(path string) *Future {
	f := newFuture()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.resolve(Result{Err: fmt.Errorf("panic while loading %s: %v", path, r)})
			}
		}()
		root, err := l.Load(path)
		f.resolve(Result{Root: root, Err: err})
	}()
	return f
}

func (l *loader) LoadDocument(doc *gltf.Document, baseDir string) (*scene.Node, error) {
	if doc == nil {
		return nil, ErrNoScene
	}
	imp := newGLTFImporter(doc, baseDir, l.decoderPath, l.dracoDecoder)
	return imp.Import()
}

func (l *loader) DecoderPath() string {
	return l.decoderPath
}

// document returns the cached document for path, decoding it on first use.
func (l *loader) document(path string) (*gltf.Document, error) {
	l.mu.RLock()
	if cached, ok := l.documentCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	doc, err := backend.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.documentCache[path] = doc
	l.mu.Unlock()

	return doc, nil
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// workerPool lazily starts the pool used for parallel decoding. Workers idle-exit after a second,
// so a viewer that decodes once at startup does not keep goroutines around.
func (l *loader) workerPool() worker.DynamicWorkerPool {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	})
	return l.pool
}

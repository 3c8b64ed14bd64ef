package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// ErrUnsupportedFormat is returned for model files no importer can read.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// DefaultLoadWorkers is the number of concurrent loads when WithWorkers is not used.
const DefaultLoadWorkers = 2

// Progress reports how much of a model file has been read.
type Progress struct {
	Path   string
	Loaded int64
	Total  int64
}

// Fraction returns Loaded/Total clamped to [0, 1]. An unknown total reports 0.
//
// Returns:
//   - float32: the completed fraction
func (p Progress) Fraction() float32 {
	if p.Total <= 0 {
		return 0
	}
	return common.Clamp(float32(p.Loaded)/float32(p.Total), 0, 1)
}

// Result is the outcome of an asynchronous load. Exactly one of Model and Err is set.
type Result struct {
	Path  string
	Model model.Model
	Err   error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	root     string
	workers  int
	importer gltfImporter
	pool     worker.DynamicWorkerPool
	taskID   atomic.Int64

	cache map[string]*model.ImportedModel
}

// Loader imports model files and instances them as scene models.
// Imported data is cached by path; every load returns a fresh model.Model so
// per-instance material and shadow settings never bleed between loads.
type Loader interface {
	// Load imports the file at path (or reuses the cached import) and returns a new model.
	// The format is selected by extension: .gltf and .glb are supported, .fbx and
	// anything else fail with ErrUnsupportedFormat.
	//
	// Parameters:
	//   - ctx: cancels the file read
	//   - path: the model path, relative to the asset root
	//   - opts: options applied to the new model instance
	//
	// Returns:
	//   - model.Model: the new model instance
	//   - error: error if reading or importing fails
	Load(ctx context.Context, path string, opts ...model.ModelBuilderOption) (model.Model, error)

	// LoadAsync runs Load on the loader's worker pool.
	// The progress channel is closed when reading finishes; the result channel
	// receives exactly one Result and is then closed.
	//
	// Parameters:
	//   - ctx: cancels the load
	//   - path: the model path, relative to the asset root
	//   - opts: options applied to the new model instance
	//
	// Returns:
	//   - <-chan Progress: read progress updates
	//   - <-chan Result: the load outcome
	LoadAsync(ctx context.Context, path string, opts ...model.ModelBuilderOption) (<-chan Progress, <-chan Result)

	// Cached reports whether the imported data for path is cached.
	Cached(path string) bool

	// Evict drops the cached import for path.
	Evict(path string)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:  DefaultLoadWorkers,
		importer: newGLTFImporter(),
		cache:    make(map[string]*model.ImportedModel),
	}
	for _, option := range options {
		option(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(ctx context.Context, path string, opts ...model.ModelBuilderOption) (model.Model, error) {
	imported, err := l.importFile(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return model.NewModel(imported, opts...), nil
}

func (l *loader) LoadAsync(ctx context.Context, path string, opts ...model.ModelBuilderOption) (<-chan Progress, <-chan Result) {
	progress := make(chan Progress, 16)
	result := make(chan Result, 1)

	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			defer close(result)

			imported, err := l.importFile(ctx, path, func(p Progress) {
				select {
				case progress <- p:
				default:
					// Consumer is behind; the next update supersedes this one.
				}
			})
			close(progress)

			if err != nil {
				log.Printf("[Loader] failed to load %s: %v", path, err)
				result <- Result{Path: path, Err: err}
				return nil, err
			}
			m := model.NewModel(imported, opts...)
			result <- Result{Path: path, Model: m}
			return m, nil
		},
	})

	return progress, result
}

func (l *loader) Cached(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[path]
	return ok
}

func (l *loader) Evict(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, path)
}

// importFile returns the cached import for path or reads and imports the file.
func (l *loader) importFile(ctx context.Context, path string, onProgress func(Progress)) (*model.ImportedModel, error) {
	if err := resolveFormat(path); err != nil {
		return nil, err
	}

	l.mu.RLock()
	cached, ok := l.cache[path]
	l.mu.RUnlock()
	if ok {
		if onProgress != nil {
			onProgress(Progress{Path: path, Loaded: 1, Total: 1})
		}
		return cached, nil
	}

	fullPath := path
	if l.root != "" {
		fullPath = filepath.Join(l.root, path)
	}

	data, err := readWithProgress(ctx, fullPath, func(loaded, total int64) {
		if onProgress != nil {
			onProgress(Progress{Path: path, Loaded: loaded, Total: total})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	imported, err := l.importer.Import(data, fullPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Loader] loaded %s (%d meshes, %d materials)", path, len(imported.Meshes), len(imported.Materials))

	l.mu.Lock()
	l.cache[path] = imported
	l.mu.Unlock()
	return imported, nil
}

// resolveFormat rejects extensions no importer handles.
func resolveFormat(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// progressReader counts bytes read and aborts once its context is done.
type progressReader struct {
	ctx    context.Context
	r      io.Reader
	loaded int64
	total  int64
	report func(loaded, total int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	if err := pr.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		pr.report(pr.loaded, pr.total)
	}
	return n, err
}

func readWithProgress(ctx context.Context, path string, report func(loaded, total int64)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var total int64
	if info, err := f.Stat(); err == nil {
		total = info.Size()
	}

	return io.ReadAll(&progressReader{ctx: ctx, r: f, total: total, report: report})
}

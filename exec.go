package iconkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/happenhub/iconkit/imop"
	"github.com/happenhub/iconkit/pngcodec"
	"github.com/happenhub/iconkit/utils"
	"github.com/rs/zerolog"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the options of a manifest run.
type Ops struct {
	// Root is the directory relative target paths are resolved against.
	Root string
	// Workers is the number of targets written concurrently.
	Workers int
	// Verify re-reads every written PNG and compares it with the render.
	Verify bool
	Logger zerolog.Logger
	// Progress, if set, is called from the collecting goroutine after each target.
	Progress func(Result)
}

// Result holds the outcome of writing a single target.
type Result struct {
	Target Target
	// Path is the resolved output path.
	Path  string
	Bytes int
	Err   error
}

type job struct {
	index  int
	target Target
}

type indexedResult struct {
	index int
	Result
}

// Execute renders every target of the manifest and writes it below op.Root.
// Each distinct size is rasterized once and shared by all targets of that
// size. The returned results follow the manifest order. Cancelling ctx stops
// handing out new targets; targets never started keep a zero Result.
// A nil op writes relative to the working directory without logging.
func (r *Renderer) Execute(ctx context.Context, m *Manifest, op *Ops) ([]Result, error) {
	if op == nil {
		op = &Ops{Logger: zerolog.Nop()}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}
	workers = utils.Min(workers, len(m.Targets))

	now := time.Now()
	cache := newRenderCache(r)
	jobs := feedTargets(ctx, m.Targets)
	ch := make(chan indexedResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, cache, jobs, ch)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	results := make([]Result, len(m.Targets))
	var errs []error
	for res := range ch {
		results[res.index] = res.Result
		if res.Err != nil {
			errs = append(errs, res.Err)
			op.Logger.Error().Err(res.Err).Str("path", res.Path).Msg("target failed")
		}
		if op.Progress != nil {
			op.Progress(res.Result)
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	op.Logger.Info().
		Int("targets", len(m.Targets)).
		Int("renders", cache.renders()).
		Int("failed", len(errs)).
		Dur("elapsed", time.Since(now)).
		Msg("manifest processed")

	return results, errors.Join(errs...)
}

// feedTargets starts a goroutine sending the targets on the returned channel.
// It stops early when ctx is done.
func feedTargets(ctx context.Context, targets []Target) <-chan job {
	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for i, t := range targets {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, target: t}:
			}
		}
	}()
	return jobs
}

// consumer writes the targets read from jobs and sends the outcome on res.
// It stops taking new targets once ctx is done.
func (op *Ops) consumer(
	ctx context.Context,
	cache *renderCache,
	jobs <-chan job,
	res chan<- indexedResult,
) {
	for j := range jobs {
		if ctx.Err() != nil {
			return
		}
		// Finished targets are always reported.
		res <- indexedResult{index: j.index, Result: op.process(cache, j.target)}
	}
}

// process renders, encodes and writes a single target.
func (op *Ops) process(cache *renderCache, t Target) Result {
	path := t.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(op.Root, path)
	}
	res := Result{Target: t, Path: path}

	img, err := cache.get(t.Size)
	if err != nil {
		res.Err = fmt.Errorf("rendering %s: %w", t.Path, err)
		return res
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, formatOf(path), img); err != nil {
		res.Err = fmt.Errorf("encoding %s: %w", t.Path, err)
		return res
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		res.Err = fmt.Errorf("unable to create the destination directory: %w", err)
		return res
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		res.Err = fmt.Errorf("unable to write the destination file: %w", err)
		return res
	}
	res.Bytes = buf.Len()

	if op.Verify && formatOf(path) == FormatPNG {
		if err := verifyPNG(path, img); err != nil {
			res.Err = fmt.Errorf("verifying %s: %w", t.Path, err)
			return res
		}
	}

	op.Logger.Debug().
		Str("path", path).
		Int("size", t.Size).
		Str("bytes", utils.FormatSize(res.Bytes)).
		Msg("icon written")
	return res
}

// verifyPNG reads back a written icon and checks that it decodes, with
// valid chunk checksums, to the alpha channel of the render.
func verifyPNG(path string, img *imop.Raster) error {
	ctype, err := utils.DetectFileContentType(path)
	if err != nil {
		return err
	}
	if ctype != "image/png" {
		return fmt.Errorf("unexpected content type %q", ctype)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := pngcodec.Decoder{VerifyChecksum: true}
	m, err := dec.Decode(data)
	if err != nil {
		return err
	}
	if m.Width != img.Width || m.Height != img.Height {
		return fmt.Errorf("decoded size %dx%d, want %dx%d", m.Width, m.Height, img.Width, img.Height)
	}

	want, got := img.Alpha(), m.Alpha()
	for y := range want {
		if !bytes.Equal(want[y], got[y]) {
			return fmt.Errorf("alpha channel differs in row %d", y)
		}
	}
	return nil
}

// renderCache rasterizes each size at most once.
type renderCache struct {
	r       *Renderer
	mu      sync.Mutex
	entries map[int]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	img  *imop.Raster
	err  error
}

func newRenderCache(r *Renderer) *renderCache {
	return &renderCache{r: r, entries: make(map[int]*cacheEntry)}
}

func (c *renderCache) get(size int) (*imop.Raster, error) {
	c.mu.Lock()
	e, ok := c.entries[size]
	if !ok {
		e = &cacheEntry{}
		c.entries[size] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.img, e.err = c.r.Render(size)
	})
	return e.img, e.err
}

func (c *renderCache) renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

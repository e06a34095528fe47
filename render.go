package iconkit

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/happenhub/iconkit/imop"
	"github.com/happenhub/iconkit/pngcodec"
	"github.com/happenhub/iconkit/utils"
)

// MaxSize is the largest icon edge Render accepts.
const MaxSize = 8192

// Renderer rasterizes a scene at arbitrary square sizes.
type Renderer struct {
	// Scene is the artwork to render. DefaultScene is used when nil.
	Scene *Scene
	// Workers is the number of goroutines sharing the rows of one render.
	// Values below one mean runtime.NumCPU.
	Workers int
}

// NewRenderer returns a renderer for the default scene.
func NewRenderer() *Renderer {
	return &Renderer{
		Scene:   DefaultScene(),
		Workers: runtime.NumCPU(),
	}
}

// Render rasterizes the scene into a size×size raster. The result depends
// only on size and the scene; the number of workers does not affect it.
func (r *Renderer) Render(size int) (*imop.Raster, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("invalid icon size %d: must be between 1 and %d", size, MaxSize)
	}

	scene := r.Scene
	if scene == nil {
		scene = DefaultScene()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = utils.Min(workers, size)

	ratio := float64(size) / scene.Canvas
	dst := imop.NewRaster(size, size)

	// Rows are independent, so they are handed out to the workers one by one.
	rows := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				shadeRow(scene, dst.Row(y), y, ratio)
			}
		}()
	}
	for y := 0; y < size; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return dst, nil
}

// shadeRow maps every pixel of row y back onto the logical canvas and shades it.
func shadeRow(scene *Scene, row []imop.Color, y int, ratio float64) {
	sy := float64(y) / ratio
	for x := range row {
		row[x] = scene.Shade(Point{X: float64(x) / ratio, Y: sy})
	}
}

// RenderPNG renders the scene at the given size and encodes it as PNG.
func (r *Renderer) RenderPNG(size int) ([]byte, error) {
	img, err := r.Render(size)
	if err != nil {
		return nil, err
	}
	return pngcodec.EncodeBytes(img)
}

// Render rasterizes the default icon with a default renderer.
func Render(size int) (*imop.Raster, error) {
	return NewRenderer().Render(size)
}

// RenderPNG renders the default icon and returns it PNG encoded.
func RenderPNG(size int) ([]byte, error) {
	return NewRenderer().RenderPNG(size)
}

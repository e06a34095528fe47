package iconkit

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"github.com/happenhub/iconkit/imop"
	"github.com/happenhub/iconkit/pngcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PNGHeader(t *testing.T) {
	assert := assert.New(t)

	data, err := RenderPNG(48)
	require.NoError(t, err)

	assert.Equal([]byte("\x89PNG\r\n\x1a\n"), data[:8])
	assert.Equal(uint32(13), binary.BigEndian.Uint32(data[8:12]))
	assert.Equal("IHDR", string(data[12:16]))
	assert.Equal(uint32(48), binary.BigEndian.Uint32(data[16:20]))
	assert.Equal(uint32(48), binary.BigEndian.Uint32(data[20:24]))
	assert.Equal(byte(8), data[24])
	assert.Equal(byte(6), data[25])
}

func TestRender_PNGAlpha(t *testing.T) {
	assert := assert.New(t)

	data, err := RenderPNG(48)
	require.NoError(t, err)

	w, h, alpha, err := pngcodec.DecodeAlpha(data)
	require.NoError(t, err)
	assert.Equal(48, w)
	assert.Equal(48, h)
	assert.Equal(uint8(0), alpha[0][0])

	opaque := 0
	for _, row := range alpha {
		for _, a := range row {
			if a == 255 {
				opaque++
			}
		}
	}
	assert.Greater(opaque, 0)
}

func TestRender_StdlibDecodesOutput(t *testing.T) {
	data, err := RenderPNG(32)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestRender_Deterministic(t *testing.T) {
	assert := assert.New(t)

	a, err := RenderPNG(64)
	require.NoError(t, err)
	b, err := RenderPNG(64)
	require.NoError(t, err)
	assert.Equal(a, b)

	serial := &Renderer{Workers: 1}
	parallel := &Renderer{Workers: 8}
	x, err := serial.Render(64)
	require.NoError(t, err)
	y, err := parallel.Render(64)
	require.NoError(t, err)
	if diff := cmp.Diff(x.Pix, y.Pix); diff != "" {
		t.Errorf("worker count changed the render (-serial +parallel):\n%s", diff)
	}
}

func TestRender_AlphaFollowsSilhouette(t *testing.T) {
	for _, size := range []int{16, 48, 100, 192} {
		img, err := Render(size)
		require.NoError(t, err)

		ratio := float64(size) / CanvasSize
		alpha := img.Alpha()
		mismatches := 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				want := uint8(0)
				if InRoundedSquare(float64(x)/ratio, float64(y)/ratio) {
					want = 255
				}
				if alpha[y][x] != want {
					mismatches++
				}
			}
		}
		assert.Zerof(t, mismatches, "size %d", size)
	}
}

func TestRender_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, MaxSize + 1} {
		_, err := Render(size)
		assert.Errorf(t, err, "size %d", size)
	}
}

func TestRender_SingleRowAndColumn(t *testing.T) {
	assert := assert.New(t)

	img, err := Render(1)
	require.NoError(t, err)
	assert.Equal(1, img.Width)
	assert.Equal(1, img.Height)
	// The only sample is the logical origin, outside the silhouette.
	assert.Equal(uint8(0), img.Alpha()[0][0])
}

func TestRender_DownscaledMatchesSmallRender(t *testing.T) {
	large, err := Render(256)
	require.NoError(t, err)
	small, err := Render(64)
	require.NoError(t, err)

	resized := imaging.Resize(large, 64, 64, imaging.Box)
	want := small.Alpha()

	mismatches := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			inside := resized.NRGBAAt(x, y).A >= 128
			if inside != (want[y][x] == 255) {
				mismatches++
			}
		}
	}
	assert.Less(t, mismatches, 64*64/10)
}

func TestRender_CustomScene(t *testing.T) {
	assert := assert.New(t)
	r := &Renderer{
		Scene: &Scene{
			Canvas: 10,
			Layers: []Layer{Fill{
				Rect:   Rect{X0: 0, Y0: 0, X1: 4, Y1: 9},
				Colors: []imop.Color{{R: 255, A: 255}},
			}},
		},
		Workers: 2,
	}

	img, err := r.Render(10)
	require.NoError(t, err)
	assert.Equal(uint8(255), img.Alpha()[3][4])
	assert.Equal(uint8(0), img.Alpha()[3][5])
}

func TestRender_GoldenPixels(t *testing.T) {
	img, err := Render(256)
	require.NoError(t, err)
	nrgba := img.NRGBA()

	testCases := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"outside", 0, 0, color.NRGBA{0, 0, 0, 0}},
		{"backdrop", 30, 128, color.NRGBA{31, 30, 57, 255}},
		{"glow and halo", 128, 190, color.NRGBA{43, 46, 78, 255}},
		{"ring", 128, 59, color.NRGBA{90, 166, 188, 255}},
		{"top arc", 140, 101, color.NRGBA{58, 92, 120, 255}},
		{"bottom arc", 75, 172, color.NRGBA{96, 158, 199, 255}},
		{"left bar", 96, 100, color.NRGBA{94, 233, 226, 255}},
		{"right bar", 180, 100, color.NRGBA{151, 143, 255, 255}},
		{"right bridge", 160, 125, color.NRGBA{154, 147, 255, 255}},
		{"connector", 142, 147, color.NRGBA{45, 75, 93, 255}},
		{"accent core", 162, 162, color.NRGBA{102, 170, 240, 255}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nrgba.NRGBAAt(tc.x, tc.y))
		})
	}
}

func TestRender_GoldenDigest(t *testing.T) {
	testCases := []struct {
		size int
		want string
	}{
		{48, "78e18b4f4bdfea17a796d4f81d4864375ae2a671b3b09cc9f1d830d4ea479635"},
		{192, "94972b6c526afb8773e8bce6dda0a2b75aef8136abba26dd73db28dff321e931"},
	}
	for _, tc := range testCases {
		img, err := Render(tc.size)
		require.NoError(t, err)

		// Digest of the quantized RGBA samples, row after row.
		sum := sha256.Sum256(img.NRGBA().Pix)
		assert.Equalf(t, tc.want, hex.EncodeToString(sum[:]), "size %d", tc.size)
	}
}

func BenchmarkRender(b *testing.B) {
	r := NewRenderer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Render(256); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderPNG(b *testing.B) {
	r := NewRenderer()
	for i := 0; i < b.N; i++ {
		if _, err := r.RenderPNG(192); err != nil {
			b.Fatal(err)
		}
	}
}

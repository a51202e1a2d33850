package gradient

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/subpixel-edges-mcp/internal/subpix"
)

// Intensity conversion modes.
const (
	LuminanceLuma      = "luma"
	LuminanceBild      = "bild"
	LuminanceLightness = "lightness"
)

// MaxSigma bounds the smoothing sigma. Both blur backends size their kernel
// from 3*sigma.
const MaxSigma = 100

// Smoothing backends.
const (
	SmootherImaging = "imaging"
	SmootherBild    = "bild"
	SmootherNone    = "none"
)

var (
	// ErrEmptyImage is returned for an image with zero width or height.
	ErrEmptyImage = errors.New("gradient: empty image")

	// ErrInvalidSigma is returned for a smoothing sigma that is NaN, negative
	// or above MaxSigma.
	ErrInvalidSigma = errors.New("gradient: invalid sigma")

	// ErrUnknownSmoother is returned for an unrecognised Options.Smoother.
	ErrUnknownSmoother = errors.New("gradient: unknown smoother")

	// ErrUnknownLuminance is returned for an unrecognised Options.Luminance.
	ErrUnknownLuminance = errors.New("gradient: unknown luminance mode")
)

// Options controls how an image becomes a gradient field. Empty strings
// select the defaults, "luma" and "imaging".
type Options struct {
	// Sigma is the Gaussian standard deviation in pixels. 0 disables smoothing.
	Sigma float64

	// Smoother is one of SmootherImaging, SmootherBild or SmootherNone.
	Smoother string

	// Luminance is one of LuminanceLuma, LuminanceBild or LuminanceLightness.
	Luminance string
}

// DefaultOptions returns sigma 1 with luma intensity and the imaging smoother.
func DefaultOptions() Options {
	return Options{Sigma: 1, Smoother: SmootherImaging, Luminance: LuminanceLuma}
}

// Validate reports whether the options name a known pipeline.
func (o Options) Validate() error {
	if math.IsNaN(o.Sigma) || o.Sigma < 0 || o.Sigma > MaxSigma {
		return fmt.Errorf("sigma %g outside [0, %d]: %w", o.Sigma, MaxSigma, ErrInvalidSigma)
	}
	switch o.Smoother {
	case "", SmootherImaging, SmootherBild, SmootherNone:
	default:
		return fmt.Errorf("%q: %w", o.Smoother, ErrUnknownSmoother)
	}
	switch o.Luminance {
	case "", LuminanceLuma, LuminanceBild, LuminanceLightness:
	default:
		return fmt.Errorf("%q: %w", o.Luminance, ErrUnknownLuminance)
	}
	return nil
}

// Sobel kernels, indexed [ky+1][kx+1].
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelScale normalises the kernel weights so a step of height s yields s.
const sobelScale = 0.25

// Compute converts img to intensity, smooths it and returns its Sobel
// gradient field.
//
// Returns:
//   - *subpix.GradientField: 0-based grids the size of img.Bounds().
//   - error: ErrEmptyImage, ErrInvalidSigma, ErrUnknownSmoother or
//     ErrUnknownLuminance, wrapped with context.
func Compute(img image.Image, opts Options) (*subpix.GradientField, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gray := intensity(img, opts.Luminance)
	smoothed := smooth(gray, opts.Smoother, opts.Sigma)

	plane, width, height := samples(smoothed)
	gx, gy := sobel(plane, width, height)
	return subpix.NewGradientField(gx, gy)
}

// intensity reduces img to a single channel. The result's Min may be non-zero.
func intensity(img image.Image, mode string) image.Image {
	switch mode {
	case LuminanceBild:
		return effect.Grayscale(img)
	case LuminanceLightness:
		return lightness(img)
	default:
		return imaging.Grayscale(img)
	}
}

// lightness maps every pixel to its CIE L* (D65) scaled to 0..255. Fully
// transparent pixels become black.
func lightness(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			dst.SetGray(x, y, color.Gray{Y: uint8(math.Round(clampUnit(l) * 255))})
		}
	}
	return dst
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func smooth(img image.Image, smoother string, sigma float64) image.Image {
	if sigma == 0 {
		return img
	}
	switch smoother {
	case SmootherNone:
		return img
	case SmootherBild:
		return blur.Gaussian(img, sigma)
	default:
		return imaging.Blur(img, sigma)
	}
}

// samples reads the first channel of img into a row-major plane. Alpha
// premultiplied RGBA, as produced by bild, is unpremultiplied first so every
// smoother yields the same intensity scale.
func samples(img image.Image) ([]float64, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := make([]float64, w*h)

	switch m := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+w]
			for x, v := range row {
				plane[y*w+x] = float64(v)
			}
		}
	case *image.NRGBA:
		readStrided(plane, m.Pix, m.Stride, w, h)
	case *image.RGBA:
		n := imaging.Clone(m)
		readStrided(plane, n.Pix, n.Stride, w, h)
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				plane[y*w+x] = float64(g.Y)
			}
		}
	}
	return plane, w, h
}

func readStrided(plane []float64, pix []uint8, stride, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = float64(pix[y*stride+4*x])
		}
	}
}

// sobel applies both Sobel kernels with replicated borders.
func sobel(plane []float64, width, height int) (*subpix.Grid, *subpix.Grid) {
	gx := subpix.NewGrid(width, height)
	gy := subpix.NewGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sx, sy float64
			for ky := -1; ky <= 1; ky++ {
				py := clamp(y+ky, 0, height-1)
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, width-1)
					v := plane[py*width+px]
					sx += v * sobelX[ky+1][kx+1]
					sy += v * sobelY[ky+1][kx+1]
				}
			}
			gx.Set(x, y, sobelScale*sx)
			gy.Set(x, y, sobelScale*sy)
		}
	}
	return gx, gy
}

// clamp constrains val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

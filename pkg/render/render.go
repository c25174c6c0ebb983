// Package render converts a sampled slice into a displayable image. It
// applies opacity masking or colormix blending against an optional
// background plane, overlays mesh-intersection segments, and encodes the
// result as JPEG. The sampler never draws; all display concerns live
// here.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"strings"

	"github.com/egarza1996/fieldtrip/pkg/mesh"
	"github.com/egarza1996/fieldtrip/pkg/slicer"
)

// ErrInvalidMaskStyle indicates an unrecognized mask style name.
var ErrInvalidMaskStyle = errors.New("invalid mask style")

// MaskStyle selects how a mask plane combines data with the background.
type MaskStyle int

const (
	// MaskOpacity uses the mask as a per-sample alpha between data and
	// background intensity.
	MaskOpacity MaskStyle = iota

	// MaskColormix maps data through the colormap and fades toward the
	// background where the mask is low. Requires a background plane.
	MaskColormix
)

// ParseMaskStyle converts a style name ("opacity", "colormix") into a
// MaskStyle value.
func ParseMaskStyle(s string) (MaskStyle, error) {
	switch strings.ToLower(s) {
	case "opacity":
		return MaskOpacity, nil
	case "colormix":
		return MaskColormix, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaskStyle, s)
	}
}

// Options configures a renderer. Zero values select grayscale opacity
// rendering at one pixel per sample with JPEG quality 90.
type Options struct {
	MaskStyle MaskStyle
	Colormap  string // "gray" (default) or "hot"
	Scale     int    // pixels per sample cell
	Quality   int    // JPEG quality
}

// Renderer draws sampled slices.
type Renderer struct {
	maskStyle MaskStyle
	colormap  func(float64) color.RGBA
	scale     int
	quality   int
}

// NewRenderer creates a renderer from options.
func NewRenderer(opts Options) (*Renderer, error) {
	cmap, err := parseColormap(opts.Colormap)
	if err != nil {
		return nil, err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = 90
	}

	return &Renderer{
		maskStyle: opts.MaskStyle,
		colormap:  cmap,
		scale:     scale,
		quality:   quality,
	}, nil
}

func parseColormap(name string) (func(float64) color.RGBA, error) {
	switch strings.ToLower(name) {
	case "", "gray":
		return grayColormap, nil
	case "hot":
		return hotColormap, nil
	default:
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
}

// grayColormap maps a normalized value to a gray level.
func grayColormap(v float64) color.RGBA {
	g := clamp8(v * 255)
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

// hotColormap ramps black through red and yellow to white.
func hotColormap(v float64) color.RGBA {
	return color.RGBA{
		R: clamp8(v * 3 * 255),
		G: clamp8((v - 1.0/3) * 3 * 255),
		B: clamp8((v - 2.0/3) * 3 * 255),
		A: 255,
	}
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

// Render draws the sampled slice as an RGBA image, one scale-by-scale
// pixel block per sample cell, and overlays the given mesh-intersection
// segments.
func (r *Renderer) Render(res *slicer.Result, segments []mesh.Segment) (image.Image, error) {
	if res == nil || res.Empty() {
		return nil, fmt.Errorf("slice is empty, nothing to draw")
	}
	if r.maskStyle == MaskColormix && res.Background == nil {
		return nil, fmt.Errorf("colormix masking requires a background plane")
	}

	values := res.Values
	norm := normalizer(values)

	var bgNorm func(float64) float64
	if res.Background != nil {
		bgNorm = normalizer(res.Background)
	}

	img := image.NewRGBA(image.Rect(0, 0, values.NX*r.scale, values.NY*r.scale))
	for j := 0; j < values.NY; j++ {
		for i := 0; i < values.NX; i++ {
			c := r.samplePixel(res, norm, bgNorm, i, j)
			r.fillCell(img, i, j, c)
		}
	}

	if len(segments) > 0 {
		r.drawSegments(img, res, segments)
	}
	return img, nil
}

// samplePixel blends one sample with its mask and background according
// to the mask style. NaN samples come out black.
func (r *Renderer) samplePixel(res *slicer.Result, norm, bgNorm func(float64) float64, i, j int) color.RGBA {
	v := res.Values.At(i, j, 0)
	if math.IsNaN(v) {
		return color.RGBA{A: 255}
	}
	d := norm(v)

	alpha := 1.0
	if res.Mask != nil {
		alpha = res.Mask.At(i, j, 0)
		if math.IsNaN(alpha) {
			alpha = 0
		}
		alpha = math.Max(0, math.Min(1, alpha))
	}

	bg := 0.0
	if res.Background != nil {
		b := res.Background.At(i, j, 0)
		if !math.IsNaN(b) {
			bg = bgNorm(b)
		}
	}

	switch r.maskStyle {
	case MaskColormix:
		fg := r.colormap(d)
		bgLevel := clamp8(bg * 255)
		return color.RGBA{
			R: mix8(fg.R, bgLevel, alpha),
			G: mix8(fg.G, bgLevel, alpha),
			B: mix8(fg.B, bgLevel, alpha),
			A: 255,
		}
	default:
		return r.colormap(alpha*d + (1-alpha)*bg)
	}
}

func mix8(fg, bg uint8, alpha float64) uint8 {
	return clamp8(alpha*float64(fg) + (1-alpha)*float64(bg))
}

// normalizer returns a function scaling the plane's finite values to
// [0, 1] by their observed range.
func normalizer(p *slicer.Plane) func(float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range p.Data {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if !(hi > lo) {
		return func(float64) float64 { return 0.5 }
	}
	return func(v float64) float64 { return (v - lo) / (hi - lo) }
}

func (r *Renderer) fillCell(img *image.RGBA, i, j int, c color.RGBA) {
	for dy := 0; dy < r.scale; dy++ {
		for dx := 0; dx < r.scale; dx++ {
			img.SetRGBA(i*r.scale+dx, j*r.scale+dy, c)
		}
	}
}

// drawSegments projects world-space segments into plane coordinates and
// rasterizes them on top of the slice.
func (r *Renderer) drawSegments(img *image.RGBA, res *slicer.Result, segments []mesh.Segment) {
	line := color.RGBA{R: 255, G: 255, A: 255}
	resol := res.Geometry.Resolution

	toPixel := func(u, v float64) (float64, float64) {
		return (u - res.EdgeX[0]) / resol * float64(r.scale),
			(v - res.EdgeY[0]) / resol * float64(r.scale)
	}

	for _, seg := range segments {
		ua, va := res.Geometry.ProjectToPlane(seg.A)
		ub, vb := res.Geometry.ProjectToPlane(seg.B)
		xa, ya := toPixel(ua, va)
		xb, yb := toPixel(ub, vb)

		steps := int(math.Max(math.Abs(xb-xa), math.Abs(yb-ya))) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			x := int(math.Round(xa + t*(xb-xa)))
			y := int(math.Round(ya + t*(yb-ya)))
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, line)
			}
		}
	}
}

// SaveJPEG writes an image as a JPEG file.
func (r *Renderer) SaveJPEG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: r.quality})
}

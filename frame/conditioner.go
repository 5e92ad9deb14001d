// Package frame conditions slide images for encoding: every resolved slide is
// resampled onto a canvas of exactly the output resolution, scaled uniformly
// so nothing is cropped and padded with a solid background where the aspect
// ratios differ.
package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"slidecast/types"
)

// ConditionedFrame is a slide image normalized to the output canvas. Frames
// live for one generation request only; source uploads are ephemeral, so
// nothing is cached across requests.
type ConditionedFrame struct {
	SourceIdentifier string
	Path             string
	Width            int
	Height           int
}

// Conditioner produces frames at a fixed target resolution.
type Conditioner struct {
	Width  int
	Height int

	// Background fills the padded area. Nil means black.
	Background color.Color

	// Enhance applies a light sharpen after resize. Off leaves the frame
	// byte-identical to the plain resize.
	Enhance bool

	// UpscaleLimit is the scale factor above which a quality warning is
	// attached. Zero means the default of 2.0.
	UpscaleLimit float64
}

// Low-resolution warning threshold, matching the service's long-standing
// quality check.
const (
	minSourceWidth  = 800
	minSourceHeight = 600
)

// Condition renders the asset onto the target canvas and writes the result as
// a PNG into destDir. Quality findings come back as warnings; only a blank
// (fully uniform) source is an error.
func (c *Conditioner) Condition(asset types.SlideAsset, destDir string) (*ConditionedFrame, []types.Warning, error) {
	src, err := decodeImage(asset.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode slide %s: %w", asset.Identifier, err)
	}

	if isUniform(src) {
		return nil, nil, &BlankImageError{Asset: asset.Identifier}
	}

	var warnings []types.Warning
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()

	if sw < minSourceWidth || sh < minSourceHeight {
		warnings = append(warnings, types.Warning{
			Asset:   asset.Identifier,
			Message: fmt.Sprintf("low source resolution %dx%d", sw, sh),
		})
	}

	scale := fitScale(sw, sh, c.Width, c.Height)
	limit := c.UpscaleLimit
	if limit <= 0 {
		limit = 2.0
	}
	if scale > limit {
		warnings = append(warnings, types.Warning{
			Asset:   asset.Identifier,
			Message: fmt.Sprintf("upscaled %.2fx, above the %.2fx quality ceiling", scale, limit),
		})
	}

	dst := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	bg := c.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	tw := int(float64(sw) * scale)
	th := int(float64(sh) * scale)
	x0 := (c.Width - tw) / 2
	y0 := (c.Height - th) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), src, bounds, xdraw.Over, nil)

	if c.Enhance {
		dst = sharpen(dst)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, nil, err
	}
	out := filepath.Join(destDir, frameName(asset.Identifier))
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return nil, nil, fmt.Errorf("failed to encode frame for %s: %w", asset.Identifier, err)
	}

	return &ConditionedFrame{
		SourceIdentifier: asset.Identifier,
		Path:             out,
		Width:            c.Width,
		Height:           c.Height,
	}, warnings, nil
}

// fitScale returns the uniform factor that fits src entirely inside the target
// box. The same factor applies to both axes, so content is never cropped.
func fitScale(sw, sh, tw, th int) float64 {
	sx := float64(tw) / float64(sw)
	sy := float64(th) / float64(sh)
	if sx < sy {
		return sx
	}
	return sy
}

// isUniform reports whether every pixel matches the first one. Real slides
// bail out within a few pixels; a uniform result signals a corrupt or
// placeholder source.
func isUniform(img image.Image) bool {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return true
	}
	r0, g0, b0, a0 := img.At(b.Min.X, b.Min.Y).RGBA()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := img.At(x, y).RGBA()
			if r != r0 || g != g0 || bb != b0 || a != a0 {
				return false
			}
		}
	}
	return true
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func frameName(identifier string) string {
	base := filepath.Base(identifier)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)] + "_frame.png"
}

package ui

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/cornish/textivus-minimap/minimap"
)

// SliderState selects how the viewport slider is drawn over the minimap.
type SliderState int

const (
	SliderHidden SliderState = iota
	SliderVisible
	SliderActive // Hovered or dragged
)

// Compose flattens a frame into one opaque image: the line surface, the
// decoration layer over it and then the slider.
func Compose(f *minimap.Frame, slider SliderState) *image.RGBA {
	if f == nil || f.Image == nil {
		return nil
	}
	b := f.Image.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), f.Image, b.Min, draw.Src)
	if f.Decorations != nil {
		draw.Draw(out, out.Bounds(), f.Decorations, f.Decorations.Bounds().Min, draw.Over)
	}
	if r, ok := SliderRect(f, out.Bounds()); ok && slider != SliderHidden {
		c := f.Options.SliderColor
		if slider == SliderActive {
			c = f.Options.SliderActiveColor
		}
		draw.Draw(out, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
	}
	return out
}

// SliderRect returns the slider in canvas pixels, clipped to bounds.
func SliderRect(f *minimap.Frame, bounds image.Rectangle) (image.Rectangle, bool) {
	if f == nil || f.Layout == nil || f.Options == nil {
		return image.Rectangle{}, false
	}
	ratio := f.Options.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	top := int(math.Floor(f.Layout.SliderTop * ratio))
	height := max(1, int(math.Floor(float64(f.Layout.SliderHeight)*ratio)))
	r := image.Rect(bounds.Min.X, bounds.Min.Y+top, bounds.Max.X, bounds.Min.Y+top+height).Intersect(bounds)
	return r, !r.Empty()
}

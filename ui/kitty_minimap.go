package ui

import (
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/cornish/textivus-minimap/minimap"
)

// KittyImage transmits minimap frames with the Kitty graphics protocol.
//
// Kitty graphics protocol reference:
// https://sw.kovidgoyal.net/kitty/graphics-protocol/
//
// The image is sent at its canvas resolution and the terminal scales it
// into the cell area given by c= and r=.
type KittyImage struct {
	id uint32
}

// NewKittyImage creates an encoder for the image with the given id.
// Sending a new image with the same id replaces the previous one.
func NewKittyImage(id uint32) *KittyImage {
	return &KittyImage{id: id}
}

// kittyChunkSize is the largest base64 payload per escape sequence.
const kittyChunkSize = 4096

// Encode creates the escape sequence that transmits and displays img
// over cols x rows cells at the cursor.
// Format: \033_G<control>;base64data\033\\
func (k *KittyImage) Encode(img *image.RGBA, cols, rows int) string {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := img.Pix
	if img.Stride != 4*w || len(pixels) != 4*w*h {
		pixels = make([]byte, 0, 4*w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := img.PixOffset(b.Min.X, y)
			pixels = append(pixels, img.Pix[i:i+4*w]...)
		}
	}
	data := base64.StdEncoding.EncodeToString(pixels)

	// a=T: transmit and display
	// f=32: RGBA format (4 bytes per pixel)
	// s=width, v=height: pixel dimensions
	// c=cols, r=rows: cell dimensions to occupy
	// i=id: image ID for updates
	// q=2: suppress response
	control := fmt.Sprintf("a=T,f=32,s=%d,v=%d,c=%d,r=%d,i=%d,q=2", w, h, cols, rows, k.id)

	var sb strings.Builder
	if len(data) <= kittyChunkSize {
		fmt.Fprintf(&sb, "\033_G%s;%s\033\\", control, data)
		return sb.String()
	}
	for i := 0; i < len(data); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(data))
		chunk := data[i:end]
		switch {
		case i == 0:
			fmt.Fprintf(&sb, "\033_G%s,m=1;%s\033\\", control, chunk)
		case end == len(data):
			fmt.Fprintf(&sb, "\033_Gm=0;%s\033\\", chunk)
		default:
			fmt.Fprintf(&sb, "\033_Gm=1;%s\033\\", chunk)
		}
	}
	return sb.String()
}

// Place wraps Encode with cursor movement to the 0-based cell x, y, saving
// and restoring the cursor around it.
func (k *KittyImage) Place(img *image.RGBA, x, y, cols, rows int) string {
	var sb strings.Builder
	sb.WriteString("\033[s")
	fmt.Fprintf(&sb, "\033[%d;%dH", y+1, x+1)
	sb.WriteString(k.Encode(img, cols, rows))
	sb.WriteString("\033[u")
	return sb.String()
}

// Clear returns the sequence that deletes the image.
func (k *KittyImage) Clear() string {
	return fmt.Sprintf("\033_Ga=d,d=i,i=%d\033\\", k.id)
}

// minimapImageID is the fixed id of the minimap image.
const minimapImageID = 1001

// MinimapView presents minimap frames in the terminal, as a Kitty image
// when the terminal supports it and as braille otherwise.
type MinimapView struct {
	useKitty bool
	kitty    *KittyImage
	braille  *BrailleRenderer
}

// NewMinimapView creates a minimap presenter.
func NewMinimapView(styles Styles, useKitty bool) *MinimapView {
	return &MinimapView{
		useKitty: useKitty,
		kitty:    NewKittyImage(minimapImageID),
		braille:  NewBrailleRenderer(styles),
	}
}

// SetStyles updates the styles for runtime theme changes.
func (v *MinimapView) SetStyles(styles Styles) {
	v.braille.SetStyles(styles)
}

// UseKitty returns whether Kitty graphics are in use.
func (v *MinimapView) UseKitty() bool { return v.useKitty }

// MinimapOutput is one presented frame: the cell rows of the minimap
// column and, for Kitty, the graphics sequence drawn over them.
type MinimapOutput struct {
	Rows     []string
	Graphics string
}

// Render presents f in the cols x rows cell area whose top left cell is
// x, y.
func (v *MinimapView) Render(f *minimap.Frame, x, y, cols, rows int, slider SliderState) MinimapOutput {
	if !v.useKitty {
		return MinimapOutput{Rows: v.braille.Render(f, cols, rows, slider)}
	}
	out := MinimapOutput{Rows: make([]string, rows)}
	for i := range out.Rows {
		out.Rows[i] = strings.Repeat(" ", max(cols, 0))
	}
	if img := Compose(f, slider); img != nil && cols > 0 && rows > 0 {
		out.Graphics = v.kitty.Place(img, x, y, cols, rows)
	}
	return out
}

// Clear returns the sequence that removes anything the view left on
// screen.
func (v *MinimapView) Clear() string {
	if !v.useKitty {
		return ""
	}
	return v.kitty.Clear()
}

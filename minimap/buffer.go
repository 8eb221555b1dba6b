package minimap

import "image"

// bufferPair alternates between two equally sized images. The image handed
// out by next is always the one not backing the previous frame.
type bufferPair struct {
	fill     []byte
	buffers  [2]*image.RGBA
	lastUsed int
}

// newBufferPair returns nil for a zero-area canvas.
func newBufferPair(width, height int, background RGBA8) *bufferPair {
	if width <= 0 || height <= 0 {
		return nil
	}
	p := &bufferPair{fill: backgroundFill(width, height, background)}
	for i := range p.buffers {
		p.buffers[i] = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return p
}

// next flips to the other buffer and resets it to the background.
func (p *bufferPair) next() *image.RGBA {
	p.lastUsed = 1 - p.lastUsed
	img := p.buffers[p.lastUsed]
	copy(img.Pix, p.fill)
	return img
}

func backgroundFill(width, height int, c RGBA8) []byte {
	// image.RGBA stores premultiplied values
	a := uint32(c.A)
	px := [4]byte{
		byte(uint32(c.R) * a / 255),
		byte(uint32(c.G) * a / 255),
		byte(uint32(c.B) * a / 255),
		c.A,
	}
	fill := make([]byte, width*height*4)
	for i := 0; i < len(fill); i += 4 {
		copy(fill[i:i+4], px[:])
	}
	return fill
}

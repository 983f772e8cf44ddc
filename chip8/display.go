package chip8

const (
	DisplayW = 64
	DisplayH = 32
)

// Display is the 64x32 monochrome frame buffer. Every pixel is stored in its own byte as 0 or 1.
type Display struct {
	pixels [DisplayW * DisplayH]uint8
}

func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = 0
	}
}

// Pixel reports whether the pixel at x, y is set. Coordinates outside the display are unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= DisplayW || y >= DisplayH {
		return false
	}
	return d.pixels[y*DisplayW+x] != 0
}

// Pixels returns a copy of the frame buffer in row major order.
func (d *Display) Pixels() []uint8 {
	p := make([]uint8, len(d.pixels))
	copy(p, d.pixels[:])
	return p
}

// DrawSprite xors an 8 pixel wide sprite into the buffer, one byte per row, MSB leftmost.
// The origin wraps around the display. Pixels past the right or bottom edge are clipped,
// or wrapped around when wrap is set. It reports whether any set pixel was cleared.
func (d *Display) DrawSprite(x, y uint8, sprite []uint8, wrap bool) bool {
	ox := int(x) % DisplayW
	oy := int(y) % DisplayH

	flipped := false
	for iy, row := range sprite {
		ty := oy + iy
		if ty >= DisplayH {
			if !wrap {
				break
			}
			ty %= DisplayH
		}

		for ix := 0; ix < 8; ix++ {
			tx := ox + ix
			if tx >= DisplayW {
				if !wrap {
					break
				}
				tx %= DisplayW
			}

			s := (row >> (7 - ix)) & 0x01
			if s == 0 {
				continue
			}
			p := &d.pixels[ty*DisplayW+tx]
			if *p == 1 {
				flipped = true
			}
			*p ^= 1
		}
	}
	return flipped
}

package raster

// 2D drawing primitives for the immediate-mode UI surface: filled
// rectangles and bitmap text in a built-in 5x7 pixel font.

// Glyph metrics: each character cell is 5 pixels wide and 7 tall,
// advanced by 6 (one column of spacing).
const (
	glyphWidth   = 5
	glyphHeight  = 7
	glyphAdvance = 6
)

// DrawRect fills a rectangle at (x, y), clipped to the buffer.
func DrawRect(buf []uint32, width, height int, x, y, w, h int, color uint32) {
	for dy := 0; dy < h; dy++ {
		py := y + dy
		if py < 0 || py >= height {
			continue
		}
		for dx := 0; dx < w; dx++ {
			px := x + dx
			if px < 0 || px >= width {
				continue
			}
			buf[py*width+px] = color
		}
	}
}

// DrawText renders text at (x, y) in the built-in font, clipped to
// the buffer. Characters without a glyph render as a filled box.
func DrawText(buf []uint32, width, height int, x, y int, text string, color uint32) {
	cx := x
	for _, ch := range text {
		glyph := glyphFor(ch)
		for row := 0; row < glyphHeight; row++ {
			py := y + row
			if py < 0 || py >= height {
				continue
			}
			for col := 0; col < glyphWidth; col++ {
				if glyph[row]&(1<<(glyphWidth-1-col)) == 0 {
					continue
				}
				px := cx + col
				if px < 0 || px >= width {
					continue
				}
				buf[py*width+px] = color
			}
		}
		cx += glyphAdvance
	}
}

// glyphFor returns the 5x7 bitmap for ch, one byte per row with the
// leftmost pixel in bit 4. The set covers the calculator-style subset
// the demo programs draw with; anything else gets the box glyph.
func glyphFor(ch rune) [7]uint8 {
	switch ch {
	case '0':
		return [7]uint8{0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110}
	case '1':
		return [7]uint8{0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110}
	case '2':
		return [7]uint8{0b01110, 0b10001, 0b00001, 0b00110, 0b01000, 0b10000, 0b11111}
	case '3':
		return [7]uint8{0b01110, 0b10001, 0b00001, 0b00110, 0b00001, 0b10001, 0b01110}
	case '4':
		return [7]uint8{0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010}
	case '5':
		return [7]uint8{0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110}
	case '6':
		return [7]uint8{0b01110, 0b10000, 0b11110, 0b10001, 0b10001, 0b10001, 0b01110}
	case '7':
		return [7]uint8{0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000}
	case '8':
		return [7]uint8{0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110}
	case '9':
		return [7]uint8{0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00001, 0b01110}
	case '+':
		return [7]uint8{0b00000, 0b00100, 0b00100, 0b11111, 0b00100, 0b00100, 0b00000}
	case '-':
		return [7]uint8{0b00000, 0b00000, 0b00000, 0b11111, 0b00000, 0b00000, 0b00000}
	case '*':
		return [7]uint8{0b00000, 0b10101, 0b01110, 0b11111, 0b01110, 0b10101, 0b00000}
	case '/':
		return [7]uint8{0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b00000, 0b00000}
	case '=':
		return [7]uint8{0b00000, 0b00000, 0b11111, 0b00000, 0b11111, 0b00000, 0b00000}
	case '.':
		return [7]uint8{0b00000, 0b00000, 0b00000, 0b00000, 0b00000, 0b01100, 0b01100}
	case ' ':
		return [7]uint8{0b00000, 0b00000, 0b00000, 0b00000, 0b00000, 0b00000, 0b00000}
	case 'C':
		return [7]uint8{0b01110, 0b10001, 0b10000, 0b10000, 0b10000, 0b10001, 0b01110}
	case 'E':
		return [7]uint8{0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111}
	case 'R':
		return [7]uint8{0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001}
	case 'K':
		return [7]uint8{0b10001, 0b10010, 0b10100, 0b11000, 0b10100, 0b10010, 0b10001}
	case 'n':
		return [7]uint8{0b00000, 0b00000, 0b10110, 0b11001, 0b10001, 0b10001, 0b10001}
	case 'o':
		return [7]uint8{0b00000, 0b00000, 0b01110, 0b10001, 0b10001, 0b10001, 0b01110}
	case 't':
		return [7]uint8{0b01000, 0b01000, 0b11100, 0b01000, 0b01000, 0b01001, 0b00110}
	case 'e':
		return [7]uint8{0b00000, 0b00000, 0b01110, 0b10001, 0b11111, 0b10000, 0b01110}
	case 'a':
		return [7]uint8{0b00000, 0b00000, 0b01110, 0b00001, 0b01111, 0b10001, 0b01111}
	case 'l':
		return [7]uint8{0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110}
	case 'c':
		return [7]uint8{0b00000, 0b00000, 0b01110, 0b10000, 0b10000, 0b10001, 0b01110}
	case 'u':
		return [7]uint8{0b00000, 0b00000, 0b10001, 0b10001, 0b10001, 0b10011, 0b01101}
	case 'r':
		return [7]uint8{0b00000, 0b00000, 0b10110, 0b11001, 0b10000, 0b10000, 0b10000}
	default:
		return [7]uint8{0b11111, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11111}
	}
}

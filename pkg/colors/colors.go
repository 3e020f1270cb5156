package colors

import (
	"hash/crc32"
	"image/color"
	"strconv"
	"strings"
)

// Severity / zone palette used when a widget has no explicit color
// configured.
var (
	Neutral = color.RGBA{0x9E, 0x9E, 0x9E, 0xFF}
	Green   = color.RGBA{0x2C, 0xA5, 0x00, 0xFF}
	Amber   = color.RGBA{0xFF, 0x98, 0x00, 0xFF}
	Red     = color.RGBA{0xF4, 0x43, 0x36, 0xFF}
	Blue    = color.RGBA{0x1A, 0xA0, 0xFD, 0xFF}
)

// ParseHex parses "#RGB" or "#RRGGBB". Anything it cannot parse
// resolves to fallback, never an error.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return fallback
		}
		r := byte(v >> 8 & 0xF)
		g := byte(v >> 4 & 0xF)
		b := byte(v & 0xF)
		return color.RGBA{r<<4 | r, g<<4 | g, b<<4 | b, 0xFF}
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return fallback
		}
		return color.RGBA{byte(v >> 16), byte(v >> 8), byte(v), 0xFF}
	}
	return fallback
}

// Hex renders c as "#RRGGBB" for embedding in generated SVG documents.
func Hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	b[1], b[2] = digits[c.R>>4], digits[c.R&0xF]
	b[3], b[4] = digits[c.G>>4], digits[c.G&0xF]
	b[5], b[6] = digits[c.B>>4], digits[c.B&0xF]
	return string(b)
}

// ForSeries returns a stable per-series color for chart parameters that
// have none configured.
func ForSeries(name string) color.RGBA {
	hash := crc32.ChecksumIEEE([]byte(name))
	return color.RGBA{byte(hash >> 8), byte(hash >> 16), byte(hash), 255}
}

package wordcloud

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var paletteStops = map[string][]string{
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"swift":   {"#FF69B4", "#8A2BE2", "#4169E1", "#00CED1", "#FFD700", "#FF1493"},
}

// Palette is a gradient sampled to colour words.
type Palette struct {
	Name  string
	stops []colorful.Color
}

// PaletteNames lists the known palettes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(paletteStops))
	for name := range paletteStops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPalette returns the named palette; names are case-insensitive.
func LookupPalette(name string) (*Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	hexes, ok := paletteStops[key]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (known: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	stops := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", key, err)
		}
		stops = append(stops, c)
	}
	return &Palette{Name: key, stops: stops}, nil
}

// At returns the gradient colour at t, clamped to [0, 1].
func (p *Palette) At(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	if len(p.stops) == 1 {
		return toRGBA(p.stops[0])
	}
	pos := t * float64(len(p.stops)-1)
	i := int(pos)
	if i >= len(p.stops)-1 {
		return toRGBA(p.stops[len(p.stops)-1])
	}
	frac := pos - float64(i)
	if frac == 0 {
		return toRGBA(p.stops[i])
	}
	return toRGBA(p.stops[i].BlendLab(p.stops[i+1], frac).Clamped())
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "white":
		return color.RGBA{255, 255, 255, 255}, nil
	case "black":
		return color.RGBA{0, 0, 0, 255}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return toRGBA(c), nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

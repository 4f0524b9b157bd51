package wordcloud

import (
	"bytes"
	"errors"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"lyricscope/analysis"
)

const sampleTokens = "love story love dreams forever young beautiful love story midnight rain golden sparks dancing"

func TestRenderDeterministic(t *testing.T) {
	opts := DefaultOptions()
	first, err := Render(sampleTokens, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(sampleTokens, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("Render() produced different bytes for identical input and options")
	}
	if len(first.PNG) == 0 {
		t.Error("Render() returned empty PNG")
	}
}

func TestRenderSeedChangesLayout(t *testing.T) {
	a := DefaultOptions()
	b := DefaultOptions()
	b.Seed = 7
	imgA, err := Render(sampleTokens, a)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	imgB, err := Render(sampleTokens, b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if bytes.Equal(imgA.PNG, imgB.PNG) {
		t.Error("expected different seeds to produce different images")
	}
}

func TestRenderDecodesWithConfiguredSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 320
	opts.Height = 200
	img, err := Render("shake off shake off", opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("decoded size = %dx%d, want 320x200", b.Dx(), b.Dy())
	}
	if len(img.Words) != 2 || img.Words[0].Word != "shake" || img.Words[0].Count != 2 {
		t.Errorf("Words = %+v", img.Words)
	}
}

func TestRenderLayoutInvariants(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 400
	opts.Height = 240
	opts.MaxWords = 10
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"}
	var text []string
	for i, w := range words {
		for j := 0; j <= len(words)-i; j++ {
			text = append(text, w)
		}
	}

	img, err := Render(strings.Join(text, " "), opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(img.Words) == 0 || len(img.Words) > opts.MaxWords {
		t.Fatalf("placed %d words, want 1..%d", len(img.Words), opts.MaxWords)
	}
	for i, a := range img.Words {
		if a.X < 0 || a.Y < 0 || a.X+a.Width > opts.Width || a.Y+a.Height > opts.Height {
			t.Errorf("word %q out of bounds: %+v", a.Word, a)
		}
		if i > 0 && a.FontSize > img.Words[i-1].FontSize {
			t.Errorf("font size grew from %d to %d at %q", img.Words[i-1].FontSize, a.FontSize, a.Word)
		}
		for _, b := range img.Words[i+1:] {
			if a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height {
				t.Errorf("words %q and %q overlap", a.Word, b.Word)
			}
		}
	}
}

func TestRenderEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		img, err := Render(text, DefaultOptions())
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Render(%q) error = %v, want ErrEmptyInput", text, err)
		}
		if img != nil {
			t.Errorf("Render(%q) returned an image", text)
		}
	}
}

func TestRenderFrequencies(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 200
	opts.Height = 100
	freqs := []analysis.WordCount{{Word: "midnights", Count: 3}, {Word: "lavender", Count: 1}}
	img, err := RenderFrequencies(freqs, opts)
	if err != nil {
		t.Fatalf("RenderFrequencies() error = %v", err)
	}
	if img.Words[0].Word != "midnights" {
		t.Errorf("first word = %q, want midnights", img.Words[0].Word)
	}

	if _, err := RenderFrequencies(nil, opts); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("RenderFrequencies(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestRenderCanvasTooSmall(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 4
	opts.Height = 4
	opts.MinFontSize = 12
	opts.MaxFontSize = 12
	if _, err := Render("anti hero", opts); !errors.Is(err, ErrCanvasTooSmall) {
		t.Errorf("Render() error = %v, want ErrCanvasTooSmall", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"width", func(o *Options) { o.Width = 0 }, "Width"},
		{"height", func(o *Options) { o.Height = -1 }, "Height"},
		{"max words", func(o *Options) { o.MaxWords = 0 }, "MaxWords"},
		{"scaling", func(o *Options) { o.RelativeScaling = 1.5 }, "RelativeScaling"},
		{"palette", func(o *Options) { o.Palette = "rainbow" }, "Palette"},
		{"background", func(o *Options) { o.Background = "#zzzzzz" }, "Background"},
		{"font range", func(o *Options) { o.MaxFontSize = 2 }, "MaxFontSize"},
		{"font step", func(o *Options) { o.FontStep = 0 }, "FontStep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			var optErr *OptionsError
			if !errors.As(err, &optErr) {
				t.Fatalf("Validate() error = %v, want *OptionsError", err)
			}
			if optErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", optErr.Field, tt.field)
			}
		})
	}

	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
}

func TestPalette(t *testing.T) {
	p, err := LookupPalette("Viridis")
	if err != nil {
		t.Fatalf("LookupPalette() error = %v", err)
	}
	if got := hexString(p.At(0)); got != "#440154" {
		t.Errorf("At(0) = %s, want #440154", got)
	}
	if got := hexString(p.At(1)); got != "#fde725" {
		t.Errorf("At(1) = %s, want #fde725", got)
	}
	if got := hexString(p.At(-3)); got != "#440154" {
		t.Errorf("At(-3) = %s, want clamped #440154", got)
	}
	if names := PaletteNames(); len(names) != 4 || names[0] != "magma" {
		t.Errorf("PaletteNames() = %v", names)
	}
	if c, err := parseColor("white"); err != nil || hexString(c) != "#ffffff" {
		t.Errorf("parseColor(white) = %v, %v", c, err)
	}
}

func TestOccupancy(t *testing.T) {
	grid := newOccupancy(10, 10)
	rng := rand.New(rand.NewSource(1))

	grid.mark(0, 0, 10, 6)
	if got := grid.sum(0, 0, 10, 10); got != 60 {
		t.Errorf("sum() = %d, want 60", got)
	}
	x, y, ok := grid.find(4, 4, rng)
	if !ok {
		t.Fatal("find() found no free space")
	}
	if y < 6 || grid.sum(x, y, 4, 4) != 0 {
		t.Errorf("find() = (%d,%d), not in free area", x, y)
	}
	if _, _, ok := grid.find(4, 5, rng); ok {
		t.Error("find() placed a box taller than the free area")
	}
	if _, _, ok := grid.find(11, 1, rng); ok {
		t.Error("find() placed a box wider than the canvas")
	}
}

package wordcloud

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"math/rand"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"lyricscope/analysis"
)

// ErrEmptyInput is returned when there are no tokens to draw.
var ErrEmptyInput = errors.New("no words to render")

// ErrCanvasTooSmall is returned when not even the first word fits at MinFontSize.
var ErrCanvasTooSmall = errors.New("canvas too small for any word")

// PlacedWord is one word as laid out on the canvas.
type PlacedWord struct {
	Word     string `json:"word"`
	Count    int    `json:"count"`
	FontSize int    `json:"font_size"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Color    string `json:"color"`
}

// Image is a rendered word cloud. PNG holds the encoded bitmap.
type Image struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	PNG    []byte       `json:"-"`
	Words  []PlacedWord `json:"words"`
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

func regularFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, fontErr
}

// Render lays out space-separated tokens and encodes the result as PNG.
// Identical input and options always produce identical bytes.
func Render(tokenText string, opts Options) (*Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	freqs := analysis.Frequencies(analysis.Tokens(tokenText), opts.MaxWords)
	if len(freqs) == 0 {
		return nil, ErrEmptyInput
	}
	return RenderFrequencies(freqs, opts)
}

// RenderFrequencies draws words that are already counted and ordered by
// descending count. At most opts.MaxWords entries are used.
func RenderFrequencies(freqs []analysis.WordCount, opts Options) (*Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(freqs) > opts.MaxWords {
		freqs = freqs[:opts.MaxWords]
	}
	if len(freqs) == 0 || freqs[0].Count <= 0 {
		return nil, ErrEmptyInput
	}

	bg, _ := parseColor(opts.Background)
	palette, _ := LookupPalette(opts.Palette)

	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	faces := newFaceCache(f)
	defer faces.close()

	rng := rand.New(rand.NewSource(opts.Seed))
	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	grid := newOccupancy(opts.Width, opts.Height)

	maxCount := float64(freqs[0].Count)
	fontSize := opts.maxFontSize()
	lastFreq := 1.0
	margin := opts.Margin

	placed := make([]PlacedWord, 0, len(freqs))
	for i, wc := range freqs {
		freq := float64(wc.Count) / maxCount
		if i > 0 && opts.RelativeScaling != 0 {
			fontSize = int(math.Round((opts.RelativeScaling*(freq/lastFreq) + (1 - opts.RelativeScaling)) * float64(fontSize)))
		}

		var (
			face       font.Face
			x, y       int
			boxW, boxH int
			ascent     int
			found      bool
		)
		for fontSize >= opts.MinFontSize {
			face, err = faces.get(fontSize)
			if err != nil {
				return nil, err
			}
			metrics := face.Metrics()
			ascent = metrics.Ascent.Ceil()
			textW := font.MeasureString(face, wc.Word).Ceil()
			boxW = textW + 2*margin
			boxH = ascent + metrics.Descent.Ceil() + 2*margin

			if boxW > opts.Width || boxH > opts.Height {
				fontSize = shrinkToFit(fontSize, boxW, boxH, opts)
				continue
			}
			if x, y, found = grid.find(boxW, boxH, rng); found {
				break
			}
			fontSize -= opts.FontStep
		}
		if !found {
			log.WithFields(log.Fields{"module": "wordcloud", "placed": len(placed)}).
				Debugf("canvas full at %q, stopping layout", wc.Word)
			break
		}

		col := palette.At(rng.Float64())
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(x+margin, y+margin+ascent),
		}
		d.DrawString(wc.Word)
		grid.mark(x, y, boxW, boxH)

		placed = append(placed, PlacedWord{
			Word:     wc.Word,
			Count:    wc.Count,
			FontSize: fontSize,
			X:        x,
			Y:        y,
			Width:    boxW,
			Height:   boxH,
			Color:    hexString(col),
		})
		lastFreq = freq
	}

	if len(placed) == 0 {
		return nil, ErrCanvasTooSmall
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return &Image{
		Width:  opts.Width,
		Height: opts.Height,
		PNG:    buf.Bytes(),
		Words:  placed,
	}, nil
}

// shrinkToFit scales size down so a box of boxW x boxH fits the canvas,
// always returning something strictly smaller than size.
func shrinkToFit(size, boxW, boxH int, opts Options) int {
	ratio := math.Min(float64(opts.Width)/float64(boxW), float64(opts.Height)/float64(boxH))
	next := int(float64(size) * ratio)
	if next >= size {
		next = size - opts.FontStep
	}
	return next
}

type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(f *opentype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[int]font.Face)}
}

func (c *faceCache) get(size int) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %dpx face: %w", size, err)
	}
	c.faces[size] = face
	return face, nil
}

func (c *faceCache) close() {
	for _, face := range c.faces {
		face.Close()
	}
}

package wordcloud

import "fmt"

// Options control canvas size, colours and how words are scaled and placed.
type Options struct {
	Width           int
	Height          int
	Background      string
	Palette         string
	MaxWords        int
	RelativeScaling float64
	Seed            int64

	// MaxFontSize of 0 means 90% of Height.
	MaxFontSize int
	MinFontSize int
	FontStep    int
	Margin      int
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:           800,
		Height:          400,
		Background:      "#ffffff",
		Palette:         "viridis",
		MaxWords:        100,
		RelativeScaling: 0.5,
		Seed:            42,
		MinFontSize:     4,
		FontStep:        1,
		Margin:          2,
	}
}

// OptionsError reports a rejected option.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid word cloud option %s: %s", e.Field, e.Message)
}

// Validate checks that the options can produce an image.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0:
		return &OptionsError{Field: "Width", Message: "must be positive"}
	case o.Height <= 0:
		return &OptionsError{Field: "Height", Message: "must be positive"}
	case o.MaxWords <= 0:
		return &OptionsError{Field: "MaxWords", Message: "must be positive"}
	case o.RelativeScaling < 0 || o.RelativeScaling > 1:
		return &OptionsError{Field: "RelativeScaling", Message: "must be between 0 and 1"}
	case o.MinFontSize <= 0:
		return &OptionsError{Field: "MinFontSize", Message: "must be positive"}
	case o.MaxFontSize < 0:
		return &OptionsError{Field: "MaxFontSize", Message: "must not be negative"}
	case o.MaxFontSize != 0 && o.MaxFontSize < o.MinFontSize:
		return &OptionsError{Field: "MaxFontSize", Message: "must not be below MinFontSize"}
	case o.FontStep <= 0:
		return &OptionsError{Field: "FontStep", Message: "must be positive"}
	case o.Margin < 0:
		return &OptionsError{Field: "Margin", Message: "must not be negative"}
	}
	if _, err := parseColor(o.Background); err != nil {
		return &OptionsError{Field: "Background", Message: err.Error()}
	}
	if _, err := LookupPalette(o.Palette); err != nil {
		return &OptionsError{Field: "Palette", Message: err.Error()}
	}
	return nil
}

func (o Options) maxFontSize() int {
	if o.MaxFontSize > 0 {
		return o.MaxFontSize
	}
	size := o.Height * 9 / 10
	if size < o.MinFontSize {
		size = o.MinFontSize
	}
	return size
}

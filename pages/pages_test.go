package pages

import (
	"bytes"
	"strings"
	"testing"
)

func TestIndexRendersEscaped(t *testing.T) {
	data := map[string]interface{}{
		"Artist":       "Taylor Swift",
		"PopularSongs": PopularSongs,
		"Title":        `<script>alert(1)</script>`,
		"Message":      "Found: Love Story",
		"IsError":      false,
		"HasResult":    false,
	}
	var buf bytes.Buffer
	if err := Index().Execute(&buf, data); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("title was not HTML-escaped")
	}
	if !strings.Contains(out, "Found: Love Story") {
		t.Error("message missing from page")
	}
	if !strings.Contains(out, "Lavender Haze") {
		t.Error("popular songs missing from page")
	}
}

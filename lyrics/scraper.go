package lyrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const (
	containerSelector = `[data-lyrics-container="true"]`
	excludedSelector  = `[data-exclude-from-selection="true"]`

	maxPageBytes = 5 << 20
)

// Extract fetches the public song page and returns the text of its lyrics
// containers in document order, joined by newlines.
func (c *Client) Extract(ctx context.Context, pageURL string) (string, error) {
	span := sentry.StartSpan(ctx, "lyrics.extract")
	span.Description = "Scrape lyrics containers from song page"
	span.SetTag("url", pageURL)
	defer span.Finish()

	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.9")

	log.Tracef("Fetching lyrics page: %s", pageURL)
	resp, err := c.get(span.Context(), pageService, pageURL, header)
	if err != nil {
		log.Errorf("Failed to fetch lyrics page: %v", err)
		span.Status = sentry.SpanStatusUnavailable
		return "", err
	}
	defer resp.Body.Close()

	text, err := ExtractFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		span.Status = sentry.SpanStatusNotFound
		return "", err
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("length", len(text))
	log.Debugf("Extracted %d bytes of lyrics from %s", len(text), pageURL)
	return text, nil
}

// ExtractFromReader parses an HTML document and returns its lyrics text.
func ExtractFromReader(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return extractFromDocument(doc)
}

func extractFromDocument(doc *goquery.Document) (string, error) {
	containers := doc.Find(containerSelector)
	if containers.Length() == 0 {
		return "", ErrExtractionFailed
	}

	blocks := make([]string, 0, containers.Length())
	containers.Each(func(i int, s *goquery.Selection) {
		s.Find(excludedSelector).Remove()
		s.Find("br").ReplaceWithHtml("\n")

		text := strings.TrimSpace(s.Text())
		if text == "" {
			log.Tracef("Lyrics container %d is empty", i)
			return
		}
		blocks = append(blocks, text)
	})

	if len(blocks) == 0 {
		return "", ErrExtractionFailed
	}
	return strings.Join(blocks, "\n"), nil
}

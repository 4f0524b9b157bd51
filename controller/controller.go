package controller

import (
	"context"
	"errors"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"lyricscope/analysis"
	"lyricscope/lyrics"
	"lyricscope/sentryhelper"
	"lyricscope/wordcloud"
)

// ErrEmptyTitle is returned when the caller submits a blank title.
var ErrEmptyTitle = errors.New("song title is required")

type Resolver interface {
	Resolve(ctx context.Context, q lyrics.SearchQuery) (*lyrics.ResolvedSong, error)
}

type Extractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

type Options struct {
	TargetArtist string
	Stopwords    *analysis.StopwordFilter
	WordCloud    wordcloud.Options
	TopN         int
}

// Controller runs the resolve -> extract -> normalize -> render pipeline.
// It holds no per-request state; results go back to the caller.
type Controller struct {
	resolver  Resolver
	extractor Extractor
	artist    string
	stopwords *analysis.StopwordFilter
	cloud     wordcloud.Options
	topN      int
}

// Result is everything produced by one successful lyrics run.
type Result struct {
	Title  string
	Song   *lyrics.ResolvedSong
	Lyrics string
	Tokens analysis.TokenStream
	Stats  analysis.Stats
	Image  *wordcloud.Image
}

func NewController(resolver Resolver, extractor Extractor, opts Options) *Controller {
	stopwords := opts.Stopwords
	if stopwords == nil {
		stopwords = analysis.DefaultStopwords
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = 10
	}
	return &Controller{
		resolver:  resolver,
		extractor: extractor,
		artist:    opts.TargetArtist,
		stopwords: stopwords,
		cloud:     opts.WordCloud,
		topN:      topN,
	}
}

// Analyze resolves the title to song metadata only.
func (c *Controller) Analyze(ctx context.Context, title string) (*lyrics.ResolvedSong, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	ctx, tx := sentryhelper.StartActionTransaction(ctx, "analyze", title)
	defer tx.Finish()

	song, err := c.resolver.Resolve(ctx, lyrics.NewSearchQuery(title, "", c.artist))
	if err != nil {
		c.report(ctx, tx, "resolve", err)
		return nil, err
	}
	tagSong(ctx, song)

	tx.Status = sentry.SpanStatusOK
	return song, nil
}

// FetchLyrics runs the whole pipeline. The first failing stage stops it.
func (c *Controller) FetchLyrics(ctx context.Context, title string) (*Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	logger := log.WithFields(log.Fields{"module": "controller", "action": "lyrics"})

	ctx, tx := sentryhelper.StartActionTransaction(ctx, "lyrics", title)
	defer tx.Finish()

	song, err := c.resolver.Resolve(ctx, lyrics.NewSearchQuery(title, "", c.artist))
	if err != nil {
		c.report(ctx, tx, "resolve", err)
		return nil, err
	}
	tagSong(ctx, song)

	text, err := c.extractor.Extract(ctx, song.URL)
	if err != nil {
		c.report(ctx, tx, "extract", err)
		return nil, err
	}

	span := sentry.StartSpan(ctx, "analysis.normalize")
	tokens := analysis.NormalizeWith(text, c.stopwords)
	stats := analysis.Describe(tokens, c.topN)
	span.SetData("tokens", len(tokens))
	span.Finish()

	span = sentry.StartSpan(ctx, "wordcloud.render")
	image, err := wordcloud.Render(tokens.String(), c.cloud)
	span.Finish()
	if err != nil {
		c.report(ctx, tx, "render", err)
		return nil, err
	}

	logger.Infof("Rendered %d words for '%s' (%d tokens, %d bytes of lyrics)",
		len(image.Words), song.Title, len(tokens), len(text))
	tx.Status = sentry.SpanStatusOK

	return &Result{
		Title:  title,
		Song:   song,
		Lyrics: text,
		Tokens: tokens,
		Stats:  stats,
		Image:  image,
	}, nil
}

// report records a failed stage. Expected outcomes become breadcrumbs
// (extraction failures also send a message); anything else is captured
// as an exception.
func (c *Controller) report(ctx context.Context, tx *sentry.Span, stage string, err error) {
	logger := log.WithFields(log.Fields{"module": "controller", "stage": stage})

	if IsExpected(err) {
		logger.Infof("pipeline stopped: %v", err)
		if errors.Is(err, lyrics.ErrExtractionFailed) {
			// Usually means the lyrics page markup changed.
			sentryhelper.CaptureMessage(ctx, "lyrics page had no lyrics containers")
		}
		tx.Status = sentry.SpanStatusNotFound
		sentryhelper.AddBreadcrumb(ctx, &sentry.Breadcrumb{
			Category: "pipeline",
			Message:  stage + ": " + err.Error(),
			Level:    sentry.LevelInfo,
		})
		return
	}

	logger.Errorf("pipeline failed: %v", err)
	if lyrics.IsTimeout(err) {
		tx.Status = sentry.SpanStatusDeadlineExceeded
	} else {
		tx.Status = sentry.SpanStatusInternalError
	}
	sentryhelper.CaptureException(ctx, err)
}

func tagSong(ctx context.Context, song *lyrics.ResolvedSong) {
	sentryhelper.ConfigureScope(ctx, func(scope *sentry.Scope) {
		scope.SetTag("song_url", song.URL)
		scope.SetTag("artist", song.PrimaryArtistName)
	})
}

// IsExpected reports whether err is an ordinary "nothing to show" outcome
// rather than a failure worth alerting on.
func IsExpected(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, lyrics.ErrNotFound) ||
		errors.Is(err, lyrics.ErrExtractionFailed) ||
		errors.Is(err, wordcloud.ErrEmptyInput)
}

// UserMessage maps a pipeline error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyTitle):
		return "Please enter a song title."
	case errors.Is(err, lyrics.ErrNotFound):
		return "Song not found. Please try another title or check spelling."
	case errors.Is(err, lyrics.ErrExtractionFailed):
		return "Could not extract lyrics from the song page."
	case errors.Is(err, wordcloud.ErrEmptyInput):
		return "The lyrics had no words left to visualize after filtering."
	case lyrics.IsTimeout(err):
		return "The lyrics service took too long to respond. Please try again."
	case lyrics.IsUpstream(err):
		return "The lyrics service is unavailable right now. Please try again later."
	}
	return "Something went wrong while processing this song."
}

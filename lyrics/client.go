package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.genius.com"
	DefaultTimeout = 10 * time.Second

	searchService = "genius search"
	pageService   = "lyrics page"
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	MaxRetries  int
	QueryOrder  QueryOrder
	MatchPolicy MatchPolicy
	HTTPClient  *http.Client
}

// Client resolves song titles against the search API and scrapes lyrics pages.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	maxRetries  int
	queryOrder  QueryOrder
	matchPolicy MatchPolicy
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	queryOrder := opts.QueryOrder
	if queryOrder == "" {
		queryOrder = QueryTitleArtist
	}
	matchPolicy := opts.MatchPolicy
	if matchPolicy == "" {
		matchPolicy = MatchContains
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		accessToken: opts.AccessToken,
		maxRetries:  maxRetries,
		queryOrder:  queryOrder,
		matchPolicy: matchPolicy,
	}
}

// Search runs one search request and returns the hits in API order.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	logger := log.WithFields(log.Fields{"module": "lyrics", "function": "Search"})

	query := c.queryOrder.Build(q)
	u := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.accessToken)
	header.Set("Accept", "application/json")

	logger.Tracef("searching for %q", query)
	resp, err := c.get(ctx, searchService, u, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var results searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &UpstreamError{Service: searchService, Err: fmt.Errorf("decode response: %w", err)}
	}

	hits := results.hits()
	logger.Debugf("search for %q returned %d hits", query, len(hits))
	return hits, nil
}

// Resolve searches for q and returns the first hit whose artist matches q.Artist.
func (c *Client) Resolve(ctx context.Context, q SearchQuery) (*ResolvedSong, error) {
	span := sentry.StartSpan(ctx, "lyrics.resolve")
	span.Description = "Resolve song title via search API"
	span.SetTag("title", q.Title)
	span.SetTag("artist", q.Artist)
	span.SetTag("match_policy", string(c.matchPolicy))
	defer span.Finish()

	hits, err := c.Search(span.Context(), q)
	if err != nil {
		log.Errorf("Search failed for %q: %v", q.Title, err)
		if IsTimeout(err) {
			span.Status = sentry.SpanStatusDeadlineExceeded
		} else {
			span.Status = sentry.SpanStatusUnavailable
		}
		return nil, err
	}

	song, err := SelectHit(hits, q.Artist, c.matchPolicy)
	if err != nil {
		log.Infof("No %q hit matched artist %q among %d results", q.Title, q.Artist, len(hits))
		span.Status = sentry.SpanStatusNotFound
		return nil, err
	}

	log.Debugf("Resolved %q to '%s' by %s", q.Title, song.Title, song.PrimaryArtistName)
	span.Status = sentry.SpanStatusOK
	span.SetData("url", song.URL)
	return song, nil
}

// SelectHit returns the first hit, in order, whose artist matches under policy.
func SelectHit(hits []SearchHit, artist string, policy MatchPolicy) (*ResolvedSong, error) {
	for _, hit := range hits {
		if policy.Matches(hit.PrimaryArtistName, artist) {
			return &ResolvedSong{SearchHit: hit}, nil
		}
	}
	return nil, ErrNotFound
}

// get issues a GET, retrying transport failures up to maxRetries times.
// Any HTTP response, including 4xx and 5xx, ends the loop.
func (c *Client) get(ctx context.Context, service, rawURL string, header http.Header) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, &UpstreamError{Service: service, Err: err}
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				resp.Body.Close()
				return nil, &UpstreamError{Service: service, StatusCode: resp.StatusCode}
			}
			return resp, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.WithFields(log.Fields{
			"module":  "lyrics",
			"service": service,
			"attempt": attempt + 1,
			"error":   err,
		}).Warn("request failed")
	}

	if errors.Is(lastErr, context.Canceled) {
		return nil, &UpstreamError{Service: service, Err: lastErr}
	}
	return nil, transportError(service, lastErr)
}

package lyrics

import (
	"fmt"
	"strings"
)

// DefaultArtist is the artist searched for when a query does not name one.
const DefaultArtist = "Taylor Swift"

// SearchQuery is one title/artist lookup.
type SearchQuery struct {
	Title  string
	Artist string
}

// NewSearchQuery trims its inputs and falls back to artist when none is given.
func NewSearchQuery(title, artist, fallbackArtist string) SearchQuery {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		artist = strings.TrimSpace(fallbackArtist)
	}
	if artist == "" {
		artist = DefaultArtist
	}
	return SearchQuery{Title: strings.TrimSpace(title), Artist: artist}
}

// SearchHit is the projection of one search result used by the rest of the app.
type SearchHit struct {
	Title              string `json:"title"`
	PrimaryArtistName  string `json:"primary_artist"`
	URL                string `json:"url"`
	ImageURL           string `json:"image_url"`
	ReleaseDateDisplay string `json:"release_date"`
}

// ResolvedSong is the hit chosen as the match for a query.
type ResolvedSong struct {
	SearchHit
}

// QueryOrder controls how title and artist are combined in the search string.
type QueryOrder string

const (
	QueryTitleArtist QueryOrder = "title_artist"
	QueryArtistTitle QueryOrder = "artist_title"
)

// ParseQueryOrder accepts the config spelling of a QueryOrder.
func ParseQueryOrder(s string) (QueryOrder, error) {
	switch QueryOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", QueryTitleArtist:
		return QueryTitleArtist, nil
	case QueryArtistTitle:
		return QueryArtistTitle, nil
	}
	return "", fmt.Errorf("unknown query order %q", s)
}

// Build returns the search string for q.
func (o QueryOrder) Build(q SearchQuery) string {
	if o == QueryArtistTitle {
		return strings.TrimSpace(q.Artist + " " + q.Title)
	}
	return strings.TrimSpace(q.Title + " " + q.Artist)
}

// MatchPolicy decides whether a hit's artist counts as the target artist.
// Both policies compare case-insensitively after trimming.
type MatchPolicy string

const (
	MatchContains MatchPolicy = "contains"
	MatchExact    MatchPolicy = "exact"
)

// ParseMatchPolicy accepts the config spelling of a MatchPolicy.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchContains:
		return MatchContains, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("unknown match policy %q", s)
}

// Matches reports whether candidate matches target under p.
func (p MatchPolicy) Matches(candidate, target string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return false
	}
	if p == MatchExact {
		return candidate == target
	}
	return strings.Contains(candidate, target)
}

// searchResponse mirrors the subset of the search endpoint's JSON that we read.
type searchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				Title                 string `json:"title"`
				URL                   string `json:"url"`
				SongArtImageURL       string `json:"song_art_image_url"`
				ReleaseDateForDisplay string `json:"release_date_for_display"`
				PrimaryArtist         struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

func (r *searchResponse) hits() []SearchHit {
	hits := make([]SearchHit, 0, len(r.Response.Hits))
	for _, h := range r.Response.Hits {
		hits = append(hits, SearchHit{
			Title:              h.Result.Title,
			PrimaryArtistName:  h.Result.PrimaryArtist.Name,
			URL:                h.Result.URL,
			ImageURL:           h.Result.SongArtImageURL,
			ReleaseDateDisplay: h.Result.ReleaseDateForDisplay,
		})
	}
	return hits
}

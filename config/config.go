package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type ConfigStruct struct {
	Genius    GeniusConfig
	WordCloud WordCloudConfig
	Analysis  AnalysisConfig
	Options   Options
	Sentry    SentryConfig
}

type GeniusConfig struct {
	AccessToken  string
	BaseURL      string
	TargetArtist string
	QueryOrder   string // "title_artist" or "artist_title"
	MatchPolicy  string // "contains" or "exact"
	Timeout      time.Duration
	MaxRetries   int
}

type WordCloudConfig struct {
	Width           int
	Height          int
	Background      string
	Palette         string
	MaxWords        int
	RelativeScaling float64
	Seed            int64
}

type AnalysisConfig struct {
	ExtraStopwords []string
	TopN           int
}

type Options struct {
	Port     string
	LogLevel string
}

type SentryConfig struct {
	DSN     string
	Release string
}

func (s *SentryConfig) IsEnabled() bool {
	return s.DSN != ""
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Genius: GeniusConfig{
			AccessToken:  strings.TrimSpace(os.Getenv("GENIUS_ACCESS_TOKEN")),
			BaseURL:      getString("GENIUS_BASE_URL", "https://api.genius.com"),
			TargetArtist: getString("TARGET_ARTIST", "Taylor Swift"),
			QueryOrder:   getString("QUERY_ORDER", "title_artist"),
			MatchPolicy:  getString("MATCH_POLICY", "contains"),
			Timeout:      time.Duration(getHTTPTimeoutSeconds()) * time.Second,
			MaxRetries:   getMaxRetries(),
		},
		WordCloud: WordCloudConfig{
			Width:           getDimension("WORDCLOUD_WIDTH", 800),
			Height:          getDimension("WORDCLOUD_HEIGHT", 400),
			Background:      getString("WORDCLOUD_BACKGROUND", "#ffffff"),
			Palette:         getString("WORDCLOUD_PALETTE", "viridis"),
			MaxWords:        getMaxWords(),
			RelativeScaling: getRelativeScaling(),
			Seed:            getSeed(),
		},
		Analysis: AnalysisConfig{
			ExtraStopwords: getList("EXTRA_STOPWORDS"),
			TopN:           getTopN(),
		},
		Options: Options{
			Port:     getString("PORT", "8080"),
			LogLevel: getString("LOG_LEVEL", "info"),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
	}

	Config = config
}

// Validate reports settings the app cannot start without.
func (c *ConfigStruct) Validate() error {
	if c.Genius.AccessToken == "" {
		return errors.New("GENIUS_ACCESS_TOKEN must be set")
	}
	if c.Genius.TargetArtist == "" {
		return errors.New("TARGET_ARTIST cannot be empty")
	}
	return nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getHTTPTimeoutSeconds() int {
	timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 10
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 10
	}
	if timeout > 60 {
		return 60
	}
	return timeout
}

func getMaxRetries() int {
	retriesStr := os.Getenv("HTTP_MAX_RETRIES")
	if retriesStr == "" {
		return 1
	}
	retries, err := strconv.Atoi(retriesStr)
	if err != nil || retries < 0 {
		return 1
	}
	if retries > 3 {
		return 3 // one bounded retry policy, never unbounded
	}
	return retries
}

func getDimension(key string, fallback int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return fallback
	}
	if value < 64 {
		return 64
	}
	if value > 4096 {
		return 4096
	}
	return value
}

func getMaxWords() int {
	limitStr := os.Getenv("WORDCLOUD_MAX_WORDS")
	if limitStr == "" {
		return 100
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 100
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func getRelativeScaling() float64 {
	scalingStr := os.Getenv("WORDCLOUD_RELATIVE_SCALING")
	if scalingStr == "" {
		return 0.5
	}
	scaling, err := strconv.ParseFloat(scalingStr, 64)
	if err != nil || scaling < 0 || scaling > 1 {
		return 0.5
	}
	return scaling
}

func getSeed() int64 {
	seedStr := os.Getenv("WORDCLOUD_SEED")
	if seedStr == "" {
		return 42
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return 42
	}
	return seed
}

func getTopN() int {
	topStr := os.Getenv("STATS_TOP_N")
	if topStr == "" {
		return 10
	}
	top, err := strconv.Atoi(topStr)
	if err != nil || top <= 0 {
		return 10
	}
	if top > 50 {
		return 50
	}
	return top
}

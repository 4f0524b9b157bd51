// Package handlers serves the single-session UI and its JSON equivalents.
// Every action runs the pipeline synchronously and then updates the one
// Session under the manager's lock.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"lyricscope/analysis"
	"lyricscope/controller"
	"lyricscope/lyrics"
	"lyricscope/pages"
	"lyricscope/wordcloud"
)

type Pipeline interface {
	Analyze(ctx context.Context, title string) (*lyrics.ResolvedSong, error)
	FetchLyrics(ctx context.Context, title string) (*controller.Result, error)
}

type Manager struct {
	Artist   string
	Pipeline Pipeline

	mu      sync.Mutex
	session controller.Session
}

func NewManager(artist string, pipeline Pipeline) *Manager {
	return &Manager{Artist: artist, Pipeline: pipeline}
}

// Register installs the routes and the page template on router.
func (m *Manager) Register(router *gin.Engine) {
	router.SetHTMLTemplate(pages.Index())

	router.GET("/", m.Index)
	router.POST("/analyze", m.AnalyzeForm)
	router.POST("/lyrics", m.LyricsForm)
	router.GET("/wordcloud.png", m.WordCloud)
	router.GET("/api/song", m.SongJSON)
	router.GET("/api/lyrics", m.LyricsJSON)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (m *Manager) Index(c *gin.Context) {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()

	c.HTML(http.StatusOK, pages.IndexTemplateName, gin.H{
		"Artist":       m.Artist,
		"PopularSongs": pages.PopularSongs,
		"Notice":       pages.CopyrightNotice,
		"Title":        s.Title,
		"Song":         s.Song,
		"Message":      s.Message,
		"IsError":      s.IsError,
		"HasResult":    s.HasResult(),
		"Stats":        s.Stats,
		"LyricsTitle":  s.LyricsTitle,
		"Lyrics":       s.Lyrics,
		"Version":      strconv.FormatInt(s.UpdatedAt.UnixNano(), 10),
	})
}

func (m *Manager) AnalyzeForm(c *gin.Context) {
	title := c.PostForm("title")
	m.analyze(c.Request.Context(), title)
	c.Redirect(http.StatusSeeOther, "/")
}

func (m *Manager) LyricsForm(c *gin.Context) {
	title := c.PostForm("title")
	m.fetchLyrics(c.Request.Context(), title)
	c.Redirect(http.StatusSeeOther, "/")
}

func (m *Manager) WordCloud(c *gin.Context) {
	m.mu.Lock()
	img := m.session.Image
	m.mu.Unlock()

	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no word cloud rendered yet"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img.PNG)
}

func (m *Manager) SongJSON(c *gin.Context) {
	song, err := m.analyze(c.Request.Context(), c.Query("title"))
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": controller.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"song": song.SearchHit})
}

type lyricsResponse struct {
	Title    string                 `json:"title"`
	Song     lyrics.SearchHit       `json:"song"`
	Lyrics   string                 `json:"lyrics"`
	Stats    analysis.Stats         `json:"stats"`
	Words    []wordcloud.PlacedWord `json:"words"`
	ImageURL string                 `json:"image_url"`
}

func (m *Manager) LyricsJSON(c *gin.Context) {
	res, err := m.fetchLyrics(c.Request.Context(), c.Query("title"))
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": controller.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, lyricsResponse{
		Title:    res.Title,
		Song:     res.Song.SearchHit,
		Lyrics:   res.Lyrics,
		Stats:    res.Stats,
		Words:    res.Image.Words,
		ImageURL: "/wordcloud.png",
	})
}

// analyze and fetchLyrics hold the lock for the whole run so only one
// pipeline executes at a time and the session is replaced in one step.
func (m *Manager) analyze(ctx context.Context, title string) (*lyrics.ResolvedSong, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	song, err := m.Pipeline.Analyze(ctx, title)
	if err != nil {
		log.WithFields(log.Fields{"module": "handlers", "action": "analyze"}).Debugf("analyze %q: %v", title, err)
		m.session.ApplyError(err)
		return nil, err
	}
	m.session.ApplySong(title, song)
	return song, nil
}

func (m *Manager) fetchLyrics(ctx context.Context, title string) (*controller.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.Pipeline.FetchLyrics(ctx, title)
	if err != nil {
		log.WithFields(log.Fields{"module": "handlers", "action": "lyrics"}).Debugf("lyrics %q: %v", title, err)
		m.session.ApplyError(err)
		return nil, err
	}
	m.session.ApplyResult(res)
	return res, nil
}

// StatusFor maps a pipeline error to an HTTP status for the JSON endpoints.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrEmptyTitle):
		return http.StatusBadRequest
	case errors.Is(err, lyrics.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lyrics.ErrExtractionFailed), errors.Is(err, wordcloud.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case lyrics.IsTimeout(err):
		return http.StatusGatewayTimeout
	case lyrics.IsUpstream(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

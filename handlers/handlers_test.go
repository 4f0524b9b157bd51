package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lyricscope/analysis"
	"lyricscope/controller"
	"lyricscope/lyrics"
	"lyricscope/wordcloud"
)

type fakePipeline struct {
	song *lyrics.ResolvedSong
	res  *controller.Result
	err  error
}

func (f *fakePipeline) Analyze(ctx context.Context, title string) (*lyrics.ResolvedSong, error) {
	return f.song, f.err
}

func (f *fakePipeline) FetchLyrics(ctx context.Context, title string) (*controller.Result, error) {
	return f.res, f.err
}

func newRouter(p Pipeline) (*gin.Engine, *Manager) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := NewManager("Taylor Swift", p)
	m.Register(router)
	return router, m
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleResult() *controller.Result {
	song := &lyrics.ResolvedSong{SearchHit: lyrics.SearchHit{Title: "Shake It Off", PrimaryArtistName: "Taylor Swift", URL: "https://example.com/shake"}}
	return &controller.Result{
		Title:  "Shake It Off",
		Song:   song,
		Lyrics: "Shake it off shake it off",
		Tokens: analysis.TokenStream{"shake", "off", "shake", "off"},
		Stats:  analysis.Describe(analysis.TokenStream{"shake", "off", "shake", "off"}, 10),
		Image:  &wordcloud.Image{Width: 10, Height: 10, PNG: []byte("\x89PNG"), Words: []wordcloud.PlacedWord{{Word: "shake", Count: 2}}},
	}
}

func TestLyricsFormFlow(t *testing.T) {
	res := sampleResult()
	router, _ := newRouter(&fakePipeline{res: res, song: res.Song})

	form := url.Values{"title": {"Shake It Off"}}
	req := httptest.NewRequest(http.MethodPost, "/lyrics", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(router, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /lyrics status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	w = serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	body := w.Body.String()
	for _, want := range []string{"Lyrics found!", "Shake it off shake it off", "/wordcloud.png?v=", "Unique words"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}

	w = serve(router, httptest.NewRequest(http.MethodGet, "/wordcloud.png", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("GET /wordcloud.png = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w.Body.String() != "\x89PNG" {
		t.Errorf("image body = %q", w.Body.String())
	}
}

func TestWordCloudMissing(t *testing.T) {
	router, _ := newRouter(&fakePipeline{})
	w := serve(router, httptest.NewRequest(http.MethodGet, "/wordcloud.png", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestFailureKeepsPreviousResult(t *testing.T) {
	p := &fakePipeline{res: sampleResult()}
	router, m := newRouter(p)

	serve(router, httptest.NewRequest(http.MethodGet, "/api/lyrics?title=Shake+It+Off", nil))
	p.err = lyrics.ErrNotFound
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/lyrics?title=Nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Lyrics != "Shake it off shake it off" || !m.session.IsError {
		t.Errorf("session = %+v", m.session)
	}
}

func TestLyricsJSON(t *testing.T) {
	router, _ := newRouter(&fakePipeline{res: sampleResult()})
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/lyrics?title=Shake+It+Off", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got lyricsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Song.Title != "Shake It Off" || got.Stats.TotalTokens != 4 || len(got.Words) != 1 {
		t.Errorf("response = %+v", got)
	}
}

func TestSongJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty title", controller.ErrEmptyTitle, http.StatusBadRequest},
		{"not found", lyrics.ErrNotFound, http.StatusNotFound},
		{"timeout", &lyrics.TimeoutError{Service: "genius search", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"upstream", &lyrics.UpstreamError{Service: "genius search", StatusCode: 503}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(&fakePipeline{err: tt.err})
			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/song?title=x", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if !strings.Contains(w.Body.String(), controller.UserMessage(tt.err)) {
				t.Errorf("body %s missing user message", w.Body.String())
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(lyrics.ErrExtractionFailed); got != http.StatusUnprocessableEntity {
		t.Errorf("StatusFor(ErrExtractionFailed) = %d", got)
	}
	if got := StatusFor(wordcloud.ErrEmptyInput); got != http.StatusUnprocessableEntity {
		t.Errorf("StatusFor(ErrEmptyInput) = %d", got)
	}
}

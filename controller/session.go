package controller

import (
	"time"

	"lyricscope/analysis"
	"lyricscope/lyrics"
	"lyricscope/wordcloud"
)

// Session is the last result shown to the one browser session. It is owned by
// the UI layer; the pipeline never reads or writes it. Successful actions
// replace the relevant fields wholesale, failures only set the message.
type Session struct {
	Title string
	Song  *lyrics.ResolvedSong

	// LyricsTitle is the title the lyrics, stats and image belong to; it can
	// lag Title after an Analyze.
	LyricsTitle string
	Lyrics      string
	Stats       analysis.Stats
	Image       *wordcloud.Image

	Message   string
	IsError   bool
	UpdatedAt time.Time
}

// ApplySong records a successful Analyze.
func (s *Session) ApplySong(title string, song *lyrics.ResolvedSong) {
	s.Title = title
	s.Song = song
	s.Message = "Found: " + song.Title
	s.IsError = false
	s.UpdatedAt = time.Now()
}

// ApplyResult records a successful FetchLyrics, replacing the previous result.
func (s *Session) ApplyResult(res *Result) {
	s.Title = res.Title
	s.Song = res.Song
	s.LyricsTitle = res.Title
	s.Lyrics = res.Lyrics
	s.Stats = res.Stats
	s.Image = res.Image
	s.Message = "Lyrics found!"
	s.IsError = false
	s.UpdatedAt = time.Now()
}

// ApplyError keeps the previous result and sets a user-facing message.
func (s *Session) ApplyError(err error) {
	s.Message = UserMessage(err)
	s.IsError = true
}

// HasResult reports whether a word cloud is available to show.
func (s *Session) HasResult() bool {
	return s.Image != nil && s.Lyrics != ""
}

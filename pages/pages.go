package pages

import "html/template"

// PopularSongs are the quick-pick titles offered next to the search box.
var PopularSongs = []string{
	"Love Story", "You Belong With Me", "Shake It Off",
	"Blank Space", "Bad Blood", "Look What You Made Me Do",
	"Delicate", "ME!", "Lover", "Cardigan", "Willow",
	"Anti-Hero", "Lavender Haze",
}

const CopyrightNotice = "Lyrics are fetched for this session only and are never stored. " +
	"Visit the song page linked above to read the complete lyrics legally."

// IndexTemplateName is the name gin renders the main page with.
const IndexTemplateName = "index"

// Index returns the parsed main page template.
func Index() *template.Template {
	return template.Must(template.New(IndexTemplateName).Parse(indexHTML))
}

var indexHTML = `
<!DOCTYPE html>
<html>
<head>
    <title>{{.Artist}} Lyrics Visualizer</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
        }
        .layout { display: flex; gap: 24px; }
        .sidebar { width: 220px; }
        .main { flex: 1; }
        .error { color: #b00020; }
        .success { color: #1b5e20; }
        .song { display: flex; gap: 16px; }
        textarea { width: 100%; height: 300px; }
        img.cloud { max-width: 100%; }
        table.stats td { padding: 2px 12px 2px 0; }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
        }
    </style>
</head>
<body>
    <h1>{{.Artist}} Lyrics Visualizer</h1>
    <div class="layout">
        <div class="sidebar">
            <h3>How to Use</h3>
            <ol>
                <li>Enter a song title</li>
                <li>Click Analyze Song</li>
                <li>Click Fetch Lyrics for the word cloud</li>
            </ol>
            <h3>Popular Songs</h3>
            {{range .PopularSongs}}
            <form method="post" action="/analyze"><input type="hidden" name="title" value="{{.}}"><button type="submit">{{.}}</button></form>
            {{end}}
        </div>
        <div class="main">
            <form method="post">
                <input type="text" name="title" value="{{.Title}}" placeholder="e.g., Love Story, Shake It Off, Anti-Hero...">
                <button type="submit" formaction="/analyze">Analyze Song</button>
                <button type="submit" formaction="/lyrics">Fetch Lyrics</button>
            </form>
            {{if .Message}}<p class="{{if .IsError}}error{{else}}success{{end}}">{{.Message}}</p>{{end}}

            {{with .Song}}
            <div class="song">
                {{if .ImageURL}}<img src="{{.ImageURL}}" width="200" alt="song art">{{end}}
                <div>
                    <h2>{{.Title}}</h2>
                    <p><b>Artist:</b> {{.PrimaryArtistName}}</p>
                    <p><b>Release Date:</b> {{if .ReleaseDateDisplay}}{{.ReleaseDateDisplay}}{{else}}Unknown{{end}}</p>
                    {{if .URL}}<p><a href="{{.URL}}">View on Genius</a></p>{{end}}
                </div>
            </div>
            <p><i>{{$.Notice}}</i></p>
            {{end}}

            {{if .HasResult}}
            <h2>Statistics</h2>
            <table class="stats">
                <tr><td>Word count</td><td>{{.Stats.TotalTokens}}</td></tr>
                <tr><td>Unique words</td><td>{{.Stats.UniqueTokens}}</td></tr>
                <tr><td>Lexical diversity</td><td>{{.Stats.LexicalDiversity}}</td></tr>
                <tr><td>Average word length</td><td>{{.Stats.AverageLength}}</td></tr>
            </table>
            <h3>Top words</h3>
            <ol>{{range .Stats.Top}}<li>{{.Word}} ({{.Count}})</li>{{end}}</ol>

            <h2>Word Cloud</h2>
            <img class="cloud" src="/wordcloud.png?v={{.Version}}" alt="word cloud">

            <h2>Lyrics for '{{.LyricsTitle}}'</h2>
            <textarea readonly>{{.Lyrics}}</textarea>
            {{end}}
        </div>
    </div>
</body>
</html>`

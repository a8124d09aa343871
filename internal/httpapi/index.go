package httpapi

import (
	"html/template"
	"net/http"

	"github.com/zagzy8776/realssa-news-agg/internal/logging"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>RealSSA RSS API</title></head>
<body>
<h1>RealSSA RSS News Feed API</h1>
<p>Aggregating {{.FeedCount}} feeds. {{.ItemCount}} items in the current snapshot.</p>
<h2>Endpoints</h2>
<ul>
<li><a href="/news-feed">/news-feed</a> - Get aggregated news feed (JSON)</li>
<li><a href="/notifications">/notifications</a> - Get latest breaking news (last {{.Window}})</li>
<li><a href="/sources">/sources</a> - List configured feeds</li>
<li><a href="/health">/health</a> - Health check</li>
</ul>
<h2>Categories</h2>
<p>{{range $i, $c := .Categories}}{{if $i}}, {{end}}{{$c}}{{end}}</p>
<h2>Countries</h2>
<p>{{range $i, $c := .Countries}}{{if $i}}, {{end}}{{$c}}{{end}}</p>
</body>
</html>
`))

type indexData struct {
	FeedCount  int
	ItemCount  int
	Window     string
	Categories []string
	Countries  []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		FeedCount:  s.registry.Len(),
		ItemCount:  s.snapshots.Current().Len(),
		Window:     s.opts.NotificationWindow.String(),
		Categories: s.registry.Categories(),
		Countries:  s.registry.Countries(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Warn("Failed to render index", logging.WithField("error", err.Error()))
	}
}

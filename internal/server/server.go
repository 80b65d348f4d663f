// Package server provides the web surface: an HTML form for interactive
// fetching, a JSON API, and a download endpoint that returns the upstream
// body byte-identical.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cosmik-network/citefetch/internal/citation"
	"github.com/cosmik-network/citefetch/internal/citoid"
	"github.com/cosmik-network/citefetch/internal/classify"
	"github.com/cosmik-network/citefetch/internal/translator"
)

// Server holds the clients shared by all handlers. The translator client
// is nil when no credentials are configured, which hides comparison mode.
type Server struct {
	citoid        *citoid.Client
	translator    *translator.Client
	defaultFormat citation.Format
}

// New creates a Server. translatorClient may be nil.
func New(citoidClient *citoid.Client, translatorClient *translator.Client, defaultFormat citation.Format) *Server {
	if defaultFormat == "" {
		defaultFormat = citation.FormatZotero
	}
	return &Server{
		citoid:        citoidClient,
		translator:    translatorClient,
		defaultFormat: defaultFormat,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("index").Parse(indexTemplate)))

	r.GET("/", s.handleIndex)
	r.GET("/api/citation", s.handleCitation)
	r.GET("/download", s.handleDownload)

	return r
}

// SourceOutcome is the per-source portion of a fetch response. Exactly
// one of Error or the response fields is meaningful; an upstream non-2xx
// keeps its status and verbatim body here.
type SourceOutcome struct {
	Source      citation.Source `json:"source"`
	OK          bool            `json:"ok"`
	StatusCode  int             `json:"status_code,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	RequestURL  string          `json:"request_url,omitempty"`
	Body        string          `json:"body,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// FetchResponse is the JSON API response for one query.
type FetchResponse struct {
	Input   string          `json:"input"`
	Kind    classify.Kind   `json:"kind"`
	Format  citation.Format `json:"format"`
	Results []SourceOutcome `json:"results"`
}

// fetch runs the Citoid call and, when requested and configured, the
// translator call. The calls are sequential and independent: a failure
// of one source never suppresses the other's outcome.
func (s *Server) fetch(ctx context.Context, d classify.Decision, format citation.Format, compare bool) []SourceOutcome {
	outcomes := []SourceOutcome{s.outcome(citation.SourceCitoid, func() (*citation.Result, error) {
		return s.citoid.Fetch(ctx, d.Value, format)
	})}

	if compare && s.translator != nil {
		outcomes = append(outcomes, s.outcome(citation.SourceTranslator, func() (*citation.Result, error) {
			return s.translator.Fetch(ctx, d)
		}))
	}
	return outcomes
}

func (s *Server) outcome(source citation.Source, call func() (*citation.Result, error)) SourceOutcome {
	res, err := call()
	if err != nil {
		return SourceOutcome{Source: source, Error: err.Error()}
	}
	return SourceOutcome{
		Source:      source,
		OK:          res.OK(),
		StatusCode:  res.StatusCode,
		ContentType: res.ContentType,
		RequestURL:  res.RequestURL,
		Body:        res.PrettyBody(),
	}
}

// parseQuery validates the common query parameters.
func (s *Server) parseQuery(c *gin.Context) (classify.Decision, citation.Format, bool, error) {
	d, err := classify.Classify(c.Query("q"))
	if err != nil {
		return classify.Decision{}, "", false, fmt.Errorf("enter a URL or DOI")
	}

	format := s.defaultFormat
	if f := c.Query("format"); f != "" {
		format, err = citation.ParseFormat(f)
		if err != nil {
			return classify.Decision{}, "", false, err
		}
	}

	compare := c.Query("compare") != "" && s.translator != nil
	return d, format, compare, nil
}

func (s *Server) handleCitation(c *gin.Context) {
	d, format, compare, err := s.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, FetchResponse{
		Input:   d.Value,
		Kind:    d.Kind,
		Format:  format,
		Results: s.fetch(c.Request.Context(), d, format, compare),
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	d, format, _, err := s.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var res *citation.Result
	if c.Query("source") == string(citation.SourceTranslator) {
		if s.translator == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "translator server not configured"})
			return
		}
		res, err = s.translator.Fetch(c.Request.Context(), d)
	} else {
		res, err = s.citoid.Fetch(c.Request.Context(), d.Value, format)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if !res.OK() {
		// Surface the upstream status and body verbatim.
		c.Data(res.StatusCode, res.ContentType, res.Body)
		return
	}

	filename := "citation" + format.Ext()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	contentType := res.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// Byte-identical to the upstream response; no re-serialization.
	c.Data(http.StatusOK, contentType, res.Body)
}

// indexView is the template payload for the form page.
type indexView struct {
	Query      string
	Format     citation.Format
	Formats    []citation.Format
	CanCompare bool
	Compare    bool
	Error      string
	Results    []SourceOutcome
}

func (s *Server) handleIndex(c *gin.Context) {
	view := indexView{
		Format:     s.defaultFormat,
		Formats:    citation.Formats,
		CanCompare: s.translator != nil,
	}

	if q := c.Query("q"); q != "" {
		view.Query = q
		d, format, compare, err := s.parseQuery(c)
		if err != nil {
			view.Error = err.Error()
		} else {
			view.Format = format
			view.Compare = compare
			view.Results = s.fetch(c.Request.Context(), d, format, compare)
		}
	}

	c.HTML(http.StatusOK, "index", view)
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Citation Metadata Fetcher</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; padding: 0 1em; }
pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
.error { color: #a00; }
.source { border-top: 1px solid #ccc; margin-top: 1.5em; padding-top: 0.5em; }
.meta { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Citation Metadata Fetcher</h1>
<p>Enter a URL or DOI to fetch citation metadata from Wikipedia's Citoid service.</p>
<form method="get" action="/">
  <input type="text" name="q" size="60" value="{{.Query}}" placeholder="https://example.com or 10.1038/nature12373">
  <select name="format">
    {{range .Formats}}<option value="{{.}}"{{if eq . $.Format}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{if .CanCompare}}<label><input type="checkbox" name="compare" value="1"{{if .Compare}} checked{{end}}> compare</label>{{end}}
  <button type="submit">Fetch Citation</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{range .Results}}
<div class="source">
  <h2>{{.Source}}</h2>
  {{if .Error}}
  <p class="error">{{.Error}}</p>
  {{else}}
  <p class="meta">HTTP {{.StatusCode}} &middot; {{.RequestURL}}</p>
  <pre>{{.Body}}</pre>
  {{if .OK}}<p><a href="/download?q={{$.Query}}&amp;format={{$.Format}}&amp;source={{.Source}}">Download</a></p>{{end}}
  {{end}}
</div>
{{end}}
</body>
</html>
`

package site

import (
	"context"
	"html"
	"net/http"

	"github.com/valyala/fasttemplate"

	"github.com/jtetteh/portfolio-cli/internal/cache"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

var indexTemplate = fasttemplate.New(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{name}}</title>
<meta name="description" content="{{headline}}">
</head>
<body>
<h1>{{name}}</h1>
<p>{{headline}}</p>
<p>{{summary}}</p>
<ul>
<li><a href="/api/profile">profile</a></li>
<li><a href="/api/projects">projects</a></li>
<li><a href="/api/experience">experience</a></li>
<li><a href="/api/education">education</a></li>
<li><a href="/api/skills">skills</a></li>
<li><a href="/api/certifications">certifications</a></li>
</ul>
</body>
</html>
`, "{{", "}}")

// index renders a minimal landing page. Profile lookup failures degrade to
// a generic title instead of erroring out.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	name, headline, summary := "Portfolio", "", ""
	u, err := fetch(r.Context(), s, cache.KeyProfile, func(ctx context.Context) (*models.User, error) {
		return s.pc.Auth.Owner(ctx)
	})
	if err != nil {
		s.log.Warn("index profile lookup failed", "error", err)
	} else if u != nil {
		if u.FullName != "" {
			name = u.FullName
		}
		headline, summary = u.Headline, u.Summary
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// profile fields are user-entered text, not markup
	page := indexTemplate.ExecuteString(map[string]any{
		"name":     html.EscapeString(name),
		"headline": html.EscapeString(headline),
		"summary":  html.EscapeString(summary),
	})
	if _, err := w.Write([]byte(page)); err != nil {
		s.log.Error("failed to write index", "error", err)
	}
}

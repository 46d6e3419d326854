// Package email is the downstream collaborator: it renders the digest as
// HTML and delivers it over the SendGrid REST API. The core pipeline makes no
// assumption about either.
package email

import (
	"fmt"
	"html/template"
	"strings"

	"dailybrief/internal/digest"
)

const digestTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Georgia, serif; max-width: 680px; margin: 0 auto; color: #222;">
  <h1 style="border-bottom: 2px solid #222; padding-bottom: 8px;">Daily News Brief</h1>
  <p style="color: #666;">{{.DateStr}} &middot; {{.Count}} article{{if ne .Count 1}}s{{end}}</p>
  {{range .Sections}}
  <h2 style="margin-top: 28px; color: #444;">{{.Category}}</h2>
    {{range .Articles}}
    <div style="margin-bottom: 20px;">
      <h3 style="margin-bottom: 4px;"><a href="{{.URL}}" style="color: #1a0dab;">{{.Title}}</a></h3>
      <p style="color: #888; font-size: 13px; margin: 0 0 6px 0;">{{.SourceName}}{{if not .PublishedAt.IsZero}} &middot; {{.PublishedAt.Format "Jan 2, 2006"}}{{end}}</p>
      <p style="margin: 0;">{{.Summary}}</p>
    </div>
    {{end}}
  {{end}}
  {{if eq .Count 0}}<p>No articles made it into today's brief.</p>{{end}}
</body>
</html>`

var tmpl = template.Must(template.New("digest").Parse(digestTemplate))

// Render produces the digest email. categoryOrder controls section order.
func Render(d digest.Digest, categoryOrder []string) (string, error) {
	data := struct {
		DateStr  string
		Count    int
		Sections []digest.Section
	}{
		DateStr:  d.GeneratedAt.Format("Monday, January 2, 2006"),
		Count:    len(d.Articles),
		Sections: d.ByCategory(categoryOrder),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}

// Subject builds the email subject line for a digest.
func Subject(d digest.Digest) string {
	return "Daily News Brief - " + d.GeneratedAt.Format("Monday, January 2, 2006")
}

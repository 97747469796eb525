package sendmatchsummary

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"rto-workers/internal/models"
)

type summaryView struct {
	FirstName string
	Query     models.Query
	Top       *models.Provider
	RunnersUp models.Ranking
	Total     int
}

var templateFuncs = template.FuncMap{
	"price": formatPrice,
	"join":  strings.Join,
}

var (
	subjectTemplate = template.Must(template.New("subject").Funcs(templateFuncs).Parse(
		`{{if .Top}}Your top training provider: {{.Top.Name}}{{else}}Your training provider matches{{end}}`))

	textTemplate = template.Must(template.New("text").Funcs(templateFuncs).Parse(`Hi {{if .FirstName}}{{.FirstName}}{{else}}there{{end}},

{{if .Top -}}
Based on your answers ({{.Query.DeliveryPreference}}, {{.Query.Region}}) your best match is:

  {{.Top.Name}} - rated {{printf "%.1f" .Top.Rating}}, {{price .Top.Price}}
  {{.Top.DetailURL}}
{{range .RunnersUp}}
Also worth a look: {{.Name}} - rated {{printf "%.1f" .Rating}}, {{price .Price}}
  {{.DetailURL}}
{{end}}
{{- else -}}
We could not find a provider offering {{.Query.DeliveryPreference}} training in {{.Query.Region}} yet.
Try another delivery mode, or check back soon as new providers join regularly.
{{- end}}
`))

	htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
		"price": formatPrice,
	}).Parse(`<p>Hi {{if .FirstName}}{{.FirstName}}{{else}}there{{end}},</p>
{{if .Top}}<p>Based on your answers ({{.Query.DeliveryPreference}}, {{.Query.Region}}) your best match is:</p>
<h2><a href="{{.Top.DetailURL}}">{{.Top.Name}}</a></h2>
<p>Rated {{printf "%.1f" .Top.Rating}} &middot; {{price .Top.Price}}</p>
{{if .RunnersUp}}<p>Also worth a look:</p>
<ul>{{range .RunnersUp}}<li><a href="{{.DetailURL}}">{{.Name}}</a> &middot; rated {{printf "%.1f" .Rating}}</li>{{end}}</ul>{{end}}
{{else}}<p>We could not find a provider offering {{.Query.DeliveryPreference}} training in {{.Query.Region}} yet.</p>{{end}}`))

	smsTemplate = template.Must(template.New("sms").Funcs(templateFuncs).Parse(
		`{{if .Top}}Your top training match: {{.Top.Name}} ({{printf "%.1f" .Top.Rating}}). {{.Top.DetailURL}}{{else}}No training providers match {{.Query.DeliveryPreference}} in {{.Query.Region}} yet.{{end}}`))
)

func formatPrice(p *float64) string {
	if p == nil {
		return "price on enquiry"
	}
	return fmt.Sprintf("$%.0f", *p)
}

type renderedSummary struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

func render(view summaryView) (*renderedSummary, error) {
	var out renderedSummary
	var buf bytes.Buffer

	if err := subjectTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	out.Subject = buf.String()

	buf.Reset()
	if err := textTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}
	out.Text = buf.String()

	buf.Reset()
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}
	out.HTML = buf.String()

	buf.Reset()
	if err := smsTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render sms: %w", err)
	}
	out.SMS = buf.String()

	return &out, nil
}

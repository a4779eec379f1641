// internal/workers/communication/notify-match/templates.go
package notifymatch

import (
	"bytes"
	"fmt"
	"text/template"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

// TemplateData is what notification templates can reference.
type TemplateData struct {
	CandidateID   string
	JobID         string
	JobTitle      string
	ApplicationID string
	RecruiterName string
	OverallScore  int
	Rating        string
	Notes         string
}

// Position names the job for humans, falling back to its id.
func (d TemplateData) Position() string {
	if d.JobTitle != "" {
		return d.JobTitle
	}
	return "job " + d.JobID
}

// DefaultTemplates returns the built-in recruiter templates.
func DefaultTemplates() []models.NotificationTemplate {
	return []models.NotificationTemplate{
		{
			ID:      "strong-match-email",
			Type:    TypeStrongMatch,
			Subject: "Strong candidate match for {{.Position}}",
			Body: "Hello{{if .RecruiterName}} {{.RecruiterName}}{{end}},\n\n" +
				"Candidate {{.CandidateID}} scored {{.OverallScore}}/100 ({{.Rating}}) for {{.Position}}.\n" +
				"{{if .Notes}}{{.Notes}}\n{{end}}" +
				"{{if .ApplicationID}}Application: {{.ApplicationID}}\n{{end}}",
			Version: "1",
		},
		{
			ID:      "strong-match-sms",
			Type:    TypeStrongMatchSMS,
			Body:    "Match alert: candidate {{.CandidateID}} scored {{.OverallScore}} for {{.Position}}.",
			Version: "1",
		},
	}
}

type compiledTemplate struct {
	subject *template.Template
	body    *template.Template
}

func compileTemplates(list []models.NotificationTemplate) (map[string]compiledTemplate, error) {
	out := make(map[string]compiledTemplate, len(list))
	for _, t := range list {
		subject, err := template.New(t.ID + ".subject").Option("missingkey=zero").Parse(t.Subject)
		if err != nil {
			return nil, fmt.Errorf("parse subject of template %s: %w", t.ID, err)
		}
		body, err := template.New(t.ID + ".body").Option("missingkey=zero").Parse(t.Body)
		if err != nil {
			return nil, fmt.Errorf("parse body of template %s: %w", t.ID, err)
		}
		out[t.Type] = compiledTemplate{subject: subject, body: body}
	}
	return out, nil
}

func (h *Handler) render(kind string, data TemplateData) (subject, body string, err error) {
	t, ok := h.templates[kind]
	if !ok {
		return "", "", errors.NewTemplateNotFoundError(kind)
	}
	var sb, bb bytes.Buffer
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", errors.NewInternalError(fmt.Errorf("render %s subject: %w", kind, err))
	}
	if err := t.body.Execute(&bb, data); err != nil {
		return "", "", errors.NewInternalError(fmt.Errorf("render %s body: %w", kind, err))
	}
	return sb.String(), bb.String(), nil
}

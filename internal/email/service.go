// internal/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dangerclosesec/orgaccess"
	"github.com/dangerclosesec/orgaccess/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

var templateFS = orgaccess.EmailFS

// Provider identifies supported email providers
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"

	templateRoot = "templates/emails"
)

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	From         string
	FromName     string
	Subject      string
	TemplateName string
	TemplateData interface{}
}

// Template is an html/plaintext pair; every message ships both parts.
type Template struct {
	HTML      *template.Template
	Plaintext *template.Template
}

// Render executes both parts against the same data.
func (t *Template) Render(data interface{}) (html, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := t.HTML.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("rendering html part: %w", err)
	}
	if err := t.Plaintext.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("rendering plaintext part: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// Service sends templated notifications through the configured provider.
// Callers treat sends as fire-and-forget; failures are theirs to log.
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
	Templates      map[string]*Template
}

// NewEmailService loads the embedded template pairs and prepares the
// provider client.
func NewEmailService(config *config.Config, provider Provider) (*Service, error) {
	s := &Service{
		config:    config,
		provider:  provider,
		Templates: make(map[string]*Template),
	}

	if provider == ProviderSendgrid {
		s.sendgridClient = sendgrid.NewSendClient(config.Sendgrid.APIKey)
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

// loadTemplates walks templates/emails/<name>/ and parses each pair. A
// directory missing either part is a packaging error, caught at startup.
func (s *Service) loadTemplates() error {
	entries, err := templateFS.ReadDir(templateRoot)
	if err != nil {
		return fmt.Errorf("reading template root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		dir := templateRoot + "/" + name

		htmlTmpl, err := template.ParseFS(templateFS, dir+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s html template: %w", name, err)
		}
		textTmpl, err := template.ParseFS(templateFS, dir+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s plaintext template: %w", name, err)
		}

		s.Templates[name] = &Template{HTML: htmlTmpl, Plaintext: textTmpl}
	}

	if len(s.Templates) == 0 {
		return fmt.Errorf("no email templates found under %s", templateRoot)
	}

	return nil
}

// SendEmail renders the named template and delivers it through the
// configured provider.
func (s *Service) SendEmail(data EmailData) error {
	tmpl, ok := s.Templates[data.TemplateName]
	if !ok {
		return fmt.Errorf("template %s not found", data.TemplateName)
	}

	htmlContent, textContent, err := tmpl.Render(data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering template %s: %w", data.TemplateName, err)
	}

	switch s.provider {
	case ProviderSendgrid:
		if data.From == "" {
			data.From = s.config.Sendgrid.From
		}
		return s.sendWithSendgrid(data, htmlContent, textContent)
	case ProviderSMTP:
		if data.From == "" {
			data.From = s.config.SMTP.From
		}
		if data.From == "" {
			return fmt.Errorf("missing sender email address (From)")
		}
		return s.sendWithSMTP(data, htmlContent, textContent)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

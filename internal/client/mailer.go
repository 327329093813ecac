package client

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	appConfig "taskboard-api/internal/config"
)

// Mailer defines the interface for outbound email
type Mailer interface {
	IsConfigured() bool
	SendEmail(to []string, subject, body string) error
	SendWelcomeEmail(to, userName string) error
	SendBoardJoinedEmail(to, ownerName, memberName, boardTitle string) error
}

// mailerImpl sends email over SMTP
type mailerImpl struct {
	cfg    appConfig.SMTPConfig
	server string
	auth   smtp.Auth
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg appConfig.SMTPConfig) Mailer {
	return &mailerImpl{
		cfg:    cfg,
		server: cfg.Host + ":" + cfg.Port,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

// IsConfigured returns true if SMTP settings are present
func (m *mailerImpl) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.Port != "" && m.cfg.From != ""
}

// SendEmail sends a plain text email
func (m *mailerImpl) SendEmail(to []string, subject, body string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		strings.Join(to, ", "),
		from,
		subject,
		body,
	))

	return smtp.SendMail(m.server, m.auth, m.cfg.From, to, msg)
}

// SendWelcomeEmail sends the post-signup welcome email
func (m *mailerImpl) SendWelcomeEmail(to, userName string) error {
	data := welcomeData{UserName: userName}
	html, err := renderTemplate(welcomeEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("render welcome template: %w", err)
	}
	return m.sendHTMLEmail([]string{to}, "Welcome to TaskBoard", html)
}

// SendBoardJoinedEmail notifies a board owner that someone joined their board
func (m *mailerImpl) SendBoardJoinedEmail(to, ownerName, memberName, boardTitle string) error {
	data := boardJoinedData{
		OwnerName:  ownerName,
		MemberName: memberName,
		BoardTitle: boardTitle,
	}
	html, err := renderTemplate(boardJoinedEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("render board joined template: %w", err)
	}
	subject := fmt.Sprintf("%s joined %q", memberName, boardTitle)
	return m.sendHTMLEmail([]string{to}, subject, html)
}

func (m *mailerImpl) sendHTMLEmail(to []string, subject, htmlBody string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	boundary := "boundary-taskboard"

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	fmt.Fprintf(&msg, "\r\n")

	// Plain text part (fallback)
	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "Please view this email in an HTML-capable email client.\r\n")
	fmt.Fprintf(&msg, "\r\n")

	// HTML part
	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", htmlBody)
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return smtp.SendMail(m.server, m.auth, m.cfg.From, to, msg.Bytes())
}

type welcomeData struct {
	UserName string
}

type boardJoinedData struct {
	OwnerName  string
	MemberName string
	BoardTitle string
}

func renderTemplate(tmpl string, data interface{}) (string, error) {
	t := template.Must(template.New("email").Parse(tmpl))
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to TaskBoard</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { border-bottom: 2px solid #0066cc; padding-bottom: 10px; margin-bottom: 20px; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>TaskBoard</h1>
    </div>

    <h2>Welcome, {{.UserName}}!</h2>

    <p>Your account is ready. Create a board, invite your team, and start moving tasks.</p>

    <div class="footer">
        <p>If you didn't create an account with TaskBoard, you can safely ignore this email.</p>
    </div>
</body>
</html>`

const boardJoinedEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New board member</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { border-bottom: 2px solid #0066cc; padding-bottom: 10px; margin-bottom: 20px; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>TaskBoard</h1>
    </div>

    <h2>Hi {{.OwnerName}},</h2>

    <p><strong>{{.MemberName}}</strong> just joined your board <strong>{{.BoardTitle}}</strong>.</p>

    <div class="footer">
        <p>You receive this because you own the board.</p>
    </div>
</body>
</html>`

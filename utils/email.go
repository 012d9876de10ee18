package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	from := m.From
	if from == "" {
		from = m.Username
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", MaskEmail(to), err)
	}
	return nil
}

// LogMailer stands in when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[MOCK EMAIL] to:%s subject:%s", MaskEmail(to), subject)
	return nil
}

// NewMailer returns an SMTP mailer, or a LogMailer when any credential is missing.
func NewMailer(host string, port int, username, password, from string) Mailer {
	if host == "" || username == "" || password == "" {
		log.Println("⚠️  SMTP not configured, emails will be logged only")
		return LogMailer{}
	}
	return SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// RecordingMailer keeps sent mail in memory.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func (r *RecordingMailer) Send(to, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (r *RecordingMailer) Last() (SentMail, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return SentMail{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}

var actionEmail = template.Must(template.New("action").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Intro}}</p>
  <p><a href="{{.Link}}" style="display:inline-block;padding:12px 20px;background:#0b74ff;color:#fff;text-decoration:none;border-radius:6px">{{.Button}}</a></p>
  <p style="font-size:12px;color:#666">If the button does not work, copy this link: {{.Link}}</p>
  <p style="font-size:12px;color:#666">If you did not request this, you can ignore this email.</p>
</div>
</body>
</html>`))

type actionEmailData struct {
	Title  string
	Name   string
	Intro  string
	Link   string
	Button string
}

func renderAction(d actionEmailData) (string, error) {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = "there"
	}
	var buf bytes.Buffer
	if err := actionEmail.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func VerificationEmail(name, link string) (subject, body string, err error) {
	body, err = renderAction(actionEmailData{
		Title:  "Confirm your email",
		Name:   name,
		Intro:  "Please confirm your email address to finish setting up your account.",
		Link:   link,
		Button: "Confirm email",
	})
	return "Confirm your email", body, err
}

func PasswordResetEmail(name, link string) (subject, body string, err error) {
	body, err = renderAction(actionEmailData{
		Title:  "Reset your password",
		Name:   name,
		Intro:  "We received a request to reset your password. The link is valid for one hour.",
		Link:   link,
		Button: "Reset password",
	})
	return "Reset your password", body, err
}

package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// Template inline de propósito: o serviço roda em container mínimo,
// sem diretório de templates pra carregar em runtime.
var notificationTmpl = template.Must(template.New("notification").Parse(`
<html>
  <body style="font-family: sans-serif;">
    <h2>{{.Title}}</h2>
    <p>{{.Body}}</p>
    <hr>
    <small>HudLab Ops — mensagem automática, não responda.</small>
  </body>
</html>`))

// SendNotification espelha uma notificação in-app por email.
func (s *EmailSender) SendNotification(to, title, body string) error {
	var html bytes.Buffer
	if err := notificationTmpl.Execute(&html, notificationEmailData{Title: title, Body: body}); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "[HudLab] "+title)
	m.SetBody("text/html", html.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

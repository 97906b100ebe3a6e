package services

import (
	"fmt"
	"log"
	"net/smtp"

	"linkup-backend/config"
)

// Mailer отправляет служебные письма (подтверждение email).
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.cfg.MailFrom, to, subject, body)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return smtp.SendMail(addr, auth, m.cfg.MailFrom, []string{to}, []byte(message))
}

// LogMailer пишет письма в лог вместо отправки. Используется, когда
// SMTP не настроен.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("письмо для %s: %s\n%s", to, subject, body)
	return nil
}

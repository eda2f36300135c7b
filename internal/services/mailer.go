package services

import (
	"gopkg.in/gomail.v2"
)

// MailSender is what the reservation flow needs from the mail layer.
type MailSender interface {
	Send(to, subject, body string) error
}

// Mailer delivers plaintext mail over the configured SMTP relay. Each Send
// dials a fresh connection; volume here is one message per booking.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
}

func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return d.DialAndSend(msg)
}

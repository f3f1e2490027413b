package services

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// Mailer relays transactional email through an SMTP host.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(host string, port int, username, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Send dispatches a single HTML email. replyTo is optional; pass it
// when replies should go somewhere other than the sender address.
func (m *Mailer) Send(subject, htmlBody, to, from string, replyTo ...string) error {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if len(replyTo) > 0 && replyTo[0] != "" {
		if err := msg.ReplyTo(replyTo[0]); err != nil {
			return fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		log.Printf("mailer: send to %s failed: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

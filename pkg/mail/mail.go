// Package mail sends plain-text transactional mail over SMTP.
//
// The storefront sends exactly one kind of message today: the order
// confirmation dispatched when a delivery batch is validated. Sending is
// best effort; a mail failure never fails the request that triggered it.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
)

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers messages. Swapped for a recorder in tests.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers through the configured SMTP relay.
type SMTPSender struct{}

func (SMTPSender) Send(msg Message) error {
	host := config.MailHost()
	addr := host + ":" + config.MailPort()
	from := config.MailFrom()

	var auth smtp.Auth
	if user := config.MailUser(); user != "" {
		auth = smtp.PlainAuth("", user, config.MailPass(), host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(addr, auth, from, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

// Default is the process-wide sender.
var Default Sender = SMTPSender{}

// Send delivers msg through the default sender, logging failures instead of
// propagating them.
func Send(msg Message) {
	if err := Default.Send(msg); err != nil {
		logger.Warn("mail: delivery failed", "to", strings.Join(msg.To, ","), "subject", msg.Subject, "error", err)
	}
}

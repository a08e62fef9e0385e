package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/bnxs304/aniarchive-api/internal/app"
)

// SMTPDispatcher sends the registration confirmation over plain SMTP.
// Delivery is advisory; callers log and ignore failures.
type SMTPDispatcher struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPDispatcher(host string, port int, from, username, password string) *SMTPDispatcher {
	d := &SMTPDispatcher{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
	if username != "" {
		d.auth = smtp.PlainAuth("", username, password, host)
	}
	return d
}

func (d *SMTPDispatcher) Notify(ctx context.Context, n app.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(d.from, n)
	if err := smtp.SendMail(d.addr, d.auth, d.from, []string{n.To}, msg); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

func buildMessage(from string, n app.Notification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", n.To)
	fmt.Fprintf(&b, "Subject: You're in the %s raffle!\r\n", n.EventTitle)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Thanks for registering for %s on %s.\r\n\r\n", n.EventTitle, n.EventDate)
	fmt.Fprintf(&b, "Your raffle code is %s. Keep it handy at the event.\r\n\r\n", n.RaffleCode)
	if n.VenueName != "" {
		fmt.Fprintf(&b, "Venue: %s", n.VenueName)
		if n.VenueAddress != "" {
			fmt.Fprintf(&b, ", %s", n.VenueAddress)
		}
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

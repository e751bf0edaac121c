package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"placement-prep/internal/config"
	"placement-prep/internal/domain/interview"
)

const bookingSubject = "New Mock Interview Slot Booked!"

// Booking times are shown to admins in India Standard Time.
var ist = time.FixedZone("IST", 5*60*60+30*60)

var bookingTmpl = template.Must(template.New("booking").Parse(`<h1>New Booking Confirmation</h1>
<p>A new mock interview slot has been booked.</p>
<ul>
	<li><strong>User:</strong> {{.Username}} ({{.Email}})</li>
	<li><strong>Time:</strong> {{.Time}}</li>
</ul>
<p>Please schedule a meeting and update the booking.</p>
`))

// sendTimeout bounds a send whose context carries no deadline.
const sendTimeout = 30 * time.Second

type sendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer emails the admin inbox when a slot is booked.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	to   string
	send sendFunc
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.From,
		to:   cfg.AdminAddress,
		send: sendMail,
	}
}

// NotifyBooking gives up when ctx ends, including while the server is mid-conversation.
func (m *SMTPMailer) NotifyBooking(ctx context.Context, evt interview.BookedEvent) error {
	if m == nil || m.send == nil {
		return errors.New("nil mailer")
	}
	if strings.TrimSpace(m.to) == "" {
		return errors.New("mailer has no recipient")
	}

	msg, err := m.bookingMessage(evt)
	if err != nil {
		return err
	}
	if err := m.send(ctx, m.addr, m.auth, m.from, []string{m.to}, msg); err != nil {
		return fmt.Errorf("send booking email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) bookingMessage(evt interview.BookedEvent) ([]byte, error) {
	var body bytes.Buffer
	err := bookingTmpl.Execute(&body, struct {
		Username string
		Email    string
		Time     string
	}{
		Username: evt.Username,
		Email:    evt.Email,
		Time:     evt.StartTime.In(ist).Format("02/01/2006, 3:04:05 pm"),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.from)
	fmt.Fprintf(&buf, "To: %s\r\n", m.to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", bookingSubject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

// sendMail is smtp.SendMail over a connection bound to ctx: the dial honours ctx, the
// connection deadline follows ctx's deadline, and cancellation closes the socket.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) (err error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(sendTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer func() {
		if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
	}()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if err := c.Hello("localhost"); err != nil {
		return err
	}
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

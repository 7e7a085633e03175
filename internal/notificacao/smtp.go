package notificacao

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPTransport envia por SMTP com TLS implícito (SMTPS) e auth PLAIN.
// Timeout de conexão fica no default da biblioteca.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	return &SMTPTransport{Host: host, Port: port, Username: username, Password: password}
}

// NewMsg converte Message no formato MIME da go-mail. Com anexo a mensagem
// sai multipart/mixed: o corpo é a primeira parte.
func NewMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("from %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("to %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)

	contentType := mail.TypeTextPlain
	if msg.ContentType == ContentTypeHTML {
		contentType = mail.TypeTextHTML
	}
	m.SetBodyString(contentType, msg.Body)

	for _, a := range msg.Attachments {
		err := m.AttachReader(a.Name, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}
	return m, nil
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m, err := NewMsg(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(t.Port), mail.WithSSL()}
	if t.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.Username),
			mail.WithPassword(t.Password),
		)
	}

	client, err := mail.NewClient(t.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", t.Host, t.Port, err)
	}
	return nil
}

package notificacao

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlHayahDevelopments/property-inquiry/internal/inquiry"
	"github.com/AlHayahDevelopments/property-inquiry/internal/utils"
	"go.uber.org/zap"
)

const (
	SubjectPrefix = "New Property Inquiry from "
	IntroLine     = "A new property inquiry has been submitted with the following details:"
	ClosingLine   = "Please contact the client as soon as possible."
)

var ErrDelivery = errors.New("notificacao: delivery failed")

// DeliveryError embrulha qualquer falha de transporte (DNS, auth, timeout).
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("deliver inquiry: %v", e.Err) }

func (e *DeliveryError) Unwrap() []error { return []error{ErrDelivery, e.Err} }

// Message é o email já renderizado: um corpo (texto ou HTML) mais anexos.
type Message struct {
	From        string
	To          string
	Subject     string
	ContentType string
	Body        string
	Attachments []Attachment
}

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

const ContentTypeJSON = "application/json"

// AttachmentName é o nome do anexo com o registro do cliente.
func AttachmentName(clientName string) string {
	return "inquiry_" + utils.SanitizeName(clientName) + ".json"
}

// Transport entrega uma mensagem. Implementações: SMTPTransport e fakes de teste.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

type Notifier struct {
	transport Transport
	renderer  Renderer
	from      string
	to        string
	logger    *zap.Logger
}

func NewNotifier(transport Transport, renderer Renderer, from, to string, logger *zap.Logger) *Notifier {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		transport: transport,
		renderer:  renderer,
		from:      from,
		to:        to,
		logger:    logger,
	}
}

func Subject(clientName string) string {
	return SubjectPrefix + clientName
}

// Build monta a mensagem sem enviar.
func (n *Notifier) Build(s inquiry.Submission) (Message, error) {
	rec := s.Record()
	contentType, body, err := n.renderer.Render(rec)
	if err != nil {
		return Message{}, fmt.Errorf("render body: %w", err)
	}
	record, err := inquiry.EncodeRecord(rec)
	if err != nil {
		return Message{}, fmt.Errorf("encode record: %w", err)
	}
	return Message{
		From:        n.from,
		To:          n.to,
		Subject:     Subject(rec.ClientName),
		ContentType: contentType,
		Body:        body,
		Attachments: []Attachment{{
			Name:        AttachmentName(rec.ClientName),
			ContentType: ContentTypeJSON,
			Data:        record,
		}},
	}, nil
}

// Notify envia a submissão de forma síncrona. Qualquer falha vira false,
// sem retry.
func (n *Notifier) Notify(ctx context.Context, s inquiry.Submission) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("inquiry email panicked", zap.Any("panic", r))
			ok = false
		}
	}()

	msg, err := n.Build(s)
	if err != nil {
		n.logger.Warn("failed to build inquiry email", zap.Error(err))
		return false
	}

	if n.transport == nil {
		n.logger.Warn("inquiry email not sent", zap.Error(&DeliveryError{Err: errors.New("no transport configured")}))
		return false
	}

	if err := n.transport.Send(ctx, msg); err != nil {
		n.logger.Warn("failed to send inquiry email",
			zap.String("to", msg.To),
			zap.Error(&DeliveryError{Err: err}))
		return false
	}

	n.logger.Info("inquiry email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return true
}

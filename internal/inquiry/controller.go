package inquiry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	MsgSuccess       = "Form submitted successfully! A copy has been sent to our team."
	MsgMissingFields = "Please fill in all required fields: Client Name and Phone Number"
)

type State int

const (
	AwaitingInput State = iota
	Submitted
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "AwaitingInput"
	case Submitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// Notifier envia a submissão para a caixa de vendas. Nunca retorna erro.
type Notifier interface {
	Notify(ctx context.Context, s Submission) bool
}

// Outcome é o resultado de um Submit.
type Outcome struct {
	State   State
	Message string
	// Err é sempre um *ValidationError quando presente.
	Err    error
	Record *Record
}

// Controller é a máquina de estados de uma sessão do formulário.
type Controller struct {
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	state  State
	record *Record
}

func NewController(repo Repository, notifier Notifier, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		state:    AwaitingInput,
	}
}

// WithClock define o "hoje" usado nos defaults do rascunho.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

func (c *Controller) State() State { return c.state }

// Held devolve o registro exibido na confirmação.
func (c *Controller) Held() (Record, bool) {
	if c.record == nil {
		return Record{}, false
	}
	return *c.record, true
}

// Restore reconstrói o estado Submitted a partir do que ficou na sessão.
func (c *Controller) Restore(rec Record) {
	c.state = Submitted
	c.record = &rec
}

// Submit valida, grava, notifica e passa para Submitted.
// Falhas de gravação e de envio nunca chegam ao usuário.
func (c *Controller) Submit(ctx context.Context, d Draft) Outcome {
	if c.state == Submitted {
		return Outcome{State: c.state, Message: MsgSuccess, Record: c.record}
	}

	if res := Validate(d); !res.Accepted {
		return Outcome{State: c.state, Message: MsgMissingFields, Err: res.Err()}
	}

	sub := d.Submission(c.now())

	if c.repo != nil {
		handle, err := c.repo.Persist(ctx, sub)
		if err != nil {
			var se *StorageError
			if errors.As(err, &se) {
				c.logger.Warn("failed to save inquiry record",
					zap.String("op", se.Op),
					zap.String("path", se.Path),
					zap.Error(se.Err))
			} else {
				c.logger.Warn("failed to save inquiry record", zap.Error(err))
			}
		} else {
			c.logger.Info("inquiry record saved", zap.String("record_id", handle.ID))
		}
	}

	if c.notifier != nil {
		// a tela não reflete falha de envio
		_ = c.notifier.Notify(ctx, sub)
	}

	rec := sub.Record()
	c.record = &rec
	c.state = Submitted

	return Outcome{State: c.state, Message: MsgSuccess, Record: c.record}
}

// Reset volta para AwaitingInput e descarta a submissão guardada.
func (c *Controller) Reset() {
	c.state = AwaitingInput
	c.record = nil
}

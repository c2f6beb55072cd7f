package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para envio del email de resultados.
type Sender interface {
	SendResult(ctx context.Context, toEmail string, msg ResultEmail) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendResult(_ context.Context, _ string, _ ResultEmail) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

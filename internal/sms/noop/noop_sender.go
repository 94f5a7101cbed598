package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"miklean/internal/port"
)

type noopSender struct {
	log *logrus.Logger
}

// NewNoopSender creates an SMSSender that only logs the messages it would send.
func NewNoopSender(log *logrus.Logger) port.SMSSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendSMS(_ context.Context, to, body string) error {
	s.log.WithField("to", to).Infof("[NOOP SMS] %s", body)
	return nil
}

package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"miklean/internal/port"
)

type noopSender struct {
	log *logrus.Logger
}

// NewNoopSender creates an EmailSender that only logs the links it would send.
func NewNoopSender(log *logrus.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendEstimateEmail(_ context.Context, msg port.EstimateEmail) error {
	s.log.WithFields(logrus.Fields{
		"to":         msg.ToEmail,
		"accept_url": msg.AcceptURL,
	}).Info("[NOOP EMAIL] estimate link")
	return nil
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	s.log.WithFields(logrus.Fields{
		"to":             msg.ToEmail,
		"invoice_number": msg.InvoiceNumber,
		"view_url":       msg.ViewURL,
	}).Info("[NOOP EMAIL] invoice link")
	return nil
}

package twilio

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"miklean/internal/config"
	"miklean/internal/port"
)

// messageAPI is the subset of the Twilio REST API the sender uses.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type twilioSender struct {
	api  messageAPI
	from string
}

// NewTwilioSender creates an SMSSender backed by Twilio Programmable Messaging.
func NewTwilioSender(cfg *config.SMSConfig) (port.SMSSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio requires account_sid, auth_token and from_number")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg.FromNumber), nil
}

func newTwilioSender(api messageAPI, from string) *twilioSender {
	return &twilioSender{api: api, from: from}
}

func (s *twilioSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio CreateMessage: %w", err)
	}
	return nil
}

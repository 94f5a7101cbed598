package port

import "context"

// SMSSender defines the contract for sending text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

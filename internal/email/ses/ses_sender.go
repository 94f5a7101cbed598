package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"miklean/internal/port"
)

// emailAPI is the subset of the SES client the sender uses.
type emailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      emailAPI
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSESSender(sesv2.NewFromConfig(cfg), fromAddress, fromName), nil
}

func newSESSender(client emailAPI, fromAddress, fromName string) *sesSender {
	return &sesSender{client: client, fromAddress: fromAddress, fromName: fromName}
}

func (s *sesSender) SendEstimateEmail(ctx context.Context, msg port.EstimateEmail) error {
	subject := fmt.Sprintf("Your cleaning estimate from %s", msg.BusinessName)
	textBody := fmt.Sprintf("Hi %s,\n\n%s sent you an estimate. View and accept it here:\n%s\n\n%s",
		msg.ToName, msg.BusinessName, msg.AcceptURL, msg.BusinessName)
	htmlBody := buildEstimateHTML(msg)
	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, msg.BusinessName)
	textBody := fmt.Sprintf("Hi %s,\n\nInvoice %s for %s from %s is ready:\n%s\n",
		msg.ToName, msg.InvoiceNumber, msg.Total, msg.BusinessName, msg.ViewURL)
	if msg.PaymentInstructions != "" {
		textBody += "\nPayment options:\n" + msg.PaymentInstructions + "\n"
	}
	htmlBody := buildInvoiceHTML(msg)
	return s.send(ctx, msg.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildEstimateHTML(msg port.EstimateEmail) string {
	name := html.EscapeString(msg.ToName)
	business := html.EscapeString(msg.BusinessName)
	link := html.EscapeString(msg.AcceptURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">You have a new estimate</h2>
  <p>Hi %s,</p>
  <p>%s sent you a cleaning estimate. Review the details and accept it online:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0EA5E9; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Estimate</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, name, business, link, link, business)
}

func buildInvoiceHTML(msg port.InvoiceEmail) string {
	name := html.EscapeString(msg.ToName)
	business := html.EscapeString(msg.BusinessName)
	link := html.EscapeString(msg.ViewURL)
	payment := ""
	if msg.PaymentInstructions != "" {
		payment = fmt.Sprintf(`<p><strong>Payment options</strong></p><p style="white-space: pre-line;">%s</p>`,
			html.EscapeString(msg.PaymentInstructions))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>%s sent you an invoice for <strong>%s</strong>.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0EA5E9; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Invoice</a>
  </p>
  %s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, html.EscapeString(msg.InvoiceNumber), name, business, html.EscapeString(msg.Total), link, payment, business)
}

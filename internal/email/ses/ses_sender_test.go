package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miklean/internal/port"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, f.err
}

func TestSendEstimateEmail(t *testing.T) {
	fake := &fakeSES{}
	sender := newSESSender(fake, "noreply@miklean.app", "MiKlean")

	err := sender.SendEstimateEmail(context.Background(), port.EstimateEmail{
		ToEmail:      "jane@example.com",
		ToName:       "Jane",
		BusinessName: "Sparkle Co",
		AcceptURL:    "https://app.test/accept/1/tok",
	})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "MiKlean <noreply@miklean.app>", *fake.input.FromEmailAddress)
	assert.Equal(t, []string{"jane@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Your cleaning estimate from Sparkle Co", *fake.input.Content.Simple.Subject.Data)
	assert.Contains(t, *fake.input.Content.Simple.Body.Text.Data, "https://app.test/accept/1/tok")
	assert.Contains(t, *fake.input.Content.Simple.Body.Html.Data, "https://app.test/accept/1/tok")
}

func TestSendInvoiceEmail_EscapesHTML(t *testing.T) {
	fake := &fakeSES{}
	sender := newSESSender(fake, "noreply@miklean.app", "MiKlean")

	err := sender.SendInvoiceEmail(context.Background(), port.InvoiceEmail{
		ToEmail:             "bob@example.com",
		ToName:              "<Bob>",
		BusinessName:        "Sparkle Co",
		InvoiceNumber:       "INV-0007",
		Total:               "$240.00",
		ViewURL:             "https://app.test/invoices/view/1/tok",
		PaymentInstructions: "Venmo: @sparkle",
	})
	require.NoError(t, err)

	htmlBody := *fake.input.Content.Simple.Body.Html.Data
	assert.Contains(t, htmlBody, "&lt;Bob&gt;")
	assert.NotContains(t, htmlBody, "<Bob>")
	assert.Contains(t, *fake.input.Content.Simple.Body.Text.Data, "Venmo: @sparkle")
}

func TestSend_WrapsError(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	sender := newSESSender(fake, "noreply@miklean.app", "MiKlean")

	err := sender.SendEstimateEmail(context.Background(), port.EstimateEmail{ToEmail: "a@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

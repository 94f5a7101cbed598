package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"miklean/internal/domain"
	"miklean/internal/logger"
	"miklean/internal/port"
	"miklean/internal/service"
	"miklean/mocks"
)

type invoiceFixture struct {
	invoiceRepo *mocks.MockInvoiceRepo
	visitRepo   *mocks.MockVisitRepo
	clientRepo  *mocks.MockClientRepo
	profileRepo *mocks.MockProfileRepo
	email       *mocks.MockEmailSender
	sms         *mocks.MockSMSSender
	renderer    *mocks.MockDocumentRenderer
	svc         service.InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo: new(mocks.MockInvoiceRepo),
		visitRepo:   new(mocks.MockVisitRepo),
		clientRepo:  new(mocks.MockClientRepo),
		profileRepo: new(mocks.MockProfileRepo),
		email:       new(mocks.MockEmailSender),
		sms:         new(mocks.MockSMSSender),
		renderer:    new(mocks.MockDocumentRenderer),
	}
	f.svc = service.NewInvoiceService(f.invoiceRepo, f.visitRepo, f.clientRepo, f.profileRepo,
		f.email, f.sms, f.renderer, service.NewKeyedMutex(), "https://app.miklean.test",
		service.FixedClock(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)), logger.Discard())
	return f
}

func priced(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func TestInvoiceService_Create(t *testing.T) {
	f := newInvoiceFixture()
	bizID, clientID := uuid.New(), uuid.New()
	v1, v2, v3 := uuid.New(), uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.visitRepo.On("ListUninvoiced", mock.Anything, bizID, clientID).Return([]domain.InvoiceLine{
		{VisitID: v1, ScheduledDate: jan(1), VisitPrice: priced(120)},
		{VisitID: v2, ScheduledDate: jan(8), EstimatePrice: priced(100)},
		{VisitID: v3, ScheduledDate: jan(15), VisitPrice: priced(130), EstimatePrice: priced(100)},
	}, nil)
	f.invoiceRepo.On("LatestNumber", mock.Anything, bizID).Return("INV-0041", nil)

	var linked []uuid.UUID
	f.invoiceRepo.On("CreateWithVisits", mock.Anything, mock.AnythingOfType("*domain.Invoice"), mock.Anything).
		Run(func(args mock.Arguments) { linked = args.Get(2).([]uuid.UUID) }).
		Return(nil)

	inv, err := f.svc.Create(context.Background(), &service.CreateInvoiceInput{
		BusinessID: bizID,
		ClientID:   clientID,
		VisitIDs:   []uuid.UUID{v1, v2, v1, v3},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0042", inv.InvoiceNumber)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(350)), "got %s", inv.Total)
	assert.True(t, inv.Subtotal.Equal(inv.Total))
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	require.NotNil(t, inv.PublicToken)
	assert.NotEmpty(t, *inv.PublicToken)
	assert.Equal(t, []uuid.UUID{v1, v2, v3}, linked)
}

func TestInvoiceService_Create_FirstNumber(t *testing.T) {
	f := newInvoiceFixture()
	bizID, clientID, v1 := uuid.New(), uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.visitRepo.On("ListUninvoiced", mock.Anything, bizID, clientID).
		Return([]domain.InvoiceLine{{VisitID: v1, VisitPrice: priced(80)}}, nil)
	f.invoiceRepo.On("LatestNumber", mock.Anything, bizID).Return("", nil)
	f.invoiceRepo.On("CreateWithVisits", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.Create(context.Background(), &service.CreateInvoiceInput{
		BusinessID: bizID, ClientID: clientID, VisitIDs: []uuid.UUID{v1},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FirstInvoiceNumber, inv.InvoiceNumber)
}

func TestInvoiceService_Create_NoVisits(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.Create(context.Background(), &service.CreateInvoiceInput{BusinessID: uuid.New(), ClientID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNoVisitsSelected)
	f.clientRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_IneligibleVisit(t *testing.T) {
	f := newInvoiceFixture()
	bizID, clientID := uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.visitRepo.On("ListUninvoiced", mock.Anything, bizID, clientID).
		Return([]domain.InvoiceLine{{VisitID: uuid.New(), VisitPrice: priced(80)}}, nil)

	_, err := f.svc.Create(context.Background(), &service.CreateInvoiceInput{
		BusinessID: bizID, ClientID: clientID, VisitIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, domain.ErrVisitNotInvoiceable)
	f.invoiceRepo.AssertNotCalled(t, "CreateWithVisits", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_UnpricedVisit(t *testing.T) {
	f := newInvoiceFixture()
	bizID, clientID, v1 := uuid.New(), uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.visitRepo.On("ListUninvoiced", mock.Anything, bizID, clientID).
		Return([]domain.InvoiceLine{{VisitID: v1, ScheduledDate: jan(3)}}, nil)

	_, err := f.svc.Create(context.Background(), &service.CreateInvoiceInput{
		BusinessID: bizID, ClientID: clientID, VisitIDs: []uuid.UUID{v1},
	})
	assert.ErrorIs(t, err, domain.ErrVisitPriceMissing)
	f.invoiceRepo.AssertNotCalled(t, "LatestNumber", mock.Anything, mock.Anything)
}

func TestInvoiceService_Uninvoiced_AmountFallback(t *testing.T) {
	f := newInvoiceFixture()
	bizID, clientID := uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.visitRepo.On("ListUninvoiced", mock.Anything, bizID, clientID).Return([]domain.InvoiceLine{
		{VisitID: uuid.New(), EstimatePrice: priced(90)},
		{VisitID: uuid.New()},
	}, nil)

	items, err := f.svc.Uninvoiced(context.Background(), bizID, clientID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Amount.Valid)
	assert.True(t, items[0].Amount.Decimal.Equal(decimal.NewFromInt(90)))
	assert.False(t, items[1].Amount.Valid)
}

func sentInvoice(bizID, invID uuid.UUID, email *string) *domain.InvoiceDetail {
	token := "pubtok"
	return &domain.InvoiceDetail{
		Invoice: domain.Invoice{
			ID:            invID,
			BusinessID:    bizID,
			InvoiceNumber: "INV-0007",
			Subtotal:      decimal.RequireFromString("1234.5"),
			Total:         decimal.RequireFromString("1234.5"),
			Status:        domain.InvoiceStatusDraft,
			PublicToken:   &token,
		},
		Client: domain.ClientSummary{Name: "Jane", Phone: "+15550100", Email: email},
	}
}

func TestInvoiceService_Send_Text(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()
	name := "Sparkle Co"
	payment := "Venmo: @sparkle\n" + strings.Repeat("x", 200)

	f.invoiceRepo.On("GetDetail", mock.Anything, bizID, invID).Return(sentInvoice(bizID, invID, nil), nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).
		Return(&domain.BusinessProfile{BusinessName: &name, PaymentInstructions: &payment}, nil)

	var body string
	f.sms.On("SendSMS", mock.Anything, "+15550100", mock.Anything).
		Run(func(args mock.Arguments) { body = args.String(2) }).
		Return(nil)
	f.invoiceRepo.On("MarkSent", mock.Anything, bizID, invID, mock.Anything).Return(nil)

	result, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: invID, Method: domain.SendMethodText})
	require.NoError(t, err)

	wantURL := "https://app.miklean.test/invoices/view/" + invID.String() + "/pubtok"
	assert.Equal(t, wantURL, result.URL)
	assert.True(t, strings.HasPrefix(body, "Hi Jane! Invoice INV-0007 for $1,234.50 from Sparkle Co. Payment: Venmo: @sparkle"))
	assert.True(t, strings.HasSuffix(body, " View: "+wantURL))
	assert.Equal(t, payment[:100], body[strings.Index(body, "Payment: ")+9:strings.Index(body, " View: ")])
}

func TestInvoiceService_Send_Email(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()
	email := "jane@example.com"

	f.invoiceRepo.On("GetDetail", mock.Anything, bizID, invID).Return(sentInvoice(bizID, invID, &email), nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(nil, domain.ErrNotFound)
	f.email.On("SendInvoiceEmail", mock.Anything, mock.MatchedBy(func(m port.InvoiceEmail) bool {
		return m.ToEmail == email && m.Total == "$1,234.50" && m.InvoiceNumber == "INV-0007" &&
			m.BusinessName == "Your cleaning service"
	})).Return(nil)
	f.invoiceRepo.On("MarkSent", mock.Anything, bizID, invID, mock.Anything).Return(nil)

	_, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: invID, Method: domain.SendMethodEmail})
	require.NoError(t, err)
	f.email.AssertExpectations(t)
}

func TestInvoiceService_Send_DeliveryFailure(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()
	email := "jane@example.com"

	f.invoiceRepo.On("GetDetail", mock.Anything, bizID, invID).Return(sentInvoice(bizID, invID, &email), nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(&domain.BusinessProfile{}, nil)
	f.email.On("SendInvoiceEmail", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: invID, Method: domain.SendMethodEmail})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
	f.invoiceRepo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_MarkPaid(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()

	f.invoiceRepo.On("MarkPaid", mock.Anything, bizID, invID, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)).Return(nil)

	require.NoError(t, f.svc.MarkPaid(context.Background(), bizID, invID))
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_PublicView(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()
	payment := "Cash accepted"

	f.invoiceRepo.On("GetByToken", mock.Anything, invID, "pubtok").Return(sentInvoice(bizID, invID, nil), nil)
	f.visitRepo.On("ListInvoiceLines", mock.Anything, bizID, invID).
		Return([]domain.InvoiceLine{{VisitID: uuid.New(), VisitPrice: priced(1234)}}, nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(&domain.BusinessProfile{PaymentInstructions: &payment}, nil)

	view, err := f.svc.PublicView(context.Background(), invID, "pubtok")
	require.NoError(t, err)
	assert.Equal(t, "INV-0007", view.InvoiceNumber)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, &payment, view.PaymentInstructions)
}

func TestInvoiceService_PublicView_WrongToken(t *testing.T) {
	f := newInvoiceFixture()
	invID := uuid.New()

	f.invoiceRepo.On("GetByToken", mock.Anything, invID, "nope").Return(nil, domain.ErrNotFound)

	_, err := f.svc.PublicView(context.Background(), invID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_RenderPDF(t *testing.T) {
	f := newInvoiceFixture()
	bizID, invID := uuid.New(), uuid.New()
	detail := sentInvoice(bizID, invID, nil)
	lines := []domain.InvoiceLine{{VisitID: uuid.New(), VisitPrice: priced(10)}}

	f.invoiceRepo.On("GetDetail", mock.Anything, bizID, invID).Return(detail, nil)
	f.visitRepo.On("ListInvoiceLines", mock.Anything, bizID, invID).Return(lines, nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(nil, domain.ErrNotFound)
	f.renderer.On("RenderInvoice", detail, lines, (*domain.BusinessProfile)(nil)).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")

	doc, err := f.svc.RenderPDF(context.Background(), bizID, invID)
	require.NoError(t, err)
	assert.Equal(t, "INV-0007_Jane.pdf", doc.Filename)
}

func TestInvoiceService_ExportWorkbook(t *testing.T) {
	f := newInvoiceFixture()
	bizID := uuid.New()

	f.invoiceRepo.On("ListByBusiness", mock.Anything, bizID).
		Return([]domain.InvoiceDetail{*sentInvoice(bizID, uuid.New(), nil)}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportWorkbook(context.Background(), bizID, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := wb.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-0007", rows[1][0])
}

package service_test

import (
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

	"miklean/internal/domain"
	"miklean/internal/logger"
	"miklean/internal/port"
	"miklean/internal/service"
	"miklean/mocks"
)

type estimateFixture struct {
	estimateRepo *mocks.MockEstimateRepo
	clientRepo   *mocks.MockClientRepo
	profileRepo  *mocks.MockProfileRepo
	email        *mocks.MockEmailSender
	sms          *mocks.MockSMSSender
	renderer     *mocks.MockDocumentRenderer
	svc          service.EstimateService
}

func newEstimateFixture() *estimateFixture {
	f := &estimateFixture{
		estimateRepo: new(mocks.MockEstimateRepo),
		clientRepo:   new(mocks.MockClientRepo),
		profileRepo:  new(mocks.MockProfileRepo),
		email:        new(mocks.MockEmailSender),
		sms:          new(mocks.MockSMSSender),
		renderer:     new(mocks.MockDocumentRenderer),
	}
	f.svc = service.NewEstimateService(f.estimateRepo, f.clientRepo, f.profileRepo, f.email, f.sms, f.renderer,
		"https://app.miklean.test/", service.FixedClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)), logger.Discard())
	return f
}

func estimateDetail(bizID, estID uuid.UUID, email *string) *domain.EstimateDetail {
	return &domain.EstimateDetail{
		Estimate: domain.Estimate{
			ID:            estID,
			BusinessID:    bizID,
			ClientID:      uuid.New(),
			Description:   "Deep clean",
			PricePerVisit: decimal.NewFromInt(150),
			Frequency:     domain.FrequencyMonthly,
			Status:        domain.EstimateStatusDraft,
		},
		Client: domain.ClientSummary{Name: "Jane Doe", Phone: "+15550100", Email: email},
	}
}

func TestEstimateService_Create(t *testing.T) {
	f := newEstimateFixture()
	bizID, clientID := uuid.New(), uuid.New()

	f.clientRepo.On("GetByID", mock.Anything, bizID, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.estimateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Estimate")).Return(nil)

	est, err := f.svc.Create(context.Background(), &service.EstimateInput{
		BusinessID:      bizID,
		ClientID:        clientID,
		Description:     "Weekly clean",
		PricePerVisit:   "$1,200.499",
		Frequency:       domain.FrequencyOneTime,
		ShowMonthlyRate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EstimateStatusDraft, est.Status)
	assert.True(t, est.PricePerVisit.Equal(decimal.RequireFromString("1200.5")))
	assert.False(t, est.ShowMonthlyRate, "one-time estimates never show a monthly rate")
}

func TestEstimateService_Create_Validation(t *testing.T) {
	f := newEstimateFixture()

	_, err := f.svc.Create(context.Background(), &service.EstimateInput{
		BusinessID:    uuid.New(),
		ClientID:      uuid.New(),
		PricePerVisit: "-5",
		Frequency:     "daily",
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Reasons, 3)
	f.clientRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateService_Update_Locked(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()

	f.estimateRepo.On("GetByID", mock.Anything, bizID, estID).
		Return(&domain.Estimate{ID: estID, Status: domain.EstimateStatusAccepted}, nil)

	_, err := f.svc.Update(context.Background(), estID, &service.EstimateInput{
		BusinessID:    bizID,
		Description:   "x",
		PricePerVisit: "10",
		Frequency:     domain.FrequencyWeekly,
	})
	assert.ErrorIs(t, err, domain.ErrEstimateLocked)
	f.estimateRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEstimateService_Get_MonthlyRate(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(estimateDetail(bizID, estID, nil), nil)

	view, err := f.svc.Get(context.Background(), bizID, estID)
	require.NoError(t, err)
	require.NotNil(t, view.MonthlyRate)
	assert.True(t, view.MonthlyRate.Equal(decimal.NewFromInt(150)))
}

func TestEstimateService_Send_Email(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()
	email := "jane@example.com"
	name := "Sparkle Co"

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(estimateDetail(bizID, estID, &email), nil)
	f.estimateRepo.On("EnsureAcceptToken", mock.Anything, bizID, estID, mock.AnythingOfType("string")).Return("tok123", nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(&domain.BusinessProfile{BusinessName: &name}, nil)
	wantURL := "https://app.miklean.test/accept/" + estID.String() + "/tok123"
	f.email.On("SendEstimateEmail", mock.Anything, port.EstimateEmail{
		ToEmail:      email,
		ToName:       "Jane Doe",
		BusinessName: name,
		AcceptURL:    wantURL,
	}).Return(nil)
	f.estimateRepo.On("MarkSent", mock.Anything, bizID, estID, mock.Anything).Return(nil)

	result, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: estID, Method: domain.SendMethodEmail})
	require.NoError(t, err)
	assert.Equal(t, email, result.Recipient)
	assert.Equal(t, wantURL, result.URL)
	f.email.AssertExpectations(t)
	f.estimateRepo.AssertExpectations(t)
}

func TestEstimateService_Send_Text(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(estimateDetail(bizID, estID, nil), nil)
	f.estimateRepo.On("EnsureAcceptToken", mock.Anything, bizID, estID, mock.Anything).Return("tok", nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(nil, domain.ErrNotFound)
	wantURL := "https://app.miklean.test/accept/" + estID.String() + "/tok"
	f.sms.On("SendSMS", mock.Anything, "+15550100",
		"Hi Jane Doe! Your cleaning service sent you an estimate. View and accept here: "+wantURL).Return(nil)
	f.estimateRepo.On("MarkSent", mock.Anything, bizID, estID, mock.Anything).Return(nil)

	result, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: estID, Method: domain.SendMethodText})
	require.NoError(t, err)
	assert.Equal(t, domain.SendMethodText, result.Method)
	f.sms.AssertExpectations(t)
}

func TestEstimateService_Send_MissingEmail(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(estimateDetail(bizID, estID, nil), nil)

	_, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: estID, Method: domain.SendMethodEmail})
	assert.ErrorIs(t, err, domain.ErrClientEmailMissing)
	f.estimateRepo.AssertNotCalled(t, "EnsureAcceptToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateService_Send_DeliveryFailureKeepsStatus(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(estimateDetail(bizID, estID, nil), nil)
	f.estimateRepo.On("EnsureAcceptToken", mock.Anything, bizID, estID, mock.Anything).Return("tok", nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(&domain.BusinessProfile{}, nil)
	f.sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("twilio 500"))

	_, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: bizID, ID: estID, Method: domain.SendMethodText})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
	f.estimateRepo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateService_Send_InvalidMethod(t *testing.T) {
	f := newEstimateFixture()

	_, err := f.svc.Send(context.Background(), &service.SendInput{BusinessID: uuid.New(), ID: uuid.New(), Method: "fax"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEstimateService_PublicAccept_Idempotent(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()
	detail := estimateDetail(bizID, estID, nil)

	f.estimateRepo.On("GetByToken", mock.Anything, estID, "tok").Return(detail, nil)
	f.estimateRepo.On("Accept", mock.Anything, bizID, estID, mock.Anything).Return(true, nil).Once()
	f.estimateRepo.On("Accept", mock.Anything, bizID, estID, mock.Anything).Return(false, nil).Once()

	first, err := f.svc.PublicAccept(context.Background(), estID, "tok")
	require.NoError(t, err)
	assert.False(t, first.AlreadyAccepted)
	assert.Equal(t, "Jane Doe", first.ClientName)

	second, err := f.svc.PublicAccept(context.Background(), estID, "tok")
	require.NoError(t, err)
	assert.True(t, second.AlreadyAccepted)
}

func TestEstimateService_PublicAccept_WrongToken(t *testing.T) {
	f := newEstimateFixture()
	estID := uuid.New()

	f.estimateRepo.On("GetByToken", mock.Anything, estID, "bad").Return(nil, domain.ErrNotFound)

	_, err := f.svc.PublicAccept(context.Background(), estID, "bad")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.estimateRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateService_PublicView(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()
	phone := "555-0199"

	f.estimateRepo.On("GetByToken", mock.Anything, estID, "tok").Return(estimateDetail(bizID, estID, nil), nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(&domain.BusinessProfile{BusinessPhone: &phone}, nil)

	view, err := f.svc.PublicView(context.Background(), estID, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", view.ClientName)
	assert.Equal(t, "Your cleaning service", view.BusinessName)
	assert.Equal(t, &phone, view.BusinessPhone)
}

func TestEstimateService_RenderPDF(t *testing.T) {
	f := newEstimateFixture()
	bizID, estID := uuid.New(), uuid.New()
	detail := estimateDetail(bizID, estID, nil)
	profile := &domain.BusinessProfile{ID: bizID}

	f.estimateRepo.On("GetDetail", mock.Anything, bizID, estID).Return(detail, nil)
	f.profileRepo.On("GetByID", mock.Anything, bizID).Return(profile, nil)
	f.renderer.On("RenderEstimate", detail, profile, (*decimal.Decimal)(nil)).Return([]byte("%PDF-1.3"), nil)
	f.renderer.On("ContentType").Return("application/pdf")

	doc, err := f.svc.RenderPDF(context.Background(), bizID, estID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(doc.Filename, "Estimate_Jane_Doe"))
	assert.Equal(t, []byte("%PDF-1.3"), doc.Body)
}

package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/handler"
	"miklean/internal/logger"
	"miklean/internal/router"
	"miklean/internal/service"
	"miklean/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

type testServer struct {
	engine   *gin.Engine
	auth     *mocks.MockAuthService
	clients  *mocks.MockClientService
	visits   *mocks.MockVisitService
	estimate *mocks.MockEstimateService
	reminder *mocks.MockReminderService
}

func newTestServer(cronSecret string) *testServer {
	gin.SetMode(gin.TestMode)
	ts := &testServer{
		auth:     new(mocks.MockAuthService),
		clients:  new(mocks.MockClientService),
		visits:   new(mocks.MockVisitService),
		estimate: new(mocks.MockEstimateService),
		reminder: new(mocks.MockReminderService),
	}
	invoices := new(mocks.MockInvoiceService)
	clock := service.SystemClock(nil)

	ts.engine = router.Setup(ts.auth, router.Handlers{
		Health:   handler.NewHealthHandler(okPinger{}),
		Profile:  handler.NewProfileHandler(new(mocks.MockProfileService)),
		Client:   handler.NewClientHandler(ts.clients),
		Estimate: handler.NewEstimateHandler(ts.estimate),
		Visit:    handler.NewVisitHandler(ts.visits, clock),
		Invoice:  handler.NewInvoiceHandler(invoices, clock),
		Public:   handler.NewPublicHandler(ts.estimate, invoices),
		Stats:    handler.NewStatsHandler(new(mocks.MockStatsService)),
		Task:     handler.NewTaskHandler(ts.reminder),
	}, router.Options{
		CronSecret: cronSecret,
		Log:        logger.Discard(),
	})
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Healthz(t *testing.T) {
	ts := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ProtectedRequiresToken(t *testing.T) {
	ts := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	w := ts.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	ts.clients.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_ProtectedScopesToTokenBusiness(t *testing.T) {
	ts := newTestServer("")
	businessID := uuid.New()

	ts.auth.On("ValidateToken", "good").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: businessID.String()},
		Email:            "owner@sparkle.test",
	}, nil)
	ts.clients.On("List", mock.Anything, businessID, domain.ClientFilter{}).
		Return(&service.ClientList{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.clients.AssertExpectations(t)
}

func TestRouter_StaticVisitRoutesBeforeID(t *testing.T) {
	ts := newTestServer("")
	businessID := uuid.New()

	ts.auth.On("ValidateToken", "good").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: businessID.String()},
	}, nil)
	ts.visits.On("Today", mock.Anything, businessID).Return([]domain.VisitDetail{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits/today", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.visits.AssertExpectations(t)
}

func TestRouter_PublicEstimateNeedsNoToken(t *testing.T) {
	ts := newTestServer("")
	estimateID := uuid.New()

	ts.estimate.On("PublicView", mock.Anything, estimateID, "tok").
		Return(&service.PublicEstimateView{ID: estimateID}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/estimates/"+estimateID.String()+"/tok", nil)
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.auth.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestRouter_TasksDisabledWithoutSecret(t *testing.T) {
	ts := newTestServer("")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/reminders", nil)
	w := ts.do(req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_TasksWithSecret(t *testing.T) {
	ts := newTestServer("s3cret")

	ts.reminder.On("SendDayAhead", mock.Anything).Return(&service.ReminderRun{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/reminders", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.reminder.AssertExpectations(t)
}

func TestRouter_SwaggerUI(t *testing.T) {
	ts := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := ts.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "miklean API")
}

package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/handler"
	"miklean/internal/service"
	"miklean/mocks"
)

func newClientHandler() (*handler.ClientHandler, *mocks.MockClientService) {
	mockSvc := new(mocks.MockClientService)
	return handler.NewClientHandler(mockSvc), mockSvc
}

func TestClientHandler_Create_Success(t *testing.T) {
	h, mockSvc := newClientHandler()
	businessID := uuid.New()

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.ClientInput) bool {
		return in.BusinessID == businessID && in.Name == "Jane Doe" && in.Phone == "512-555-0100"
	})).Return(&domain.Client{ID: uuid.New(), Name: "Jane Doe", Type: domain.ClientTypeProspect}, nil)

	c, w := newCtx(http.MethodPost, "/api/v1/clients", map[string]string{
		"name":     "Jane Doe",
		"phone":    "512-555-0100",
		"street1":  "123 Main St",
		"city":     "Austin",
		"state":    "TX",
		"zip_code": "78701",
	}, businessID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestClientHandler_Create_ValidationError(t *testing.T) {
	h, mockSvc := newClientHandler()

	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("name is required"))

	c, w := newCtx(http.MethodPost, "/api/v1/clients", map[string]string{}, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, []string{"name is required"}, resp.Error.Details)
}

func TestClientHandler_Create_NoBusiness(t *testing.T) {
	h, mockSvc := newClientHandler()

	c, w := newCtx(http.MethodPost, "/api/v1/clients", map[string]string{"name": "Jane"}, uuid.Nil)

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientHandler_List_PassesFilter(t *testing.T) {
	h, mockSvc := newClientHandler()
	businessID := uuid.New()

	mockSvc.On("List", mock.Anything, businessID, domain.ClientFilter{Type: domain.ClientTypeClient, Search: "jane"}).
		Return(&service.ClientList{Clients: []domain.Client{}}, nil)

	c, w := newCtx(http.MethodGet, "/api/v1/clients?type=client&q=jane", nil, businessID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestClientHandler_Get_InvalidID(t *testing.T) {
	h, _ := newClientHandler()

	c, w := newCtx(http.MethodGet, "/api/v1/clients/nope", nil, uuid.New(), "id", "nope")

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	h, mockSvc := newClientHandler()
	businessID, clientID := uuid.New(), uuid.New()

	mockSvc.On("Detail", mock.Anything, businessID, clientID).Return(nil, domain.ErrNotFound)

	c, w := newCtx(http.MethodGet, "/api/v1/clients/"+clientID.String(), nil, businessID, "id", clientID.String())

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientHandler_Deactivate_CancelVisits(t *testing.T) {
	h, mockSvc := newClientHandler()
	businessID, clientID := uuid.New(), uuid.New()

	mockSvc.On("Deactivate", mock.Anything, businessID, clientID, true).Return(int64(3), nil)

	c, w := newCtx(http.MethodPost, "/", map[string]bool{"cancel_visits": true}, businessID, "id", clientID.String())

	h.Deactivate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["cancelled_visits"])
}

func TestClientHandler_Deactivate_NoBody(t *testing.T) {
	h, mockSvc := newClientHandler()
	businessID, clientID := uuid.New(), uuid.New()

	mockSvc.On("Deactivate", mock.Anything, businessID, clientID, false).Return(int64(0), nil)

	c, w := newCtx(http.MethodPost, "/", nil, businessID, "id", clientID.String())

	h.Deactivate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
